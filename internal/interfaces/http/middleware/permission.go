package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/techflow/techflow/internal/shared/authorization"
	"github.com/techflow/techflow/internal/shared/logger"
	"github.com/techflow/techflow/internal/shared/utils"
)

type PermissionEnforcer interface {
	Enforce(role authorization.UserRole, resource string, action string) (bool, error)
}

type PermissionMiddleware struct {
	enforcer PermissionEnforcer
	logger   logger.Interface
}

func NewPermissionMiddleware(enforcer PermissionEnforcer, logger logger.Interface) *PermissionMiddleware {
	return &PermissionMiddleware{
		enforcer: enforcer,
		logger:   logger,
	}
}

// RequirePermission must run after RequireAuth.
func (m *PermissionMiddleware) RequirePermission(resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := authorization.IdentityFromContext(c.Request.Context())
		if !ok {
			utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
			c.Abort()
			return
		}

		allowed, err := m.enforcer.Enforce(id.Role, resource, action)
		if err != nil {
			m.logger.Errorw("permission check failed", "error", err, "username", id.Username, "resource", resource, "action", action)
			utils.ErrorResponse(c, http.StatusInternalServerError, "permission check failed")
			c.Abort()
			return
		}

		if !allowed {
			m.logger.Warnw("permission denied", "username", id.Username, "role", id.Role, "resource", resource, "action", action)
			utils.ErrorResponse(c, http.StatusForbidden, "insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}
