package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/techflow/techflow/internal/shared/authorization"
	"github.com/techflow/techflow/internal/shared/constants"
	"github.com/techflow/techflow/internal/shared/logger"
	"github.com/techflow/techflow/internal/shared/utils"
)

// TokenVerifier resolves a session token to the caller's identity.
type TokenVerifier interface {
	Verify(token string) (authorization.Identity, error)
}

type AuthMiddleware struct {
	verifier TokenVerifier
	logger   logger.Interface
}

func NewAuthMiddleware(verifier TokenVerifier, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
		logger:   logger,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := extractToken(c)
		if !ok {
			utils.ErrorResponse(c, http.StatusUnauthorized, "missing authorization token")
			c.Abort()
			return
		}

		id, err := m.verifier.Verify(token)
		if err != nil {
			m.logger.Warnw("failed to verify token", "error", err)
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		SetIdentity(c, id)
		c.Next()
	}
}

func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := extractToken(c); ok {
			if id, err := m.verifier.Verify(token); err == nil {
				SetIdentity(c, id)
			}
		}
		c.Next()
	}
}

// SetIdentity stores id on the gin context and on the request context, where use cases
// read it.
func SetIdentity(c *gin.Context, id authorization.Identity) {
	c.Set(constants.ContextKeyUsername, id.Username)
	c.Set(constants.ContextKeyUserRole, string(id.Role))
	c.Request = c.Request.WithContext(authorization.WithIdentity(c.Request.Context(), id))
}

// extractToken reads the session cookie, falling back to a bearer header.
func extractToken(c *gin.Context) (string, bool) {
	if token := utils.GetTokenFromCookie(c, utils.AccessTokenCookie); token != "" {
		return token, true
	}

	header := c.GetHeader(constants.HeaderAuthorization)
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}
