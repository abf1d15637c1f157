package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/techflow/techflow/internal/infrastructure/ratelimit"
	"github.com/techflow/techflow/internal/shared/logger"
	"github.com/techflow/techflow/internal/shared/utils"
)

// RateLimiter limits requests per client IP under a named scope.
type RateLimiter struct {
	limiter ratelimit.RateLimiter
	logger  logger.Interface
}

func NewRateLimiter(limiter ratelimit.RateLimiter, logger logger.Interface) *RateLimiter {
	return &RateLimiter{
		limiter: limiter,
		logger:  logger,
	}
}

// Limit returns a Gin middleware that enforces the rate limit per client IP. When the
// limiter backend fails the request is let through.
func (rl *RateLimiter) Limit(scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := scope + ":" + c.ClientIP()

		allowed, err := rl.limiter.Allow(c.Request.Context(), key)
		if err != nil {
			rl.logger.Warnw("rate limiter unavailable, allowing request", "scope", scope, "error", err)
			c.Next()
			return
		}

		if !allowed {
			utils.ErrorResponse(c, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}
