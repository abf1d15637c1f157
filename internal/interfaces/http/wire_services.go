package http

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/techflow/techflow/internal/application/issue/usecases"
	"github.com/techflow/techflow/internal/infrastructure/auth"
	"github.com/techflow/techflow/internal/infrastructure/email"
	"github.com/techflow/techflow/internal/infrastructure/permission"
	"github.com/techflow/techflow/internal/infrastructure/ratelimit"
	"github.com/techflow/techflow/internal/infrastructure/template"
	"github.com/techflow/techflow/internal/interfaces/http/middleware"
	"github.com/techflow/techflow/internal/shared/services/markdown"
)

func (c *Container) initServices() error {
	cfg := c.cfg

	if cfg.Redis.Enabled {
		client, err := initRedis(cfg.Redis.GetAddr(), cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return err
		}
		c.redis = client
		c.log.Infow("Redis connection established successfully", "addr", cfg.Redis.GetAddr())
	}

	// Auth
	authenticator, err := auth.NewAuthenticator(cfg.Auth, c.log.Named("auth"))
	if err != nil {
		return fmt.Errorf("failed to initialize authenticator: %w", err)
	}
	c.authenticator = authenticator
	c.jwtSvc = auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes)

	enforcer, err := permission.NewEnforcer(permission.DefaultPolicies, c.log.Named("permission"))
	if err != nil {
		return fmt.Errorf("failed to initialize permission enforcer: %w", err)
	}
	c.enforcer = enforcer

	// Notifications
	md := markdown.NewMarkdownService()
	renderer, err := template.NewIssueMailRenderer(md, cfg.Server.BaseURL, c.log.Named("mail.renderer"))
	if err != nil {
		return fmt.Errorf("failed to load mail templates: %w", err)
	}
	notifier := email.NewNotifier(cfg.Email, md, c.log.Named("mail"))
	c.dispatcher = usecases.NewAsyncNotificationDispatcher(
		notifier,
		renderer,
		cfg.Email.TeamAddresses,
		cfg.Email.Timeout(),
		c.log.Named("notification"),
	)

	// Middlewares that only depend on services
	c.authMiddleware = middleware.NewAuthMiddleware(c.jwtSvc, c.log.Named("middleware.auth"))
	c.permissionMiddleware = middleware.NewPermissionMiddleware(c.enforcer, c.log.Named("middleware.permission"))
	c.rateLimiter = middleware.NewRateLimiter(c.newRateLimitBackend(), c.log.Named("middleware.ratelimit"))

	return nil
}

// newRateLimitBackend shares limits across instances through Redis when it is enabled.
func (c *Container) newRateLimitBackend() ratelimit.RateLimiter {
	policy := ratelimit.Policy{
		Requests: c.cfg.RateLimit.Requests,
		Window:   c.cfg.RateLimit.Window(),
	}
	if c.redis != nil {
		return ratelimit.NewRedisRateLimiter(c.redis, policy)
	}
	return ratelimit.NewMemoryRateLimiter(policy)
}

// initRedis creates and tests the Redis client connection.
func initRedis(addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}
