package http

import (
	"context"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/techflow/techflow/internal/application/issue/usecases"
	"github.com/techflow/techflow/internal/infrastructure/auth"
	"github.com/techflow/techflow/internal/infrastructure/config"
	"github.com/techflow/techflow/internal/infrastructure/database"
	"github.com/techflow/techflow/internal/infrastructure/permission"
	"github.com/techflow/techflow/internal/interfaces/http/middleware"
	"github.com/techflow/techflow/internal/shared/logger"
)

// Container holds the storage, services, use cases, handlers and middlewares of the
// server and is responsible for wiring them together. Shutdown releases everything it
// opened.
type Container struct {
	// Core infrastructure
	engine *gin.Engine
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client
	usesDB bool

	// Storage
	repos *repositories

	// Services
	jwtSvc        *auth.JWTService
	authenticator *auth.Authenticator
	enforcer      *permission.Enforcer
	dispatcher    *usecases.AsyncNotificationDispatcher

	// Use cases
	ucs *allUseCases

	// Handlers
	hdlrs *allHandlers

	// Middlewares
	authMiddleware       *middleware.AuthMiddleware
	permissionMiddleware *middleware.PermissionMiddleware
	rateLimiter          *middleware.RateLimiter
}

// NewContainer wires every component from cfg. Sections run in dependency order:
// storage first, then services, use cases and handlers.
func NewContainer(cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine: gin.New(),
		cfg:    cfg,
		log:    log,
	}

	// Section 1: Storage - issue store, history log, attachments
	if err := c.initStorage(); err != nil {
		c.release()
		return nil, err
	}

	// Section 2: Services - Redis, auth, permissions, notifications, rate limiting
	if err := c.initServices(); err != nil {
		c.release()
		return nil, err
	}

	// Section 3: Use cases
	c.initUseCases()

	// Section 4: Handlers and middlewares
	c.initHandlers()

	return c, nil
}

// Shutdown waits for in-flight notifications and closes Redis and the database.
func (c *Container) Shutdown(ctx context.Context) error {
	var errs []error

	if c.dispatcher != nil {
		if err := c.dispatcher.Wait(ctx); err != nil {
			c.log.Warnw("pending notifications abandoned on shutdown", "error", err)
			errs = append(errs, fmt.Errorf("wait for notifications: %w", err))
		}
	}

	if err := c.release(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

func (c *Container) release() error {
	var errs []error

	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close redis: %w", err))
		}
		c.redis = nil
	}

	if c.usesDB {
		if err := database.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close database: %w", err))
		}
		c.usesDB = false
	}

	return errors.Join(errs...)
}
