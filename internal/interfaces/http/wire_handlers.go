package http

import (
	"github.com/techflow/techflow/internal/interfaces/http/handlers"
	issueHandlers "github.com/techflow/techflow/internal/interfaces/http/handlers/issue"
)

// allHandlers holds all HTTP handler instances used by the application.
type allHandlers struct {
	healthHandler *handlers.HealthHandler
	authHandler   *handlers.AuthHandler
	issueHandler  *issueHandlers.IssueHandler
}

func (c *Container) initHandlers() {
	c.hdlrs = &allHandlers{
		healthHandler: handlers.NewHealthHandler(),
		authHandler: handlers.NewAuthHandler(
			c.authenticator,
			c.jwtSvc,
			c.cfg.Auth.Cookie,
			c.log.Named("handler.auth"),
		),
		issueHandler: issueHandlers.NewIssueHandler(
			c.IssueUseCases(),
			c.repos.attachments,
			c.log.Named("handler.issue"),
		),
	}
}

// IssueUseCases exposes the wired use cases to non-HTTP entry points such as the CLI.
func (c *Container) IssueUseCases() issueHandlers.UseCases {
	return issueHandlers.UseCases(*c.ucs)
}
