package email

import (
	"context"

	"github.com/techflow/techflow/internal/shared/config"
	"github.com/techflow/techflow/internal/shared/logger"
	"github.com/techflow/techflow/internal/shared/services/markdown"
)

type Notifier interface {
	Notify(ctx context.Context, recipient, subject, htmlBody string, cc []string) error
}

// NewNotifier returns an SMTP notifier when email is enabled and a logging one otherwise.
func NewNotifier(cfg config.EmailConfig, md markdown.MarkdownService, log logger.Interface) Notifier {
	if !cfg.Enabled {
		log.Infow("email delivery disabled, notifications will be logged")
		return NewLogNotifier(log)
	}

	log.Infow("smtp notifier configured", "host", cfg.SMTPHost, "port", cfg.SMTPPort)
	return NewSMTPNotifier(SMTPConfig{
		Host:        cfg.SMTPHost,
		Port:        cfg.SMTPPort,
		Username:    cfg.SMTPUser,
		Password:    cfg.SMTPPassword,
		FromAddress: cfg.FromAddress,
		FromName:    cfg.FromName,
		MaxAttempts: cfg.MaxAttempts,
	}, md, log)
}
