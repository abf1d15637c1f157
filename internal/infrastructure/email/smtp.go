package email

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"gopkg.in/gomail.v2"

	"github.com/techflow/techflow/internal/shared/logger"
	"github.com/techflow/techflow/internal/shared/services/markdown"
)

type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromAddress string
	FromName    string
	MaxAttempts int
}

// sender is the part of gomail.Dialer the notifier uses.
type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPNotifier delivers HTML notifications over SMTP, retrying transient failures with
// exponential backoff.
type SMTPNotifier struct {
	config   SMTPConfig
	dialer   sender
	markdown markdown.MarkdownService
	logger   logger.Interface

	initialInterval time.Duration
}

func NewSMTPNotifier(config SMTPConfig, md markdown.MarkdownService, logger logger.Interface) *SMTPNotifier {
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = 1
	}
	return &SMTPNotifier{
		config:          config,
		dialer:          gomail.NewDialer(config.Host, config.Port, config.Username, config.Password),
		markdown:        md,
		logger:          logger,
		initialInterval: 500 * time.Millisecond,
	}
}

// Notify sends one message to recipient with cc copied. It never panics.
func (s *SMTPNotifier) Notify(ctx context.Context, recipient, subject, htmlBody string, cc []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: panic while sending: %v", ErrDeliveryFailed, r)
		}
	}()

	recipient = strings.TrimSpace(recipient)
	if recipient == "" {
		return ErrNoRecipient
	}

	m := s.buildMessage(recipient, subject, htmlBody, NormalizeCC(recipient, cc))

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = s.initialInterval
	policy.MaxElapsedTime = 0

	attempt := 0
	operation := func() error {
		attempt++
		if sendErr := s.dialer.DialAndSend(m); sendErr != nil {
			s.logger.Debugw("smtp send attempt failed",
				"attempt", attempt,
				"to", recipient,
				"error", sendErr)
			return sendErr
		}
		return nil
	}

	b := backoff.WithContext(backoff.WithMaxRetries(policy, uint64(s.config.MaxAttempts-1)), ctx)
	if sendErr := backoff.Retry(operation, b); sendErr != nil {
		return fmt.Errorf("%w after %d attempt(s): %v", ErrDeliveryFailed, attempt, sendErr)
	}

	s.logger.Infow("notification email sent", "to", recipient, "cc", len(m.GetHeader("Cc")), "subject", subject)
	return nil
}

func (s *SMTPNotifier) buildMessage(recipient, subject, htmlBody string, cc []string) *gomail.Message {
	m := gomail.NewMessage()
	if s.config.FromName != "" {
		m.SetAddressHeader("From", s.config.FromAddress, s.config.FromName)
	} else {
		m.SetHeader("From", s.config.FromAddress)
	}
	m.SetHeader("To", recipient)
	if len(cc) > 0 {
		m.SetHeader("Cc", cc...)
	}
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", s.markdown.ToPlainText(htmlBody))
	m.AddAlternative("text/html", htmlBody)
	return m
}

// NormalizeCC trims addresses, drops blanks, removes case-insensitive duplicates and
// excludes the primary recipient. Order is preserved.
func NormalizeCC(recipient string, cc []string) []string {
	seen := map[string]struct{}{strings.ToLower(strings.TrimSpace(recipient)): {}}
	out := make([]string, 0, len(cc))
	for _, addr := range cc {
		addr = strings.TrimSpace(addr)
		if addr == "" {
			continue
		}
		key := strings.ToLower(addr)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, addr)
	}
	return out
}
