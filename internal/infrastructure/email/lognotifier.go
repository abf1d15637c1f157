package email

import (
	"context"
	"strings"

	"github.com/techflow/techflow/internal/shared/logger"
)

// LogNotifier writes notifications to the log instead of sending them. It is used when
// email delivery is disabled.
type LogNotifier struct {
	logger logger.Interface
}

func NewLogNotifier(logger logger.Interface) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(ctx context.Context, recipient, subject, htmlBody string, cc []string) error {
	recipient = strings.TrimSpace(recipient)
	if recipient == "" {
		return ErrNoRecipient
	}
	n.logger.Infow("email disabled, notification logged",
		"to", recipient,
		"cc", NormalizeCC(recipient, cc),
		"subject", subject,
		"body_bytes", len(htmlBody))
	return nil
}
