package usecases

import (
	"context"
	"sync"
	"time"

	"github.com/techflow/techflow/internal/domain/issue"
	vo "github.com/techflow/techflow/internal/domain/issue/valueobjects"
	"github.com/techflow/techflow/internal/shared/goroutine"
	"github.com/techflow/techflow/internal/shared/logger"
)

type NotificationEvent string

const (
	EventIssueCreated     NotificationEvent = "issue_created"
	EventTechLevelChanged NotificationEvent = "tech_level_changed"
	EventWorkStarted      NotificationEvent = "work_started"
	EventIssueCompleted   NotificationEvent = "issue_completed"
)

// IssueNotification describes one committed lifecycle change.
type IssueNotification struct {
	Event             NotificationEvent
	Issue             *issue.Issue
	PreviousTechLevel vo.TechLevel
}

// AsyncNotificationDispatcher renders and sends notifications on background goroutines.
// The client is the recipient and the tech team is copied. Failures are logged only.
type AsyncNotificationDispatcher struct {
	notifier      Notifier
	renderer      NotificationRenderer
	teamAddresses []string
	timeout       time.Duration
	logger        logger.Interface
	wg            sync.WaitGroup
}

func NewAsyncNotificationDispatcher(
	notifier Notifier,
	renderer NotificationRenderer,
	teamAddresses []string,
	timeout time.Duration,
	logger logger.Interface,
) *AsyncNotificationDispatcher {
	return &AsyncNotificationDispatcher{
		notifier:      notifier,
		renderer:      renderer,
		teamAddresses: teamAddresses,
		timeout:       timeout,
		logger:        logger,
	}
}

func (d *AsyncNotificationDispatcher) Dispatch(n IssueNotification) {
	if n.Issue == nil {
		return
	}
	goroutine.SafeGoTracked(d.logger, "issue-notification", &d.wg, func() {
		d.send(n)
	})
}

func (d *AsyncNotificationDispatcher) send(n IssueNotification) {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	subject, body, err := d.renderer.Render(n)
	if err != nil {
		d.logger.Warnw("failed to render notification",
			"event", n.Event,
			"issue_id", n.Issue.ID(),
			"error", err)
		return
	}

	if err := d.notifier.Notify(ctx, n.Issue.Email(), subject, body, d.teamAddresses); err != nil {
		d.logger.Warnw("notification failed",
			"event", n.Event,
			"issue_id", n.Issue.ID(),
			"report_code", n.Issue.ReportCode(),
			"error", err)
		return
	}

	d.logger.Debugw("notification sent", "event", n.Event, "issue_id", n.Issue.ID())
}

// Wait blocks until in-flight notifications finish or ctx is done.
func (d *AsyncNotificationDispatcher) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
