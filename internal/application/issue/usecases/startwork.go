package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/techflow/techflow/internal/application/issue/dto"
	"github.com/techflow/techflow/internal/domain/issue"
	"github.com/techflow/techflow/internal/shared/authorization"
	"github.com/techflow/techflow/internal/shared/biztime"
	"github.com/techflow/techflow/internal/shared/logger"
)

type StartWorkCommand struct {
	IssueID     uint
	PerformedBy string
}

type StartWorkUseCase struct {
	repo       issue.Repository
	history    issue.HistoryLog
	dispatcher NotificationDispatcher
	now        func() time.Time
	logger     logger.Interface
}

func NewStartWorkUseCase(
	repo issue.Repository,
	history issue.HistoryLog,
	dispatcher NotificationDispatcher,
	logger logger.Interface,
) *StartWorkUseCase {
	return &StartWorkUseCase{
		repo:       repo,
		history:    history,
		dispatcher: dispatcher,
		now:        biztime.Now,
		logger:     logger,
	}
}

func (uc *StartWorkUseCase) Execute(ctx context.Context, cmd StartWorkCommand) (*dto.IssueDTO, error) {
	uc.logger.Infow("executing start work use case", "issue_id", cmd.IssueID)

	actor := authorization.Actor(ctx, cmd.PerformedBy)
	now := uc.now()

	updated, err := uc.repo.Update(ctx, cmd.IssueID, func(i *issue.Issue) error {
		return i.StartWork(actor, now)
	})
	if err != nil {
		uc.logger.Warnw("failed to start work", "issue_id", cmd.IssueID, "error", err)
		return nil, toAppError(err)
	}

	uc.logger.Infow("work started", "issue_id", updated.ID(), "performed_by", actor)

	appendHistory(ctx, uc.history, uc.logger, updated.ID(), issue.HistoryEntry{
		Timestamp:   now,
		Action:      issue.ActionWorkStarted,
		Description: fmt.Sprintf("Work started by %s", actor),
		PerformedBy: actor,
	})

	uc.dispatcher.Dispatch(IssueNotification{Event: EventWorkStarted, Issue: updated})

	return dto.ToIssueDTO(updated), nil
}
