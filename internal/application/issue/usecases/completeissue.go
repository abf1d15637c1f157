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

type CompleteIssueCommand struct {
	IssueID         uint
	ResolutionNotes string
	PerformedBy     string
}

type CompleteIssueUseCase struct {
	repo       issue.Repository
	history    issue.HistoryLog
	dispatcher NotificationDispatcher
	now        func() time.Time
	logger     logger.Interface
}

func NewCompleteIssueUseCase(
	repo issue.Repository,
	history issue.HistoryLog,
	dispatcher NotificationDispatcher,
	logger logger.Interface,
) *CompleteIssueUseCase {
	return &CompleteIssueUseCase{
		repo:       repo,
		history:    history,
		dispatcher: dispatcher,
		now:        biztime.Now,
		logger:     logger,
	}
}

func (uc *CompleteIssueUseCase) Execute(ctx context.Context, cmd CompleteIssueCommand) (*dto.IssueDTO, error) {
	uc.logger.Infow("executing complete issue use case", "issue_id", cmd.IssueID)

	actor := authorization.Actor(ctx, cmd.PerformedBy)
	now := uc.now()

	updated, err := uc.repo.Update(ctx, cmd.IssueID, func(i *issue.Issue) error {
		return i.Complete(cmd.ResolutionNotes, actor, now)
	})
	if err != nil {
		uc.logger.Warnw("failed to complete issue", "issue_id", cmd.IssueID, "error", err)
		return nil, toAppError(err)
	}

	uc.logger.Infow("issue completed",
		"issue_id", updated.ID(),
		"performed_by", actor,
		"total_resolution_time", updated.TotalResolutionTime())

	appendHistory(ctx, uc.history, uc.logger, updated.ID(), issue.HistoryEntry{
		Timestamp: now,
		Action:    issue.ActionCompleted,
		Description: fmt.Sprintf("Issue completed by %s. Resolution time: %s",
			actor, updated.TotalResolutionTime()),
		PerformedBy: actor,
	})

	uc.dispatcher.Dispatch(IssueNotification{Event: EventIssueCompleted, Issue: updated})

	return dto.ToIssueDTO(updated), nil
}
