package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/techflow/techflow/internal/application/issue/dto"
	"github.com/techflow/techflow/internal/domain/issue"
	vo "github.com/techflow/techflow/internal/domain/issue/valueobjects"
	"github.com/techflow/techflow/internal/shared/authorization"
	"github.com/techflow/techflow/internal/shared/biztime"
	"github.com/techflow/techflow/internal/shared/errors"
	"github.com/techflow/techflow/internal/shared/logger"
)

type SetTechLevelCommand struct {
	IssueID     uint
	TechLevel   string
	PerformedBy string
}

type SetTechLevelUseCase struct {
	repo       issue.Repository
	history    issue.HistoryLog
	dispatcher NotificationDispatcher
	now        func() time.Time
	logger     logger.Interface
}

func NewSetTechLevelUseCase(
	repo issue.Repository,
	history issue.HistoryLog,
	dispatcher NotificationDispatcher,
	logger logger.Interface,
) *SetTechLevelUseCase {
	return &SetTechLevelUseCase{
		repo:       repo,
		history:    history,
		dispatcher: dispatcher,
		now:        biztime.Now,
		logger:     logger,
	}
}

func (uc *SetTechLevelUseCase) Execute(ctx context.Context, cmd SetTechLevelCommand) (*dto.IssueDTO, error) {
	uc.logger.Infow("executing set tech level use case",
		"issue_id", cmd.IssueID,
		"tech_level", cmd.TechLevel)

	level, err := vo.NewTechLevel(cmd.TechLevel)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	actor := authorization.Actor(ctx, cmd.PerformedBy)
	now := uc.now()

	var previous vo.TechLevel
	updated, err := uc.repo.Update(ctx, cmd.IssueID, func(i *issue.Issue) error {
		prev, err := i.ChangeTechLevel(level, actor, now)
		if err != nil {
			return err
		}
		previous = prev
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to change tech level", "issue_id", cmd.IssueID, "error", err)
		return nil, toAppError(err)
	}

	uc.logger.Infow("tech level changed",
		"issue_id", updated.ID(),
		"from", previous,
		"to", updated.TechLevel(),
		"assigned_to", updated.AssignedTo())

	appendHistory(ctx, uc.history, uc.logger, updated.ID(), issue.HistoryEntry{
		Timestamp: now,
		Action:    issue.ActionTechLevelChanged,
		Description: fmt.Sprintf("Tech level changed from %s to %s, assigned to %s",
			previous, updated.TechLevel(), updated.AssignedTo()),
		PerformedBy: actor,
	})

	uc.dispatcher.Dispatch(IssueNotification{
		Event:             EventTechLevelChanged,
		Issue:             updated,
		PreviousTechLevel: previous,
	})

	return dto.ToIssueDTO(updated), nil
}
