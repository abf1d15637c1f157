package usecases

import (
	"context"

	"github.com/techflow/techflow/internal/application/issue/dto"
	"github.com/techflow/techflow/internal/domain/issue"
	"github.com/techflow/techflow/internal/shared/logger"
)

type GetHistoryQuery struct {
	IssueID uint
}

// GetHistoryUseCase returns an issue's timeline. An unknown id yields an empty list.
type GetHistoryUseCase struct {
	history issue.HistoryLog
	logger  logger.Interface
}

func NewGetHistoryUseCase(history issue.HistoryLog, logger logger.Interface) *GetHistoryUseCase {
	return &GetHistoryUseCase{
		history: history,
		logger:  logger,
	}
}

func (uc *GetHistoryUseCase) Execute(ctx context.Context, query GetHistoryQuery) ([]dto.HistoryEntryDTO, error) {
	entries, err := uc.history.Get(ctx, query.IssueID)
	if err != nil {
		uc.logger.Warnw("failed to read issue history, returning empty timeline",
			"issue_id", query.IssueID,
			"error", err)
		return []dto.HistoryEntryDTO{}, nil
	}
	return dto.ToHistoryEntryDTOs(entries), nil
}
