package usecases

import (
	"context"

	"github.com/techflow/techflow/internal/domain/issue"
	"github.com/techflow/techflow/internal/shared/biztime"
	"github.com/techflow/techflow/internal/shared/logger"
	"github.com/techflow/techflow/internal/shared/utils/logutil"
)

const maxLoggedDescription = 200

type PrintIssuesResult struct {
	TotalIssues int `json:"total_issues"`
}

// PrintIssuesUseCase writes every issue to the server log, one line each.
type PrintIssuesUseCase struct {
	repo   issue.Repository
	logger logger.Interface
}

func NewPrintIssuesUseCase(repo issue.Repository, logger logger.Interface) *PrintIssuesUseCase {
	return &PrintIssuesUseCase{
		repo:   repo,
		logger: logger,
	}
}

func (uc *PrintIssuesUseCase) Execute(ctx context.Context) (*PrintIssuesResult, error) {
	issues, err := uc.repo.List(ctx, issue.Filter{})
	if err != nil {
		uc.logger.Errorw("failed to load issues for printing", "error", err)
		return nil, toAppError(err)
	}

	for _, i := range issues {
		uc.logger.Infow("issue",
			"id", i.ID(),
			"report_id", i.ReportCode(),
			"client_name", i.ClientName(),
			"project", i.Project(),
			"description", logutil.TruncateForLog(i.Description(), maxLoggedDescription),
			"priority", i.Priority(),
			"status", i.Status(),
			"tech_level", i.TechLevel(),
			"assigned_to", i.AssignedTo(),
			"created_at", biztime.Timestamp(i.CreatedAt()),
			"total_resolution_time", i.TotalResolutionTime())
	}

	uc.logger.Infow("issues printed", "total_issues", len(issues))

	return &PrintIssuesResult{TotalIssues: len(issues)}, nil
}
