package usecases

import (
	"context"
	"strings"

	"github.com/techflow/techflow/internal/application/issue/dto"
	"github.com/techflow/techflow/internal/domain/issue"
	"github.com/techflow/techflow/internal/shared/errors"
	"github.com/techflow/techflow/internal/shared/logger"
)

type GetIssueQuery struct {
	IssueID uint
}

type GetIssueUseCase struct {
	repo   issue.Repository
	logger logger.Interface
}

func NewGetIssueUseCase(repo issue.Repository, logger logger.Interface) *GetIssueUseCase {
	return &GetIssueUseCase{
		repo:   repo,
		logger: logger,
	}
}

func (uc *GetIssueUseCase) Execute(ctx context.Context, query GetIssueQuery) (*dto.IssueDTO, error) {
	found, err := uc.repo.GetByID(ctx, query.IssueID)
	if err != nil {
		uc.logger.Debugw("issue lookup failed", "issue_id", query.IssueID, "error", err)
		return nil, toAppError(err)
	}
	return dto.ToIssueDTO(found), nil
}

// LookupIssueQuery finds an issue by the report code handed to the client.
type LookupIssueQuery struct {
	ReportCode string
}

type LookupIssueUseCase struct {
	repo   issue.Repository
	logger logger.Interface
}

func NewLookupIssueUseCase(repo issue.Repository, logger logger.Interface) *LookupIssueUseCase {
	return &LookupIssueUseCase{
		repo:   repo,
		logger: logger,
	}
}

func (uc *LookupIssueUseCase) Execute(ctx context.Context, query LookupIssueQuery) (*dto.IssueTrackingDTO, error) {
	code := strings.TrimSpace(query.ReportCode)
	if code == "" {
		return nil, errors.NewValidationError("report code is required")
	}

	found, err := uc.repo.GetByReportCode(ctx, code)
	if err != nil {
		uc.logger.Debugw("report code lookup failed", "report_code", code, "error", err)
		return nil, toAppError(err)
	}
	return dto.ToIssueTrackingDTO(found), nil
}
