package usecases

import (
	"context"
	"strings"

	"github.com/techflow/techflow/internal/application/issue/dto"
	"github.com/techflow/techflow/internal/domain/issue"
	vo "github.com/techflow/techflow/internal/domain/issue/valueobjects"
	"github.com/techflow/techflow/internal/shared/errors"
	"github.com/techflow/techflow/internal/shared/logger"
)

// ListIssuesQuery holds the dashboard filters. Empty fields do not filter.
type ListIssuesQuery struct {
	Status    string
	Priority  string
	TechLevel string
	Project   string
	Search    string
}

type ListIssuesUseCase struct {
	repo   issue.Repository
	logger logger.Interface
}

func NewListIssuesUseCase(repo issue.Repository, logger logger.Interface) *ListIssuesUseCase {
	return &ListIssuesUseCase{
		repo:   repo,
		logger: logger,
	}
}

func (uc *ListIssuesUseCase) Execute(ctx context.Context, query ListIssuesQuery) ([]*dto.IssueDTO, error) {
	filter, err := buildFilter(query)
	if err != nil {
		return nil, err
	}

	issues, err := uc.repo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list issues", "error", err)
		return nil, toAppError(err)
	}

	uc.logger.Debugw("issues listed", "count", len(issues))

	result := dto.ToIssueDTOs(issues)
	if result == nil {
		result = []*dto.IssueDTO{}
	}
	return result, nil
}

func buildFilter(query ListIssuesQuery) (issue.Filter, error) {
	filter := issue.Filter{
		Project: strings.TrimSpace(query.Project),
		Search:  strings.TrimSpace(query.Search),
	}

	if s := strings.TrimSpace(query.Status); s != "" {
		status, err := vo.NewIssueStatus(s)
		if err != nil {
			return issue.Filter{}, errors.NewValidationError(err.Error())
		}
		filter.Status = &status
	}
	if s := strings.TrimSpace(query.Priority); s != "" {
		priority, err := vo.NewPriority(s)
		if err != nil {
			return issue.Filter{}, errors.NewValidationError(err.Error())
		}
		filter.Priority = &priority
	}
	if s := strings.TrimSpace(query.TechLevel); s != "" {
		level, err := vo.NewTechLevel(s)
		if err != nil {
			return issue.Filter{}, errors.NewValidationError(err.Error())
		}
		filter.TechLevel = &level
	}

	return filter, nil
}
