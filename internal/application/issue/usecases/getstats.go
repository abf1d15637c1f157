package usecases

import (
	"context"

	"github.com/techflow/techflow/internal/application/issue/dto"
	"github.com/techflow/techflow/internal/domain/issue"
	vo "github.com/techflow/techflow/internal/domain/issue/valueobjects"
	"github.com/techflow/techflow/internal/shared/logger"
)

type GetStatsUseCase struct {
	repo   issue.Repository
	logger logger.Interface
}

func NewGetStatsUseCase(repo issue.Repository, logger logger.Interface) *GetStatsUseCase {
	return &GetStatsUseCase{
		repo:   repo,
		logger: logger,
	}
}

func (uc *GetStatsUseCase) Execute(ctx context.Context) (*dto.StatsDTO, error) {
	issues, err := uc.repo.List(ctx, issue.Filter{})
	if err != nil {
		uc.logger.Errorw("failed to load issues for stats", "error", err)
		return nil, toAppError(err)
	}
	return CountIssues(issues), nil
}

// CountIssues tallies issues per status, priority and tech level. Every known value is
// present in the result, zero when unused.
func CountIssues(issues []*issue.Issue) *dto.StatsDTO {
	stats := &dto.StatsDTO{
		Total:       len(issues),
		ByStatus:    make(map[string]int, len(vo.AllStatuses)),
		ByPriority:  make(map[string]int, len(vo.AllPriorities)),
		ByTechLevel: make(map[string]int, len(vo.AllTechLevels)),
	}
	for _, s := range vo.AllStatuses {
		stats.ByStatus[s.String()] = 0
	}
	for _, p := range vo.AllPriorities {
		stats.ByPriority[p.String()] = 0
	}
	for _, l := range vo.AllTechLevels {
		stats.ByTechLevel[l.String()] = 0
	}

	for _, i := range issues {
		stats.ByStatus[i.Status().String()]++
		stats.ByPriority[i.Priority().String()]++
		stats.ByTechLevel[i.TechLevel().String()]++
	}
	return stats
}
