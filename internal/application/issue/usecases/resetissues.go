package usecases

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/techflow/techflow/internal/domain/issue"
	"github.com/techflow/techflow/internal/shared/errors"
	"github.com/techflow/techflow/internal/shared/logger"
)

// ResetIssuesUseCase deletes every issue, the history log and all attachments. There is
// no undo. Every step runs even when another fails.
type ResetIssuesUseCase struct {
	repo        issue.Repository
	history     issue.HistoryLog
	attachments AttachmentStore
	logger      logger.Interface
}

func NewResetIssuesUseCase(
	repo issue.Repository,
	history issue.HistoryLog,
	attachments AttachmentStore,
	logger logger.Interface,
) *ResetIssuesUseCase {
	return &ResetIssuesUseCase{
		repo:        repo,
		history:     history,
		attachments: attachments,
		logger:      logger,
	}
}

func (uc *ResetIssuesUseCase) Execute(ctx context.Context) error {
	uc.logger.Warnw("resetting all issue data")

	// A plain group, not WithContext: a failing step must not cancel the others.
	var g errgroup.Group
	g.Go(uc.step("issues", func() error { return uc.repo.Reset(ctx) }))
	g.Go(uc.step("history", func() error { return uc.history.Clear(ctx) }))
	g.Go(uc.step("attachments", uc.attachments.Clear))

	if err := g.Wait(); err != nil {
		return errors.NewInternalError("failed to reset issue data")
	}

	uc.logger.Infow("issue data reset")
	return nil
}

func (uc *ResetIssuesUseCase) step(name string, fn func() error) func() error {
	return func() error {
		if err := fn(); err != nil {
			uc.logger.Errorw("reset step failed", "step", name, "error", err)
			return err
		}
		return nil
	}
}
