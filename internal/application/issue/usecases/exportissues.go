package usecases

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/techflow/techflow/internal/domain/issue"
	"github.com/techflow/techflow/internal/shared/biztime"
	"github.com/techflow/techflow/internal/shared/errors"
	"github.com/techflow/techflow/internal/shared/logger"
)

const exportFilenameLayout = "20060102_150405"

type ExportIssuesResult struct {
	Filename   string
	Content    []byte
	IssueCount int
}

// ExportIssuesUseCase builds a workbook snapshot of every issue and its history.
// Nothing is modified.
type ExportIssuesUseCase struct {
	repo    issue.Repository
	history issue.HistoryLog
	writer  SnapshotWriter
	now     func() time.Time
	logger  logger.Interface
}

func NewExportIssuesUseCase(
	repo issue.Repository,
	history issue.HistoryLog,
	writer SnapshotWriter,
	logger logger.Interface,
) *ExportIssuesUseCase {
	return &ExportIssuesUseCase{
		repo:    repo,
		history: history,
		writer:  writer,
		now:     biztime.Now,
		logger:  logger,
	}
}

func (uc *ExportIssuesUseCase) Execute(ctx context.Context) (*ExportIssuesResult, error) {
	uc.logger.Infow("executing export issues use case")

	var (
		issues  []*issue.Issue
		history map[uint][]issue.HistoryEntry
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		issues, err = uc.repo.List(gctx, issue.Filter{})
		return err
	})
	g.Go(func() error {
		all, err := uc.history.All(gctx)
		if err != nil {
			uc.logger.Warnw("failed to read history for export, exporting without it", "error", err)
			all = map[uint][]issue.HistoryEntry{}
		}
		history = all
		return nil
	})
	if err := g.Wait(); err != nil {
		uc.logger.Errorw("failed to load issues for export", "error", err)
		return nil, toAppError(err)
	}

	var buf bytes.Buffer
	if err := uc.writer.Write(&buf, issues, history); err != nil {
		uc.logger.Errorw("failed to build export workbook", "error", err)
		return nil, errors.NewInternalError("failed to build export")
	}

	filename := fmt.Sprintf("issue_export_%s.xlsx", uc.now().Format(exportFilenameLayout))

	uc.logger.Infow("issues exported", "filename", filename, "issues", len(issues), "bytes", buf.Len())

	return &ExportIssuesResult{
		Filename:   filename,
		Content:    buf.Bytes(),
		IssueCount: len(issues),
	}, nil
}
