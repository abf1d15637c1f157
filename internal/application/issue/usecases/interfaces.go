package usecases

import (
	"context"
	"io"

	"github.com/techflow/techflow/internal/application/issue/dto"
	"github.com/techflow/techflow/internal/domain/issue"
)

type CreateIssueExecutor interface {
	Execute(ctx context.Context, cmd CreateIssueCommand) (*CreateIssueResult, error)
}

type SetTechLevelExecutor interface {
	Execute(ctx context.Context, cmd SetTechLevelCommand) (*dto.IssueDTO, error)
}

type StartWorkExecutor interface {
	Execute(ctx context.Context, cmd StartWorkCommand) (*dto.IssueDTO, error)
}

type CompleteIssueExecutor interface {
	Execute(ctx context.Context, cmd CompleteIssueCommand) (*dto.IssueDTO, error)
}

type GetIssueExecutor interface {
	Execute(ctx context.Context, query GetIssueQuery) (*dto.IssueDTO, error)
}

type LookupIssueExecutor interface {
	Execute(ctx context.Context, query LookupIssueQuery) (*dto.IssueTrackingDTO, error)
}

type ListIssuesExecutor interface {
	Execute(ctx context.Context, query ListIssuesQuery) ([]*dto.IssueDTO, error)
}

type GetHistoryExecutor interface {
	Execute(ctx context.Context, query GetHistoryQuery) ([]dto.HistoryEntryDTO, error)
}

type GetStatsExecutor interface {
	Execute(ctx context.Context) (*dto.StatsDTO, error)
}

type ExportIssuesExecutor interface {
	Execute(ctx context.Context) (*ExportIssuesResult, error)
}

type PrintIssuesExecutor interface {
	Execute(ctx context.Context) (*PrintIssuesResult, error)
}

type ResetIssuesExecutor interface {
	Execute(ctx context.Context) error
}

// AttachmentStore keeps uploaded images.
type AttachmentStore interface {
	Save(ctx context.Context, originalName string, size int64, r io.Reader) (string, error)
	Remove(names ...string) error
	Clear() error
}

// Notifier delivers one HTML message. A nil error means the message was accepted.
type Notifier interface {
	Notify(ctx context.Context, recipient, subject, htmlBody string, cc []string) error
}

// NotificationRenderer turns a lifecycle event into a subject and HTML body.
type NotificationRenderer interface {
	Render(n IssueNotification) (subject string, htmlBody string, err error)
}

// NotificationDispatcher sends lifecycle notifications without blocking the caller.
type NotificationDispatcher interface {
	Dispatch(n IssueNotification)
}

// SnapshotWriter renders issues, history and summary counts as a workbook.
type SnapshotWriter interface {
	Write(w io.Writer, issues []*issue.Issue, history map[uint][]issue.HistoryEntry) error
}
