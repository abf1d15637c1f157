package issue

import (
	"context"
	"time"
)

// History action labels.
const (
	ActionCreated          = "Created"
	ActionTechLevelChanged = "Tech Level Changed"
	ActionWorkStarted      = "Work Started"
	ActionCompleted        = "Completed"
)

// HistoryEntry is one immutable event in an issue's timeline.
type HistoryEntry struct {
	Timestamp   time.Time
	Action      string
	Description string
	PerformedBy string
}

// HistoryLog is an append-only timeline per issue.
type HistoryLog interface {
	Append(ctx context.Context, issueID uint, entry HistoryEntry) error
	Get(ctx context.Context, issueID uint) ([]HistoryEntry, error)
	All(ctx context.Context) (map[uint][]HistoryEntry, error)
	Clear(ctx context.Context) error
}
