// Package persistence holds the whole-collection issue stores.
package persistence

import (
	"context"
	"fmt"

	"github.com/techflow/techflow/internal/domain/issue"
)

// IssueStore loads and saves the complete issue collection. A store that does not
// exist yet loads as an empty collection.
type IssueStore interface {
	LoadAll(ctx context.Context) ([]*issue.Issue, error)
	SaveAll(ctx context.Context, issues []*issue.Issue) error
	Clear(ctx context.Context) error
}

// RowError is one stored row that could not be turned into an issue.
type RowError struct {
	Row int
	Err error
}

// PartialReadError is returned by LoadAll when some rows could not be parsed. Issues
// holds the readable rows only, so it must never be saved back.
type PartialReadError struct {
	Issues  []*issue.Issue
	Skipped []RowError
}

func (e *PartialReadError) Error() string {
	if len(e.Skipped) == 0 {
		return "partial read of issue store"
	}
	first := e.Skipped[0]
	return fmt.Sprintf("%d unreadable issue rows, first at row %d: %v", len(e.Skipped), first.Row, first.Err)
}

func (e *PartialReadError) Unwrap() error {
	if len(e.Skipped) == 0 {
		return nil
	}
	return e.Skipped[0].Err
}
