// Package xlsxstore keeps the issue collection in a single spreadsheet file.
package xlsxstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/techflow/techflow/internal/domain/issue"
	"github.com/techflow/techflow/internal/infrastructure/persistence"
	"github.com/techflow/techflow/internal/shared/logger"
)

type Store struct {
	path   string
	logger logger.Interface
}

func New(path string, log logger.Interface) *Store {
	return &Store{path: path, logger: log}
}

func (s *Store) Path() string {
	return s.path
}

// LoadAll reads every data row of the issues sheet. A missing file is an empty
// collection. Rows that cannot be parsed are reported through a
// *persistence.PartialReadError that still carries the readable issues.
func (s *Store) LoadAll(ctx context.Context) ([]*issue.Issue, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []*issue.Issue{}, nil
		}
		return nil, fmt.Errorf("failed to open %s: %w", s.path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(IssuesSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", IssuesSheet, err)
	}

	issues := make([]*issue.Issue, 0, len(rows))
	var skipped []persistence.RowError
	for n, cells := range rows {
		if n == 0 || len(cells) == 0 {
			continue
		}
		i, err := ParseRow(cells)
		if err != nil {
			s.logger.Warnw("unreadable issue row", "row", n+1, "error", err)
			skipped = append(skipped, persistence.RowError{Row: n + 1, Err: err})
			continue
		}
		issues = append(issues, i)
	}

	if len(skipped) > 0 {
		return issues, &persistence.PartialReadError{Issues: issues, Skipped: skipped}
	}
	return issues, nil
}

// SaveAll rewrites the whole file. The workbook is written to a temporary file in the
// same directory and renamed over the old one.
func (s *Store) SaveAll(ctx context.Context, issues []*issue.Issue) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", IssuesSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := WriteSheet(f, IssuesSheet, issues); err != nil {
		return err
	}

	if err := s.writeAtomically(f); err != nil {
		s.logger.Errorw("failed to save issues", "path", s.path, "count", len(issues), "error", err)
		return err
	}
	return nil
}

func (s *Store) writeAtomically(f *excelize.File) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".issues-*.xlsx")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := f.Write(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", s.path, err)
	}
	return nil
}

// Clear deletes the spreadsheet file.
func (s *Store) Clear(ctx context.Context) error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete %s: %w", s.path, err)
	}
	return nil
}
