// Package export builds the downloadable workbook snapshot of all issues.
package export

import (
	"fmt"
	"io"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/techflow/techflow/internal/application/issue/usecases"
	"github.com/techflow/techflow/internal/domain/issue"
	vo "github.com/techflow/techflow/internal/domain/issue/valueobjects"
	"github.com/techflow/techflow/internal/infrastructure/persistence/xlsxstore"
	"github.com/techflow/techflow/internal/shared/biztime"
)

const (
	SummarySheet = "Summary"
	HistorySheet = "History"
)

var historyHeader = []any{"Issue ID", "Report ID", "Timestamp", "Action", "Description", "Performed By"}

// WorkbookWriter writes the Issues, Summary and History sheets.
type WorkbookWriter struct{}

func NewWorkbookWriter() *WorkbookWriter {
	return &WorkbookWriter{}
}

func (w *WorkbookWriter) Write(out io.Writer, issues []*issue.Issue, history map[uint][]issue.HistoryEntry) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", xlsxstore.IssuesSheet); err != nil {
		return fmt.Errorf("failed to name issues sheet: %w", err)
	}
	if err := xlsxstore.WriteSheet(f, xlsxstore.IssuesSheet, issues); err != nil {
		return err
	}
	if err := writeSummary(f, issues); err != nil {
		return err
	}
	if err := writeHistory(f, issues, history); err != nil {
		return err
	}

	if _, err := f.WriteTo(out); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeSummary(f *excelize.File, issues []*issue.Issue) error {
	if _, err := f.NewSheet(SummarySheet); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}

	stats := usecases.CountIssues(issues)

	rows := [][]any{{"Status", "Count"}}
	for _, s := range vo.AllStatuses {
		rows = append(rows, []any{s.String(), stats.ByStatus[s.String()]})
	}
	rows = append(rows, []any{}, []any{"Priority", "Count"})
	for _, p := range vo.AllPriorities {
		rows = append(rows, []any{p.String(), stats.ByPriority[p.String()]})
	}
	rows = append(rows, []any{}, []any{"Total Issues", stats.Total})

	return writeRows(f, SummarySheet, rows)
}

func writeHistory(f *excelize.File, issues []*issue.Issue, history map[uint][]issue.HistoryEntry) error {
	if _, err := f.NewSheet(HistorySheet); err != nil {
		return fmt.Errorf("failed to create history sheet: %w", err)
	}

	codes := make(map[uint]string, len(issues))
	for _, i := range issues {
		codes[i.ID()] = i.ReportCode()
	}

	ids := make([]uint, 0, len(history))
	for id := range history {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(a, b int) bool { return ids[a] < ids[b] })

	rows := [][]any{historyHeader}
	for _, id := range ids {
		for _, e := range history[id] {
			rows = append(rows, []any{
				id,
				codes[id],
				biztime.Timestamp(e.Timestamp),
				e.Action,
				e.Description,
				e.PerformedBy,
			})
		}
	}

	return writeRows(f, HistorySheet, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for n, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, n+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, n+1, err)
		}
	}
	return nil
}
