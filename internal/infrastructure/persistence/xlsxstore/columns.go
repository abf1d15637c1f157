package xlsxstore

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/techflow/techflow/internal/domain/issue"
	vo "github.com/techflow/techflow/internal/domain/issue/valueobjects"
	"github.com/techflow/techflow/internal/shared/biztime"
)

// IssuesSheet is the sheet holding one row per issue.
const IssuesSheet = "Issues"

const attachmentSeparator = ","

// Header is the column layout of the issues sheet.
var Header = []string{
	"ID",
	"Report ID",
	"Client Name",
	"Phone",
	"Email",
	"Project",
	"Description",
	"Images",
	"Status",
	"Priority",
	"Tech Level",
	"Assigned To",
	"Created At",
	"Created Date",
	"Created Time",
	"Work Start At",
	"Work Start Date",
	"Work Start Time",
	"Completed At",
	"Completed Date",
	"Completed Time",
	"Resolution Notes",
	"Total Resolution Time",
	"Updated At",
	"Updated By",
}

const (
	colID = iota
	colReportCode
	colClientName
	colPhone
	colEmail
	colProject
	colDescription
	colImages
	colStatus
	colPriority
	colTechLevel
	colAssignedTo
	colCreatedAt
	colCreatedDate
	colCreatedTime
	colStartAt
	colStartDate
	colStartTime
	colCompletedAt
	colCompletedDate
	colCompletedTime
	colResolutionNotes
	colTotalResolutionTime
	colUpdatedAt
	colUpdatedBy
)

// Row renders an issue in Header order.
func Row(i *issue.Issue) []any {
	startAt, startDate, startTime := splitOptional(i.StartedAt())
	doneAt, doneDate, doneTime := splitOptional(i.CompletedAt())

	return []any{
		i.ID(),
		i.ReportCode(),
		i.ClientName(),
		i.Phone(),
		i.Email(),
		i.Project().String(),
		i.Description(),
		strings.Join(i.Attachments(), attachmentSeparator),
		i.Status().String(),
		i.Priority().String(),
		i.TechLevel().String(),
		i.AssignedTo(),
		biztime.Timestamp(i.CreatedAt()),
		biztime.Date(i.CreatedAt()),
		biztime.Clock(i.CreatedAt()),
		startAt, startDate, startTime,
		doneAt, doneDate, doneTime,
		i.ResolutionNotes(),
		i.TotalResolutionTime(),
		biztime.Timestamp(i.UpdatedAt()),
		i.UpdatedBy(),
	}
}

func splitOptional(t *time.Time) (string, string, string) {
	if t == nil {
		return "", "", ""
	}
	return biztime.Timestamp(*t), biztime.Date(*t), biztime.Clock(*t)
}

// ParseRow rebuilds an issue from a sheet row. Trailing empty cells may be missing.
func ParseRow(cells []string) (*issue.Issue, error) {
	cell := func(idx int) string {
		if idx < len(cells) {
			return strings.TrimSpace(cells[idx])
		}
		return ""
	}

	id, err := strconv.ParseUint(cell(colID), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid ID %q: %w", cell(colID), err)
	}

	createdAt, err := biztime.ParseTimestamp(cell(colCreatedAt))
	if err != nil {
		return nil, fmt.Errorf("issue %d: %w", id, err)
	}
	startedAt, err := parseOptional(cell(colStartAt))
	if err != nil {
		return nil, fmt.Errorf("issue %d: %w", id, err)
	}
	completedAt, err := parseOptional(cell(colCompletedAt))
	if err != nil {
		return nil, fmt.Errorf("issue %d: %w", id, err)
	}
	updatedAt, err := parseOptional(cell(colUpdatedAt))
	if err != nil {
		return nil, fmt.Errorf("issue %d: %w", id, err)
	}

	var attachments []string
	for _, name := range strings.Split(cell(colImages), attachmentSeparator) {
		if name = strings.TrimSpace(name); name != "" {
			attachments = append(attachments, name)
		}
	}

	params := issue.ReconstructParams{
		ID:                  uint(id),
		ReportCode:          cell(colReportCode),
		ClientName:          cell(colClientName),
		Phone:               cell(colPhone),
		Email:               cell(colEmail),
		Project:             vo.Project(cell(colProject)),
		Description:         cell(colDescription),
		Attachments:         attachments,
		Status:              vo.IssueStatus(cell(colStatus)),
		Priority:            vo.Priority(cell(colPriority)),
		TechLevel:           vo.TechLevel(cell(colTechLevel)),
		CreatedAt:           createdAt,
		StartedAt:           startedAt,
		CompletedAt:         completedAt,
		ResolutionNotes:     cell(colResolutionNotes),
		TotalResolutionTime: cell(colTotalResolutionTime),
		UpdatedBy:           cell(colUpdatedBy),
	}
	if updatedAt != nil {
		params.UpdatedAt = *updatedAt
	}

	return issue.ReconstructIssue(params)
}

func parseOptional(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := biztime.ParseTimestamp(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// WriteSheet writes the header and one row per issue to sheet, creating it if needed.
func WriteSheet(f *excelize.File, sheet string, issues []*issue.Issue) error {
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
		}
	}

	header := make([]any, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		_ = f.SetRowStyle(sheet, 1, 1, style)
	}

	for n, i := range issues {
		cellRef, err := excelize.CoordinatesToCellName(1, n+2)
		if err != nil {
			return err
		}
		row := Row(i)
		if err := f.SetSheetRow(sheet, cellRef, &row); err != nil {
			return fmt.Errorf("failed to write issue %d: %w", i.ID(), err)
		}
	}

	return nil
}
