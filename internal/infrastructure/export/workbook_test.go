package export

import (
	"bytes"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/techflow/techflow/internal/domain/issue"
	vo "github.com/techflow/techflow/internal/domain/issue/valueobjects"
	"github.com/techflow/techflow/internal/infrastructure/persistence/xlsxstore"
)

var t0 = time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)

func buildIssue(t *testing.T, id uint, code string, priority vo.Priority, started bool) *issue.Issue {
	t.Helper()
	i, err := issue.NewIssue("Client", "555", "c@example.com", vo.ProjectPMS, priority, "desc", nil, t0)
	require.NoError(t, err)
	require.NoError(t, i.AssignIdentity(id, code))
	if started {
		require.NoError(t, i.StartWork("admin", t0.Add(time.Hour)))
	}
	return i
}

func TestWorkbookWriter(t *testing.T) {
	issues := []*issue.Issue{
		buildIssue(t, 1, "TF-AAAAAA", vo.PriorityHigh, false),
		buildIssue(t, 2, "TF-BBBBBB", vo.PriorityLow, true),
		buildIssue(t, 3, "TF-CCCCCC", vo.PriorityHigh, true),
	}
	history := map[uint][]issue.HistoryEntry{
		2: {
			{Timestamp: t0, Action: issue.ActionCreated, Description: "Issue reported by Client", PerformedBy: "Client"},
			{Timestamp: t0.Add(time.Hour), Action: issue.ActionWorkStarted, Description: "Work started by admin", PerformedBy: "admin"},
		},
		1: {
			{Timestamp: t0, Action: issue.ActionCreated, Description: "Issue reported by Client", PerformedBy: "Client"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, NewWorkbookWriter().Write(&buf, issues, history))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{xlsxstore.IssuesSheet, SummarySheet, HistorySheet}, f.GetSheetList())

	issueRows, err := f.GetRows(xlsxstore.IssuesSheet)
	require.NoError(t, err)
	require.Len(t, issueRows, 4)
	assert.Equal(t, xlsxstore.Header, issueRows[0])

	summary, err := f.GetRows(SummarySheet)
	require.NoError(t, err)
	counts := map[string]int{}
	for _, row := range summary {
		if len(row) == 2 {
			if n, err := strconv.Atoi(row[1]); err == nil {
				counts[row[0]] = n
			}
		}
	}
	assert.Equal(t, 3, counts["Total Issues"])
	assert.Equal(t, 3, counts["Pending"]+counts["In Progress"]+counts["Completed"])
	assert.Equal(t, 3, counts["Low"]+counts["Medium"]+counts["High"])
	assert.Equal(t, 2, counts["In Progress"])
	assert.Equal(t, 2, counts["High"])

	historyRows, err := f.GetRows(HistorySheet)
	require.NoError(t, err)
	require.Len(t, historyRows, 4)
	assert.Equal(t, []string{"1", "TF-AAAAAA", "2025-03-14 10:00:00", "Created", "Issue reported by Client", "Client"}, historyRows[1])
	assert.Equal(t, "TF-BBBBBB", historyRows[3][1])
	assert.Equal(t, "Work Started", historyRows[3][3])
}

func TestWorkbookWriter_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewWorkbookWriter().Write(&buf, nil, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(xlsxstore.IssuesSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
