package usecases

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techflow/techflow/internal/domain/issue"
	vo "github.com/techflow/techflow/internal/domain/issue/valueobjects"
	"github.com/techflow/techflow/internal/shared/errors"
)

func TestGetIssueUseCase(t *testing.T) {
	repo := newMockIssueRepository(newTestIssue(t, 1, "TF-AAAAAA", vo.ProjectPMS))
	uc := NewGetIssueUseCase(repo, newMockLogger())

	result, err := uc.Execute(context.Background(), GetIssueQuery{IssueID: 1})
	require.NoError(t, err)
	assert.Equal(t, "TF-AAAAAA", result.ReportID)

	_, err = uc.Execute(context.Background(), GetIssueQuery{IssueID: 2})
	assert.True(t, errors.IsNotFoundError(err))
}

func TestLookupIssueUseCase(t *testing.T) {
	repo := newMockIssueRepository(newTestIssue(t, 1, "TF-AAAAAA", vo.ProjectPMS))
	uc := NewLookupIssueUseCase(repo, newMockLogger())

	result, err := uc.Execute(context.Background(), LookupIssueQuery{ReportCode: " tf-aaaaaa "})
	require.NoError(t, err)
	assert.Equal(t, "TF-AAAAAA", result.ReportID)
	assert.Equal(t, "Pending", result.Status)

	_, err = uc.Execute(context.Background(), LookupIssueQuery{ReportCode: ""})
	assert.True(t, errors.IsValidationError(err))

	_, err = uc.Execute(context.Background(), LookupIssueQuery{ReportCode: "TF-ZZZZZZ"})
	assert.True(t, errors.IsNotFoundError(err))
}

func TestListIssuesUseCase(t *testing.T) {
	first := newTestIssue(t, 1, "TF-AAAAAA", vo.ProjectPMS)
	second := newTestIssue(t, 2, "TF-BBBBBB", "ANPR")
	require.NoError(t, second.StartWork("admin", baseTime))

	repo := newMockIssueRepository(first, second)
	uc := NewListIssuesUseCase(repo, newMockLogger())

	t.Run("newest first without filters", func(t *testing.T) {
		result, err := uc.Execute(context.Background(), ListIssuesQuery{})
		require.NoError(t, err)
		require.Len(t, result, 2)
		assert.Equal(t, uint(2), result[0].ID)
	})

	t.Run("status filter", func(t *testing.T) {
		result, err := uc.Execute(context.Background(), ListIssuesQuery{Status: "In Progress"})
		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.Equal(t, "TF-BBBBBB", result[0].ReportID)
	})

	t.Run("search by report code", func(t *testing.T) {
		result, err := uc.Execute(context.Background(), ListIssuesQuery{Search: "aaaa"})
		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.Equal(t, uint(1), result[0].ID)
	})

	t.Run("no match returns empty list", func(t *testing.T) {
		result, err := uc.Execute(context.Background(), ListIssuesQuery{Project: "PGS"})
		require.NoError(t, err)
		assert.NotNil(t, result)
		assert.Empty(t, result)
	})

	t.Run("invalid filter values", func(t *testing.T) {
		for _, q := range []ListIssuesQuery{{Status: "Closed"}, {Priority: "urgent"}, {TechLevel: "L9"}} {
			_, err := uc.Execute(context.Background(), q)
			assert.True(t, errors.IsValidationError(err))
		}
	})
}

func TestGetHistoryUseCase(t *testing.T) {
	history := newMockHistoryLog()
	require.NoError(t, history.Append(context.Background(), 1, issue.HistoryEntry{
		Timestamp: baseTime, Action: issue.ActionCreated, Description: "Issue reported by Alice", PerformedBy: "Alice",
	}))
	uc := NewGetHistoryUseCase(history, newMockLogger())

	entries, err := uc.Execute(context.Background(), GetHistoryQuery{IssueID: 1})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Alice", entries[0].PerformedBy)

	entries, err = uc.Execute(context.Background(), GetHistoryQuery{IssueID: 7})
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)

	history.GetErr = stderrors.New("corrupt json")
	entries, err = uc.Execute(context.Background(), GetHistoryQuery{IssueID: 1})
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestGetStatsUseCase(t *testing.T) {
	a := newTestIssue(t, 1, "TF-AAAAAA", vo.ProjectPMS)
	b := newTestIssue(t, 2, "TF-BBBBBB", vo.ProjectPMS)
	require.NoError(t, b.StartWork("admin", baseTime))
	_, err := b.ChangeTechLevel(vo.TechLevelL2, "admin", baseTime)
	require.NoError(t, err)

	uc := NewGetStatsUseCase(newMockIssueRepository(a, b), newMockLogger())

	stats, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, map[string]int{"Pending": 1, "In Progress": 1, "Completed": 0}, stats.ByStatus)
	assert.Equal(t, map[string]int{"Low": 0, "Medium": 0, "High": 2}, stats.ByPriority)
	assert.Equal(t, map[string]int{"L1": 1, "L2": 1, "L3": 0}, stats.ByTechLevel)
}

func TestPrintIssuesUseCase(t *testing.T) {
	repo := newMockIssueRepository(
		newTestIssue(t, 1, "TF-AAAAAA", vo.ProjectPMS),
		newTestIssue(t, 2, "TF-BBBBBB", vo.ProjectPMS),
	)
	uc := NewPrintIssuesUseCase(repo, newMockLogger())

	result, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, result.TotalIssues)
}
