package xlsxstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/techflow/techflow/internal/domain/issue"
	vo "github.com/techflow/techflow/internal/domain/issue/valueobjects"
	"github.com/techflow/techflow/internal/infrastructure/persistence"
	"github.com/techflow/techflow/internal/shared/biztime"
	"github.com/techflow/techflow/internal/shared/logger"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	require.NoError(t, biztime.Init("UTC"))
	return New(filepath.Join(t.TempDir(), "data", "issues.xlsx"), logger.NewLogger())
}

func newIssue(t *testing.T, id uint, code string, project vo.Project) *issue.Issue {
	t.Helper()
	created := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	i, err := issue.NewIssue("Client "+code, "555", "c@example.com", project, vo.PriorityLow,
		"Gate is stuck", []string{"a.png", "b.webp"}, created)
	require.NoError(t, err)
	require.NoError(t, i.AssignIdentity(id, code))
	return i
}

func TestStore_LoadAllMissingFile(t *testing.T) {
	s := newTestStore(t)

	issues, err := s.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	pending := newIssue(t, 1, "TF-AAAAAA", vo.ProjectPMS)
	done := newIssue(t, 2, "TF-BBBBBB", vo.Project("ANPR"))
	_, err := done.ChangeTechLevel(vo.TechLevelL2, "tech", time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NoError(t, done.StartWork("tech", time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)))
	require.NoError(t, done.Complete("Replaced sensor", "tech", time.Date(2025, 3, 14, 13, 45, 30, 0, time.UTC)))

	require.NoError(t, s.SaveAll(ctx, []*issue.Issue{pending, done}))

	loaded, err := s.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	assert.Equal(t, uint(1), loaded[0].ID())
	assert.Equal(t, vo.StatusPending, loaded[0].Status())
	assert.Equal(t, []string{"a.png", "b.webp"}, loaded[0].Attachments())
	assert.Nil(t, loaded[0].StartedAt())
	assert.Nil(t, loaded[0].CompletedAt())

	got := loaded[1]
	assert.Equal(t, "TF-BBBBBB", got.ReportCode())
	assert.Equal(t, vo.StatusCompleted, got.Status())
	assert.Equal(t, vo.TechLevelL2, got.TechLevel())
	assert.Equal(t, vo.TeamTKH, got.AssignedTo())
	assert.Equal(t, "03:45:30", got.TotalResolutionTime())
	assert.Equal(t, "Replaced sensor", got.ResolutionNotes())
	assert.Equal(t, "tech", got.UpdatedBy())
	require.NotNil(t, got.CompletedAt())
	assert.True(t, got.CompletedAt().Equal(time.Date(2025, 3, 14, 13, 45, 30, 0, time.UTC)))
}

func TestStore_WritesSplitDateAndTimeColumns(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	require.NoError(t, s.SaveAll(ctx, []*issue.Issue{newIssue(t, 1, "TF-AAAAAA", vo.ProjectPMS)}))

	f, err := excelize.OpenFile(s.Path())
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(IssuesSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, Header, rows[0])
	assert.Equal(t, "2025-03-14", rows[1][colCreatedDate])
	assert.Equal(t, "10:00:00", rows[1][colCreatedTime])
	assert.Equal(t, "a.png,b.webp", rows[1][colImages])
}

func TestStore_BrokenRowsReportPartialRead(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	require.NoError(t, s.SaveAll(ctx, []*issue.Issue{newIssue(t, 1, "TF-AAAAAA", vo.ProjectPMS)}))

	f, err := excelize.OpenFile(s.Path())
	require.NoError(t, err)
	require.NoError(t, f.SetCellValue(IssuesSheet, "A3", "not-a-number"))
	require.NoError(t, f.SetCellValue(IssuesSheet, "B3", "TF-BROKEN"))
	require.NoError(t, f.SaveAs(s.Path()))
	require.NoError(t, f.Close())

	_, err = s.LoadAll(ctx)
	var partial *persistence.PartialReadError
	require.ErrorAs(t, err, &partial)
	require.Len(t, partial.Issues, 1)
	assert.Equal(t, "TF-AAAAAA", partial.Issues[0].ReportCode())
	require.Len(t, partial.Skipped, 1)
	assert.Equal(t, 3, partial.Skipped[0].Row)
}

func TestStore_Clear(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	require.NoError(t, s.SaveAll(ctx, []*issue.Issue{newIssue(t, 1, "TF-AAAAAA", vo.ProjectPMS)}))

	require.NoError(t, s.Clear(ctx))
	_, err := os.Stat(s.Path())
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, s.Clear(ctx))
	loaded, err := s.LoadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestStore_LoadAllCorruptFile(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(s.Path()), 0o755))
	require.NoError(t, os.WriteFile(s.Path(), []byte("not a workbook"), 0o644))

	_, err := s.LoadAll(context.Background())
	assert.Error(t, err)
}
