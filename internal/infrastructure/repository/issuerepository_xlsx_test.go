package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/techflow/techflow/internal/domain/issue"
	"github.com/techflow/techflow/internal/infrastructure/persistence/xlsxstore"
	"github.com/techflow/techflow/internal/shared/biztime"
	"github.com/techflow/techflow/internal/shared/logger"
)

// editCell changes one cell of the issues sheet the way a person editing the file would.
func editCell(t *testing.T, path, cell, value string) {
	t.Helper()
	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	require.NoError(t, f.SetCellValue(xlsxstore.IssuesSheet, cell, value))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())
}

func TestIssueRepository_UnreadableRowBlocksMutations(t *testing.T) {
	ctx := context.Background()
	require.NoError(t, biztime.Init("UTC"))
	path := filepath.Join(t.TempDir(), "issues.xlsx")
	repo := NewIssueRepository(xlsxstore.New(path, logger.NewLogger()), logger.NewLogger())

	_, err := repo.Create(ctx, builder("TF-AAAAAA", created))
	require.NoError(t, err)
	_, err = repo.Create(ctx, builder("TF-BBBBBB", created))
	require.NoError(t, err)

	// Row 2 holds issue 1; column I is Status.
	editCell(t, path, "I2", "Closed")
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	_, err = repo.Create(ctx, builder("TF-CCCCCC", created))
	assert.ErrorIs(t, err, ErrStoreUnreadable)

	_, err = repo.Update(ctx, 2, func(i *issue.Issue) error {
		return i.StartWork("tech", created)
	})
	assert.ErrorIs(t, err, ErrStoreUnreadable)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)

	// Reads still serve the rows that parse.
	listed, err := repo.List(ctx, issue.Filter{})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, uint(2), listed[0].ID())

	got, err := repo.GetByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "TF-BBBBBB", got.ReportCode())
}

func TestIssueRepository_UnknownPriorityRowBlocksMutations(t *testing.T) {
	ctx := context.Background()
	require.NoError(t, biztime.Init("UTC"))
	path := filepath.Join(t.TempDir(), "issues.xlsx")
	repo := NewIssueRepository(xlsxstore.New(path, logger.NewLogger()), logger.NewLogger())

	_, err := repo.Create(ctx, builder("TF-AAAAAA", created))
	require.NoError(t, err)

	// Column J is Priority.
	editCell(t, path, "J2", "Urgent")

	_, err = repo.Create(ctx, builder("TF-BBBBBB", created))
	assert.ErrorIs(t, err, ErrStoreUnreadable)

	listed, err := repo.List(ctx, issue.Filter{})
	require.NoError(t, err)
	assert.Empty(t, listed)
}
