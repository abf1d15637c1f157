package usecases

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/techflow/techflow/internal/domain/issue"
	vo "github.com/techflow/techflow/internal/domain/issue/valueobjects"
)

var baseTime = time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newTestIssue(t *testing.T, id uint, code string, project vo.Project) *issue.Issue {
	t.Helper()

	i, err := issue.NewIssue("Alice", "555-0100", "alice@example.com", project, vo.PriorityHigh,
		"Barrier does not open", nil, baseTime)
	require.NoError(t, err)
	require.NoError(t, i.AssignIdentity(id, code))
	return i
}

func upload(name, content string) AttachmentUpload {
	return AttachmentUpload{
		Filename: name,
		Size:     int64(len(content)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(content)), nil
		},
	}
}
