package issue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/techflow/techflow/internal/domain/issue/valueobjects"
)

var baseTime = time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)

func newValidIssue(t *testing.T, project vo.Project) *Issue {
	t.Helper()
	i, err := NewIssue("Jane Client", "555-0100", "jane@example.com", project, vo.PriorityHigh,
		"Barrier does not open", []string{"a.png"}, baseTime)
	require.NoError(t, err)
	require.NoError(t, i.AssignIdentity(1, "TF-ABC123"))
	return i
}

func TestNewIssue_Defaults(t *testing.T) {
	i := newValidIssue(t, vo.ProjectPMS)

	assert.Equal(t, uint(1), i.ID())
	assert.Equal(t, "TF-ABC123", i.ReportCode())
	assert.Equal(t, vo.StatusPending, i.Status())
	assert.Equal(t, vo.TechLevelL1, i.TechLevel())
	assert.Equal(t, vo.TeamCE, i.AssignedTo())
	assert.Equal(t, baseTime, i.CreatedAt())
	assert.Nil(t, i.StartedAt())
	assert.Nil(t, i.CompletedAt())
	assert.Empty(t, i.TotalResolutionTime())
	assert.Equal(t, []string{"a.png"}, i.Attachments())
	assert.Equal(t, "Jane Client", i.UpdatedBy())
}

func TestNewIssue_MissingFields(t *testing.T) {
	_, err := NewIssue("", "555", "", vo.ProjectPMS, vo.PriorityLow, "desc", nil, baseTime)
	require.Error(t, err)
	assert.Equal(t, "missing required fields: name, email", err.Error())

	_, err = NewIssue("n", "p", "e@x.io", "", "", " ", nil, baseTime)
	require.Error(t, err)
	assert.Equal(t, "missing required fields: project, priority, description", err.Error())
}

func TestNewIssue_InvalidPriority(t *testing.T) {
	_, err := NewIssue("n", "p", "e@x.io", vo.ProjectPMS, vo.Priority("Urgent"), "d", nil, baseTime)
	assert.Error(t, err)
}

func TestAssignIdentity_OnlyOnce(t *testing.T) {
	i := newValidIssue(t, vo.ProjectPMS)
	assert.Error(t, i.AssignIdentity(2, "TF-ZZZZZZ"))

	fresh, err := NewIssue("n", "p", "e@x.io", vo.ProjectPMS, vo.PriorityLow, "d", nil, baseTime)
	require.NoError(t, err)
	assert.Error(t, fresh.AssignIdentity(0, "TF-ZZZZZZ"))
	assert.Error(t, fresh.AssignIdentity(3, ""))
}

func TestStartWork(t *testing.T) {
	i := newValidIssue(t, vo.ProjectPMS)
	startAt := baseTime.Add(time.Hour)

	require.NoError(t, i.StartWork("alice", startAt))
	assert.Equal(t, vo.StatusInProgress, i.Status())
	require.NotNil(t, i.StartedAt())
	assert.Equal(t, startAt, *i.StartedAt())
	assert.Equal(t, "alice", i.UpdatedBy())

	err := i.StartWork("bob", startAt.Add(time.Minute))
	require.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, startAt, *i.StartedAt())
	assert.Equal(t, "alice", i.UpdatedBy())
}

func TestComplete_BeforeStartFails(t *testing.T) {
	i := newValidIssue(t, vo.ProjectPMS)

	err := i.Complete("done", "alice", baseTime)
	require.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, vo.StatusPending, i.Status())
	assert.Nil(t, i.CompletedAt())
}

func TestComplete_ComputesResolutionTime(t *testing.T) {
	i := newValidIssue(t, vo.ProjectPMS)
	require.NoError(t, i.StartWork("alice", baseTime))

	done := baseTime.Add(3*time.Hour + 45*time.Minute + 30*time.Second)
	require.NoError(t, i.Complete("", "alice", done))

	assert.Equal(t, vo.StatusCompleted, i.Status())
	assert.Equal(t, DefaultResolutionNotes, i.ResolutionNotes())
	assert.Equal(t, "03:45:30", i.TotalResolutionTime())

	err := i.Complete("again", "alice", done)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestComplete_LongResolutionNotWrapped(t *testing.T) {
	i := newValidIssue(t, vo.ProjectPMS)
	require.NoError(t, i.StartWork("alice", baseTime))
	require.NoError(t, i.Complete("fixed", "alice", baseTime.Add(27*time.Hour)))

	assert.Equal(t, "27:00:00", i.TotalResolutionTime())
	assert.Equal(t, "fixed", i.ResolutionNotes())
}

func TestComplete_MissingStartYieldsNA(t *testing.T) {
	i, err := ReconstructIssue(ReconstructParams{
		ID:         4,
		ReportCode: "TF-000004",
		Project:    vo.Project("PGS"),
		Status:     vo.StatusInProgress,
		Priority:   vo.PriorityLow,
		TechLevel:  vo.TechLevelL2,
		CreatedAt:  baseTime,
	})
	require.NoError(t, err)

	require.NoError(t, i.Complete("ok", "alice", baseTime.Add(time.Hour)))
	assert.Equal(t, ResolutionTimeUnavailable, i.TotalResolutionTime())
}

func TestResolutionTime(t *testing.T) {
	start := baseTime
	end := baseTime.Add(3*time.Hour + 45*time.Minute + 30*time.Second)
	early := baseTime.Add(-time.Minute)

	assert.Equal(t, "03:45:30", ResolutionTime(&start, &end))
	assert.Equal(t, "00:00:00", ResolutionTime(&start, &start))
	assert.Equal(t, ResolutionTimeUnavailable, ResolutionTime(&start, &early))
	assert.Equal(t, ResolutionTimeUnavailable, ResolutionTime(nil, &end))
	assert.Equal(t, ResolutionTimeUnavailable, ResolutionTime(&start, nil))
}

func TestComplete_BeforeStartStampYieldsNA(t *testing.T) {
	i := newValidIssue(t, vo.ProjectPMS)
	require.NoError(t, i.StartWork("alice", baseTime))
	require.NoError(t, i.Complete("fixed", "alice", baseTime.Add(-5*time.Minute)))

	assert.Equal(t, ResolutionTimeUnavailable, i.TotalResolutionTime())
}

func TestChangeTechLevel_Routing(t *testing.T) {
	tests := []struct {
		name    string
		project vo.Project
		level   vo.TechLevel
		want    string
	}{
		{name: "L2 PMS", project: vo.ProjectPMS, level: vo.TechLevelL2, want: vo.TeamSkidata},
		{name: "L2 other", project: vo.Project("ANPR"), level: vo.TechLevelL2, want: vo.TeamTKH},
		{name: "L3 PMS", project: vo.ProjectPMS, level: vo.TechLevelL3, want: vo.TeamSkidataEscalation},
		{name: "L3 other", project: vo.Project("PGS"), level: vo.TechLevelL3, want: vo.TeamTKHEscalation},
		{name: "back to L1", project: vo.Project("PGS"), level: vo.TechLevelL1, want: vo.TeamCE},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			i := newValidIssue(t, tt.project)
			prev, err := i.ChangeTechLevel(tt.level, "alice", baseTime.Add(time.Minute))
			require.NoError(t, err)
			assert.Equal(t, vo.TechLevelL1, prev)
			assert.Equal(t, tt.level, i.TechLevel())
			assert.Equal(t, tt.want, i.AssignedTo())
		})
	}
}

func TestChangeTechLevel_InvalidAndCompleted(t *testing.T) {
	i := newValidIssue(t, vo.ProjectPMS)
	_, err := i.ChangeTechLevel(vo.TechLevel("L4"), "alice", baseTime)
	require.ErrorIs(t, err, ErrInvalidTechLevel)
	assert.Equal(t, vo.TechLevelL1, i.TechLevel())

	require.NoError(t, i.StartWork("alice", baseTime))
	require.NoError(t, i.Complete("", "alice", baseTime.Add(time.Minute)))
	_, err = i.ChangeTechLevel(vo.TechLevelL3, "alice", baseTime.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, vo.StatusCompleted, i.Status())
}

func TestClone_IsIndependent(t *testing.T) {
	i := newValidIssue(t, vo.ProjectPMS)
	c := i.Clone()

	require.NoError(t, c.StartWork("alice", baseTime))
	assert.Equal(t, vo.StatusPending, i.Status())
	assert.Nil(t, i.StartedAt())

	files := c.Attachments()
	files[0] = "mutated.png"
	assert.Equal(t, []string{"a.png"}, i.Attachments())
}

func TestReconstructIssue(t *testing.T) {
	_, err := ReconstructIssue(ReconstructParams{ID: 0, ReportCode: "TF-1"})
	assert.Error(t, err)

	_, err = ReconstructIssue(ReconstructParams{ID: 1, ReportCode: "TF-1", Status: "Closed"})
	assert.Error(t, err)

	_, err = ReconstructIssue(ReconstructParams{
		ID: 1, ReportCode: "TF-1", Status: vo.StatusPending, Priority: vo.Priority("Urgent"),
	})
	assert.Error(t, err)

	_, err = ReconstructIssue(ReconstructParams{ID: 1, ReportCode: "TF-1", Status: vo.StatusPending})
	assert.Error(t, err)

	i, err := ReconstructIssue(ReconstructParams{
		ID:         2,
		ReportCode: "TF-000002",
		Project:    vo.ProjectPMS,
		Status:     vo.StatusPending,
		Priority:   vo.Priority("high"),
		TechLevel:  vo.TechLevel("bogus"),
		CreatedAt:  baseTime,
	})
	require.NoError(t, err)
	assert.Equal(t, vo.PriorityHigh, i.Priority())
	assert.Equal(t, vo.TechLevelL1, i.TechLevel())
	assert.Equal(t, vo.TeamCE, i.AssignedTo())
	assert.Equal(t, baseTime, i.UpdatedAt())
}

func TestFilter_Matches(t *testing.T) {
	i := newValidIssue(t, vo.ProjectPMS)
	pending := vo.StatusPending
	done := vo.StatusCompleted
	high := vo.PriorityHigh
	l2 := vo.TechLevelL2

	assert.True(t, Filter{}.Matches(i))
	assert.True(t, Filter{Status: &pending, Priority: &high}.Matches(i))
	assert.False(t, Filter{Status: &done}.Matches(i))
	assert.False(t, Filter{TechLevel: &l2}.Matches(i))
	assert.True(t, Filter{Project: "pms"}.Matches(i))
	assert.False(t, Filter{Project: "ANPR"}.Matches(i))
	assert.True(t, Filter{Search: "barrier"}.Matches(i))
	assert.True(t, Filter{Search: "abc123"}.Matches(i))
	assert.False(t, Filter{Search: "printer"}.Matches(i))
}
