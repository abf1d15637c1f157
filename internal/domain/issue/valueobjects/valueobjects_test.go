package valueobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from IssueStatus
		to   IssueStatus
		want bool
	}{
		{StatusPending, StatusInProgress, true},
		{StatusInProgress, StatusCompleted, true},
		{StatusPending, StatusCompleted, false},
		{StatusInProgress, StatusPending, false},
		{StatusCompleted, StatusInProgress, false},
		{StatusCompleted, StatusPending, false},
		{StatusPending, StatusPending, false},
		{IssueStatus("Closed"), StatusCompleted, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestNewIssueStatus(t *testing.T) {
	st, err := NewIssueStatus("In Progress")
	require.NoError(t, err)
	assert.True(t, st.IsInProgress())

	_, err = NewIssueStatus("in_progress")
	assert.Error(t, err)
}

func TestNewPriority_NormalizesCase(t *testing.T) {
	tests := []struct {
		in   string
		want Priority
	}{
		{"low", PriorityLow},
		{"MEDIUM", PriorityMedium},
		{" High ", PriorityHigh},
	}
	for _, tt := range tests {
		p, err := NewPriority(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, p)
	}

	_, err := NewPriority("urgent")
	assert.Error(t, err)
	_, err = NewPriority("")
	assert.Error(t, err)
}

func TestNewTechLevel(t *testing.T) {
	l, err := NewTechLevel("l2")
	require.NoError(t, err)
	assert.Equal(t, TechLevelL2, l)

	_, err = NewTechLevel("L4")
	assert.Error(t, err)
}

func TestAssignedTeam_RoutingTable(t *testing.T) {
	tests := []struct {
		level   TechLevel
		project Project
		want    string
	}{
		{TechLevelL1, ProjectPMS, "CE"},
		{TechLevelL1, Project("PGS"), "CE"},
		{TechLevelL2, ProjectPMS, "Skidata"},
		{TechLevelL2, Project("PGS"), "TKH"},
		{TechLevelL3, ProjectPMS, "Skidata (Escalation)"},
		{TechLevelL3, Project("Other"), "TKH (Escalation)"},
	}

	for _, tt := range tests {
		t.Run(string(tt.level)+"/"+string(tt.project), func(t *testing.T) {
			assert.Equal(t, tt.want, AssignedTeam(tt.level, tt.project))
		})
	}
}

func TestProjectCatalog_Parse(t *testing.T) {
	c := NewProjectCatalog(nil)
	assert.Equal(t, DefaultProjects, c.Names())

	p, err := c.Parse("pms")
	require.NoError(t, err)
	assert.True(t, p.IsPMS())

	_, err = c.Parse("Unknown")
	assert.Error(t, err)

	custom := NewProjectCatalog([]string{" Alpha ", "", "Beta"})
	assert.Equal(t, []string{"Alpha", "Beta"}, custom.Names())
}
