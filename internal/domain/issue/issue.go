package issue

import (
	"fmt"
	"strings"
	"time"

	vo "github.com/techflow/techflow/internal/domain/issue/valueobjects"
	"github.com/techflow/techflow/internal/shared/biztime"
)

const (
	// DefaultResolutionNotes is stored when an issue is completed without notes.
	DefaultResolutionNotes = "Issue resolved successfully"

	// ResolutionTimeUnavailable is stored when the work-start timestamp is missing or
	// later than the completion timestamp.
	ResolutionTimeUnavailable = "N/A"
)

// Issue is a client-reported support ticket and its lifecycle state.
type Issue struct {
	id                  uint
	reportCode          string
	clientName          string
	phone               string
	email               string
	project             vo.Project
	description         string
	attachments         []string
	status              vo.IssueStatus
	priority            vo.Priority
	techLevel           vo.TechLevel
	assignedTo          string
	createdAt           time.Time
	startedAt           *time.Time
	completedAt         *time.Time
	resolutionNotes     string
	totalResolutionTime string
	updatedAt           time.Time
	updatedBy           string
}

// NewIssue creates a Pending L1 issue routed to the default team. Identity (id and
// report code) is assigned later by the repository.
func NewIssue(
	clientName string,
	phone string,
	email string,
	project vo.Project,
	priority vo.Priority,
	description string,
	attachments []string,
	now time.Time,
) (*Issue, error) {
	var missing []string
	if strings.TrimSpace(clientName) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(phone) == "" {
		missing = append(missing, "phone")
	}
	if strings.TrimSpace(email) == "" {
		missing = append(missing, "email")
	}
	if project == "" {
		missing = append(missing, "project")
	}
	if priority == "" {
		missing = append(missing, "priority")
	}
	if strings.TrimSpace(description) == "" {
		missing = append(missing, "description")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("invalid priority: %s", priority)
	}

	files := make([]string, len(attachments))
	copy(files, attachments)

	return &Issue{
		clientName:  strings.TrimSpace(clientName),
		phone:       strings.TrimSpace(phone),
		email:       strings.TrimSpace(email),
		project:     project,
		description: strings.TrimSpace(description),
		attachments: files,
		status:      vo.StatusPending,
		priority:    priority,
		techLevel:   vo.TechLevelL1,
		assignedTo:  vo.AssignedTeam(vo.TechLevelL1, project),
		createdAt:   now,
		updatedAt:   now,
		updatedBy:   strings.TrimSpace(clientName),
	}, nil
}

// ReconstructParams carries persisted issue state back into the domain.
type ReconstructParams struct {
	ID                  uint
	ReportCode          string
	ClientName          string
	Phone               string
	Email               string
	Project             vo.Project
	Description         string
	Attachments         []string
	Status              vo.IssueStatus
	Priority            vo.Priority
	TechLevel           vo.TechLevel
	CreatedAt           time.Time
	StartedAt           *time.Time
	CompletedAt         *time.Time
	ResolutionNotes     string
	TotalResolutionTime string
	UpdatedAt           time.Time
	UpdatedBy           string
}

// ReconstructIssue rebuilds an issue from storage. Unknown tech levels fall back to L1
// and the assigned team is re-derived, so hand-edited rows cannot break routing.
func ReconstructIssue(p ReconstructParams) (*Issue, error) {
	if p.ID == 0 {
		return nil, fmt.Errorf("issue ID cannot be zero")
	}
	if p.ReportCode == "" {
		return nil, fmt.Errorf("issue %d has no report code", p.ID)
	}
	if !p.Status.IsValid() {
		return nil, fmt.Errorf("issue %d has invalid status: %q", p.ID, p.Status)
	}
	priority, err := vo.NewPriority(p.Priority.String())
	if err != nil {
		return nil, fmt.Errorf("issue %d has invalid priority: %q", p.ID, p.Priority)
	}

	level := p.TechLevel
	if !level.IsValid() {
		level = vo.TechLevelL1
	}

	updatedAt := p.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = p.CreatedAt
	}

	files := make([]string, len(p.Attachments))
	copy(files, p.Attachments)

	return &Issue{
		id:                  p.ID,
		reportCode:          p.ReportCode,
		clientName:          p.ClientName,
		phone:               p.Phone,
		email:               p.Email,
		project:             p.Project,
		description:         p.Description,
		attachments:         files,
		status:              p.Status,
		priority:            priority,
		techLevel:           level,
		assignedTo:          vo.AssignedTeam(level, p.Project),
		createdAt:           p.CreatedAt,
		startedAt:           copyTime(p.StartedAt),
		completedAt:         copyTime(p.CompletedAt),
		resolutionNotes:     p.ResolutionNotes,
		totalResolutionTime: p.TotalResolutionTime,
		updatedAt:           updatedAt,
		updatedBy:           p.UpdatedBy,
	}, nil
}

// AssignIdentity sets the sequential id and report code. It may only be called once.
func (i *Issue) AssignIdentity(id uint, reportCode string) error {
	if i.id != 0 || i.reportCode != "" {
		return fmt.Errorf("issue identity is already set")
	}
	if id == 0 {
		return fmt.Errorf("issue ID cannot be zero")
	}
	if reportCode == "" {
		return fmt.Errorf("report code cannot be empty")
	}
	i.id = id
	i.reportCode = reportCode
	return nil
}

func (i *Issue) ID() uint                    { return i.id }
func (i *Issue) ReportCode() string          { return i.reportCode }
func (i *Issue) ClientName() string          { return i.clientName }
func (i *Issue) Phone() string               { return i.phone }
func (i *Issue) Email() string               { return i.email }
func (i *Issue) Project() vo.Project         { return i.project }
func (i *Issue) Description() string         { return i.description }
func (i *Issue) Status() vo.IssueStatus      { return i.status }
func (i *Issue) Priority() vo.Priority       { return i.priority }
func (i *Issue) TechLevel() vo.TechLevel     { return i.techLevel }
func (i *Issue) AssignedTo() string          { return i.assignedTo }
func (i *Issue) CreatedAt() time.Time        { return i.createdAt }
func (i *Issue) StartedAt() *time.Time       { return copyTime(i.startedAt) }
func (i *Issue) CompletedAt() *time.Time     { return copyTime(i.completedAt) }
func (i *Issue) ResolutionNotes() string     { return i.resolutionNotes }
func (i *Issue) TotalResolutionTime() string { return i.totalResolutionTime }
func (i *Issue) UpdatedAt() time.Time        { return i.updatedAt }
func (i *Issue) UpdatedBy() string           { return i.updatedBy }

func (i *Issue) Attachments() []string {
	out := make([]string, len(i.attachments))
	copy(out, i.attachments)
	return out
}

// ChangeTechLevel moves the issue to another escalation tier and re-routes it. Any
// status is accepted. It returns the previous level.
func (i *Issue) ChangeTechLevel(level vo.TechLevel, actor string, now time.Time) (vo.TechLevel, error) {
	if !level.IsValid() {
		return "", fmt.Errorf("%w: %s", ErrInvalidTechLevel, level)
	}

	previous := i.techLevel
	i.techLevel = level
	i.assignedTo = vo.AssignedTeam(level, i.project)
	i.touch(actor, now)

	return previous, nil
}

// StartWork moves a Pending issue to In Progress and stamps the start time.
func (i *Issue) StartWork(actor string, now time.Time) error {
	if !i.status.CanTransitionTo(vo.StatusInProgress) {
		return fmt.Errorf("%w: cannot start work on an issue that is %s", ErrInvalidTransition, i.status)
	}

	started := now
	i.status = vo.StatusInProgress
	i.startedAt = &started
	i.touch(actor, now)

	return nil
}

// Complete moves an In Progress issue to Completed, stores the resolution notes and
// computes the total resolution time from the start stamp.
func (i *Issue) Complete(notes string, actor string, now time.Time) error {
	if !i.status.CanTransitionTo(vo.StatusCompleted) {
		return fmt.Errorf("%w: cannot complete an issue that is %s", ErrInvalidTransition, i.status)
	}

	notes = strings.TrimSpace(notes)
	if notes == "" {
		notes = DefaultResolutionNotes
	}

	completed := now
	i.status = vo.StatusCompleted
	i.completedAt = &completed
	i.resolutionNotes = notes
	i.totalResolutionTime = ResolutionTime(i.startedAt, i.completedAt)
	i.touch(actor, now)

	return nil
}

// ResolutionTime formats completed-started as HH:MM:SS, or ResolutionTimeUnavailable
// when either stamp is missing or completion precedes the start.
func ResolutionTime(started, completed *time.Time) string {
	if started == nil || completed == nil || completed.Before(*started) {
		return ResolutionTimeUnavailable
	}
	return biztime.FormatDuration(completed.Sub(*started))
}

func (i *Issue) touch(actor string, now time.Time) {
	i.updatedAt = now
	if actor = strings.TrimSpace(actor); actor != "" {
		i.updatedBy = actor
	}
}

// Clone returns a deep copy, so stores can hand out issues without sharing state.
func (i *Issue) Clone() *Issue {
	c := *i
	c.attachments = i.Attachments()
	c.startedAt = copyTime(i.startedAt)
	c.completedAt = copyTime(i.completedAt)
	return &c
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
