package issue

import (
	"context"
	"strings"

	vo "github.com/techflow/techflow/internal/domain/issue/valueobjects"
)

// BuildFunc constructs a new issue inside the repository lock. nextID is the id the issue
// will receive and codeTaken reports whether a report code is already in use.
type BuildFunc func(nextID uint, codeTaken func(code string) bool) (*Issue, error)

// MutateFunc changes an issue inside the repository lock. Returning an error aborts the
// update and leaves the stored issue unchanged.
type MutateFunc func(*Issue) error

// Repository persists issues. Every mutation is a single load, mutate, save cycle.
type Repository interface {
	Create(ctx context.Context, build BuildFunc) (*Issue, error)
	Update(ctx context.Context, id uint, mutate MutateFunc) (*Issue, error)
	GetByID(ctx context.Context, id uint) (*Issue, error)
	GetByReportCode(ctx context.Context, code string) (*Issue, error)
	List(ctx context.Context, filter Filter) ([]*Issue, error)
	Reset(ctx context.Context) error
}

type Filter struct {
	Status    *vo.IssueStatus
	Priority  *vo.Priority
	TechLevel *vo.TechLevel
	Project   string
	Search    string
}

// Matches reports whether i satisfies every set field of the filter. Search is a
// case-insensitive substring match over client name, description and report code.
func (f Filter) Matches(i *Issue) bool {
	if f.Status != nil && i.Status() != *f.Status {
		return false
	}
	if f.Priority != nil && i.Priority() != *f.Priority {
		return false
	}
	if f.TechLevel != nil && i.TechLevel() != *f.TechLevel {
		return false
	}
	if f.Project != "" && !strings.EqualFold(f.Project, i.Project().String()) {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		if !strings.Contains(strings.ToLower(i.ClientName()), q) &&
			!strings.Contains(strings.ToLower(i.Description()), q) &&
			!strings.Contains(strings.ToLower(i.ReportCode()), q) {
			return false
		}
	}
	return true
}
