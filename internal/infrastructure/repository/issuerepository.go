package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/techflow/techflow/internal/domain/issue"
	"github.com/techflow/techflow/internal/infrastructure/persistence"
	"github.com/techflow/techflow/internal/shared/logger"
)

// ErrStoreUnreadable is returned by mutations when the current collection could not be
// loaded. Nothing is written in that case.
var ErrStoreUnreadable = errors.New("issue store unreadable")

// IssueRepository serializes every load, mutate, save cycle over a whole-collection store
// behind a single mutex.
type IssueRepository struct {
	mu     sync.Mutex
	store  persistence.IssueStore
	logger logger.Interface
}

func NewIssueRepository(store persistence.IssueStore, log logger.Interface) *IssueRepository {
	return &IssueRepository{
		store:  store,
		logger: log,
	}
}

// Create assigns the next id (highest id + 1, which is the collection size + 1 while
// nothing has been removed) and lets build construct the issue.
func (r *IssueRepository) Create(ctx context.Context, build issue.BuildFunc) (*issue.Issue, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	issues, err := r.loadForWrite(ctx)
	if err != nil {
		return nil, err
	}

	var maxID uint
	codes := make(map[string]struct{}, len(issues))
	for _, i := range issues {
		codes[strings.ToUpper(i.ReportCode())] = struct{}{}
		if i.ID() > maxID {
			maxID = i.ID()
		}
	}
	taken := func(code string) bool {
		_, ok := codes[strings.ToUpper(code)]
		return ok
	}

	created, err := build(maxID+1, taken)
	if err != nil {
		return nil, err
	}
	if taken(created.ReportCode()) {
		return nil, fmt.Errorf("report code %s already in use", created.ReportCode())
	}

	if err := r.store.SaveAll(ctx, append(issues, created)); err != nil {
		return nil, fmt.Errorf("failed to save issues: %w", err)
	}

	r.logger.Debugw("issue created", "id", created.ID(), "report_code", created.ReportCode())
	return created.Clone(), nil
}

// Update applies mutate to the issue with id and saves the collection. When mutate
// fails nothing is written.
func (r *IssueRepository) Update(ctx context.Context, id uint, mutate issue.MutateFunc) (*issue.Issue, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	issues, err := r.loadForWrite(ctx)
	if err != nil {
		return nil, err
	}

	idx := -1
	for n, i := range issues {
		if i.ID() == id {
			idx = n
			break
		}
	}
	if idx < 0 {
		return nil, issue.ErrNotFound
	}

	working := issues[idx].Clone()
	if err := mutate(working); err != nil {
		return nil, err
	}
	issues[idx] = working

	if err := r.store.SaveAll(ctx, issues); err != nil {
		return nil, fmt.Errorf("failed to save issues: %w", err)
	}

	return working.Clone(), nil
}

func (r *IssueRepository) GetByID(ctx context.Context, id uint) (*issue.Issue, error) {
	for _, i := range r.loadForRead(ctx) {
		if i.ID() == id {
			return i, nil
		}
	}
	return nil, issue.ErrNotFound
}

func (r *IssueRepository) GetByReportCode(ctx context.Context, code string) (*issue.Issue, error) {
	code = strings.TrimSpace(code)
	for _, i := range r.loadForRead(ctx) {
		if strings.EqualFold(i.ReportCode(), code) {
			return i, nil
		}
	}
	return nil, issue.ErrNotFound
}

// List returns matching issues, newest first.
func (r *IssueRepository) List(ctx context.Context, filter issue.Filter) ([]*issue.Issue, error) {
	all := r.loadForRead(ctx)

	result := make([]*issue.Issue, 0, len(all))
	for _, i := range all {
		if filter.Matches(i) {
			result = append(result, i)
		}
	}

	sort.SliceStable(result, func(a, b int) bool {
		ca, cb := result[a].CreatedAt(), result[b].CreatedAt()
		if !ca.Equal(cb) {
			return ca.After(cb)
		}
		return result[a].ID() > result[b].ID()
	})

	return result, nil
}

func (r *IssueRepository) Reset(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.store.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear issues: %w", err)
	}
	return nil
}

// loadForWrite refuses any failed or partial load, since saving it would drop rows.
func (r *IssueRepository) loadForWrite(ctx context.Context) ([]*issue.Issue, error) {
	issues, err := r.store.LoadAll(ctx)
	if err != nil {
		r.logger.Errorw("refusing to write after failed load", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrStoreUnreadable, err)
	}
	return issues, nil
}

// loadForRead treats an unreadable store as empty and a partly readable one as the
// rows it could parse.
func (r *IssueRepository) loadForRead(ctx context.Context) []*issue.Issue {
	r.mu.Lock()
	defer r.mu.Unlock()

	issues, err := r.store.LoadAll(ctx)
	if err != nil {
		var partial *persistence.PartialReadError
		if errors.As(err, &partial) {
			r.logger.Warnw("serving readable issues only", "skipped_rows", len(partial.Skipped))
			return partial.Issues
		}
		r.logger.Errorw("failed to load issues", "error", err)
		return nil
	}
	return issues
}
