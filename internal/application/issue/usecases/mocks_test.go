package usecases

import (
	"context"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/techflow/techflow/internal/domain/issue"
	"github.com/techflow/techflow/internal/shared/logger"
)

// mockIssueRepository keeps issues in memory. The Func fields override single methods.
type mockIssueRepository struct {
	mu     sync.Mutex
	issues map[uint]*issue.Issue

	CreateFunc func(ctx context.Context, build issue.BuildFunc) (*issue.Issue, error)
	UpdateFunc func(ctx context.Context, id uint, mutate issue.MutateFunc) (*issue.Issue, error)
	ListFunc   func(ctx context.Context, filter issue.Filter) ([]*issue.Issue, error)
	ResetFunc  func(ctx context.Context) error
}

func newMockIssueRepository(seed ...*issue.Issue) *mockIssueRepository {
	m := &mockIssueRepository{issues: make(map[uint]*issue.Issue)}
	for _, i := range seed {
		m.issues[i.ID()] = i.Clone()
	}
	return m
}

func (m *mockIssueRepository) Create(ctx context.Context, build issue.BuildFunc) (*issue.Issue, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, build)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	taken := func(code string) bool {
		for _, i := range m.issues {
			if strings.EqualFold(i.ReportCode(), code) {
				return true
			}
		}
		return false
	}
	created, err := build(uint(len(m.issues)+1), taken)
	if err != nil {
		return nil, err
	}
	m.issues[created.ID()] = created.Clone()
	return created.Clone(), nil
}

func (m *mockIssueRepository) Update(ctx context.Context, id uint, mutate issue.MutateFunc) (*issue.Issue, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, mutate)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.issues[id]
	if !ok {
		return nil, issue.ErrNotFound
	}
	working := current.Clone()
	if err := mutate(working); err != nil {
		return nil, err
	}
	m.issues[id] = working
	return working.Clone(), nil
}

func (m *mockIssueRepository) GetByID(ctx context.Context, id uint) (*issue.Issue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if i, ok := m.issues[id]; ok {
		return i.Clone(), nil
	}
	return nil, issue.ErrNotFound
}

func (m *mockIssueRepository) GetByReportCode(ctx context.Context, code string) (*issue.Issue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, i := range m.issues {
		if strings.EqualFold(i.ReportCode(), strings.TrimSpace(code)) {
			return i.Clone(), nil
		}
	}
	return nil, issue.ErrNotFound
}

func (m *mockIssueRepository) List(ctx context.Context, filter issue.Filter) ([]*issue.Issue, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []*issue.Issue
	for _, i := range m.issues {
		if filter.Matches(i) {
			out = append(out, i.Clone())
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].ID() > out[b].ID() })
	return out, nil
}

func (m *mockIssueRepository) Reset(ctx context.Context) error {
	if m.ResetFunc != nil {
		return m.ResetFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.issues = make(map[uint]*issue.Issue)
	return nil
}

func (m *mockIssueRepository) get(id uint) *issue.Issue {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.issues[id]
}

type mockHistoryLog struct {
	mu      sync.Mutex
	entries map[uint][]issue.HistoryEntry

	AppendErr error
	GetErr    error
	AllErr    error
	ClearErr  error
}

func newMockHistoryLog() *mockHistoryLog {
	return &mockHistoryLog{entries: make(map[uint][]issue.HistoryEntry)}
}

func (m *mockHistoryLog) Append(ctx context.Context, issueID uint, entry issue.HistoryEntry) error {
	if m.AppendErr != nil {
		return m.AppendErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[issueID] = append(m.entries[issueID], entry)
	return nil
}

func (m *mockHistoryLog) Get(ctx context.Context, issueID uint) ([]issue.HistoryEntry, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]issue.HistoryEntry(nil), m.entries[issueID]...), nil
}

func (m *mockHistoryLog) All(ctx context.Context) (map[uint][]issue.HistoryEntry, error) {
	if m.AllErr != nil {
		return nil, m.AllErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[uint][]issue.HistoryEntry, len(m.entries))
	for k, v := range m.entries {
		out[k] = append([]issue.HistoryEntry(nil), v...)
	}
	return out, nil
}

func (m *mockHistoryLog) Clear(ctx context.Context) error {
	if m.ClearErr != nil {
		return m.ClearErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[uint][]issue.HistoryEntry)
	return nil
}

type mockAttachmentStore struct {
	SaveFunc  func(ctx context.Context, originalName string, size int64, r io.Reader) (string, error)
	ClearFunc func() error

	saved   []string
	removed []string
	cleared bool
}

func (m *mockAttachmentStore) Save(ctx context.Context, originalName string, size int64, r io.Reader) (string, error) {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, originalName, size, r)
	}
	if _, err := io.Copy(io.Discard, r); err != nil {
		return "", err
	}
	name := "stored_" + originalName
	m.saved = append(m.saved, name)
	return name, nil
}

func (m *mockAttachmentStore) Remove(names ...string) error {
	m.removed = append(m.removed, names...)
	return nil
}

func (m *mockAttachmentStore) Clear() error {
	m.cleared = true
	if m.ClearFunc != nil {
		return m.ClearFunc()
	}
	return nil
}

type mockDispatcher struct {
	mu   sync.Mutex
	sent []IssueNotification
}

func (m *mockDispatcher) Dispatch(n IssueNotification) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, n)
}

func (m *mockDispatcher) events() []NotificationEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]NotificationEvent, 0, len(m.sent))
	for _, n := range m.sent {
		out = append(out, n.Event)
	}
	return out
}

type mockSnapshotWriter struct {
	WriteFunc func(w io.Writer, issues []*issue.Issue, history map[uint][]issue.HistoryEntry) error
}

func (m *mockSnapshotWriter) Write(w io.Writer, issues []*issue.Issue, history map[uint][]issue.HistoryEntry) error {
	if m.WriteFunc != nil {
		return m.WriteFunc(w, issues, history)
	}
	_, err := w.Write([]byte("xlsx"))
	return err
}

type mockNotifier struct {
	mu    sync.Mutex
	calls []notifyCall
	err   error
}

type notifyCall struct {
	recipient string
	subject   string
	body      string
	cc        []string
}

func (m *mockNotifier) Notify(ctx context.Context, recipient, subject, htmlBody string, cc []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, notifyCall{recipient: recipient, subject: subject, body: htmlBody, cc: cc})
	return m.err
}

type mockRenderer struct {
	err error
}

func (m *mockRenderer) Render(n IssueNotification) (string, string, error) {
	if m.err != nil {
		return "", "", m.err
	}
	return "[" + n.Issue.ReportCode() + "] " + string(n.Event), "<p>body</p>", nil
}

type mockLogger struct{}

func newMockLogger() logger.Interface { return &mockLogger{} }

func (m *mockLogger) Debugw(msg string, keysAndValues ...any) {}
func (m *mockLogger) Infow(msg string, keysAndValues ...any)  {}
func (m *mockLogger) Warnw(msg string, keysAndValues ...any)  {}
func (m *mockLogger) Errorw(msg string, keysAndValues ...any) {}
func (m *mockLogger) With(keysAndValues ...any) logger.Interface {
	return m
}
func (m *mockLogger) Named(name string) logger.Interface {
	return m
}
