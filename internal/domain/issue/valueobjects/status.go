package valueobjects

import "fmt"

type IssueStatus string

const (
	StatusPending    IssueStatus = "Pending"
	StatusInProgress IssueStatus = "In Progress"
	StatusCompleted  IssueStatus = "Completed"
)

// AllStatuses lists statuses in lifecycle order.
var AllStatuses = []IssueStatus{StatusPending, StatusInProgress, StatusCompleted}

var issueStatusTransitions = map[IssueStatus][]IssueStatus{
	StatusPending:    {StatusInProgress},
	StatusInProgress: {StatusCompleted},
	StatusCompleted:  {},
}

func (s IssueStatus) String() string {
	return string(s)
}

func (s IssueStatus) IsValid() bool {
	_, ok := issueStatusTransitions[s]
	return ok
}

func (s IssueStatus) CanTransitionTo(next IssueStatus) bool {
	for _, allowed := range issueStatusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s IssueStatus) IsPending() bool {
	return s == StatusPending
}

func (s IssueStatus) IsInProgress() bool {
	return s == StatusInProgress
}

func (s IssueStatus) IsCompleted() bool {
	return s == StatusCompleted
}

func NewIssueStatus(s string) (IssueStatus, error) {
	st := IssueStatus(s)
	if !st.IsValid() {
		return "", fmt.Errorf("invalid issue status: %s", s)
	}
	return st, nil
}
