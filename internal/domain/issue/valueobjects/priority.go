package valueobjects

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

var AllPriorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

var titleCaser = cases.Title(language.English)

func (p Priority) String() string {
	return string(p)
}

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// NewPriority accepts any casing ("high", "HIGH") and normalizes to the stored form.
func NewPriority(s string) (Priority, error) {
	p := Priority(titleCaser.String(strings.TrimSpace(s)))
	if !p.IsValid() {
		return "", fmt.Errorf("invalid priority: %s", s)
	}
	return p, nil
}
