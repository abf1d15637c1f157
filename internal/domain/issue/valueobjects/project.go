package valueobjects

import (
	"fmt"
	"strings"
)

type Project string

const ProjectPMS Project = "PMS"

// DefaultProjects is used when no project catalog is configured.
var DefaultProjects = []string{"PMS", "PGS", "ANPR", "Other"}

func (p Project) String() string {
	return string(p)
}

func (p Project) IsPMS() bool {
	return p == ProjectPMS
}

// ProjectCatalog is the fixed set of projects clients may report against.
type ProjectCatalog struct {
	names []string
}

func NewProjectCatalog(names []string) ProjectCatalog {
	if len(names) == 0 {
		names = DefaultProjects
	}
	cleaned := make([]string, 0, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			cleaned = append(cleaned, n)
		}
	}
	return ProjectCatalog{names: cleaned}
}

// Parse matches s case-insensitively against the catalog and returns the canonical name.
func (c ProjectCatalog) Parse(s string) (Project, error) {
	s = strings.TrimSpace(s)
	for _, n := range c.names {
		if strings.EqualFold(n, s) {
			return Project(n), nil
		}
	}
	return "", fmt.Errorf("unknown project %q (expected one of %s)", s, strings.Join(c.names, ", "))
}

func (c ProjectCatalog) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}
