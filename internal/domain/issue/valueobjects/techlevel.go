package valueobjects

import (
	"fmt"
	"strings"
)

type TechLevel string

const (
	TechLevelL1 TechLevel = "L1"
	TechLevelL2 TechLevel = "L2"
	TechLevelL3 TechLevel = "L3"
)

var AllTechLevels = []TechLevel{TechLevelL1, TechLevelL2, TechLevelL3}

// Teams responsible for an issue.
const (
	TeamCE                = "CE"
	TeamSkidata           = "Skidata"
	TeamTKH               = "TKH"
	escalationSuffix      = " (Escalation)"
	TeamSkidataEscalation = TeamSkidata + escalationSuffix
	TeamTKHEscalation     = TeamTKH + escalationSuffix
)

func (l TechLevel) String() string {
	return string(l)
}

func (l TechLevel) IsValid() bool {
	switch l {
	case TechLevelL1, TechLevelL2, TechLevelL3:
		return true
	}
	return false
}

func NewTechLevel(s string) (TechLevel, error) {
	l := TechLevel(strings.ToUpper(strings.TrimSpace(s)))
	if !l.IsValid() {
		return "", fmt.Errorf("invalid tech level: %s (expected L1, L2 or L3)", s)
	}
	return l, nil
}

// AssignedTeam routes an issue to a team. L1 always goes to CE; from L2 upwards PMS
// issues go to Skidata and everything else to TKH, with L3 marked as an escalation.
func AssignedTeam(level TechLevel, project Project) string {
	var vendor string
	if project.IsPMS() {
		vendor = TeamSkidata
	} else {
		vendor = TeamTKH
	}

	switch level {
	case TechLevelL2:
		return vendor
	case TechLevelL3:
		return vendor + escalationSuffix
	default:
		return TeamCE
	}
}
