// Package permission decides which role may perform which action on which resource.
package permission

import (
	"fmt"
	"sync"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"

	"github.com/techflow/techflow/internal/shared/authorization"
	"github.com/techflow/techflow/internal/shared/logger"
)

// Resources guarded by the enforcer.
const (
	ResourceIssues      = "issues"
	ResourceTracking    = "issue_tracking"
	ResourceAttachments = "attachments"
	ResourceReports     = "reports"
	ResourceMaintenance = "maintenance"
)

const (
	ActionRead  = "read"
	ActionWrite = "write"
)

const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && (r.act == p.act || p.act == "*")
`

// DefaultPolicies grants the tech team everything and clients only tracking of their
// own reports and viewing attachments.
var DefaultPolicies = [][]string{
	{authorization.RoleTechTeam.String(), ResourceIssues, "*"},
	{authorization.RoleTechTeam.String(), ResourceTracking, "*"},
	{authorization.RoleTechTeam.String(), ResourceAttachments, "*"},
	{authorization.RoleTechTeam.String(), ResourceReports, "*"},
	{authorization.RoleTechTeam.String(), ResourceMaintenance, "*"},
	{authorization.RoleClient.String(), ResourceTracking, ActionRead},
	{authorization.RoleClient.String(), ResourceAttachments, ActionRead},
}

type Enforcer struct {
	enforcer *casbin.Enforcer
	mu       sync.RWMutex
	logger   logger.Interface
}

// NewEnforcer builds an in-memory enforcer loaded with policies.
func NewEnforcer(policies [][]string, log logger.Interface) (*Enforcer, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("failed to parse casbin model: %w", err)
	}

	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}

	for _, p := range policies {
		if _, err := enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, fmt.Errorf("failed to add policy %v: %w", p, err)
		}
	}

	return &Enforcer{
		enforcer: enforcer,
		logger:   log,
	}, nil
}

func (e *Enforcer) Enforce(role authorization.UserRole, resource string, action string) (bool, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	allowed, err := e.enforcer.Enforce(role.String(), resource, action)
	if err != nil {
		e.logger.Errorw("permission check failed", "error", err, "role", role, "resource", resource, "action", action)
		return false, fmt.Errorf("permission check failed: %w", err)
	}

	return allowed, nil
}
