// Package permission maps hub roles to coarse (resource, action) grants with
// casbin. Roles inherit every grant of the role below them. Alliance scoping
// (which alliance a member may touch) is checked by the application services.
package permission

import (
	"fmt"
	"sync"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/state244/hub/internal/domain/membership"
	"go.uber.org/zap"
)

const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

// Resources
const (
	ResourceProfile     = "profile"
	ResourceDashboard   = "dashboard"
	ResourceRealtime    = "realtime"
	ResourceAlliance    = "alliance"
	ResourceApplication = "application"
	ResourceStateInfo   = "state_info"
	ResourceProposal    = "proposal"
	ResourceWarPlan     = "war_plan"
	ResourceAI          = "ai"
	ResourceUser        = "user"
	ResourceInbox       = "inbox"
)

// Actions
const (
	ActionRead            = "read"
	ActionWrite           = "write"
	ActionCreate          = "create"
	ActionDelete          = "delete"
	ActionExport          = "export"
	ActionSubscribe       = "subscribe"
	ActionReviewAlliance  = "review_alliance"
	ActionReviewPresident = "review_president"
	ActionVote            = "vote"
	ActionUse             = "use"
	ActionReadMembers     = "read_members"
)

// inheritance lists each role with the role it extends
var inheritance = [][]string{
	{string(membership.RoleMember), string(membership.RoleUser)},
	{string(membership.RoleR4), string(membership.RoleMember)},
	{string(membership.RoleR5), string(membership.RoleR4)},
	{string(membership.RolePresident), string(membership.RoleR5)},
	{string(membership.RoleAdmin), string(membership.RolePresident)},
}

// DefaultPolicies is the least role that holds each grant
var DefaultPolicies = [][]string{
	{string(membership.RoleUser), ResourceProfile, ActionRead},
	{string(membership.RoleUser), ResourceProfile, ActionWrite},
	{string(membership.RoleUser), ResourceDashboard, ActionRead},
	{string(membership.RoleUser), ResourceRealtime, ActionSubscribe},

	{string(membership.RoleMember), ResourceAlliance, ActionReadMembers},
	{string(membership.RoleMember), ResourceWarPlan, ActionRead},

	{string(membership.RoleR4), ResourceAlliance, ActionWrite},
	{string(membership.RoleR4), ResourceApplication, ActionRead},
	{string(membership.RoleR4), ResourceApplication, ActionReviewAlliance},
	{string(membership.RoleR4), ResourceProposal, ActionRead},
	{string(membership.RoleR4), ResourceProposal, ActionCreate},
	{string(membership.RoleR4), ResourceWarPlan, ActionWrite},
	{string(membership.RoleR4), ResourceAI, ActionUse},

	{string(membership.RoleR5), ResourceProposal, ActionVote},

	{string(membership.RolePresident), ResourceAlliance, ActionCreate},
	{string(membership.RolePresident), ResourceAlliance, ActionDelete},
	{string(membership.RolePresident), ResourceApplication, ActionReviewPresident},
	{string(membership.RolePresident), ResourceApplication, ActionExport},
	{string(membership.RolePresident), ResourceStateInfo, ActionWrite},

	{string(membership.RoleAdmin), ResourceUser, ActionRead},
	{string(membership.RoleAdmin), ResourceUser, ActionWrite},
	{string(membership.RoleAdmin), ResourceUser, ActionDelete},
	{string(membership.RoleAdmin), ResourceUser, ActionExport},
	{string(membership.RoleAdmin), ResourceInbox, ActionRead},
	{string(membership.RoleAdmin), ResourceInbox, ActionWrite},
}

// Enforcer answers role permission checks
type Enforcer struct {
	enforcer *casbin.Enforcer
	mu       sync.RWMutex
	logger   *zap.Logger
}

// NewEnforcer builds an in-memory enforcer loaded with the role hierarchy
// and the given policies
func NewEnforcer(policies [][]string, logger *zap.Logger) (*Enforcer, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("failed to parse casbin model: %w", err)
	}
	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}
	if _, err := e.AddGroupingPolicies(inheritance); err != nil {
		return nil, fmt.Errorf("failed to add role hierarchy: %w", err)
	}
	if len(policies) > 0 {
		if _, err := e.AddPolicies(policies); err != nil {
			return nil, fmt.Errorf("failed to add policies: %w", err)
		}
	}
	return &Enforcer{enforcer: e, logger: logger}, nil
}

// NewDefaultEnforcer builds an enforcer with DefaultPolicies
func NewDefaultEnforcer(logger *zap.Logger) (*Enforcer, error) {
	return NewEnforcer(DefaultPolicies, logger)
}

// Allowed reports whether role may perform action on resource. Errors are
// logged and treated as a denial.
func (e *Enforcer) Allowed(role membership.Role, resource, action string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()

	ok, err := e.enforcer.Enforce(string(role), resource, action)
	if err != nil {
		e.logger.Error("permission check failed",
			zap.Error(err),
			zap.String("role", string(role)),
			zap.String("resource", resource),
			zap.String("action", action))
		return false
	}
	return ok
}

// Grants lists the effective (resource, action) pairs of a role, including inherited ones
func (e *Enforcer) Grants(role membership.Role) ([][]string, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	perms, err := e.enforcer.GetImplicitPermissionsForUser(string(role))
	if err != nil {
		return nil, fmt.Errorf("failed to list grants: %w", err)
	}
	grants := make([][]string, 0, len(perms))
	for _, p := range perms {
		if len(p) >= 3 {
			grants = append(grants, []string{p[1], p[2]})
		}
	}
	return grants, nil
}
