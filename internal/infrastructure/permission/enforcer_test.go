package permission

import (
	"testing"

	"github.com/state244/hub/internal/domain/membership"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestEnforcer_Allowed(t *testing.T) {
	e, err := NewDefaultEnforcer(zaptest.NewLogger(t))
	require.NoError(t, err)

	tests := []struct {
		role     membership.Role
		resource string
		action   string
		want     bool
	}{
		{membership.RoleUser, ResourceProfile, ActionRead, true},
		{membership.RoleUser, ResourceWarPlan, ActionRead, false},
		{membership.RoleMember, ResourceWarPlan, ActionRead, true},
		{membership.RoleMember, ResourceWarPlan, ActionWrite, false},
		{membership.RoleR4, ResourceProposal, ActionCreate, true},
		{membership.RoleR4, ResourceProposal, ActionVote, false},
		{membership.RoleR5, ResourceProposal, ActionVote, true},
		{membership.RoleR5, ResourceApplication, ActionReviewPresident, false},
		{membership.RolePresident, ResourceApplication, ActionReviewPresident, true},
		{membership.RolePresident, ResourceAI, ActionUse, true},
		{membership.RolePresident, ResourceInbox, ActionRead, false},
		{membership.RoleAdmin, ResourceInbox, ActionRead, true},
		{membership.RoleAdmin, ResourceProfile, ActionWrite, true},
		{membership.Role("stranger"), ResourceProfile, ActionRead, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role)+" "+tt.resource+" "+tt.action, func(t *testing.T) {
			assert.Equal(t, tt.want, e.Allowed(tt.role, tt.resource, tt.action))
		})
	}
}

func TestEnforcer_Grants(t *testing.T) {
	e, err := NewDefaultEnforcer(zaptest.NewLogger(t))
	require.NoError(t, err)

	grants, err := e.Grants(membership.RoleR5)
	require.NoError(t, err)
	assert.Contains(t, grants, []string{ResourceProposal, ActionVote})
	assert.Contains(t, grants, []string{ResourceWarPlan, ActionRead})
	assert.NotContains(t, grants, []string{ResourceAlliance, ActionCreate})
}
