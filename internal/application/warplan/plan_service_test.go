package warplan

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/state244/hub/internal/domain/membership"
	"github.com/state244/hub/internal/domain/shared"
	"github.com/state244/hub/internal/domain/warplan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type MockPlanRepository struct {
	mock.Mock
}

func (m *MockPlanRepository) FindByID(ctx context.Context, id uuid.UUID) (*warplan.Plan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*warplan.Plan), args.Error(1)
}

func (m *MockPlanRepository) FindByAlliance(ctx context.Context, allianceID *uuid.UUID) ([]*warplan.Plan, error) {
	args := m.Called(ctx, allianceID)
	return args.Get(0).([]*warplan.Plan), args.Error(1)
}

func (m *MockPlanRepository) Create(ctx context.Context, plan *warplan.Plan) error {
	return m.Called(ctx, plan).Error(0)
}

func (m *MockPlanRepository) Update(ctx context.Context, plan *warplan.Plan) error {
	return m.Called(ctx, plan).Error(0)
}

func (m *MockPlanRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockPlanRepository) CountByAlliance(ctx context.Context, allianceID uuid.UUID) (int64, error) {
	args := m.Called(ctx, allianceID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPlanRepository) FindRoster(ctx context.Context, planID uuid.UUID) ([]*warplan.RosterPlayer, error) {
	args := m.Called(ctx, planID)
	return args.Get(0).([]*warplan.RosterPlayer), args.Error(1)
}

func (m *MockPlanRepository) FindRosterPlayer(ctx context.Context, planID, playerID uuid.UUID) (*warplan.RosterPlayer, error) {
	args := m.Called(ctx, planID, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*warplan.RosterPlayer), args.Error(1)
}

func (m *MockPlanRepository) SaveRosterPlayer(ctx context.Context, player *warplan.RosterPlayer) error {
	return m.Called(ctx, player).Error(0)
}

func (m *MockPlanRepository) DeleteRosterPlayer(ctx context.Context, planID, playerID uuid.UUID) error {
	return m.Called(ctx, planID, playerID).Error(0)
}

func (m *MockPlanRepository) FindAssignments(ctx context.Context, planID uuid.UUID) ([]*warplan.Assignment, error) {
	args := m.Called(ctx, planID)
	return args.Get(0).([]*warplan.Assignment), args.Error(1)
}

func (m *MockPlanRepository) UpsertAssignment(ctx context.Context, a *warplan.Assignment) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockPlanRepository) DeleteAssignment(ctx context.Context, planID, playerID uuid.UUID) error {
	return m.Called(ctx, planID, playerID).Error(0)
}

type MockAllianceRepository struct {
	membership.AllianceRepository
	mock.Mock
}

func (m *MockAllianceRepository) FindByID(ctx context.Context, id uuid.UUID) (*membership.Alliance, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*membership.Alliance), args.Error(1)
}

type planEvents struct {
	changes []string
}

func (p *planEvents) Publish(_ context.Context, events ...shared.DomainEvent) error {
	for _, e := range events {
		if pc, ok := e.(*warplan.PlanChangedEvent); ok {
			p.changes = append(p.changes, pc.Change)
		}
	}
	return nil
}

func member(t *testing.T, role membership.Role, allianceID *uuid.UUID) *membership.Profile {
	t.Helper()
	p := membership.NewProfile(uuid.New(), "player@example.com")
	require.NoError(t, p.Assign(role, allianceID, false))
	return p
}

func strPtr(s string) *string { return &s }

func newPlan(t *testing.T, allianceID uuid.UUID) *warplan.Plan {
	t.Helper()
	p, err := warplan.NewPlan(allianceID, uuid.New(), warplan.PlanInput{Title: strPtr("SvS prep")})
	require.NoError(t, err)
	return p
}

func TestPlanService_Create(t *testing.T) {
	ctx := context.Background()
	allianceID := uuid.New()
	alliance := &membership.Alliance{Tag: "WOLF", Name: "Wolf Pack"}
	alliance.ID = allianceID

	t.Run("r4 creates for own alliance", func(t *testing.T) {
		plans := new(MockPlanRepository)
		alliances := new(MockAllianceRepository)
		events := &planEvents{}
		svc := NewPlanService(plans, alliances, events, zaptest.NewLogger(t))

		alliances.On("FindByID", ctx, allianceID).Return(alliance, nil)
		plans.On("Create", ctx, mock.AnythingOfType("*warplan.Plan")).Return(nil)

		resp, err := svc.Create(ctx, member(t, membership.RoleR4, &allianceID), PlanInput{Title: strPtr("Bear trap"), EventType: strPtr("bear_trap")})
		require.NoError(t, err)
		assert.Equal(t, allianceID, resp.AllianceID)
		assert.Equal(t, "bear_trap", resp.EventType)
		assert.Equal(t, []string{"plan"}, events.changes)
	})

	t.Run("member cannot create", func(t *testing.T) {
		svc := NewPlanService(new(MockPlanRepository), new(MockAllianceRepository), nil, zaptest.NewLogger(t))
		_, err := svc.Create(ctx, member(t, membership.RoleMember, &allianceID), PlanInput{Title: strPtr("x")})
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("leadership must name the alliance", func(t *testing.T) {
		svc := NewPlanService(new(MockPlanRepository), new(MockAllianceRepository), nil, zaptest.NewLogger(t))
		_, err := svc.Create(ctx, member(t, membership.RoleAdmin, nil), PlanInput{Title: strPtr("x")})
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})

	t.Run("officer cannot create for another alliance", func(t *testing.T) {
		svc := NewPlanService(new(MockPlanRepository), new(MockAllianceRepository), nil, zaptest.NewLogger(t))
		other := uuid.New()
		_, err := svc.Create(ctx, member(t, membership.RoleR5, &allianceID), PlanInput{AllianceID: &other, Title: strPtr("x")})
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})
}

func TestPlanService_Access(t *testing.T) {
	ctx := context.Background()
	allianceID := uuid.New()
	other := uuid.New()
	plan := newPlan(t, allianceID)

	plans := new(MockPlanRepository)
	svc := NewPlanService(plans, new(MockAllianceRepository), nil, zaptest.NewLogger(t))
	plans.On("FindByID", ctx, plan.ID).Return(plan, nil)
	plans.On("Update", ctx, plan).Return(nil)

	_, err := svc.Get(ctx, member(t, membership.RoleMember, &allianceID), plan.ID)
	assert.NoError(t, err)
	_, err = svc.Get(ctx, member(t, membership.RoleMember, &other), plan.ID)
	assert.ErrorIs(t, err, shared.ErrForbidden)
	_, err = svc.Get(ctx, member(t, membership.RoleUser, nil), plan.ID)
	assert.ErrorIs(t, err, shared.ErrForbidden)

	_, err = svc.Update(ctx, member(t, membership.RoleMember, &allianceID), plan.ID, PlanInput{Notes: strPtr("n")})
	assert.ErrorIs(t, err, shared.ErrForbidden)
	resp, err := svc.Update(ctx, member(t, membership.RolePresident, nil), plan.ID, PlanInput{Notes: strPtr("rally at 20:00")})
	require.NoError(t, err)
	assert.Equal(t, "rally at 20:00", resp.Notes)

	_, err = svc.Update(ctx, member(t, membership.RoleAdmin, nil), plan.ID, PlanInput{AllianceID: &other})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestPlanService_List(t *testing.T) {
	ctx := context.Background()
	allianceID := uuid.New()
	plans := new(MockPlanRepository)
	svc := NewPlanService(plans, new(MockAllianceRepository), nil, zaptest.NewLogger(t))

	plans.On("FindByAlliance", ctx, &allianceID).Return([]*warplan.Plan{newPlan(t, allianceID)}, nil)
	plans.On("FindByAlliance", ctx, (*uuid.UUID)(nil)).Return([]*warplan.Plan{}, nil)

	out, err := svc.List(ctx, member(t, membership.RoleMember, &allianceID), nil)
	require.NoError(t, err)
	assert.Len(t, out, 1)

	_, err = svc.List(ctx, member(t, membership.RoleAdmin, nil), nil)
	assert.NoError(t, err)

	other := uuid.New()
	_, err = svc.List(ctx, member(t, membership.RoleR5, &allianceID), &other)
	assert.ErrorIs(t, err, shared.ErrForbidden)
	_, err = svc.List(ctx, member(t, membership.RoleUser, nil), nil)
	assert.ErrorIs(t, err, shared.ErrForbidden)
}

func TestPlanService_RosterAndBoard(t *testing.T) {
	ctx := context.Background()
	allianceID := uuid.New()
	plan := newPlan(t, allianceID)
	officer := member(t, membership.RoleR5, &allianceID)

	plans := new(MockPlanRepository)
	events := &planEvents{}
	svc := NewPlanService(plans, new(MockAllianceRepository), events, zaptest.NewLogger(t))
	plans.On("FindByID", ctx, plan.ID).Return(plan, nil)
	plans.On("SaveRosterPlayer", ctx, mock.AnythingOfType("*warplan.RosterPlayer")).Return(nil)

	power := int64(80_000_000)
	added, err := svc.AddRosterPlayer(ctx, officer, plan.ID, RosterInput{PlayerName: strPtr("Frost"), Power: &power, TroopType: strPtr("lancer")})
	require.NoError(t, err)
	assert.Equal(t, "lancer", added.TroopType)

	_, err = svc.AddRosterPlayer(ctx, officer, plan.ID, RosterInput{PlayerName: strPtr("Bad"), TroopType: strPtr("cavalry")})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	frost, err := warplan.NewRosterPlayer(plan.ID, warplan.RosterInput{PlayerName: strPtr("Frost"), Power: &power})
	require.NoError(t, err)
	ember, err := warplan.NewRosterPlayer(plan.ID, warplan.RosterInput{PlayerName: strPtr("Ember")})
	require.NoError(t, err)
	ghost := uuid.New()

	plans.On("FindRosterPlayer", ctx, plan.ID, frost.ID).Return(frost, nil)
	plans.On("FindRosterPlayer", ctx, plan.ID, ghost).Return(nil, shared.NewNotFoundError("roster player"))
	plans.On("UpsertAssignment", ctx, mock.AnythingOfType("*warplan.Assignment")).Return(nil)

	a, err := svc.Assign(ctx, officer, plan.ID, AssignInput{PlayerID: frost.ID, Team: " Rally A ", Position: 1})
	require.NoError(t, err)
	assert.Equal(t, "Rally A", a.Team)

	_, err = svc.Assign(ctx, officer, plan.ID, AssignInput{PlayerID: ghost, Team: "Rally A"})
	assert.ErrorIs(t, err, shared.ErrNotFound)

	plans.On("FindRoster", ctx, plan.ID).Return([]*warplan.RosterPlayer{frost, ember}, nil)
	plans.On("FindAssignments", ctx, plan.ID).Return([]*warplan.Assignment{{PlanID: plan.ID, PlayerID: frost.ID, Team: "Rally A", Position: 1}}, nil)

	board, err := svc.Board(ctx, member(t, membership.RoleMember, &allianceID), plan.ID)
	require.NoError(t, err)
	require.Len(t, board.Teams, 1)
	assert.Equal(t, "Frost", board.Teams[0].Slots[0].Player.PlayerName)
	require.Len(t, board.Unassigned, 1)
	assert.Equal(t, "Ember", board.Unassigned[0].PlayerName)

	plans.On("DeleteRosterPlayer", ctx, plan.ID, frost.ID).Return(nil)
	require.NoError(t, svc.RemoveRosterPlayer(ctx, officer, plan.ID, frost.ID))

	assert.Equal(t, []string{"roster", "assignment", "roster"}, events.changes)
}

func TestPlanService_Delete(t *testing.T) {
	ctx := context.Background()
	allianceID := uuid.New()
	plan := newPlan(t, allianceID)
	plans := new(MockPlanRepository)
	events := &planEvents{}
	svc := NewPlanService(plans, new(MockAllianceRepository), events, zaptest.NewLogger(t))

	plans.On("FindByID", ctx, plan.ID).Return(plan, nil)
	plans.On("Delete", ctx, plan.ID).Return(nil)

	err := svc.Delete(ctx, member(t, membership.RoleR4, &uuid.UUID{}), plan.ID)
	assert.ErrorIs(t, err, shared.ErrForbidden)

	require.NoError(t, svc.Delete(ctx, member(t, membership.RoleR4, &allianceID), plan.ID))
	assert.Equal(t, []string{"deleted"}, events.changes)
}
