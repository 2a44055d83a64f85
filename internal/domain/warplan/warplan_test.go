package warplan

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/state244/hub/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func player(t *testing.T, planID uuid.UUID, name string, power int64) *RosterPlayer {
	t.Helper()
	p, err := NewRosterPlayer(planID, RosterInput{PlayerName: ptr(name), Power: ptr(power)})
	require.NoError(t, err)
	return p
}

func TestNewPlan(t *testing.T) {
	at := time.Date(2026, 10, 20, 12, 0, 0, 0, time.FixedZone("x", 3600))
	p, err := NewPlan(uuid.New(), uuid.New(), PlanInput{
		Title:       ptr(" SvS week 12 "),
		EventType:   ptr(EventSvS),
		ScheduledAt: &at,
	})
	require.NoError(t, err)
	assert.Equal(t, "SvS week 12", p.Title)
	assert.Equal(t, EventSvS, p.EventType)
	assert.Equal(t, time.UTC, p.ScheduledAt.Location())

	_, err = NewPlan(uuid.New(), uuid.New(), PlanInput{})
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))

	_, err = NewPlan(uuid.New(), uuid.New(), PlanInput{Title: ptr("x"), EventType: ptr(EventType("raid"))})
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))
}

func TestPlan_MarkChanged(t *testing.T) {
	p, err := NewPlan(uuid.New(), uuid.New(), PlanInput{Title: ptr("Bear")})
	require.NoError(t, err)

	p.MarkChanged("assignment")
	events := p.Events()
	require.Len(t, events, 1)
	audience, alliance := events[0].Scope()
	assert.Equal(t, shared.AudienceAlliance, audience)
	assert.Equal(t, p.AllianceID, *alliance)
}

func TestRosterPlayer_Validation(t *testing.T) {
	planID := uuid.New()
	_, err := NewRosterPlayer(planID, RosterInput{})
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))

	_, err = NewRosterPlayer(planID, RosterInput{PlayerName: ptr("a"), Power: ptr(int64(-5))})
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))

	_, err = NewRosterPlayer(planID, RosterInput{PlayerName: ptr("a"), TroopType: ptr(TroopType("cavalry"))})
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))

	p := player(t, planID, "Ice", 10)
	assert.Equal(t, TroopMixed, p.TroopType)
	require.NoError(t, p.Apply(RosterInput{TroopType: ptr(TroopLancer)}))
	assert.Equal(t, TroopLancer, p.TroopType)
}

func TestNewAssignment(t *testing.T) {
	a, err := NewAssignment(uuid.New(), uuid.New(), " Rally A ", 2)
	require.NoError(t, err)
	assert.Equal(t, "Rally A", a.Team)

	_, err = NewAssignment(uuid.New(), uuid.New(), "", 0)
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))

	_, err = NewAssignment(uuid.New(), uuid.New(), "A", -1)
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))
}

func TestBuildBoard(t *testing.T) {
	planID := uuid.New()
	alpha := player(t, planID, "Alpha", 100)
	bravo := player(t, planID, "Bravo", 300)
	charlie := player(t, planID, "Charlie", 200)
	delta := player(t, planID, "Delta", 50)
	echo := player(t, planID, "Echo", 400)

	assignments := []*Assignment{
		{PlanID: planID, PlayerID: charlie.ID, Team: "Garrison", Position: 1},
		{PlanID: planID, PlayerID: alpha.ID, Team: "Rally", Position: 2},
		{PlanID: planID, PlayerID: bravo.ID, Team: "Rally", Position: 1},
		{PlanID: planID, PlayerID: uuid.New(), Team: "Ghost", Position: 0},
	}

	board := BuildBoard([]*RosterPlayer{alpha, bravo, charlie, delta, echo}, assignments)

	require.Len(t, board.Teams, 2)
	assert.Equal(t, "Garrison", board.Teams[0].Name)
	assert.Equal(t, "Rally", board.Teams[1].Name)
	require.Len(t, board.Teams[1].Slots, 2)
	assert.Equal(t, bravo, board.Teams[1].Slots[0].Player)
	assert.Equal(t, alpha, board.Teams[1].Slots[1].Player)

	require.Len(t, board.Unassigned, 2)
	assert.Equal(t, echo, board.Unassigned[0], "unassigned players sort by power")
	assert.Equal(t, delta, board.Unassigned[1])
}

func TestBuildBoard_Empty(t *testing.T) {
	board := BuildBoard(nil, nil)
	assert.Empty(t, board.Teams)
	assert.NotNil(t, board.Unassigned)
}
