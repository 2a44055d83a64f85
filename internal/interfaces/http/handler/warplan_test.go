package handler

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	warplanapp "github.com/state244/hub/internal/application/warplan"
	"github.com/state244/hub/internal/domain/membership"
	"github.com/state244/hub/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newWarPlanRouter(actor *membership.Profile, plans *MockWarPlanUseCases) http.Handler {
	h := NewWarPlanHandler(plans)
	r := newRouter(actor)
	r.GET("/war-plans", h.List)
	r.POST("/war-plans", h.Create)
	r.GET("/war-plans/:id", h.Get)
	r.PATCH("/war-plans/:id", h.Update)
	r.DELETE("/war-plans/:id", h.Delete)
	r.POST("/war-plans/:id/roster", h.AddRosterPlayer)
	r.PATCH("/war-plans/:id/roster/:player_id", h.UpdateRosterPlayer)
	r.DELETE("/war-plans/:id/roster/:player_id", h.RemoveRosterPlayer)
	r.PUT("/war-plans/:id/assignments", h.Assign)
	r.DELETE("/war-plans/:id/assignments/:player_id", h.Unassign)
	r.GET("/war-plans/:id/board", h.Board)
	return r
}

func TestWarPlanHandler_Plans(t *testing.T) {
	allianceID := uuid.New()
	r4 := as(membership.RoleR4, &allianceID)
	planID := uuid.New()

	plans := new(MockWarPlanUseCases)
	plans.On("Create", mock.Anything, r4, mock.MatchedBy(func(in warplanapp.PlanInput) bool {
		return in.AllianceID == nil && *in.Title == "SvS week 12" && *in.EventType == "svs"
	})).Return(&warplanapp.PlanResponse{ID: planID, AllianceID: allianceID, Title: "SvS week 12"}, nil)
	plans.On("List", mock.Anything, r4, (*uuid.UUID)(nil)).Return([]warplanapp.PlanResponse{{ID: planID}}, nil)
	plans.On("Update", mock.Anything, r4, planID, mock.MatchedBy(func(in warplanapp.PlanInput) bool {
		return in.Title == nil && in.Notes != nil && *in.Notes == "bring shields"
	})).Return(&warplanapp.PlanResponse{ID: planID, Notes: "bring shields"}, nil)
	plans.On("Delete", mock.Anything, r4, planID).Return(nil)

	r := newWarPlanRouter(r4, plans)

	rec := perform(r, http.MethodPost, "/war-plans", map[string]any{"title": "SvS week 12", "event_type": "svs"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = perform(r, http.MethodPost, "/war-plans", map[string]any{"title": "x", "event_type": "picnic"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = perform(r, http.MethodGet, "/war-plans", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = perform(r, http.MethodPatch, "/war-plans/"+planID.String(), map[string]any{"notes": "bring shields"})
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = perform(r, http.MethodDelete, "/war-plans/"+planID.String(), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	plans.AssertExpectations(t)
}

func TestWarPlanHandler_Roster(t *testing.T) {
	allianceID := uuid.New()
	r5 := as(membership.RoleR5, &allianceID)
	planID := uuid.New()
	playerID := uuid.New()

	plans := new(MockWarPlanUseCases)
	plans.On("AddRosterPlayer", mock.Anything, r5, planID, mock.MatchedBy(func(in warplanapp.RosterInput) bool {
		return *in.PlayerName == "FrostBite" && *in.TroopType == "lancer"
	})).Return(&warplanapp.RosterPlayerResponse{ID: playerID, PlayerName: "FrostBite"}, nil)
	plans.On("UpdateRosterPlayer", mock.Anything, r5, planID, playerID, mock.Anything).
		Return(&warplanapp.RosterPlayerResponse{ID: playerID, Power: 90}, nil)
	plans.On("RemoveRosterPlayer", mock.Anything, r5, planID, playerID).Return(nil)

	r := newWarPlanRouter(r5, plans)
	base := "/war-plans/" + planID.String() + "/roster"

	rec := perform(r, http.MethodPost, base, map[string]any{"player_name": "FrostBite", "power": 85, "troop_type": "lancer"})
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = perform(r, http.MethodPost, base, map[string]any{"power": 85})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = perform(r, http.MethodPost, base, map[string]any{"player_name": "x", "troop_type": "cavalry"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = perform(r, http.MethodPatch, base+"/"+playerID.String(), map[string]any{"power": 90})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = perform(r, http.MethodDelete, base+"/"+playerID.String(), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	plans.AssertExpectations(t)
}

func TestWarPlanHandler_AssignmentsAndBoard(t *testing.T) {
	allianceID := uuid.New()
	r4 := as(membership.RoleR4, &allianceID)
	member := as(membership.RoleMember, &allianceID)
	planID := uuid.New()
	playerID := uuid.New()

	plans := new(MockWarPlanUseCases)
	plans.On("Assign", mock.Anything, r4, planID, warplanapp.AssignInput{PlayerID: playerID, Team: "Rally A", Position: 2}).
		Return(&warplanapp.AssignmentResponse{PlayerID: playerID, Team: "Rally A", Position: 2}, nil)
	plans.On("Unassign", mock.Anything, r4, planID, playerID).Return(shared.NewNotFoundError("assignment"))
	plans.On("Board", mock.Anything, member, planID).Return(&warplanapp.BoardResponse{
		Teams: []warplanapp.TeamResponse{{Name: "Rally A", Slots: []warplanapp.SlotResponse{{Position: 2}}}},
	}, nil)

	rec := perform(newWarPlanRouter(r4, plans), http.MethodPut, "/war-plans/"+planID.String()+"/assignments",
		map[string]any{"player_id": playerID.String(), "team": "Rally A", "position": 2})
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = perform(newWarPlanRouter(r4, plans), http.MethodPut, "/war-plans/"+planID.String()+"/assignments",
		map[string]any{"player_id": playerID.String(), "team": "Rally A", "position": -1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = perform(newWarPlanRouter(r4, plans), http.MethodDelete, "/war-plans/"+planID.String()+"/assignments/"+playerID.String(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = perform(newWarPlanRouter(member, plans), http.MethodGet, "/war-plans/"+planID.String()+"/board", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	teams := decodeData(t, rec)["teams"].([]any)
	assert.Len(t, teams, 1)

	plans.AssertExpectations(t)
}
