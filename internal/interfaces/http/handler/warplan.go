package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	warplanapp "github.com/state244/hub/internal/application/warplan"
	"github.com/state244/hub/internal/domain/membership"
)

// WarPlanUseCases is what the war planning endpoints need
type WarPlanUseCases interface {
	List(ctx context.Context, actor *membership.Profile, allianceID *uuid.UUID) ([]warplanapp.PlanResponse, error)
	Create(ctx context.Context, actor *membership.Profile, in warplanapp.PlanInput) (*warplanapp.PlanResponse, error)
	Get(ctx context.Context, actor *membership.Profile, id uuid.UUID) (*warplanapp.PlanResponse, error)
	Update(ctx context.Context, actor *membership.Profile, id uuid.UUID, in warplanapp.PlanInput) (*warplanapp.PlanResponse, error)
	Delete(ctx context.Context, actor *membership.Profile, id uuid.UUID) error
	AddRosterPlayer(ctx context.Context, actor *membership.Profile, planID uuid.UUID, in warplanapp.RosterInput) (*warplanapp.RosterPlayerResponse, error)
	UpdateRosterPlayer(ctx context.Context, actor *membership.Profile, planID, playerID uuid.UUID, in warplanapp.RosterInput) (*warplanapp.RosterPlayerResponse, error)
	RemoveRosterPlayer(ctx context.Context, actor *membership.Profile, planID, playerID uuid.UUID) error
	Assign(ctx context.Context, actor *membership.Profile, planID uuid.UUID, in warplanapp.AssignInput) (*warplanapp.AssignmentResponse, error)
	Unassign(ctx context.Context, actor *membership.Profile, planID, playerID uuid.UUID) error
	Board(ctx context.Context, actor *membership.Profile, planID uuid.UUID) (*warplanapp.BoardResponse, error)
}

// WarPlanHandler serves /war-plans
type WarPlanHandler struct {
	BaseHandler
	plans WarPlanUseCases
}

// NewWarPlanHandler creates a new WarPlanHandler
func NewWarPlanHandler(plans WarPlanUseCases) *WarPlanHandler {
	return &WarPlanHandler{plans: plans}
}

// ListPlansQuery selects an alliance for leadership
type ListPlansQuery struct {
	AllianceID string `form:"alliance_id" binding:"omitempty,uuid"`
}

// CreatePlanRequest creates a war plan
type CreatePlanRequest struct {
	AllianceID  string     `json:"alliance_id" binding:"omitempty,uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	Title       string     `json:"title" binding:"required,max=100" example:"SvS week 12"`
	EventType   string     `json:"event_type" binding:"required,event_type" example:"svs"`
	ScheduledAt *time.Time `json:"scheduled_at" example:"2026-10-20T12:00:00Z"`
	Notes       string     `json:"notes" binding:"max=5000"`
}

// UpdatePlanRequest edits a war plan; omitted fields are unchanged
type UpdatePlanRequest struct {
	Title       *string    `json:"title" binding:"omitempty,max=100"`
	EventType   *string    `json:"event_type" binding:"omitempty,event_type"`
	ScheduledAt *time.Time `json:"scheduled_at"`
	Notes       *string    `json:"notes" binding:"omitempty,max=5000"`
}

// RosterPlayerRequest adds or edits a roster player
type RosterPlayerRequest struct {
	PlayerName *string `json:"player_name" binding:"omitempty,max=50" example:"FrostBite"`
	Power      *int64  `json:"power" binding:"omitempty,gte=0" example:"85000000"`
	TroopType  *string `json:"troop_type" binding:"omitempty,troop_type" example:"lancer"`
	Notes      *string `json:"notes" binding:"omitempty,max=500"`
}

// AssignRequest places a roster player on a team
type AssignRequest struct {
	PlayerID string `json:"player_id" binding:"required,uuid"`
	Team     string `json:"team" binding:"required,max=32" example:"Rally A"`
	Position int    `json:"position" binding:"gte=0" example:"1"`
}

func (r RosterPlayerRequest) toInput() warplanapp.RosterInput {
	return warplanapp.RosterInput{
		PlayerName: r.PlayerName,
		Power:      r.Power,
		TroopType:  r.TroopType,
		Notes:      r.Notes,
	}
}

// List godoc
// @ID           listWarPlans
// @Summary      List war plans
// @Description  Members see their alliance's plans; leadership may pick an alliance
// @Tags         war-plans
// @Produce      json
// @Param        alliance_id query string false "Alliance ID"
// @Success      200 {object} APIResponse[[]warplanapp.PlanResponse]
// @Security     BearerAuth
// @Router       /api/v1/war-plans [get]
func (h *WarPlanHandler) List(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var q ListPlansQuery
	if !h.bindQuery(c, &q) {
		return
	}
	allianceID, err := optionalUUID(q.AllianceID)
	if err != nil {
		h.BadRequest(c, "Invalid alliance_id")
		return
	}
	plans, err := h.plans.List(c.Request.Context(), actor, allianceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, plans)
}

// Create godoc
// @ID           createWarPlan
// @Summary      Create a war plan
// @Tags         war-plans
// @Accept       json
// @Produce      json
// @Param        request body CreatePlanRequest true "Plan"
// @Success      201 {object} APIResponse[warplanapp.PlanResponse]
// @Failure      403 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/v1/war-plans [post]
func (h *WarPlanHandler) Create(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var req CreatePlanRequest
	if !h.bindJSON(c, &req) {
		return
	}
	allianceID, err := optionalUUID(req.AllianceID)
	if err != nil {
		h.BadRequest(c, "Invalid alliance_id")
		return
	}
	plan, err := h.plans.Create(c.Request.Context(), actor, warplanapp.PlanInput{
		AllianceID:  allianceID,
		Title:       &req.Title,
		EventType:   &req.EventType,
		ScheduledAt: req.ScheduledAt,
		Notes:       &req.Notes,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, plan)
}

// Get godoc
// @ID           getWarPlan
// @Summary      Get a war plan
// @Tags         war-plans
// @Produce      json
// @Param        id path string true "Plan ID"
// @Success      200 {object} APIResponse[warplanapp.PlanResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/v1/war-plans/{id} [get]
func (h *WarPlanHandler) Get(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	plan, err := h.plans.Get(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, plan)
}

// Update godoc
// @ID           updateWarPlan
// @Summary      Edit a war plan
// @Tags         war-plans
// @Accept       json
// @Produce      json
// @Param        id      path string            true "Plan ID"
// @Param        request body UpdatePlanRequest true "Changes"
// @Success      200 {object} APIResponse[warplanapp.PlanResponse]
// @Failure      403 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/v1/war-plans/{id} [patch]
func (h *WarPlanHandler) Update(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req UpdatePlanRequest
	if !h.bindJSON(c, &req) {
		return
	}
	plan, err := h.plans.Update(c.Request.Context(), actor, id, warplanapp.PlanInput{
		Title:       req.Title,
		EventType:   req.EventType,
		ScheduledAt: req.ScheduledAt,
		Notes:       req.Notes,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, plan)
}

// Delete godoc
// @ID           deleteWarPlan
// @Summary      Delete a war plan with its roster
// @Tags         war-plans
// @Param        id path string true "Plan ID"
// @Success      204
// @Failure      403 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/v1/war-plans/{id} [delete]
func (h *WarPlanHandler) Delete(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.plans.Delete(c.Request.Context(), actor, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// AddRosterPlayer godoc
// @ID           addWarPlanRosterPlayer
// @Summary      Add a player to the roster
// @Tags         war-plans
// @Accept       json
// @Produce      json
// @Param        id      path string              true "Plan ID"
// @Param        request body RosterPlayerRequest true "Player"
// @Success      201 {object} APIResponse[warplanapp.RosterPlayerResponse]
// @Security     BearerAuth
// @Router       /api/v1/war-plans/{id}/roster [post]
func (h *WarPlanHandler) AddRosterPlayer(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	planID, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req RosterPlayerRequest
	if !h.bindJSON(c, &req) {
		return
	}
	if req.PlayerName == nil {
		h.BadRequest(c, "player_name is required")
		return
	}
	player, err := h.plans.AddRosterPlayer(c.Request.Context(), actor, planID, req.toInput())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, player)
}

// UpdateRosterPlayer godoc
// @ID           updateWarPlanRosterPlayer
// @Summary      Edit a roster player
// @Tags         war-plans
// @Accept       json
// @Produce      json
// @Param        id        path string              true "Plan ID"
// @Param        player_id path string              true "Roster player ID"
// @Param        request   body RosterPlayerRequest true "Changes"
// @Success      200 {object} APIResponse[warplanapp.RosterPlayerResponse]
// @Security     BearerAuth
// @Router       /api/v1/war-plans/{id}/roster/{player_id} [patch]
func (h *WarPlanHandler) UpdateRosterPlayer(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	planID, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	playerID, ok := h.uuidParam(c, "player_id")
	if !ok {
		return
	}
	var req RosterPlayerRequest
	if !h.bindJSON(c, &req) {
		return
	}
	player, err := h.plans.UpdateRosterPlayer(c.Request.Context(), actor, planID, playerID, req.toInput())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, player)
}

// RemoveRosterPlayer godoc
// @ID           removeWarPlanRosterPlayer
// @Summary      Remove a roster player and their assignment
// @Tags         war-plans
// @Param        id        path string true "Plan ID"
// @Param        player_id path string true "Roster player ID"
// @Success      204
// @Security     BearerAuth
// @Router       /api/v1/war-plans/{id}/roster/{player_id} [delete]
func (h *WarPlanHandler) RemoveRosterPlayer(c *gin.Context) {
	h.planPlayerDelete(c, h.plans.RemoveRosterPlayer)
}

// Assign godoc
// @ID           assignWarPlanPlayer
// @Summary      Place a roster player on a team
// @Description  Replaces the player's previous assignment
// @Tags         war-plans
// @Accept       json
// @Produce      json
// @Param        id      path string        true "Plan ID"
// @Param        request body AssignRequest true "Assignment"
// @Success      200 {object} APIResponse[warplanapp.AssignmentResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/v1/war-plans/{id}/assignments [put]
func (h *WarPlanHandler) Assign(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	planID, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req AssignRequest
	if !h.bindJSON(c, &req) {
		return
	}
	a, err := h.plans.Assign(c.Request.Context(), actor, planID, warplanapp.AssignInput{
		PlayerID: uuid.MustParse(req.PlayerID),
		Team:     req.Team,
		Position: req.Position,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, a)
}

// Unassign godoc
// @ID           unassignWarPlanPlayer
// @Summary      Move a player back to the bench
// @Tags         war-plans
// @Param        id        path string true "Plan ID"
// @Param        player_id path string true "Roster player ID"
// @Success      204
// @Security     BearerAuth
// @Router       /api/v1/war-plans/{id}/assignments/{player_id} [delete]
func (h *WarPlanHandler) Unassign(c *gin.Context) {
	h.planPlayerDelete(c, h.plans.Unassign)
}

func (h *WarPlanHandler) planPlayerDelete(c *gin.Context, remove func(context.Context, *membership.Profile, uuid.UUID, uuid.UUID) error) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	planID, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	playerID, ok := h.uuidParam(c, "player_id")
	if !ok {
		return
	}
	if err := remove(c.Request.Context(), actor, planID, playerID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Board godoc
// @ID           getWarPlanBoard
// @Summary      Teams with their slots plus the bench
// @Tags         war-plans
// @Produce      json
// @Param        id path string true "Plan ID"
// @Success      200 {object} APIResponse[warplanapp.BoardResponse]
// @Security     BearerAuth
// @Router       /api/v1/war-plans/{id}/board [get]
func (h *WarPlanHandler) Board(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	planID, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	board, err := h.plans.Board(c.Request.Context(), actor, planID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, board)
}
