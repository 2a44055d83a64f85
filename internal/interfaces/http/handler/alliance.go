package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	membershipapp "github.com/state244/hub/internal/application/membership"
	"github.com/state244/hub/internal/domain/membership"
)

// AllianceUseCases is what the alliance endpoints need
type AllianceUseCases interface {
	List(ctx context.Context, recruitmentStatus string) ([]membershipapp.AllianceResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*membershipapp.AllianceResponse, error)
	Create(ctx context.Context, actor *membership.Profile, in membershipapp.AllianceInput) (*membershipapp.AllianceResponse, error)
	Update(ctx context.Context, actor *membership.Profile, id uuid.UUID, in membershipapp.AllianceInput) (*membershipapp.AllianceResponse, error)
	Delete(ctx context.Context, actor *membership.Profile, id uuid.UUID) error
	Members(ctx context.Context, actor *membership.Profile, id uuid.UUID) ([]membershipapp.MemberResponse, error)
}

// AllianceHandler serves /alliances
type AllianceHandler struct {
	BaseHandler
	alliances AllianceUseCases
}

// NewAllianceHandler creates a new AllianceHandler
func NewAllianceHandler(alliances AllianceUseCases) *AllianceHandler {
	return &AllianceHandler{alliances: alliances}
}

// ListAlliancesQuery filters the public alliance list
type ListAlliancesQuery struct {
	RecruitmentStatus string `form:"recruitment_status" binding:"omitempty,recruitment_status"`
}

// CreateAllianceRequest creates an alliance
// @Description New alliance. Tags are stored uppercased.
type CreateAllianceRequest struct {
	Tag               string  `json:"tag" binding:"required,alliance_tag" example:"WLF"`
	Name              string  `json:"name" binding:"required,min=1,max=50" example:"Wolf Pack"`
	Description       string  `json:"description" binding:"max=2000" example:"Active SvS alliance"`
	RecruitmentStatus string  `json:"recruitment_status" binding:"omitempty,recruitment_status" example:"open"`
	Language          string  `json:"language" binding:"max=32" example:"en"`
	DiscordURL        string  `json:"discord_url" binding:"omitempty,url,max=255" example:"https://discord.gg/wolfpack"`
	Power             int64   `json:"power" binding:"gte=0" example:"1500000000"`
	MemberCount       int     `json:"member_count" binding:"gte=0,lte=100" example:"87"`
	LeaderID          *string `json:"leader_id" binding:"omitempty,uuid"`
}

// UpdateAllianceRequest changes an alliance. Omitted fields are unchanged.
type UpdateAllianceRequest struct {
	Tag               *string `json:"tag" binding:"omitempty,alliance_tag" example:"WLF"`
	Name              *string `json:"name" binding:"omitempty,min=1,max=50" example:"Wolf Pack"`
	Description       *string `json:"description" binding:"omitempty,max=2000"`
	RecruitmentStatus *string `json:"recruitment_status" binding:"omitempty,recruitment_status" example:"invite_only"`
	Language          *string `json:"language" binding:"omitempty,max=32"`
	DiscordURL        *string `json:"discord_url" binding:"omitempty,max=255"`
	Power             *int64  `json:"power" binding:"omitempty,gte=0"`
	MemberCount       *int    `json:"member_count" binding:"omitempty,gte=0,lte=100"`
	LeaderID          *string `json:"leader_id" binding:"omitempty,uuid"`
}

func parseLeader(raw *string) *uuid.UUID {
	if raw == nil {
		return nil
	}
	id := uuid.MustParse(*raw)
	return &id
}

// List godoc
// @ID           listAlliances
// @Summary      List alliances
// @Description  Public list ordered by power, strongest first
// @Tags         alliances
// @Produce      json
// @Param        recruitment_status query string false "open, closed or invite_only"
// @Success      200 {object} APIResponse[[]membershipapp.AllianceResponse]
// @Router       /api/v1/alliances [get]
func (h *AllianceHandler) List(c *gin.Context) {
	var q ListAlliancesQuery
	if !h.bindQuery(c, &q) {
		return
	}
	alliances, err := h.alliances.List(c.Request.Context(), q.RecruitmentStatus)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, alliances)
}

// Get godoc
// @ID           getAlliance
// @Summary      Get an alliance
// @Tags         alliances
// @Produce      json
// @Param        id path string true "Alliance ID"
// @Success      200 {object} APIResponse[membershipapp.AllianceResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/alliances/{id} [get]
func (h *AllianceHandler) Get(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	alliance, err := h.alliances.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, alliance)
}

// Create godoc
// @ID           createAlliance
// @Summary      Create an alliance
// @Tags         alliances
// @Accept       json
// @Produce      json
// @Param        request body CreateAllianceRequest true "Alliance"
// @Success      201 {object} APIResponse[membershipapp.AllianceResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/v1/alliances [post]
func (h *AllianceHandler) Create(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var req CreateAllianceRequest
	if !h.bindJSON(c, &req) {
		return
	}

	in := membershipapp.AllianceInput{
		Tag:         &req.Tag,
		Name:        &req.Name,
		Description: &req.Description,
		Language:    &req.Language,
		DiscordURL:  &req.DiscordURL,
		Power:       &req.Power,
		MemberCount: &req.MemberCount,
		LeaderID:    parseLeader(req.LeaderID),
	}
	if req.RecruitmentStatus != "" {
		in.RecruitmentStatus = &req.RecruitmentStatus
	}

	alliance, err := h.alliances.Create(c.Request.Context(), actor, in)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, alliance)
}

// Update godoc
// @ID           updateAlliance
// @Summary      Update an alliance
// @Description  Leadership, the alliance's R5, or an R4 with edit rights
// @Tags         alliances
// @Accept       json
// @Produce      json
// @Param        id      path string                true "Alliance ID"
// @Param        request body UpdateAllianceRequest true "Changes"
// @Success      200 {object} APIResponse[membershipapp.AllianceResponse]
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/v1/alliances/{id} [patch]
func (h *AllianceHandler) Update(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req UpdateAllianceRequest
	if !h.bindJSON(c, &req) {
		return
	}

	alliance, err := h.alliances.Update(c.Request.Context(), actor, id, membershipapp.AllianceInput{
		Tag:               req.Tag,
		Name:              req.Name,
		Description:       req.Description,
		RecruitmentStatus: req.RecruitmentStatus,
		Language:          req.Language,
		DiscordURL:        req.DiscordURL,
		Power:             req.Power,
		MemberCount:       req.MemberCount,
		LeaderID:          parseLeader(req.LeaderID),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, alliance)
}

// Delete godoc
// @ID           deleteAlliance
// @Summary      Delete an alliance
// @Description  Members of the alliance lose their alliance link
// @Tags         alliances
// @Param        id path string true "Alliance ID"
// @Success      204
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/v1/alliances/{id} [delete]
func (h *AllianceHandler) Delete(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.alliances.Delete(c.Request.Context(), actor, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Members godoc
// @ID           listAllianceMembers
// @Summary      List alliance members
// @Tags         alliances
// @Produce      json
// @Param        id path string true "Alliance ID"
// @Success      200 {object} APIResponse[[]membershipapp.MemberResponse]
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/v1/alliances/{id}/members [get]
func (h *AllianceHandler) Members(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	members, err := h.alliances.Members(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, members)
}
