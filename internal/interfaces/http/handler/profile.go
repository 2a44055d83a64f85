package handler

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	membershipapp "github.com/state244/hub/internal/application/membership"
	"github.com/state244/hub/internal/domain/membership"
	"github.com/state244/hub/internal/domain/shared"
)

// ProfileUseCases is what the profile and user admin endpoints need
type ProfileUseCases interface {
	UpdateMe(ctx context.Context, actor *membership.Profile, in membershipapp.UpdateMeInput) (*membershipapp.ProfileResponse, error)
	ListUsers(ctx context.Context, in membershipapp.ListUsersInput) (shared.Paginated[membershipapp.ProfileResponse], error)
	GetUser(ctx context.Context, id uuid.UUID) (*membershipapp.ProfileResponse, error)
	UpdateUser(ctx context.Context, actor *membership.Profile, id uuid.UUID, in membershipapp.UpdateUserInput) (*membershipapp.ProfileResponse, error)
	DeleteUser(ctx context.Context, actor *membership.Profile, id uuid.UUID) error
	ExportUsers(ctx context.Context) ([]byte, error)
}

// ProfileHandler serves /auth/me and the admin user endpoints
type ProfileHandler struct {
	BaseHandler
	profiles ProfileUseCases
	now      func() time.Time
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(profiles ProfileUseCases) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, now: time.Now}
}

// UpdateMeRequest carries self-service profile changes
// @Description Fields a user may change on their own profile
type UpdateMeRequest struct {
	Username     *string `json:"username" binding:"omitempty,min=3,max=32" example:"frostwolf"`
	GamePlayerID *string `json:"game_player_id" binding:"omitempty,numeric,max=20" example:"123456789"`
}

// ListUsersQuery filters the admin user listing
type ListUsersQuery struct {
	Page       int    `form:"page" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Search     string `form:"search" binding:"omitempty,max=100"`
	Role       string `form:"role" binding:"omitempty,hub_role"`
	AllianceID string `form:"alliance_id" binding:"omitempty,uuid"`
	OrderBy    string `form:"order_by" binding:"omitempty,oneof=created_at username email role"`
	OrderDir   string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// UpdateUserRequest is an admin's change to a user
// @Description Role and alliance assignment. Omitted fields are unchanged.
type UpdateUserRequest struct {
	Role            *string `json:"role" binding:"omitempty,hub_role" example:"r4"`
	AllianceID      *string `json:"alliance_id" binding:"omitempty,uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	ClearAlliance   bool    `json:"clear_alliance" example:"false"`
	CanEditAlliance *bool   `json:"can_edit_alliance" example:"true"`
}

// Me godoc
// @ID           getMe
// @Summary      Current profile
// @Description  Returns the caller's profile, creating it on first sign-in
// @Tags         auth
// @Produce      json
// @Success      200 {object} APIResponse[membershipapp.ProfileResponse]
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/v1/auth/me [get]
func (h *ProfileHandler) Me(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	h.Success(c, membershipapp.ToProfileResponse(actor))
}

// UpdateMe godoc
// @ID           updateMe
// @Summary      Update current profile
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body UpdateMeRequest true "Profile changes"
// @Success      200 {object} APIResponse[membershipapp.ProfileResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/v1/auth/me [patch]
func (h *ProfileHandler) UpdateMe(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var req UpdateMeRequest
	if !h.bindJSON(c, &req) {
		return
	}

	profile, err := h.profiles.UpdateMe(c.Request.Context(), actor, membershipapp.UpdateMeInput{
		Username:     req.Username,
		GamePlayerID: req.GamePlayerID,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, profile)
}

// ListUsers godoc
// @ID           listUsers
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Param        page        query int    false "Page"
// @Param        page_size   query int    false "Page size"
// @Param        search      query string false "Matches username, email or player id"
// @Param        role        query string false "Role filter"
// @Param        alliance_id query string false "Alliance filter"
// @Success      200 {object} APIResponse[[]membershipapp.ProfileResponse]
// @Failure      403 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/v1/admin/users [get]
func (h *ProfileHandler) ListUsers(c *gin.Context) {
	var q ListUsersQuery
	if !h.bindQuery(c, &q) {
		return
	}
	allianceID, err := optionalUUID(q.AllianceID)
	if err != nil {
		h.BadRequest(c, "Invalid alliance_id")
		return
	}

	page, err := h.profiles.ListUsers(c.Request.Context(), membershipapp.ListUsersInput{
		Page:       q.Page,
		PageSize:   q.PageSize,
		Keyword:    q.Search,
		Role:       q.Role,
		AllianceID: allianceID,
		OrderBy:    q.OrderBy,
		OrderDir:   q.OrderDir,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// GetUser godoc
// @ID           getUser
// @Summary      Get a user
// @Tags         admin
// @Produce      json
// @Param        id path string true "User ID"
// @Success      200 {object} APIResponse[membershipapp.ProfileResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/v1/admin/users/{id} [get]
func (h *ProfileHandler) GetUser(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	profile, err := h.profiles.GetUser(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, profile)
}

// UpdateUser godoc
// @ID           updateUser
// @Summary      Change a user's role or alliance
// @Description  Alliance roles (member, r4, r5) require an alliance
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id      path string            true "User ID"
// @Param        request body UpdateUserRequest true "Changes"
// @Success      200 {object} APIResponse[membershipapp.ProfileResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/v1/admin/users/{id} [patch]
func (h *ProfileHandler) UpdateUser(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req UpdateUserRequest
	if !h.bindJSON(c, &req) {
		return
	}

	in := membershipapp.UpdateUserInput{
		Role:            req.Role,
		ClearAlliance:   req.ClearAlliance,
		CanEditAlliance: req.CanEditAlliance,
	}
	if req.AllianceID != nil {
		allianceID := uuid.MustParse(*req.AllianceID)
		in.AllianceID = &allianceID
	}

	profile, err := h.profiles.UpdateUser(c.Request.Context(), actor, id, in)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, profile)
}

// DeleteUser godoc
// @ID           deleteUser
// @Summary      Delete a user
// @Description  Admins cannot delete their own account
// @Tags         admin
// @Param        id path string true "User ID"
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/v1/admin/users/{id} [delete]
func (h *ProfileHandler) DeleteUser(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.profiles.DeleteUser(c.Request.Context(), actor, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ExportUsers godoc
// @ID           exportUsers
// @Summary      Export users as a spreadsheet
// @Tags         admin
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200 {file} binary
// @Security     BearerAuth
// @Router       /api/v1/admin/users/export [get]
func (h *ProfileHandler) ExportUsers(c *gin.Context) {
	body, err := h.profiles.ExportUsers(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Download(c, fmt.Sprintf("users-%s.xlsx", h.now().UTC().Format("20060102")), XLSXContentType, body)
}
