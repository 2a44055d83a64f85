package handler

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	recruitmentapp "github.com/state244/hub/internal/application/recruitment"
	"github.com/state244/hub/internal/domain/membership"
	"github.com/state244/hub/internal/domain/shared"
	"github.com/state244/hub/internal/interfaces/http/middleware"
)

// ApplicationUseCases is what the migration application endpoints need
type ApplicationUseCases interface {
	Submit(ctx context.Context, applicantID *uuid.UUID, in recruitmentapp.SubmitInput) (*recruitmentapp.SubmitResponse, error)
	Status(ctx context.Context, id uuid.UUID, code string) (*recruitmentapp.StatusResponse, error)
	Withdraw(ctx context.Context, id uuid.UUID, code string) (*recruitmentapp.StatusResponse, error)
	List(ctx context.Context, actor *membership.Profile, in recruitmentapp.ListInput) (shared.Paginated[recruitmentapp.ApplicationResponse], error)
	Get(ctx context.Context, actor *membership.Profile, id uuid.UUID) (*recruitmentapp.ApplicationResponse, error)
	AllianceReview(ctx context.Context, actor *membership.Profile, id uuid.UUID, in recruitmentapp.ReviewInput) (*recruitmentapp.ApplicationResponse, error)
	PresidentReview(ctx context.Context, actor *membership.Profile, id uuid.UUID, in recruitmentapp.ReviewInput) (*recruitmentapp.ApplicationResponse, error)
	Export(ctx context.Context, actor *membership.Profile, status string) ([]byte, error)
}

// ApplicationHandler serves /applications
type ApplicationHandler struct {
	BaseHandler
	apps ApplicationUseCases
	now  func() time.Time
}

// NewApplicationHandler creates a new ApplicationHandler
func NewApplicationHandler(apps ApplicationUseCases) *ApplicationHandler {
	return &ApplicationHandler{apps: apps, now: time.Now}
}

// SubmitApplicationRequest is a public migration application
// @Description Migration application. The response carries a one-time tracking code.
type SubmitApplicationRequest struct {
	PlayerName       string `json:"player_name" binding:"required,min=1,max=50" example:"FrostBite"`
	GamePlayerID     string `json:"game_player_id" binding:"required,numeric,min=1,max=20" example:"123456789"`
	CurrentState     int    `json:"current_state" binding:"required,min=1,max=9999" example:"611"`
	FurnaceLevel     int    `json:"furnace_level" binding:"required,min=1,max=35" example:"30"`
	Power            int64  `json:"power" binding:"gte=0,lte=10000000000000" example:"85000000"`
	TargetAllianceID string `json:"target_alliance_id" binding:"required,uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	DiscordHandle    string `json:"discord_handle" binding:"max=64" example:"frostbite#0001"`
	Message          string `json:"message" binding:"max=2000" example:"Looking for an active SvS alliance"`
}

// TrackingCodeQuery carries the applicant's tracking code
type TrackingCodeQuery struct {
	Code string `form:"code" binding:"required,max=64"`
}

// WithdrawRequest carries the applicant's tracking code
type WithdrawRequest struct {
	Code string `json:"code" binding:"required,max=64"`
}

// ListApplicationsQuery filters the reviewer listing
type ListApplicationsQuery struct {
	Page       int    `form:"page" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Status     string `form:"status" binding:"omitempty,oneof=pending alliance_approved president_approved rejected withdrawn"`
	AllianceID string `form:"alliance_id" binding:"omitempty,uuid"`
	Search     string `form:"search" binding:"omitempty,max=100"`
	OrderBy    string `form:"order_by" binding:"omitempty,oneof=created_at updated_at power furnace_level player_name"`
	OrderDir   string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ReviewRequest is a reviewer's decision
// @Description approve or reject; a reason is kept for rejections
type ReviewRequest struct {
	Decision string `json:"decision" binding:"required,oneof=approve reject" example:"approve"`
	Reason   string `json:"reason" binding:"max=500" example:""`
}

// ExportApplicationsQuery filters the export
type ExportApplicationsQuery struct {
	Status string `form:"status" binding:"omitempty,oneof=pending alliance_approved president_approved rejected withdrawn"`
}

// Submit godoc
// @ID           submitApplication
// @Summary      Submit a migration application
// @Description  Public. The target alliance must exist and not be closed. Signed-in applicants are linked to the application.
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        request body SubmitApplicationRequest true "Application"
// @Success      201 {object} APIResponse[recruitmentapp.SubmitResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Failure      429 {object} ErrorResponse
// @Router       /api/v1/applications [post]
func (h *ApplicationHandler) Submit(c *gin.Context) {
	var req SubmitApplicationRequest
	if !h.bindJSON(c, &req) {
		return
	}

	var applicantID *uuid.UUID
	if p := middleware.GetProfile(c); p != nil {
		applicantID = &p.ID
	} else if id, ok := middleware.GetJWTUserID(c); ok {
		applicantID = &id
	}

	resp, err := h.apps.Submit(c.Request.Context(), applicantID, recruitmentapp.SubmitInput{
		PlayerName:       req.PlayerName,
		GamePlayerID:     req.GamePlayerID,
		CurrentState:     req.CurrentState,
		FurnaceLevel:     req.FurnaceLevel,
		Power:            req.Power,
		TargetAllianceID: uuid.MustParse(req.TargetAllianceID),
		DiscordHandle:    req.DiscordHandle,
		Message:          req.Message,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Status godoc
// @ID           getApplicationStatus
// @Summary      Look up an application with its tracking code
// @Tags         applications
// @Produce      json
// @Param        id   path  string true "Application ID"
// @Param        code query string true "Tracking code"
// @Success      200 {object} APIResponse[recruitmentapp.StatusResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/applications/{id}/status [get]
func (h *ApplicationHandler) Status(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var q TrackingCodeQuery
	if !h.bindQuery(c, &q) {
		return
	}
	resp, err := h.apps.Status(c.Request.Context(), id, q.Code)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Withdraw godoc
// @ID           withdrawApplication
// @Summary      Withdraw a pending application
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id      path string          true "Application ID"
// @Param        request body WithdrawRequest true "Tracking code"
// @Success      200 {object} APIResponse[recruitmentapp.StatusResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /api/v1/applications/{id}/withdraw [post]
func (h *ApplicationHandler) Withdraw(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req WithdrawRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.apps.Withdraw(c.Request.Context(), id, req.Code)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List godoc
// @ID           listApplications
// @Summary      List applications
// @Description  Officers see their alliance; the president and admins see all
// @Tags         applications
// @Produce      json
// @Param        page        query int    false "Page"
// @Param        page_size   query int    false "Page size"
// @Param        status      query string false "Status filter"
// @Param        alliance_id query string false "Alliance filter (leadership only)"
// @Param        search      query string false "Player name or id"
// @Success      200 {object} APIResponse[[]recruitmentapp.ApplicationResponse]
// @Failure      403 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/v1/applications [get]
func (h *ApplicationHandler) List(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var q ListApplicationsQuery
	if !h.bindQuery(c, &q) {
		return
	}
	allianceID, err := optionalUUID(q.AllianceID)
	if err != nil {
		h.BadRequest(c, "Invalid alliance_id")
		return
	}

	page, err := h.apps.List(c.Request.Context(), actor, recruitmentapp.ListInput{
		Page:       q.Page,
		PageSize:   q.PageSize,
		Status:     q.Status,
		AllianceID: allianceID,
		Keyword:    q.Search,
		OrderBy:    q.OrderBy,
		OrderDir:   q.OrderDir,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Get godoc
// @ID           getApplication
// @Summary      Get an application
// @Tags         applications
// @Produce      json
// @Param        id path string true "Application ID"
// @Success      200 {object} APIResponse[recruitmentapp.ApplicationResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/v1/applications/{id} [get]
func (h *ApplicationHandler) Get(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	app, err := h.apps.Get(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, app)
}

// AllianceReview godoc
// @ID           allianceReviewApplication
// @Summary      Alliance stage decision
// @Description  R4/R5 of the target alliance, the president or an admin
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id      path string        true "Application ID"
// @Param        request body ReviewRequest true "Decision"
// @Success      200 {object} APIResponse[recruitmentapp.ApplicationResponse]
// @Failure      403 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/v1/applications/{id}/alliance-review [post]
func (h *ApplicationHandler) AllianceReview(c *gin.Context) {
	h.review(c, h.apps.AllianceReview)
}

// PresidentReview godoc
// @ID           presidentReviewApplication
// @Summary      President stage decision
// @Description  Only after the alliance approved
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id      path string        true "Application ID"
// @Param        request body ReviewRequest true "Decision"
// @Success      200 {object} APIResponse[recruitmentapp.ApplicationResponse]
// @Failure      403 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/v1/applications/{id}/president-review [post]
func (h *ApplicationHandler) PresidentReview(c *gin.Context) {
	h.review(c, h.apps.PresidentReview)
}

type reviewFunc func(ctx context.Context, actor *membership.Profile, id uuid.UUID, in recruitmentapp.ReviewInput) (*recruitmentapp.ApplicationResponse, error)

func (h *ApplicationHandler) review(c *gin.Context, decide reviewFunc) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req ReviewRequest
	if !h.bindJSON(c, &req) {
		return
	}
	app, err := decide(c.Request.Context(), actor, id, recruitmentapp.ReviewInput{
		Decision: req.Decision,
		Reason:   req.Reason,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, app)
}

// Export godoc
// @ID           exportApplications
// @Summary      Export applications as a spreadsheet
// @Tags         applications
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        status query string false "Status filter"
// @Success      200 {file} binary
// @Failure      403 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/v1/applications/export [get]
func (h *ApplicationHandler) Export(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var q ExportApplicationsQuery
	if !h.bindQuery(c, &q) {
		return
	}
	body, err := h.apps.Export(c.Request.Context(), actor, q.Status)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Download(c, fmt.Sprintf("applications-%s.xlsx", h.now().UTC().Format("20060102")), XLSXContentType, body)
}
