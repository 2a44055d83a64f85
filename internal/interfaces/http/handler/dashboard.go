package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	dashboardapp "github.com/state244/hub/internal/application/dashboard"
	"github.com/state244/hub/internal/domain/membership"
)

// DashboardUseCases builds the caller's dashboard
type DashboardUseCases interface {
	Get(ctx context.Context, actor *membership.Profile) (*dashboardapp.Dashboard, error)
}

// DashboardHandler serves /dashboard
type DashboardHandler struct {
	BaseHandler
	dashboard DashboardUseCases
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboard DashboardUseCases) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Get godoc
// @ID           getDashboard
// @Summary      Role-gated counters for the signed-in user
// @Tags         dashboard
// @Produce      json
// @Success      200 {object} APIResponse[dashboardapp.Dashboard]
// @Security     BearerAuth
// @Router       /api/v1/dashboard [get]
func (h *DashboardHandler) Get(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	d, err := h.dashboard.Get(c.Request.Context(), actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, d)
}
