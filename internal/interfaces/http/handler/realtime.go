package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/sse"
	"github.com/gin-gonic/gin"
	"github.com/state244/hub/internal/infrastructure/logger"
	"github.com/state244/hub/internal/infrastructure/realtime"
	"github.com/state244/hub/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// RealtimeHub registers event stream connections
type RealtimeHub interface {
	Register(sub realtime.Subscriber) (*realtime.Client, error)
	Unregister(c *realtime.Client)
}

// RealtimeHandler serves the server-sent event stream
type RealtimeHandler struct {
	BaseHandler
	hub RealtimeHub
}

// NewRealtimeHandler creates a new RealtimeHandler
func NewRealtimeHandler(hub RealtimeHub) *RealtimeHandler {
	return &RealtimeHandler{hub: hub}
}

// Stream godoc
// @ID           streamEvents
// @Summary      Subscribe to live updates
// @Description  Server-sent events: application.updated, proposal.resolved, contact.received,
// @Description  warplan.changed and heartbeat. Delivery follows the caller's role and alliance.
// @Tags         realtime
// @Produce      text/event-stream
// @Success      200 {string} string "event stream"
// @Failure      503 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/v1/realtime/stream [get]
func (h *RealtimeHandler) Stream(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	client, err := h.hub.Register(realtime.Subscriber{
		UserID:     actor.ID,
		Role:       actor.Role,
		AllianceID: actor.AllianceID,
	})
	if errors.Is(err, realtime.ErrTooManyClients) {
		h.Error(c, http.StatusServiceUnavailable, dto.ErrCodeUnavailable, "Too many live connections, try again later")
		return
	}
	if err != nil {
		h.HandleError(c, err)
		return
	}
	defer h.hub.Unregister(client)

	log := logger.GetGinLogger(c)
	log.Debug("Realtime client connected", zap.String("client_id", client.ID))

	// streams outlive the server write timeout
	_ = http.NewResponseController(c.Writer).SetWriteDeadline(time.Time{})

	c.Header("Content-Type", sse.ContentType)
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	c.Render(-1, sse.Event{Event: "connected", Data: gin.H{"client_id": client.ID}})
	c.Writer.Flush()

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			log.Debug("Realtime client disconnected", zap.String("client_id", client.ID))
			return
		case <-client.Done():
			return
		case msg := <-client.Messages():
			c.Render(-1, sse.Event{Id: msg.ID, Event: msg.Event, Data: msg.Data})
			c.Writer.Flush()
		}
	}
}
