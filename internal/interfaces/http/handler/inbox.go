package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	inboxapp "github.com/state244/hub/internal/application/inbox"
	"github.com/state244/hub/internal/domain/shared"
)

// InboxUseCases is what the contact form and admin inbox need
type InboxUseCases interface {
	Submit(ctx context.Context, in inboxapp.SubmitInput) (*inboxapp.MessageResponse, error)
	List(ctx context.Context, in inboxapp.ListInput) (shared.Paginated[inboxapp.MessageResponse], error)
	Get(ctx context.Context, id uuid.UUID) (*inboxapp.MessageResponse, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*inboxapp.MessageResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	UnreadCount(ctx context.Context) (int64, error)
}

// InboxHandler serves /contact and /admin/messages
type InboxHandler struct {
	BaseHandler
	messages InboxUseCases
}

// NewInboxHandler creates a new InboxHandler
func NewInboxHandler(messages InboxUseCases) *InboxHandler {
	return &InboxHandler{messages: messages}
}

// ContactRequest is a public contact form submission
type ContactRequest struct {
	Name    string `json:"name" binding:"required,max=100" example:"Frost"`
	Email   string `json:"email" binding:"required,email,max=254" example:"frost@example.com"`
	Subject string `json:"subject" binding:"required,max=200" example:"Transfer question"`
	Message string `json:"message" binding:"required,max=5000" example:"When does the next transfer window open?"`
}

// ListMessagesQuery filters the admin inbox
type ListMessagesQuery struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Status   string `form:"status" binding:"omitempty,oneof=new read archived"`
	Search   string `form:"search" binding:"omitempty,max=100"`
	OrderBy  string `form:"order_by" binding:"omitempty,oneof=created_at status subject"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// UpdateMessageRequest moves a message between triage states
type UpdateMessageRequest struct {
	Status string `json:"status" binding:"required,oneof=new read archived" example:"read"`
}

// Contact godoc
// @ID           submitContactMessage
// @Summary      Send a message to the state admins
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        request body ContactRequest true "Message"
// @Success      201 {object} APIResponse[inboxapp.MessageResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      429 {object} ErrorResponse
// @Router       /api/v1/contact [post]
func (h *InboxHandler) Contact(c *gin.Context) {
	var req ContactRequest
	if !h.bindJSON(c, &req) {
		return
	}
	msg, err := h.messages.Submit(c.Request.Context(), inboxapp.SubmitInput{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, msg)
}

// List godoc
// @ID           listContactMessages
// @Summary      List contact messages
// @Tags         admin
// @Produce      json
// @Param        page      query int    false "Page"
// @Param        page_size query int    false "Page size"
// @Param        status    query string false "new, read or archived"
// @Param        search    query string false "Name, email or subject"
// @Success      200 {object} APIResponse[[]inboxapp.MessageResponse]
// @Failure      403 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/v1/admin/messages [get]
func (h *InboxHandler) List(c *gin.Context) {
	var q ListMessagesQuery
	if !h.bindQuery(c, &q) {
		return
	}
	page, err := h.messages.List(c.Request.Context(), inboxapp.ListInput{
		Page:     q.Page,
		PageSize: q.PageSize,
		Status:   q.Status,
		Keyword:  q.Search,
		OrderBy:  q.OrderBy,
		OrderDir: q.OrderDir,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Get godoc
// @ID           getContactMessage
// @Summary      Get a contact message
// @Tags         admin
// @Produce      json
// @Param        id path string true "Message ID"
// @Success      200 {object} APIResponse[inboxapp.MessageResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/v1/admin/messages/{id} [get]
func (h *InboxHandler) Get(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	msg, err := h.messages.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, msg)
}

// UpdateStatus godoc
// @ID           updateContactMessage
// @Summary      Mark a message read, unread or archived
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id      path string               true "Message ID"
// @Param        request body UpdateMessageRequest true "New status"
// @Success      200 {object} APIResponse[inboxapp.MessageResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/v1/admin/messages/{id} [patch]
func (h *InboxHandler) UpdateStatus(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req UpdateMessageRequest
	if !h.bindJSON(c, &req) {
		return
	}
	msg, err := h.messages.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, msg)
}

// Delete godoc
// @ID           deleteContactMessage
// @Summary      Delete a contact message
// @Tags         admin
// @Param        id path string true "Message ID"
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/v1/admin/messages/{id} [delete]
func (h *InboxHandler) Delete(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.messages.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// UnreadCount godoc
// @ID           countUnreadContactMessages
// @Summary      Number of new contact messages
// @Tags         admin
// @Produce      json
// @Success      200 {object} APIResponse[CountData]
// @Security     BearerAuth
// @Router       /api/v1/admin/messages/unread-count [get]
func (h *InboxHandler) UnreadCount(c *gin.Context) {
	n, err := h.messages.UnreadCount(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, CountData{Count: n})
}
