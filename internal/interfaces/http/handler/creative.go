package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	creativeapp "github.com/state244/hub/internal/application/creative"
	"github.com/state244/hub/internal/domain/membership"
)

// CreativeUseCases is what the AI generation endpoints need
type CreativeUseCases interface {
	GenerateText(ctx context.Context, actor *membership.Profile, in creativeapp.TextInput) (*creativeapp.TextResponse, error)
	GenerateImage(ctx context.Context, actor *membership.Profile, in creativeapp.ImageInput) (*creativeapp.ImageResponse, error)
	ListImages(ctx context.Context, actor *membership.Profile) ([]creativeapp.ImageResponse, error)
	DeleteImage(ctx context.Context, actor *membership.Profile, id uuid.UUID) error
}

// CreativeHandler serves /ai
type CreativeHandler struct {
	BaseHandler
	creative CreativeUseCases
}

// NewCreativeHandler creates a new CreativeHandler
func NewCreativeHandler(creative CreativeUseCases) *CreativeHandler {
	return &CreativeHandler{creative: creative}
}

// GenerateTextRequest asks for a generated post
type GenerateTextRequest struct {
	Kind       string `json:"kind" binding:"required,oneof=recruitment_post announcement event_reminder" example:"recruitment_post"`
	Topic      string `json:"topic" binding:"required,max=500" example:"We are recruiting 30+ furnace players for SvS"`
	Tone       string `json:"tone" binding:"omitempty,oneof=friendly formal hype" example:"hype"`
	AllianceID string `json:"alliance_id" binding:"omitempty,uuid"`
}

// GenerateImageRequest asks for a generated image
type GenerateImageRequest struct {
	Prompt string `json:"prompt" binding:"required,min=3,max=1000" example:"A frozen fortress under the aurora"`
	Style  string `json:"style" binding:"omitempty,oneof=poster banner emblem illustration" example:"poster"`
}

// GenerateText godoc
// @ID           generateText
// @Summary      Generate a recruitment post, announcement or reminder
// @Description  Counts against the hourly text quota
// @Tags         ai
// @Accept       json
// @Produce      json
// @Param        request body GenerateTextRequest true "Request"
// @Success      200 {object} APIResponse[creativeapp.TextResponse]
// @Failure      429 {object} ErrorResponse
// @Failure      503 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/v1/ai/text [post]
func (h *CreativeHandler) GenerateText(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var req GenerateTextRequest
	if !h.bindJSON(c, &req) {
		return
	}
	allianceID, err := optionalUUID(req.AllianceID)
	if err != nil {
		h.BadRequest(c, "Invalid alliance_id")
		return
	}
	out, err := h.creative.GenerateText(c.Request.Context(), actor, creativeapp.TextInput{
		Kind:       req.Kind,
		Topic:      req.Topic,
		Tone:       req.Tone,
		AllianceID: allianceID,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, out)
}

// GenerateImage godoc
// @ID           generateImage
// @Summary      Generate and store an image
// @Description  Counts against the daily image quota. The URL expires.
// @Tags         ai
// @Accept       json
// @Produce      json
// @Param        request body GenerateImageRequest true "Request"
// @Success      201 {object} APIResponse[creativeapp.ImageResponse]
// @Failure      429 {object} ErrorResponse
// @Failure      503 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/v1/ai/images [post]
func (h *CreativeHandler) GenerateImage(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var req GenerateImageRequest
	if !h.bindJSON(c, &req) {
		return
	}
	img, err := h.creative.GenerateImage(c.Request.Context(), actor, creativeapp.ImageInput{
		Prompt: req.Prompt,
		Style:  req.Style,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, img)
}

// ListImages godoc
// @ID           listImages
// @Summary      List generated images
// @Description  The caller's images; admins see all
// @Tags         ai
// @Produce      json
// @Success      200 {object} APIResponse[[]creativeapp.ImageResponse]
// @Security     BearerAuth
// @Router       /api/v1/ai/images [get]
func (h *CreativeHandler) ListImages(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	images, err := h.creative.ListImages(c.Request.Context(), actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, images)
}

// DeleteImage godoc
// @ID           deleteImage
// @Summary      Delete a generated image
// @Tags         ai
// @Param        id path string true "Image ID"
// @Success      204
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/v1/ai/images/{id} [delete]
func (h *CreativeHandler) DeleteImage(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.creative.DeleteImage(c.Request.Context(), actor, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
