package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	stateinfoapp "github.com/state244/hub/internal/application/stateinfo"
	"github.com/state244/hub/internal/domain/membership"
)

// StateInfoUseCases is what the state information pages and proposals need
type StateInfoUseCases interface {
	List(ctx context.Context) ([]stateinfoapp.SectionResponse, error)
	Get(ctx context.Context, key string) (*stateinfoapp.SectionResponse, error)
	Upsert(ctx context.Context, actor *membership.Profile, key string, in stateinfoapp.EditSectionInput) (*stateinfoapp.SectionResponse, error)
	Propose(ctx context.Context, actor *membership.Profile, in stateinfoapp.ProposeInput) (*stateinfoapp.ProposalResponse, error)
	ListProposals(ctx context.Context, actor *membership.Profile, status string) ([]stateinfoapp.ProposalResponse, error)
	GetProposal(ctx context.Context, actor *membership.Profile, id uuid.UUID) (*stateinfoapp.ProposalResponse, error)
	Vote(ctx context.Context, actor *membership.Profile, id uuid.UUID, decision string) (*stateinfoapp.ProposalResponse, error)
}

// StateInfoHandler serves /state-info
type StateInfoHandler struct {
	BaseHandler
	info StateInfoUseCases
}

// NewStateInfoHandler creates a new StateInfoHandler
func NewStateInfoHandler(info StateInfoUseCases) *StateInfoHandler {
	return &StateInfoHandler{info: info}
}

// SectionKeyURI is the :key path segment
type SectionKeyURI struct {
	Key string `uri:"key" binding:"required,section_key"`
}

// EditSectionRequest replaces a section
type EditSectionRequest struct {
	Title   string `json:"title" binding:"required,max=120" example:"Transfer rules"`
	Content string `json:"content" binding:"max=20000" example:"## Window\nTransfers open every other Tuesday."`
}

// ProposeRequest suggests new content for a section
type ProposeRequest struct {
	SectionKey string `json:"section_key" binding:"required,section_key" example:"transfer-rules"`
	Title      string `json:"title" binding:"required,max=120" example:"Transfer rules"`
	Content    string `json:"content" binding:"max=20000"`
	Reason     string `json:"reason" binding:"max=500" example:"Window moved to Wednesday"`
}

// ListProposalsQuery filters proposals by status
type ListProposalsQuery struct {
	Status string `form:"status" binding:"omitempty,oneof=pending approved rejected"`
}

// VoteRequest is one R5 vote
type VoteRequest struct {
	Decision string `json:"decision" binding:"required,oneof=approve reject" example:"approve"`
}

// List godoc
// @ID           listStateInfo
// @Summary      List published state information
// @Tags         state-info
// @Produce      json
// @Success      200 {object} APIResponse[[]stateinfoapp.SectionResponse]
// @Router       /api/v1/state-info [get]
func (h *StateInfoHandler) List(c *gin.Context) {
	sections, err := h.info.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sections)
}

func (h *StateInfoHandler) sectionKey(c *gin.Context) (string, bool) {
	var uri SectionKeyURI
	if err := c.ShouldBindUri(&uri); err != nil {
		h.bindFailed(c, err)
		return "", false
	}
	return uri.Key, true
}

// Get godoc
// @ID           getStateInfo
// @Summary      Get one state information section
// @Tags         state-info
// @Produce      json
// @Param        key path string true "Section key"
// @Success      200 {object} APIResponse[stateinfoapp.SectionResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/state-info/{key} [get]
func (h *StateInfoHandler) Get(c *gin.Context) {
	key, ok := h.sectionKey(c)
	if !ok {
		return
	}
	sec, err := h.info.Get(c.Request.Context(), key)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sec)
}

// Upsert godoc
// @ID           upsertStateInfo
// @Summary      Create or replace a section
// @Description  President or admin. Content is markdown and is sanitized when rendered.
// @Tags         state-info
// @Accept       json
// @Produce      json
// @Param        key     path string             true "Section key"
// @Param        request body EditSectionRequest true "Section"
// @Success      200 {object} APIResponse[stateinfoapp.SectionResponse]
// @Failure      403 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/v1/state-info/{key} [put]
func (h *StateInfoHandler) Upsert(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	key, ok := h.sectionKey(c)
	if !ok {
		return
	}
	var req EditSectionRequest
	if !h.bindJSON(c, &req) {
		return
	}
	sec, err := h.info.Upsert(c.Request.Context(), actor, key, stateinfoapp.EditSectionInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sec)
}

// Propose godoc
// @ID           createStateInfoProposal
// @Summary      Propose a change to a section
// @Tags         state-info
// @Accept       json
// @Produce      json
// @Param        request body ProposeRequest true "Proposal"
// @Success      201 {object} APIResponse[stateinfoapp.ProposalResponse]
// @Failure      403 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/v1/state-info/proposals [post]
func (h *StateInfoHandler) Propose(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var req ProposeRequest
	if !h.bindJSON(c, &req) {
		return
	}
	p, err := h.info.Propose(c.Request.Context(), actor, stateinfoapp.ProposeInput{
		SectionKey: req.SectionKey,
		Title:      req.Title,
		Content:    req.Content,
		Reason:     req.Reason,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, p)
}

// ListProposals godoc
// @ID           listStateInfoProposals
// @Summary      List proposals
// @Tags         state-info
// @Produce      json
// @Param        status query string false "pending, approved or rejected"
// @Success      200 {object} APIResponse[[]stateinfoapp.ProposalResponse]
// @Security     BearerAuth
// @Router       /api/v1/state-info/proposals [get]
func (h *StateInfoHandler) ListProposals(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var q ListProposalsQuery
	if !h.bindQuery(c, &q) {
		return
	}
	proposals, err := h.info.ListProposals(c.Request.Context(), actor, q.Status)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, proposals)
}

// GetProposal godoc
// @ID           getStateInfoProposal
// @Summary      Get a proposal with its votes
// @Tags         state-info
// @Produce      json
// @Param        id path string true "Proposal ID"
// @Success      200 {object} APIResponse[stateinfoapp.ProposalResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/v1/state-info/proposals/{id} [get]
func (h *StateInfoHandler) GetProposal(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	p, err := h.info.GetProposal(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, p)
}

// Vote godoc
// @ID           voteStateInfoProposal
// @Summary      Vote on a pending proposal
// @Description  R5 only, one vote each. A majority resolves the proposal.
// @Tags         state-info
// @Accept       json
// @Produce      json
// @Param        id      path string      true "Proposal ID"
// @Param        request body VoteRequest true "Vote"
// @Success      200 {object} APIResponse[stateinfoapp.ProposalResponse]
// @Failure      409 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/v1/state-info/proposals/{id}/votes [post]
func (h *StateInfoHandler) Vote(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req VoteRequest
	if !h.bindJSON(c, &req) {
		return
	}
	p, err := h.info.Vote(c.Request.Context(), actor, id, req.Decision)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, p)
}
