package stateinfo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/state244/hub/internal/domain/membership"
	"github.com/state244/hub/internal/domain/shared"
	"github.com/state244/hub/internal/domain/stateinfo"
	"github.com/state244/hub/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// Renderer turns section markdown into safe HTML
type Renderer interface {
	Render(src string) (string, error)
}

// StateInfoService serves published state information and the proposal vote
type StateInfoService struct {
	sections  stateinfo.SectionRepository
	proposals stateinfo.ProposalRepository
	renderer  Renderer
	publisher shared.EventPublisher
	logger    *zap.Logger
	metrics   *telemetry.BusinessMetrics
}

// NewStateInfoService creates a new StateInfoService
func NewStateInfoService(
	sections stateinfo.SectionRepository,
	proposals stateinfo.ProposalRepository,
	renderer Renderer,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *StateInfoService {
	if publisher == nil {
		publisher = shared.NopPublisher{}
	}
	return &StateInfoService{
		sections:  sections,
		proposals: proposals,
		renderer:  renderer,
		publisher: publisher,
		logger:    logger,
	}
}

// SetBusinessMetrics sets the business metrics recorder
func (s *StateInfoService) SetBusinessMetrics(bm *telemetry.BusinessMetrics) {
	s.metrics = bm
}

// List returns every section with rendered HTML
func (s *StateInfoService) List(ctx context.Context) ([]SectionResponse, error) {
	sections, err := s.sections.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]SectionResponse, 0, len(sections))
	for _, sec := range sections {
		resp, err := s.toSectionResponse(sec)
		if err != nil {
			return nil, err
		}
		out = append(out, *resp)
	}
	return out, nil
}

// Get returns one section by key
func (s *StateInfoService) Get(ctx context.Context, key string) (*SectionResponse, error) {
	sec, err := s.sections.FindByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	return s.toSectionResponse(sec)
}

// Upsert lets the president or an admin edit a section directly, creating it if missing
func (s *StateInfoService) Upsert(ctx context.Context, actor *membership.Profile, key string, in EditSectionInput) (*SectionResponse, error) {
	if !actor.IsStateLeadership() {
		return nil, shared.NewForbiddenError("only the president or an admin can edit state info directly")
	}
	editor := actor.ID

	sec, err := s.sections.FindByKey(ctx, key)
	switch {
	case err == nil:
		if err := sec.Edit(in.Title, in.Content, &editor); err != nil {
			return nil, err
		}
	case errors.Is(err, shared.ErrNotFound):
		if sec, err = stateinfo.NewSection(key, in.Title, in.Content, &editor); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	if err := s.sections.Save(ctx, sec); err != nil {
		return nil, err
	}
	s.logger.Info("State info section saved",
		zap.String("key", key),
		zap.String("editor_id", editor.String()))
	return s.toSectionResponse(sec)
}

// Propose submits a change for peer vote
func (s *StateInfoService) Propose(ctx context.Context, actor *membership.Profile, in ProposeInput) (*ProposalResponse, error) {
	p, err := stateinfo.NewProposal(actor, in.SectionKey, in.Title, in.Content, in.Reason)
	if err != nil {
		return nil, err
	}
	if err := s.proposals.Create(ctx, p); err != nil {
		return nil, err
	}
	s.logger.Info("State info proposal created",
		zap.String("proposal_id", p.ID.String()),
		zap.String("section_key", p.SectionKey))
	resp := ToProposalResponse(p)
	return &resp, nil
}

// ListProposals returns proposals, optionally filtered by status
func (s *StateInfoService) ListProposals(ctx context.Context, actor *membership.Profile, status string) ([]ProposalResponse, error) {
	if !stateinfo.CanPropose(actor.Role) {
		return nil, shared.NewForbiddenError("only R4 and above can view proposals")
	}
	var filter *stateinfo.ProposalStatus
	if status != "" {
		st := stateinfo.ProposalStatus(status)
		if !st.IsValid() {
			return nil, shared.NewInvalidInputError("unknown status %q", status)
		}
		filter = &st
	}
	proposals, err := s.proposals.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]ProposalResponse, len(proposals))
	for i, p := range proposals {
		out[i] = ToProposalResponse(p)
	}
	return out, nil
}

// GetProposal returns a proposal together with its votes
func (s *StateInfoService) GetProposal(ctx context.Context, actor *membership.Profile, id uuid.UUID) (*ProposalResponse, error) {
	if !stateinfo.CanPropose(actor.Role) {
		return nil, shared.NewForbiddenError("only R4 and above can view proposals")
	}
	p, err := s.proposals.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	votes, err := s.proposals.FindVotes(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToProposalResponse(p)
	resp.Votes = toVoteResponses(votes)
	return &resp, nil
}

// Vote casts the actor's vote. The vote that approves a proposal also
// publishes its content into the section in the same transaction.
func (s *StateInfoService) Vote(ctx context.Context, actor *membership.Profile, id uuid.UUID, decision string) (*ProposalResponse, error) {
	p, err := s.proposals.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	vote, err := p.CastVote(actor, stateinfo.VoteDecision(decision))
	if err != nil {
		return nil, err
	}

	var published *stateinfo.Section
	if p.Status == stateinfo.ProposalApproved {
		current, err := s.sections.FindByKey(ctx, p.SectionKey)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		if published, err = p.ApplyTo(current); err != nil {
			return nil, err
		}
	}

	if err := s.proposals.RecordVote(ctx, p, vote, published); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, shared.NewConflictError("you have already voted on this proposal")
		}
		return nil, err
	}

	s.metrics.ProposalVote(decision, string(p.Status))
	if err := shared.PublishPending(ctx, s.publisher, p); err != nil {
		s.logger.Warn("Failed to publish proposal event", zap.String("proposal_id", p.ID.String()), zap.Error(err))
	}
	s.logger.Info("Proposal vote recorded",
		zap.String("proposal_id", p.ID.String()),
		zap.String("voter_id", actor.ID.String()),
		zap.String("decision", decision),
		zap.String("status", string(p.Status)))

	resp := ToProposalResponse(p)
	return &resp, nil
}

// PendingCount is the number of proposals still open for votes
func (s *StateInfoService) PendingCount(ctx context.Context) (int64, error) {
	return s.proposals.CountPending(ctx)
}

func (s *StateInfoService) toSectionResponse(sec *stateinfo.Section) (*SectionResponse, error) {
	html, err := s.renderer.Render(sec.Content)
	if err != nil {
		return nil, err
	}
	return &SectionResponse{
		Key:       sec.Key,
		Title:     sec.Title,
		Content:   sec.Content,
		HTML:      html,
		UpdatedBy: sec.UpdatedBy,
		UpdatedAt: sec.UpdatedAt,
	}, nil
}
