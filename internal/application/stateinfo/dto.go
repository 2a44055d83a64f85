package stateinfo

import (
	"time"

	"github.com/google/uuid"
	"github.com/state244/hub/internal/domain/stateinfo"
)

// SectionResponse is a published section with its rendered HTML
type SectionResponse struct {
	Key       string     `json:"key"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	HTML      string     `json:"html"`
	UpdatedBy *uuid.UUID `json:"updated_by,omitempty"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// EditSectionInput replaces a section's title and markdown
type EditSectionInput struct {
	Title   string
	Content string
}

// ProposeInput suggests new content for a section
type ProposeInput struct {
	SectionKey string
	Title      string
	Content    string
	Reason     string
}

// ProposalResponse is a proposal with its current tallies
type ProposalResponse struct {
	ID              uuid.UUID      `json:"id"`
	SectionKey      string         `json:"section_key"`
	ProposedTitle   string         `json:"proposed_title"`
	ProposedContent string         `json:"proposed_content"`
	Reason          string         `json:"reason,omitempty"`
	ProposerID      uuid.UUID      `json:"proposer_id"`
	Status          string         `json:"status"`
	ApproveCount    int            `json:"approve_count"`
	RejectCount     int            `json:"reject_count"`
	ResolvedAt      *time.Time     `json:"resolved_at,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	Votes           []VoteResponse `json:"votes,omitempty"`
}

// VoteResponse is one recorded vote
type VoteResponse struct {
	VoterID   uuid.UUID `json:"voter_id"`
	Decision  string    `json:"decision"`
	CreatedAt time.Time `json:"created_at"`
}

// ToProposalResponse converts a domain Proposal to ProposalResponse
func ToProposalResponse(p *stateinfo.Proposal) ProposalResponse {
	return ProposalResponse{
		ID:              p.ID,
		SectionKey:      p.SectionKey,
		ProposedTitle:   p.ProposedTitle,
		ProposedContent: p.ProposedContent,
		Reason:          p.Reason,
		ProposerID:      p.ProposerID,
		Status:          string(p.Status),
		ApproveCount:    p.ApproveCount,
		RejectCount:     p.RejectCount,
		ResolvedAt:      p.ResolvedAt,
		CreatedAt:       p.CreatedAt,
	}
}

func toVoteResponses(votes []*stateinfo.Vote) []VoteResponse {
	out := make([]VoteResponse, len(votes))
	for i, v := range votes {
		out[i] = VoteResponse{VoterID: v.VoterID, Decision: string(v.Decision), CreatedAt: v.CreatedAt}
	}
	return out
}
