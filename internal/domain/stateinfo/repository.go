package stateinfo

import (
	"context"

	"github.com/google/uuid"
)

// SectionRepository persists state info sections
type SectionRepository interface {
	FindAll(ctx context.Context) ([]*Section, error)
	FindByKey(ctx context.Context, key string) (*Section, error)
	Save(ctx context.Context, section *Section) error
}

// ProposalRepository persists proposals and their votes
type ProposalRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Proposal, error)
	FindAll(ctx context.Context, status *ProposalStatus) ([]*Proposal, error)
	Create(ctx context.Context, proposal *Proposal) error
	// RecordVote stores the vote, the updated tallies and, when the vote
	// approved the proposal, the published section in one transaction.
	// A second vote by the same voter fails with shared.ErrAlreadyExists.
	RecordVote(ctx context.Context, proposal *Proposal, vote *Vote, published *Section) error
	FindVotes(ctx context.Context, proposalID uuid.UUID) ([]*Vote, error)
	CountPending(ctx context.Context) (int64, error)
}
