package stateinfo

import "github.com/state244/hub/internal/domain/shared"

const (
	AggregateTypeProposal = "StateInfoProposal"

	EventProposalResolved = "proposal.resolved"
)

// ProposalResolvedEvent is raised when voting closes a proposal
type ProposalResolvedEvent struct {
	shared.BaseDomainEvent
	SectionKey string         `json:"section_key"`
	Status     ProposalStatus `json:"status"`
}

// NewProposalResolvedEvent builds an event everyone signed in can see
func NewProposalResolvedEvent(p *Proposal) *ProposalResolvedEvent {
	return &ProposalResolvedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventProposalResolved, AggregateTypeProposal, p.ID, shared.AudienceEveryone, nil),
		SectionKey:      p.SectionKey,
		Status:          p.Status,
	}
}
