package stateinfo

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/state244/hub/internal/domain/membership"
	"github.com/state244/hub/internal/domain/shared"
)

// ProposalStatus tracks whether a proposal is still open for votes
type ProposalStatus string

const (
	ProposalPending  ProposalStatus = "pending"
	ProposalApproved ProposalStatus = "approved"
	ProposalRejected ProposalStatus = "rejected"
)

// IsValid reports whether s is a known status
func (s ProposalStatus) IsValid() bool {
	return s == ProposalPending || s == ProposalApproved || s == ProposalRejected
}

// VoteDecision is a single voter's verdict
type VoteDecision string

const (
	VoteApprove VoteDecision = "approve"
	VoteReject  VoteDecision = "reject"
)

// IsValid reports whether d is approve or reject
func (d VoteDecision) IsValid() bool {
	return d == VoteApprove || d == VoteReject
}

const (
	// ApprovalThreshold approve votes accept a proposal
	ApprovalThreshold = 2
	// RejectionThreshold reject votes turn a proposal down
	RejectionThreshold = 1

	maxReasonLen = 1000
)

// Proposal is a suggested replacement for a section, decided by peer vote
type Proposal struct {
	shared.BaseAggregateRoot
	SectionKey      string
	ProposedTitle   string
	ProposedContent string
	Reason          string
	ProposerID      uuid.UUID
	Status          ProposalStatus
	ApproveCount    int
	RejectCount     int
	ResolvedAt      *time.Time
}

// Vote records one voter's decision on a proposal
type Vote struct {
	ProposalID uuid.UUID
	VoterID    uuid.UUID
	Decision   VoteDecision
	CreatedAt  time.Time
}

// CanPropose reports whether a role may submit proposals
func CanPropose(role membership.Role) bool {
	return role.AtLeast(membership.RoleR4)
}

// CanVote reports whether a role may vote on proposals
func CanVote(role membership.Role) bool {
	return role.AtLeast(membership.RoleR5)
}

// NewProposal creates a pending proposal
func NewProposal(proposer *membership.Profile, sectionKey, title, content, reason string) (*Proposal, error) {
	if !CanPropose(proposer.Role) {
		return nil, shared.NewForbiddenError("only R4 and above can propose state info changes")
	}
	if !ValidKey(sectionKey) {
		return nil, shared.NewInvalidInputError("section key must be lower-case letters, digits and dashes")
	}
	title, content, err := validateText(title, content)
	if err != nil {
		return nil, err
	}
	reason = strings.TrimSpace(reason)
	if membership.RuneLen(reason) > maxReasonLen {
		return nil, shared.NewInvalidInputError("reason cannot exceed 1000 characters")
	}
	return &Proposal{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SectionKey:        sectionKey,
		ProposedTitle:     title,
		ProposedContent:   content,
		Reason:            reason,
		ProposerID:        proposer.ID,
		Status:            ProposalPending,
	}, nil
}

// CastVote records a vote and resolves the proposal once a threshold is met.
// Duplicate votes are caught by the caller; this only sees fresh voters.
func (p *Proposal) CastVote(voter *membership.Profile, decision VoteDecision) (*Vote, error) {
	if !decision.IsValid() {
		return nil, shared.NewInvalidInputError("decision must be approve or reject")
	}
	if !CanVote(voter.Role) {
		return nil, shared.NewForbiddenError("only R5, president and admin can vote")
	}
	if voter.ID == p.ProposerID {
		return nil, shared.NewForbiddenError("cannot vote on your own proposal")
	}
	if p.Status != ProposalPending {
		return nil, shared.NewInvalidStateError("proposal is already %s", p.Status)
	}

	now := time.Now()
	if decision == VoteApprove {
		p.ApproveCount++
	} else {
		p.RejectCount++
	}

	switch {
	case p.RejectCount >= RejectionThreshold:
		p.resolve(ProposalRejected, now)
	case p.ApproveCount >= ApprovalThreshold:
		p.resolve(ProposalApproved, now)
	default:
		p.Touch()
	}

	return &Vote{ProposalID: p.ID, VoterID: voter.ID, Decision: decision, CreatedAt: now}, nil
}

func (p *Proposal) resolve(status ProposalStatus, at time.Time) {
	p.Status = status
	p.ResolvedAt = &at
	p.UpdatedAt = at
	p.Record(NewProposalResolvedEvent(p))
}

// ApplyTo writes an approved proposal into its section, creating it if needed
func (p *Proposal) ApplyTo(section *Section) (*Section, error) {
	if p.Status != ProposalApproved {
		return nil, shared.NewInvalidStateError("only approved proposals can be applied")
	}
	proposer := p.ProposerID
	if section == nil {
		return NewSection(p.SectionKey, p.ProposedTitle, p.ProposedContent, &proposer)
	}
	if err := section.Edit(p.ProposedTitle, p.ProposedContent, &proposer); err != nil {
		return nil, err
	}
	return section, nil
}
