package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/state244/hub/internal/domain/shared"
	"github.com/state244/hub/internal/domain/stateinfo"
)

// SectionModel is the persistence model for state info sections
type SectionModel struct {
	Key       string     `gorm:"type:varchar(64);primaryKey"`
	Title     string     `gorm:"type:varchar(120);not null"`
	Content   string     `gorm:"type:text;not null"`
	UpdatedBy *uuid.UUID `gorm:"type:uuid"`
	CreatedAt time.Time  `gorm:"not null"`
	UpdatedAt time.Time  `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SectionModel) TableName() string {
	return "state_info"
}

// ToDomain converts the model to a domain section
func (m *SectionModel) ToDomain() *stateinfo.Section {
	return &stateinfo.Section{
		Key:       m.Key,
		Title:     m.Title,
		Content:   m.Content,
		UpdatedBy: m.UpdatedBy,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// SectionModelFromDomain creates a model from a domain section
func SectionModelFromDomain(s *stateinfo.Section) *SectionModel {
	return &SectionModel{
		Key:       s.Key,
		Title:     s.Title,
		Content:   s.Content,
		UpdatedBy: s.UpdatedBy,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// ProposalModel is the persistence model for state info proposals
type ProposalModel struct {
	BaseModel
	SectionKey      string    `gorm:"type:varchar(64);not null;index"`
	ProposedTitle   string    `gorm:"type:varchar(120);not null"`
	ProposedContent string    `gorm:"type:text;not null"`
	Reason          string    `gorm:"type:text"`
	ProposerID      uuid.UUID `gorm:"type:uuid;not null"`
	Status          string    `gorm:"type:varchar(16);not null;index"`
	ApproveCount    int       `gorm:"not null;default:0"`
	RejectCount     int       `gorm:"not null;default:0"`
	ResolvedAt      *time.Time
}

// TableName returns the table name for GORM
func (ProposalModel) TableName() string {
	return "state_info_proposals"
}

// ToDomain converts the model to a domain proposal
func (m *ProposalModel) ToDomain() *stateinfo.Proposal {
	return &stateinfo.Proposal{
		BaseAggregateRoot: shared.BaseAggregateRoot{BaseEntity: m.BaseModel.ToDomain()},
		SectionKey:        m.SectionKey,
		ProposedTitle:     m.ProposedTitle,
		ProposedContent:   m.ProposedContent,
		Reason:            m.Reason,
		ProposerID:        m.ProposerID,
		Status:            stateinfo.ProposalStatus(m.Status),
		ApproveCount:      m.ApproveCount,
		RejectCount:       m.RejectCount,
		ResolvedAt:        m.ResolvedAt,
	}
}

// ProposalModelFromDomain creates a model from a domain proposal
func ProposalModelFromDomain(p *stateinfo.Proposal) *ProposalModel {
	m := &ProposalModel{
		SectionKey:      p.SectionKey,
		ProposedTitle:   p.ProposedTitle,
		ProposedContent: p.ProposedContent,
		Reason:          p.Reason,
		ProposerID:      p.ProposerID,
		Status:          string(p.Status),
		ApproveCount:    p.ApproveCount,
		RejectCount:     p.RejectCount,
		ResolvedAt:      p.ResolvedAt,
	}
	m.FromDomainBaseEntity(p.BaseEntity)
	return m
}

// VoteModel is the persistence model for proposal votes. The composite
// primary key rejects a second vote by the same voter.
type VoteModel struct {
	ProposalID uuid.UUID `gorm:"type:uuid;primaryKey"`
	VoterID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Decision   string    `gorm:"type:varchar(8);not null"`
	CreatedAt  time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (VoteModel) TableName() string {
	return "state_info_votes"
}

// ToDomain converts the model to a domain vote
func (m *VoteModel) ToDomain() *stateinfo.Vote {
	return &stateinfo.Vote{
		ProposalID: m.ProposalID,
		VoterID:    m.VoterID,
		Decision:   stateinfo.VoteDecision(m.Decision),
		CreatedAt:  m.CreatedAt,
	}
}

// VoteModelFromDomain creates a model from a domain vote
func VoteModelFromDomain(v *stateinfo.Vote) *VoteModel {
	return &VoteModel{
		ProposalID: v.ProposalID,
		VoterID:    v.VoterID,
		Decision:   string(v.Decision),
		CreatedAt:  v.CreatedAt,
	}
}
