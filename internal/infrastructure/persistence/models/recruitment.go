package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/state244/hub/internal/domain/recruitment"
	"github.com/state244/hub/internal/domain/shared"
)

// ApplicationModel is the persistence model for migration applications
type ApplicationModel struct {
	BaseModel
	PlayerName          string     `gorm:"type:varchar(50);not null"`
	GamePlayerID        string     `gorm:"type:varchar(20);not null;index"`
	CurrentState        int        `gorm:"not null"`
	FurnaceLevel        int        `gorm:"not null"`
	Power               int64      `gorm:"not null"`
	TargetAllianceID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	DiscordHandle       string     `gorm:"type:varchar(64)"`
	Message             string     `gorm:"type:text"`
	Status              string     `gorm:"type:varchar(24);not null;index"`
	AllianceReviewedBy  *uuid.UUID `gorm:"type:uuid"`
	AllianceReviewedAt  *time.Time
	PresidentReviewedBy *uuid.UUID `gorm:"type:uuid"`
	PresidentReviewedAt *time.Time
	RejectionReason     string     `gorm:"type:varchar(500)"`
	TrackingCodeHash    string     `gorm:"type:varchar(72);not null"`
	ApplicantID         *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (ApplicationModel) TableName() string {
	return "migration_applications"
}

// ToDomain converts the model to a domain application
func (m *ApplicationModel) ToDomain() *recruitment.Application {
	return &recruitment.Application{
		BaseAggregateRoot:   shared.BaseAggregateRoot{BaseEntity: m.BaseModel.ToDomain()},
		PlayerName:          m.PlayerName,
		GamePlayerID:        m.GamePlayerID,
		CurrentState:        m.CurrentState,
		FurnaceLevel:        m.FurnaceLevel,
		Power:               m.Power,
		TargetAllianceID:    m.TargetAllianceID,
		DiscordHandle:       m.DiscordHandle,
		Message:             m.Message,
		Status:              recruitment.Status(m.Status),
		AllianceReviewedBy:  m.AllianceReviewedBy,
		AllianceReviewedAt:  m.AllianceReviewedAt,
		PresidentReviewedBy: m.PresidentReviewedBy,
		PresidentReviewedAt: m.PresidentReviewedAt,
		RejectionReason:     m.RejectionReason,
		TrackingCodeHash:    m.TrackingCodeHash,
		ApplicantID:         m.ApplicantID,
	}
}

// ApplicationModelFromDomain creates a model from a domain application
func ApplicationModelFromDomain(a *recruitment.Application) *ApplicationModel {
	m := &ApplicationModel{
		PlayerName:          a.PlayerName,
		GamePlayerID:        a.GamePlayerID,
		CurrentState:        a.CurrentState,
		FurnaceLevel:        a.FurnaceLevel,
		Power:               a.Power,
		TargetAllianceID:    a.TargetAllianceID,
		DiscordHandle:       a.DiscordHandle,
		Message:             a.Message,
		Status:              string(a.Status),
		AllianceReviewedBy:  a.AllianceReviewedBy,
		AllianceReviewedAt:  a.AllianceReviewedAt,
		PresidentReviewedBy: a.PresidentReviewedBy,
		PresidentReviewedAt: a.PresidentReviewedAt,
		RejectionReason:     a.RejectionReason,
		TrackingCodeHash:    a.TrackingCodeHash,
		ApplicantID:         a.ApplicantID,
	}
	m.FromDomainBaseEntity(a.BaseEntity)
	return m
}
