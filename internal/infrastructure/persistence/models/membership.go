package models

import (
	"github.com/google/uuid"
	"github.com/state244/hub/internal/domain/membership"
)

// ProfileModel is the persistence model for profiles
type ProfileModel struct {
	BaseModel
	Email           string     `gorm:"type:varchar(254);index"`
	Username        string     `gorm:"type:varchar(32)"`
	Role            string     `gorm:"type:varchar(16);not null;default:user;index"`
	AllianceID      *uuid.UUID `gorm:"type:uuid;index"`
	CanEditAlliance bool       `gorm:"not null;default:false"`
	GamePlayerID    string     `gorm:"type:varchar(20)"`
}

// TableName returns the table name for GORM
func (ProfileModel) TableName() string {
	return "profiles"
}

// ToDomain converts the model to a domain profile
func (m *ProfileModel) ToDomain() *membership.Profile {
	return &membership.Profile{
		BaseEntity:      m.BaseModel.ToDomain(),
		Email:           m.Email,
		Username:        m.Username,
		Role:            membership.Role(m.Role),
		AllianceID:      m.AllianceID,
		CanEditAlliance: m.CanEditAlliance,
		GamePlayerID:    m.GamePlayerID,
	}
}

// ProfileModelFromDomain creates a model from a domain profile
func ProfileModelFromDomain(p *membership.Profile) *ProfileModel {
	m := &ProfileModel{
		Email:           p.Email,
		Username:        p.Username,
		Role:            string(p.Role),
		AllianceID:      p.AllianceID,
		CanEditAlliance: p.CanEditAlliance,
		GamePlayerID:    p.GamePlayerID,
	}
	m.FromDomainBaseEntity(p.BaseEntity)
	return m
}

// AllianceModel is the persistence model for alliances
type AllianceModel struct {
	BaseModel
	Tag               string     `gorm:"type:varchar(5);not null;uniqueIndex"`
	Name              string     `gorm:"type:varchar(50);not null;uniqueIndex"`
	Description       string     `gorm:"type:text"`
	RecruitmentStatus string     `gorm:"type:varchar(16);not null;default:open"`
	Language          string     `gorm:"type:varchar(32)"`
	DiscordURL        string     `gorm:"type:varchar(255)"`
	Power             int64      `gorm:"not null;default:0"`
	MemberCount       int        `gorm:"not null;default:0"`
	LeaderID          *uuid.UUID `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (AllianceModel) TableName() string {
	return "alliances"
}

// ToDomain converts the model to a domain alliance
func (m *AllianceModel) ToDomain() *membership.Alliance {
	return &membership.Alliance{
		BaseEntity:        m.BaseModel.ToDomain(),
		Tag:               m.Tag,
		Name:              m.Name,
		Description:       m.Description,
		RecruitmentStatus: membership.RecruitmentStatus(m.RecruitmentStatus),
		Language:          m.Language,
		DiscordURL:        m.DiscordURL,
		Power:             m.Power,
		MemberCount:       m.MemberCount,
		LeaderID:          m.LeaderID,
	}
}

// AllianceModelFromDomain creates a model from a domain alliance
func AllianceModelFromDomain(a *membership.Alliance) *AllianceModel {
	m := &AllianceModel{
		Tag:               a.Tag,
		Name:              a.Name,
		Description:       a.Description,
		RecruitmentStatus: string(a.RecruitmentStatus),
		Language:          a.Language,
		DiscordURL:        a.DiscordURL,
		Power:             a.Power,
		MemberCount:       a.MemberCount,
		LeaderID:          a.LeaderID,
	}
	m.FromDomainBaseEntity(a.BaseEntity)
	return m
}
