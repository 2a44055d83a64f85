package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/state244/hub/internal/domain/shared"
)

// BaseModel provides common persistence fields and maps to shared.BaseEntity
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// ToDomain converts BaseModel to domain BaseEntity
func (m *BaseModel) ToDomain() shared.BaseEntity {
	return shared.BaseEntity{
		ID:        m.ID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomainBaseEntity populates BaseModel from domain BaseEntity
func (m *BaseModel) FromDomainBaseEntity(e shared.BaseEntity) {
	m.ID = e.ID
	m.CreatedAt = e.CreatedAt
	m.UpdatedAt = e.UpdatedAt
}

// All lists every model for AutoMigrate in tests and local development
func All() []any {
	return []any{
		&ProfileModel{},
		&AllianceModel{},
		&ApplicationModel{},
		&SectionModel{},
		&ProposalModel{},
		&VoteModel{},
		&WarPlanModel{},
		&RosterPlayerModel{},
		&AssignmentModel{},
		&ContactMessageModel{},
		&GeneratedImageModel{},
		&RateLimitModel{},
	}
}
