package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/state244/hub/internal/domain/shared"
	"github.com/state244/hub/internal/domain/warplan"
)

// WarPlanModel is the persistence model for war plans
type WarPlanModel struct {
	BaseModel
	AllianceID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Title       string    `gorm:"type:varchar(100);not null"`
	EventType   string    `gorm:"type:varchar(16);not null"`
	ScheduledAt *time.Time
	Notes       string    `gorm:"type:text"`
	CreatedBy   uuid.UUID `gorm:"type:uuid;not null"`
}

// TableName returns the table name for GORM
func (WarPlanModel) TableName() string {
	return "war_plans"
}

// ToDomain converts the model to a domain plan
func (m *WarPlanModel) ToDomain() *warplan.Plan {
	return &warplan.Plan{
		BaseAggregateRoot: shared.BaseAggregateRoot{BaseEntity: m.BaseModel.ToDomain()},
		AllianceID:        m.AllianceID,
		Title:             m.Title,
		EventType:         warplan.EventType(m.EventType),
		ScheduledAt:       m.ScheduledAt,
		Notes:             m.Notes,
		CreatedBy:         m.CreatedBy,
	}
}

// WarPlanModelFromDomain creates a model from a domain plan
func WarPlanModelFromDomain(p *warplan.Plan) *WarPlanModel {
	m := &WarPlanModel{
		AllianceID:  p.AllianceID,
		Title:       p.Title,
		EventType:   string(p.EventType),
		ScheduledAt: p.ScheduledAt,
		Notes:       p.Notes,
		CreatedBy:   p.CreatedBy,
	}
	m.FromDomainBaseEntity(p.BaseEntity)
	return m
}

// RosterPlayerModel is the persistence model for roster players
type RosterPlayerModel struct {
	BaseModel
	PlanID     uuid.UUID `gorm:"column:war_plan_id;type:uuid;not null;index"`
	PlayerName string    `gorm:"type:varchar(50);not null"`
	Power      int64     `gorm:"not null;default:0"`
	TroopType  string    `gorm:"type:varchar(16);not null"`
	Notes      string    `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (RosterPlayerModel) TableName() string {
	return "war_roster_players"
}

// ToDomain converts the model to a domain roster player
func (m *RosterPlayerModel) ToDomain() *warplan.RosterPlayer {
	return &warplan.RosterPlayer{
		BaseEntity: m.BaseModel.ToDomain(),
		PlanID:     m.PlanID,
		PlayerName: m.PlayerName,
		Power:      m.Power,
		TroopType:  warplan.TroopType(m.TroopType),
		Notes:      m.Notes,
	}
}

// RosterPlayerModelFromDomain creates a model from a domain roster player
func RosterPlayerModelFromDomain(r *warplan.RosterPlayer) *RosterPlayerModel {
	m := &RosterPlayerModel{
		PlanID:     r.PlanID,
		PlayerName: r.PlayerName,
		Power:      r.Power,
		TroopType:  string(r.TroopType),
		Notes:      r.Notes,
	}
	m.FromDomainBaseEntity(r.BaseEntity)
	return m
}

// AssignmentModel is the persistence model for team assignments. The
// primary key on (war_plan_id, player_id) is the upsert conflict target.
type AssignmentModel struct {
	PlanID    uuid.UUID `gorm:"column:war_plan_id;type:uuid;primaryKey"`
	PlayerID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	Team      string    `gorm:"type:varchar(32);not null"`
	Position  int       `gorm:"not null;default:0"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (AssignmentModel) TableName() string {
	return "war_plan_assignments"
}

// ToDomain converts the model to a domain assignment
func (m *AssignmentModel) ToDomain() *warplan.Assignment {
	return &warplan.Assignment{
		PlanID:   m.PlanID,
		PlayerID: m.PlayerID,
		Team:     m.Team,
		Position: m.Position,
	}
}

// AssignmentModelFromDomain creates a model from a domain assignment
func AssignmentModelFromDomain(a *warplan.Assignment) *AssignmentModel {
	return &AssignmentModel{
		PlanID:    a.PlanID,
		PlayerID:  a.PlayerID,
		Team:      a.Team,
		Position:  a.Position,
		UpdatedAt: time.Now(),
	}
}
