package shared

import (
	"time"

	"github.com/google/uuid"
)

// Audience controls which connected clients receive an event
type Audience string

const (
	// AudienceEveryone delivers to every authenticated client
	AudienceEveryone Audience = "everyone"
	// AudienceAlliance delivers to members of AllianceID plus state leadership
	AudienceAlliance Audience = "alliance"
	// AudienceAdmins delivers to admins only
	AudienceAdmins Audience = "admins"
)

// DomainEvent represents an event that occurred in the domain
type DomainEvent interface {
	EventID() uuid.UUID
	EventType() string
	OccurredAt() time.Time
	AggregateID() uuid.UUID
	AggregateType() string
	// Scope returns the audience and, for AudienceAlliance, the alliance
	Scope() (Audience, *uuid.UUID)
}

// BaseDomainEvent provides common fields for all domain events
type BaseDomainEvent struct {
	ID         uuid.UUID  `json:"id"`
	Type       string     `json:"type"`
	Timestamp  time.Time  `json:"timestamp"`
	AggID      uuid.UUID  `json:"aggregate_id"`
	AggType    string     `json:"aggregate_type"`
	Visibility Audience   `json:"audience"`
	AllianceID *uuid.UUID `json:"alliance_id,omitempty"`
}

func (e *BaseDomainEvent) EventID() uuid.UUID     { return e.ID }
func (e *BaseDomainEvent) EventType() string      { return e.Type }
func (e *BaseDomainEvent) OccurredAt() time.Time  { return e.Timestamp }
func (e *BaseDomainEvent) AggregateID() uuid.UUID { return e.AggID }
func (e *BaseDomainEvent) AggregateType() string  { return e.AggType }

// Scope implements DomainEvent
func (e *BaseDomainEvent) Scope() (Audience, *uuid.UUID) {
	return e.Visibility, e.AllianceID
}

// NewBaseDomainEvent creates a base event visible to the given audience
func NewBaseDomainEvent(eventType, aggType string, aggID uuid.UUID, audience Audience, allianceID *uuid.UUID) BaseDomainEvent {
	return BaseDomainEvent{
		ID:         uuid.New(),
		Type:       eventType,
		Timestamp:  time.Now(),
		AggID:      aggID,
		AggType:    aggType,
		Visibility: audience,
		AllianceID: allianceID,
	}
}
