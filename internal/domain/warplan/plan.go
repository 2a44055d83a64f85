package warplan

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/state244/hub/internal/domain/membership"
	"github.com/state244/hub/internal/domain/shared"
)

// EventType names the in-game event a plan prepares for
type EventType string

const (
	EventSvS      EventType = "svs"
	EventBearTrap EventType = "bear_trap"
	EventFoundry  EventType = "foundry"
	EventCanyon   EventType = "canyon"
	EventOther    EventType = "other"
)

// IsValid reports whether e is a known event type
func (e EventType) IsValid() bool {
	switch e {
	case EventSvS, EventBearTrap, EventFoundry, EventCanyon, EventOther:
		return true
	}
	return false
}

const (
	maxPlanTitleLen = 100
	maxNotesLen     = 5000
)

// Plan is an alliance's roster and team layout for one event
type Plan struct {
	shared.BaseAggregateRoot
	AllianceID  uuid.UUID
	Title       string
	EventType   EventType
	ScheduledAt *time.Time
	Notes       string
	CreatedBy   uuid.UUID
}

// PlanInput carries editable plan fields. Nil means unchanged.
type PlanInput struct {
	Title       *string
	EventType   *EventType
	ScheduledAt *time.Time
	Notes       *string
}

// NewPlan creates a plan for an alliance
func NewPlan(allianceID, createdBy uuid.UUID, in PlanInput) (*Plan, error) {
	if in.Title == nil {
		return nil, shared.NewInvalidInputError("title is required")
	}
	p := &Plan{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		AllianceID:        allianceID,
		EventType:         EventOther,
		CreatedBy:         createdBy,
	}
	if err := p.Apply(in); err != nil {
		return nil, err
	}
	return p, nil
}

// Apply validates and applies the non-nil fields
func (p *Plan) Apply(in PlanInput) error {
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if n := membership.RuneLen(title); n < 1 || n > maxPlanTitleLen {
			return shared.NewInvalidInputError("title must be 1 to 100 characters")
		}
		p.Title = title
	}
	if in.EventType != nil {
		if !in.EventType.IsValid() {
			return shared.NewInvalidInputError("unknown event type %q", *in.EventType)
		}
		p.EventType = *in.EventType
	}
	if in.ScheduledAt != nil {
		at := in.ScheduledAt.UTC()
		p.ScheduledAt = &at
	}
	if in.Notes != nil {
		if membership.RuneLen(*in.Notes) > maxNotesLen {
			return shared.NewInvalidInputError("notes cannot exceed 5000 characters")
		}
		p.Notes = *in.Notes
	}
	p.Touch()
	return nil
}

// MarkChanged raises the event clients use to refresh the plan
func (p *Plan) MarkChanged(change string) {
	p.Record(NewPlanChangedEvent(p, change))
}
