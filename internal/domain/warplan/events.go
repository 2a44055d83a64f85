package warplan

import "github.com/state244/hub/internal/domain/shared"

const (
	AggregateTypePlan = "WarPlan"

	EventPlanChanged = "warplan.changed"
)

// PlanChangedEvent tells alliance clients a plan needs refreshing
type PlanChangedEvent struct {
	shared.BaseDomainEvent
	Change string `json:"change"`
}

// NewPlanChangedEvent builds an alliance-scoped change event
func NewPlanChangedEvent(p *Plan, change string) *PlanChangedEvent {
	allianceID := p.AllianceID
	return &PlanChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventPlanChanged, AggregateTypePlan, p.ID, shared.AudienceAlliance, &allianceID),
		Change:          change,
	}
}
