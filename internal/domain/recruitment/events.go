package recruitment

import "github.com/state244/hub/internal/domain/shared"

const (
	AggregateTypeApplication = "MigrationApplication"

	// EventApplicationUpdated covers submission too; a new application
	// arrives with status pending
	EventApplicationUpdated = "application.updated"
)

// ApplicationEvent is raised when an application is created or changes status
type ApplicationEvent struct {
	shared.BaseDomainEvent
	PlayerName string `json:"player_name"`
	Status     Status `json:"status"`
}

// NewApplicationEvent builds an event visible to the target alliance and state leadership
func NewApplicationEvent(eventType string, a *Application) *ApplicationEvent {
	allianceID := a.TargetAllianceID
	return &ApplicationEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, AggregateTypeApplication, a.ID, shared.AudienceAlliance, &allianceID),
		PlayerName:      a.PlayerName,
		Status:          a.Status,
	}
}
