package shared

// EventSource is an aggregate that records events while it changes
type EventSource interface {
	Events() []DomainEvent
	PullEvents() []DomainEvent
}

// BaseAggregateRoot is embedded by aggregates that raise events. Services
// pull and publish the events once the change is persisted.
type BaseAggregateRoot struct {
	BaseEntity
	pending []DomainEvent
}

// NewBaseAggregateRoot creates an aggregate root with a fresh id
func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{BaseEntity: NewBaseEntity()}
}

// Record queues an event for publication
func (a *BaseAggregateRoot) Record(event DomainEvent) {
	a.pending = append(a.pending, event)
}

// Events returns the queued events without removing them
func (a *BaseAggregateRoot) Events() []DomainEvent {
	return a.pending
}

// PullEvents returns the queued events and empties the queue
func (a *BaseAggregateRoot) PullEvents() []DomainEvent {
	events := a.pending
	a.pending = nil
	return events
}
