package shared

import "context"

// EventPublisher publishes domain events
type EventPublisher interface {
	// Publish publishes one or more domain events
	Publish(ctx context.Context, events ...DomainEvent) error
}

// NopPublisher drops every event
type NopPublisher struct{}

// Publish implements EventPublisher
func (NopPublisher) Publish(context.Context, ...DomainEvent) error { return nil }

// PublishPending publishes and clears the events an aggregate collected
func PublishPending(ctx context.Context, publisher EventPublisher, agg EventSource) error {
	events := agg.PullEvents()
	if len(events) == 0 || publisher == nil {
		return nil
	}
	return publisher.Publish(ctx, events...)
}
