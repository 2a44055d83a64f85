// Package realtime fans domain events out to connected clients, either within
// one process or across instances through Redis pub/sub.
package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/state244/hub/internal/domain/shared"
)

// Envelope is the wire form of a domain event
type Envelope struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	Audience   shared.Audience `json:"audience"`
	AllianceID *uuid.UUID      `json:"alliance_id,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
	Data       json.RawMessage `json:"data"`
}

// NewEnvelope serializes an event together with its delivery scope
func NewEnvelope(event shared.DomainEvent) (Envelope, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return Envelope{}, fmt.Errorf("failed to marshal %s event: %w", event.EventType(), err)
	}
	audience, allianceID := event.Scope()
	return Envelope{
		ID:         event.EventID().String(),
		Type:       event.EventType(),
		Audience:   audience,
		AllianceID: allianceID,
		OccurredAt: event.OccurredAt(),
		Data:       data,
	}, nil
}

// Broker publishes events and delivers them to subscribers
type Broker interface {
	shared.EventPublisher
	// Subscribe calls handler for every envelope until ctx is done. It blocks.
	Subscribe(ctx context.Context, handler func(Envelope)) error
	Close() error
}

// MemoryBroker delivers events to subscribers in the same process
type MemoryBroker struct {
	mu     sync.RWMutex
	nextID int
	subs   map[int]func(Envelope)
}

// NewMemoryBroker creates an in-process broker
func NewMemoryBroker() *MemoryBroker {
	return &MemoryBroker{subs: make(map[int]func(Envelope))}
}

// Publish implements shared.EventPublisher
func (b *MemoryBroker) Publish(_ context.Context, events ...shared.DomainEvent) error {
	for _, event := range events {
		env, err := NewEnvelope(event)
		if err != nil {
			return err
		}
		b.mu.RLock()
		for _, handler := range b.subs {
			handler(env)
		}
		b.mu.RUnlock()
	}
	return nil
}

// Subscribe implements Broker
func (b *MemoryBroker) Subscribe(ctx context.Context, handler func(Envelope)) error {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = handler
	b.mu.Unlock()

	<-ctx.Done()

	b.mu.Lock()
	delete(b.subs, id)
	b.mu.Unlock()
	return ctx.Err()
}

// Close implements Broker
func (b *MemoryBroker) Close() error {
	return nil
}

var _ Broker = (*MemoryBroker)(nil)
