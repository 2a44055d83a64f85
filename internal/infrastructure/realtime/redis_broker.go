package realtime

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/state244/hub/internal/domain/shared"
	"go.uber.org/zap"
)

// RedisBroker relays events through a Redis pub/sub channel so every hub
// instance sees events raised on any other
type RedisBroker struct {
	client  redis.UniversalClient
	channel string
	logger  *zap.Logger
}

// NewRedisBroker creates a broker on an existing client. The caller keeps
// ownership of the client.
func NewRedisBroker(client redis.UniversalClient, channel string, logger *zap.Logger) *RedisBroker {
	return &RedisBroker{client: client, channel: channel, logger: logger}
}

// Publish implements shared.EventPublisher
func (b *RedisBroker) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	for _, event := range events {
		env, err := NewEnvelope(event)
		if err != nil {
			return err
		}
		data, err := json.Marshal(env)
		if err != nil {
			return fmt.Errorf("failed to marshal envelope: %w", err)
		}
		if err := b.client.Publish(ctx, b.channel, data).Err(); err != nil {
			b.logger.Error("Failed to publish realtime event",
				zap.String("channel", b.channel),
				zap.String("event_type", env.Type),
				zap.Error(err))
			return fmt.Errorf("failed to publish event: %w", err)
		}
	}
	return nil
}

// Subscribe implements Broker
func (b *RedisBroker) Subscribe(ctx context.Context, handler func(Envelope)) error {
	pubsub := b.client.Subscribe(ctx, b.channel)
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to channel: %w", err)
	}
	b.logger.Info("Subscribed to realtime channel", zap.String("channel", b.channel))

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				b.logger.Warn("Realtime channel closed")
				return nil
			}
			var env Envelope
			if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
				b.logger.Error("Failed to unmarshal realtime event",
					zap.String("payload", msg.Payload),
					zap.Error(err))
				continue
			}
			handler(env)
		}
	}
}

// Close implements Broker
func (b *RedisBroker) Close() error {
	return nil
}

var _ Broker = (*RedisBroker)(nil)
