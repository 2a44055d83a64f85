package realtime

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/state244/hub/internal/domain/membership"
	"github.com/state244/hub/internal/domain/shared"
	"go.uber.org/zap"
)

// ErrTooManyClients is returned when the hub is at capacity
var ErrTooManyClients = errors.New("maximum number of realtime connections reached")

const clientBufferSize = 64

// Subscriber identifies who is on the other end of a connection
type Subscriber struct {
	UserID     uuid.UUID
	Role       membership.Role
	AllianceID *uuid.UUID
}

// CanReceive applies the delivery scope of an envelope to a subscriber
func (s Subscriber) CanReceive(env Envelope) bool {
	switch env.Audience {
	case shared.AudienceEveryone:
		return true
	case shared.AudienceAdmins:
		return s.Role == membership.RoleAdmin
	case shared.AudienceAlliance:
		if s.Role.IsStateLeadership() {
			return true
		}
		return env.AllianceID != nil && s.Role.IsAllianceRole() &&
			s.AllianceID != nil && *s.AllianceID == *env.AllianceID
	default:
		return false
	}
}

// Message is one server-sent event
type Message struct {
	Event string
	ID    string
	Data  string
}

// Client is a registered connection
type Client struct {
	ID string
	Subscriber

	messages chan Message
	done     chan struct{}
}

// Messages returns the client's outbound queue
func (c *Client) Messages() <-chan Message { return c.messages }

// Done is closed when the hub drops the client
func (c *Client) Done() <-chan struct{} { return c.done }

// Hub tracks connected clients and routes broker envelopes to them
type Hub struct {
	broker     Broker
	logger     *zap.Logger
	heartbeat  time.Duration
	maxClients int
	gauge      prometheus.Gauge

	mu      sync.RWMutex
	clients map[string]*Client
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// HubOption configures a Hub
type HubOption func(*Hub)

// WithHeartbeat sets the heartbeat interval
func WithHeartbeat(d time.Duration) HubOption {
	return func(h *Hub) { h.heartbeat = d }
}

// WithMaxClients caps concurrent connections; zero means unlimited
func WithMaxClients(n int) HubOption {
	return func(h *Hub) { h.maxClients = n }
}

// WithConnectionGauge reports the connection count
func WithConnectionGauge(g prometheus.Gauge) HubOption {
	return func(h *Hub) { h.gauge = g }
}

// NewHub creates a hub fed by broker
func NewHub(broker Broker, logger *zap.Logger, opts ...HubOption) *Hub {
	h := &Hub{
		broker:    broker,
		logger:    logger,
		heartbeat: 30 * time.Second,
		clients:   make(map[string]*Client),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Start subscribes to the broker and begins heartbeats
func (h *Hub) Start(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.cancel != nil {
		return fmt.Errorf("realtime hub already started")
	}
	ctx, cancel := context.WithCancel(ctx)
	h.cancel = cancel

	h.wg.Add(2)
	go func() {
		defer h.wg.Done()
		if err := h.broker.Subscribe(ctx, h.Dispatch); err != nil && ctx.Err() == nil {
			h.logger.Error("Realtime subscription ended", zap.Error(err))
		}
	}()
	go func() {
		defer h.wg.Done()
		h.sendHeartbeats(ctx)
	}()

	h.logger.Info("Realtime hub started", zap.Duration("heartbeat", h.heartbeat))
	return nil
}

// Stop disconnects every client and waits for background work
func (h *Hub) Stop() {
	h.mu.Lock()
	if h.cancel != nil {
		h.cancel()
	}
	for id, c := range h.clients {
		close(c.done)
		delete(h.clients, id)
	}
	h.setGauge()
	h.mu.Unlock()

	h.wg.Wait()
	h.logger.Info("Realtime hub stopped")
}

// Register adds a connection
func (h *Hub) Register(sub Subscriber) (*Client, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.maxClients > 0 && len(h.clients) >= h.maxClients {
		return nil, ErrTooManyClients
	}
	c := &Client{
		ID:         uuid.NewString(),
		Subscriber: sub,
		messages:   make(chan Message, clientBufferSize),
		done:       make(chan struct{}),
	}
	h.clients[c.ID] = c
	h.setGauge()
	return c, nil
}

// Unregister removes a connection. Calling it twice is harmless.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c.ID]; !ok {
		return
	}
	delete(h.clients, c.ID)
	close(c.done)
	h.setGauge()
}

// Dispatch queues an envelope for every client allowed to see it. Slow
// clients lose messages rather than block the broker.
func (h *Hub) Dispatch(env Envelope) {
	msg := Message{Event: env.Type, ID: env.ID, Data: string(env.Data)}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients {
		if !c.CanReceive(env) {
			continue
		}
		select {
		case c.messages <- msg:
		default:
			h.logger.Warn("Realtime client queue full, dropping message",
				zap.String("client_id", c.ID),
				zap.String("event", env.Type))
		}
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) sendHeartbeats(ctx context.Context) {
	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			h.broadcast(Message{Event: "heartbeat", Data: fmt.Sprintf(`{"timestamp":%d}`, now.Unix())})
		}
	}
}

func (h *Hub) broadcast(msg Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients {
		select {
		case c.messages <- msg:
		default:
		}
	}
}

// setGauge must be called with mu held
func (h *Hub) setGauge() {
	if h.gauge != nil {
		h.gauge.Set(float64(len(h.clients)))
	}
}
