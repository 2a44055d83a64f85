package email

import (
	"context"
	"sync"
	"time"

	"github.com/state244/hub/internal/domain/inbox"
	"github.com/state244/hub/internal/domain/recruitment"
	"go.uber.org/zap"
)

const (
	defaultQueueSize = 100
	sendTimeout      = 30 * time.Second
)

// AsyncNotifier hands notifications to a background worker so requests never
// wait on SMTP. Delivery is best effort: a full queue drops the notification.
type AsyncNotifier struct {
	next   Notifier
	logger *zap.Logger
	jobs   chan func(context.Context) error

	closeOnce sync.Once
	wg        sync.WaitGroup
}

// NewAsyncNotifier starts the worker
func NewAsyncNotifier(next Notifier, logger *zap.Logger) *AsyncNotifier {
	n := &AsyncNotifier{
		next:   next,
		logger: logger,
		jobs:   make(chan func(context.Context) error, defaultQueueSize),
	}
	n.wg.Add(1)
	go n.run()
	return n
}

func (n *AsyncNotifier) run() {
	defer n.wg.Done()
	for job := range n.jobs {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		if err := job(ctx); err != nil {
			n.logger.Warn("Notification failed", zap.Error(err))
		}
		cancel()
	}
}

func (n *AsyncNotifier) enqueue(kind string, job func(context.Context) error) error {
	select {
	case n.jobs <- job:
	default:
		n.logger.Warn("Notification queue full, dropping", zap.String("kind", kind))
	}
	return nil
}

// NotifyContactMessage implements Notifier
func (n *AsyncNotifier) NotifyContactMessage(_ context.Context, to []string, m *inbox.ContactMessage) error {
	return n.enqueue("contact", func(ctx context.Context) error {
		return n.next.NotifyContactMessage(ctx, to, m)
	})
}

// NotifyApplicationDecision implements Notifier
func (n *AsyncNotifier) NotifyApplicationDecision(_ context.Context, to string, app *recruitment.Application, allianceName string) error {
	return n.enqueue("decision", func(ctx context.Context) error {
		return n.next.NotifyApplicationDecision(ctx, to, app, allianceName)
	})
}

// Close stops accepting work and waits for queued notifications
func (n *AsyncNotifier) Close() {
	n.closeOnce.Do(func() { close(n.jobs) })
	n.wg.Wait()
}
