// Package scheduler runs the hub's periodic maintenance jobs on cron schedules.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/state244/hub/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

const defaultJobTimeout = 5 * time.Minute

var (
	// ErrAlreadyStarted rejects registration once the cron is running
	ErrAlreadyStarted = errors.New("scheduler already started")
	// ErrInvalidConfig covers bad schedules and duplicate job names
	ErrInvalidConfig = errors.New("invalid scheduler configuration")
)

// BatchJob processes one batch and reports how many items it touched
type BatchJob interface {
	Name() string
	Execute(ctx context.Context) (int64, error)
}

// Manager owns the cron instance and the registered jobs
type Manager struct {
	cron       *cron.Cron
	logger     *zap.Logger
	metrics    *telemetry.BusinessMetrics
	jobTimeout time.Duration

	mu      sync.Mutex
	started bool
	entries map[string]cron.EntryID
}

// NewManager creates a manager. Schedules are evaluated in UTC.
func NewManager(logger *zap.Logger, jobTimeout time.Duration) *Manager {
	if jobTimeout <= 0 {
		jobTimeout = defaultJobTimeout
	}
	return &Manager{
		cron: cron.New(
			cron.WithLocation(time.UTC),
			cron.WithChain(cron.Recover(cron.DefaultLogger), cron.SkipIfStillRunning(cron.DefaultLogger)),
		),
		logger:     logger,
		jobTimeout: jobTimeout,
		entries:    make(map[string]cron.EntryID),
	}
}

// SetBusinessMetrics records job outcomes
func (m *Manager) SetBusinessMetrics(bm *telemetry.BusinessMetrics) {
	m.metrics = bm
}

// Register schedules job with a standard five-field spec or a descriptor like "@every 1h"
func (m *Manager) Register(spec string, job BatchJob) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.started {
		return ErrAlreadyStarted
	}
	if _, ok := m.entries[job.Name()]; ok {
		return fmt.Errorf("%w: job %q registered twice", ErrInvalidConfig, job.Name())
	}

	id, err := m.cron.AddFunc(spec, func() { m.Run(context.Background(), job) })
	if err != nil {
		return fmt.Errorf("%w: job %q: %v", ErrInvalidConfig, job.Name(), err)
	}
	m.entries[job.Name()] = id
	m.logger.Info("Registered scheduled job", zap.String("job", job.Name()), zap.String("spec", spec))
	return nil
}

// Run executes job once with the configured timeout
func (m *Manager) Run(ctx context.Context, job BatchJob) {
	ctx, cancel := context.WithTimeout(ctx, m.jobTimeout)
	defer cancel()

	start := time.Now()
	count, err := job.Execute(ctx)
	m.metrics.JobRun(job.Name(), err)
	if err != nil {
		m.logger.Error("Scheduled job failed",
			zap.String("job", job.Name()),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err))
		return
	}
	m.logger.Info("Scheduled job completed",
		zap.String("job", job.Name()),
		zap.Int64("count", count),
		zap.Duration("duration", time.Since(start)))
}

// Next returns the next run time of a registered job
func (m *Manager) Next(name string) (time.Time, bool) {
	m.mu.Lock()
	id, ok := m.entries[name]
	m.mu.Unlock()
	if !ok {
		return time.Time{}, false
	}
	return m.cron.Entry(id).Next, true
}

// Start begins running jobs in the background
func (m *Manager) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.started {
		return
	}
	m.started = true
	m.cron.Start()
	m.logger.Info("Scheduler started", zap.Int("jobs", len(m.entries)))
}

// Stop prevents new runs and waits for running jobs or ctx, whichever comes first
func (m *Manager) Stop(ctx context.Context) error {
	m.mu.Lock()
	started := m.started
	m.mu.Unlock()
	if !started {
		return nil
	}

	done := m.cron.Stop()
	select {
	case <-done.Done():
		m.logger.Info("Scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
