package scheduler

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/state244/hub/internal/domain/creative"
	"github.com/state244/hub/internal/domain/inbox"
	"github.com/state244/hub/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type fakeJob struct {
	name  string
	count int64
	err   error
	runs  atomic.Int32
	block time.Duration
}

func (j *fakeJob) Name() string { return j.name }

func (j *fakeJob) Execute(ctx context.Context) (int64, error) {
	j.runs.Add(1)
	if j.block > 0 {
		select {
		case <-time.After(j.block):
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}
	return j.count, j.err
}

func TestManager_Register(t *testing.T) {
	m := NewManager(zaptest.NewLogger(t), time.Second)

	require.NoError(t, m.Register("@every 1h", &fakeJob{name: "a"}))
	require.NoError(t, m.Register("0 3 * * *", &fakeJob{name: "b"}))

	err := m.Register("@every 1h", &fakeJob{name: "a"})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	err = m.Register("not a cron", &fakeJob{name: "c"})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, ok := m.Next("missing")
	assert.False(t, ok)
}

func TestManager_NextRunUsesUTC(t *testing.T) {
	m := NewManager(zaptest.NewLogger(t), time.Second)
	require.NoError(t, m.Register("0 3 * * *", &fakeJob{name: "nightly"}))

	m.Start()
	defer func() { require.NoError(t, m.Stop(context.Background())) }()

	next, ok := m.Next("nightly")
	require.True(t, ok)
	assert.Equal(t, 3, next.UTC().Hour())
	assert.Equal(t, 0, next.UTC().Minute())
	assert.True(t, next.After(time.Now()))

	assert.ErrorIs(t, m.Register("@every 1h", &fakeJob{name: "late"}), ErrAlreadyStarted)
}

func TestManager_Run(t *testing.T) {
	metrics := telemetry.NewMetrics("test")
	m := NewManager(zaptest.NewLogger(t), time.Second)
	m.SetBusinessMetrics(metrics.Business())

	ok := &fakeJob{name: "ok", count: 3}
	bad := &fakeJob{name: "bad", err: errors.New("boom")}
	m.Run(context.Background(), ok)
	m.Run(context.Background(), bad)
	m.Run(context.Background(), bad)

	assert.Equal(t, int32(1), ok.runs.Load())
	assert.Equal(t, int32(2), bad.runs.Load())

	expected := `
# HELP test_scheduler_job_runs_total Scheduled job executions.
# TYPE test_scheduler_job_runs_total counter
test_scheduler_job_runs_total{job="bad",outcome="error"} 2
test_scheduler_job_runs_total{job="ok",outcome="ok"} 1
`
	require.NoError(t, testutil.GatherAndCompare(metrics.Registry(), strings.NewReader(expected), "test_scheduler_job_runs_total"))
}

func TestManager_RunHonoursTimeout(t *testing.T) {
	m := NewManager(zaptest.NewLogger(t), 20*time.Millisecond)
	job := &fakeJob{name: "slow", block: time.Second}

	start := time.Now()
	m.Run(context.Background(), job)
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestManager_StopWithoutStart(t *testing.T) {
	m := NewManager(zaptest.NewLogger(t), 0)
	assert.Equal(t, defaultJobTimeout, m.jobTimeout)
	assert.NoError(t, m.Stop(context.Background()))
}

type fakeRateLimitStore struct {
	cutoff time.Time
}

func (s *fakeRateLimitStore) Increment(context.Context, uuid.UUID, creative.Action, time.Time, time.Duration) (int, error) {
	return 0, nil
}

func (s *fakeRateLimitStore) Decrement(context.Context, uuid.UUID, creative.Action, time.Time) error {
	return nil
}

func (s *fakeRateLimitStore) PurgeBefore(_ context.Context, cutoff time.Time) (int64, error) {
	s.cutoff = cutoff
	return 7, nil
}

type fakeMessageRepo struct {
	inbox.MessageRepository
	cutoff time.Time
}

func (r *fakeMessageRepo) DeleteArchivedBefore(_ context.Context, cutoff time.Time) (int64, error) {
	r.cutoff = cutoff
	return 2, nil
}

func TestJobs(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("rate limit purge keeps recent windows", func(t *testing.T) {
		store := &fakeRateLimitStore{}
		job := NewRateLimitPurgeJob(store, 48*time.Hour)
		job.now = func() time.Time { return now }

		n, err := job.Execute(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(7), n)
		assert.Equal(t, now.Add(-48*time.Hour), store.cutoff)
		assert.Equal(t, JobRateLimitPurge, job.Name())
	})

	t.Run("inbox retention deletes old archived messages", func(t *testing.T) {
		repo := &fakeMessageRepo{}
		job := NewInboxRetentionJob(repo, 90*24*time.Hour)
		job.now = func() time.Time { return now }

		n, err := job.Execute(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)
		assert.Equal(t, now.AddDate(0, 0, -90), repo.cutoff)
		assert.Equal(t, JobInboxRetention, job.Name())
	})
}
