package scheduler

import (
	"context"
	"time"

	"github.com/state244/hub/internal/domain/creative"
	"github.com/state244/hub/internal/domain/inbox"
)

const (
	JobRateLimitPurge = "rate_limit_purge"
	JobInboxRetention = "inbox_retention"
)

// RateLimitPurgeJob drops quota windows older than keep
type RateLimitPurgeJob struct {
	store creative.RateLimitStore
	keep  time.Duration
	now   func() time.Time
}

// NewRateLimitPurgeJob creates the purge job
func NewRateLimitPurgeJob(store creative.RateLimitStore, keep time.Duration) *RateLimitPurgeJob {
	return &RateLimitPurgeJob{store: store, keep: keep, now: time.Now}
}

func (j *RateLimitPurgeJob) Name() string { return JobRateLimitPurge }

func (j *RateLimitPurgeJob) Execute(ctx context.Context) (int64, error) {
	return j.store.PurgeBefore(ctx, j.now().UTC().Add(-j.keep))
}

// InboxRetentionJob deletes archived contact messages past the retention period
type InboxRetentionJob struct {
	repo      inbox.MessageRepository
	retention time.Duration
	now       func() time.Time
}

// NewInboxRetentionJob creates the retention job
func NewInboxRetentionJob(repo inbox.MessageRepository, retention time.Duration) *InboxRetentionJob {
	return &InboxRetentionJob{repo: repo, retention: retention, now: time.Now}
}

func (j *InboxRetentionJob) Name() string { return JobInboxRetention }

func (j *InboxRetentionJob) Execute(ctx context.Context) (int64, error) {
	return j.repo.DeleteArchivedBefore(ctx, j.now().UTC().Add(-j.retention))
}
