package creative

import (
	"time"

	"github.com/google/uuid"
)

// Action names a rate-limited operation
type Action string

const (
	ActionText  Action = "ai_text"
	ActionImage Action = "ai_image"
)

// Quota is a fixed-window allowance per user
type Quota struct {
	Action Action
	Limit  int
	Window time.Duration
}

// WindowStart returns the start of the window containing t
func (q Quota) WindowStart(t time.Time) time.Time {
	return t.UTC().Truncate(q.Window)
}

// WindowEnd returns when the window containing t closes
func (q Quota) WindowEnd(t time.Time) time.Time {
	return q.WindowStart(t).Add(q.Window)
}

// Usage is the counter for one user, action and window
type Usage struct {
	UserID      uuid.UUID
	Action      Action
	WindowStart time.Time
	Count       int
}

// Exceeded reports whether count has gone past the quota
func (q Quota) Exceeded(count int) bool {
	return q.Limit > 0 && count > q.Limit
}
