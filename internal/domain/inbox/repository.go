package inbox

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/state244/hub/internal/domain/shared"
)

// MessageRepository persists contact messages
type MessageRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ContactMessage, error)
	FindAll(ctx context.Context, filter MessageFilter) ([]*ContactMessage, int64, error)
	Create(ctx context.Context, m *ContactMessage) error
	Update(ctx context.Context, m *ContactMessage) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByStatus(ctx context.Context, status Status) (int64, error)
	// DeleteArchivedBefore removes archived messages not touched since cutoff
	DeleteArchivedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// MessageFilter narrows inbox listings
type MessageFilter struct {
	shared.Filter
	Status *Status
}
