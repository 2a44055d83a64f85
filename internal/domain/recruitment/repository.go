package recruitment

import (
	"context"

	"github.com/google/uuid"
	"github.com/state244/hub/internal/domain/shared"
)

// ApplicationRepository persists migration applications
type ApplicationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Application, error)
	FindAll(ctx context.Context, filter ApplicationFilter) ([]*Application, int64, error)
	Create(ctx context.Context, app *Application) error
	Update(ctx context.Context, app *Application) error
	CountByStatus(ctx context.Context, allianceID *uuid.UUID) (map[Status]int64, error)
}

// ApplicationFilter narrows application listings
type ApplicationFilter struct {
	shared.Filter
	Status     *Status
	AllianceID *uuid.UUID
}
