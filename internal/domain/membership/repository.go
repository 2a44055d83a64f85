package membership

import (
	"context"

	"github.com/google/uuid"
	"github.com/state244/hub/internal/domain/shared"
)

// ProfileRepository persists profiles
type ProfileRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Profile, error)
	FindAll(ctx context.Context, filter ProfileFilter) ([]*Profile, int64, error)
	Create(ctx context.Context, profile *Profile) error
	Update(ctx context.Context, profile *Profile) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByRole(ctx context.Context) (map[Role]int64, error)
	// Emails returns addresses of profiles holding any of the roles
	Emails(ctx context.Context, roles ...Role) ([]string, error)
}

// ProfileFilter narrows profile listings
type ProfileFilter struct {
	shared.Filter
	Role       *Role
	AllianceID *uuid.UUID
}

// AllianceRepository persists alliances
type AllianceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Alliance, error)
	FindAll(ctx context.Context, filter AllianceFilter) ([]*Alliance, error)
	Create(ctx context.Context, alliance *Alliance) error
	Update(ctx context.Context, alliance *Alliance) error
	// Delete removes the alliance and detaches its members atomically
	Delete(ctx context.Context, id uuid.UUID) error
}

// AllianceFilter narrows alliance listings
type AllianceFilter struct {
	RecruitmentStatus *RecruitmentStatus
}
