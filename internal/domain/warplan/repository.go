package warplan

import (
	"context"

	"github.com/google/uuid"
)

// PlanRepository persists plans, rosters and assignments
type PlanRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Plan, error)
	FindByAlliance(ctx context.Context, allianceID *uuid.UUID) ([]*Plan, error)
	Create(ctx context.Context, plan *Plan) error
	Update(ctx context.Context, plan *Plan) error
	// Delete removes the plan with its roster and assignments
	Delete(ctx context.Context, id uuid.UUID) error
	CountByAlliance(ctx context.Context, allianceID uuid.UUID) (int64, error)

	FindRoster(ctx context.Context, planID uuid.UUID) ([]*RosterPlayer, error)
	FindRosterPlayer(ctx context.Context, planID, playerID uuid.UUID) (*RosterPlayer, error)
	SaveRosterPlayer(ctx context.Context, player *RosterPlayer) error
	// DeleteRosterPlayer removes the player and their assignment
	DeleteRosterPlayer(ctx context.Context, planID, playerID uuid.UUID) error

	FindAssignments(ctx context.Context, planID uuid.UUID) ([]*Assignment, error)
	// UpsertAssignment inserts or moves the player's assignment
	UpsertAssignment(ctx context.Context, assignment *Assignment) error
	DeleteAssignment(ctx context.Context, planID, playerID uuid.UUID) error
}
