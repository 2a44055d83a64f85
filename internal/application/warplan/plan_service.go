package warplan

import (
	"context"

	"github.com/google/uuid"
	"github.com/state244/hub/internal/domain/membership"
	"github.com/state244/hub/internal/domain/shared"
	"github.com/state244/hub/internal/domain/warplan"
	"go.uber.org/zap"
)

const (
	changePlan       = "plan"
	changeRoster     = "roster"
	changeAssignment = "assignment"
	changeDeleted    = "deleted"
)

// PlanService manages alliance war plans. Officers of the plan's alliance
// and state leadership write; alliance members read.
type PlanService struct {
	plans     warplan.PlanRepository
	alliances membership.AllianceRepository
	publisher shared.EventPublisher
	logger    *zap.Logger
}

// NewPlanService creates a new PlanService
func NewPlanService(
	plans warplan.PlanRepository,
	alliances membership.AllianceRepository,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *PlanService {
	if publisher == nil {
		publisher = shared.NopPublisher{}
	}
	return &PlanService{plans: plans, alliances: alliances, publisher: publisher, logger: logger}
}

// List returns plans the actor can see. Leadership may filter by alliance
// and otherwise sees every plan.
func (s *PlanService) List(ctx context.Context, actor *membership.Profile, allianceID *uuid.UUID) ([]PlanResponse, error) {
	switch {
	case actor.IsStateLeadership():
	case actor.AllianceID != nil && actor.Role.IsAllianceRole():
		if allianceID != nil && *allianceID != *actor.AllianceID {
			return nil, shared.NewForbiddenError("you can only view your alliance's war plans")
		}
		allianceID = actor.AllianceID
	default:
		return nil, shared.NewForbiddenError("join an alliance to view war plans")
	}

	plans, err := s.plans.FindByAlliance(ctx, allianceID)
	if err != nil {
		return nil, err
	}
	out := make([]PlanResponse, len(plans))
	for i, p := range plans {
		out[i] = ToPlanResponse(p)
	}
	return out, nil
}

// Create starts a plan for the actor's alliance, or for in.AllianceID when leadership creates it
func (s *PlanService) Create(ctx context.Context, actor *membership.Profile, in PlanInput) (*PlanResponse, error) {
	allianceID := in.AllianceID
	if allianceID == nil {
		allianceID = actor.AllianceID
	}
	if allianceID == nil {
		return nil, shared.NewInvalidInputError("alliance_id is required")
	}
	if !actor.CanManageAlliance(*allianceID) {
		return nil, shared.NewForbiddenError("only officers of the alliance can create war plans")
	}
	if _, err := s.alliances.FindByID(ctx, *allianceID); err != nil {
		return nil, err
	}

	p, err := warplan.NewPlan(*allianceID, actor.ID, in.toDomain())
	if err != nil {
		return nil, err
	}
	if err := s.plans.Create(ctx, p); err != nil {
		return nil, err
	}
	s.changed(ctx, p, changePlan)
	s.logger.Info("War plan created",
		zap.String("plan_id", p.ID.String()),
		zap.String("alliance_id", p.AllianceID.String()))

	resp := ToPlanResponse(p)
	return &resp, nil
}

// Get returns a plan the actor can view
func (s *PlanService) Get(ctx context.Context, actor *membership.Profile, id uuid.UUID) (*PlanResponse, error) {
	p, err := s.viewable(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	resp := ToPlanResponse(p)
	return &resp, nil
}

// Update edits plan fields
func (s *PlanService) Update(ctx context.Context, actor *membership.Profile, id uuid.UUID, in PlanInput) (*PlanResponse, error) {
	p, err := s.writable(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if in.AllianceID != nil && *in.AllianceID != p.AllianceID {
		return nil, shared.NewInvalidInputError("a plan cannot move to another alliance")
	}
	if err := p.Apply(in.toDomain()); err != nil {
		return nil, err
	}
	if err := s.plans.Update(ctx, p); err != nil {
		return nil, err
	}
	s.changed(ctx, p, changePlan)
	resp := ToPlanResponse(p)
	return &resp, nil
}

// Delete removes the plan with its roster and assignments
func (s *PlanService) Delete(ctx context.Context, actor *membership.Profile, id uuid.UUID) error {
	p, err := s.writable(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := s.plans.Delete(ctx, id); err != nil {
		return err
	}
	s.changed(ctx, p, changeDeleted)
	s.logger.Info("War plan deleted", zap.String("plan_id", id.String()))
	return nil
}

// AddRosterPlayer adds a player to the plan's roster
func (s *PlanService) AddRosterPlayer(ctx context.Context, actor *membership.Profile, planID uuid.UUID, in RosterInput) (*RosterPlayerResponse, error) {
	p, err := s.writable(ctx, actor, planID)
	if err != nil {
		return nil, err
	}
	r, err := warplan.NewRosterPlayer(planID, in.toDomain())
	if err != nil {
		return nil, err
	}
	if err := s.plans.SaveRosterPlayer(ctx, r); err != nil {
		return nil, err
	}
	s.changed(ctx, p, changeRoster)
	resp := ToRosterPlayerResponse(r)
	return &resp, nil
}

// UpdateRosterPlayer edits a roster entry
func (s *PlanService) UpdateRosterPlayer(ctx context.Context, actor *membership.Profile, planID, playerID uuid.UUID, in RosterInput) (*RosterPlayerResponse, error) {
	p, err := s.writable(ctx, actor, planID)
	if err != nil {
		return nil, err
	}
	r, err := s.plans.FindRosterPlayer(ctx, planID, playerID)
	if err != nil {
		return nil, err
	}
	if err := r.Apply(in.toDomain()); err != nil {
		return nil, err
	}
	if err := s.plans.SaveRosterPlayer(ctx, r); err != nil {
		return nil, err
	}
	s.changed(ctx, p, changeRoster)
	resp := ToRosterPlayerResponse(r)
	return &resp, nil
}

// RemoveRosterPlayer drops a player and their assignment
func (s *PlanService) RemoveRosterPlayer(ctx context.Context, actor *membership.Profile, planID, playerID uuid.UUID) error {
	p, err := s.writable(ctx, actor, planID)
	if err != nil {
		return err
	}
	if _, err := s.plans.FindRosterPlayer(ctx, planID, playerID); err != nil {
		return err
	}
	if err := s.plans.DeleteRosterPlayer(ctx, planID, playerID); err != nil {
		return err
	}
	s.changed(ctx, p, changeRoster)
	return nil
}

// Assign places or moves a roster player on a team
func (s *PlanService) Assign(ctx context.Context, actor *membership.Profile, planID uuid.UUID, in AssignInput) (*AssignmentResponse, error) {
	p, err := s.writable(ctx, actor, planID)
	if err != nil {
		return nil, err
	}
	if _, err := s.plans.FindRosterPlayer(ctx, planID, in.PlayerID); err != nil {
		return nil, err
	}
	a, err := warplan.NewAssignment(planID, in.PlayerID, in.Team, in.Position)
	if err != nil {
		return nil, err
	}
	if err := s.plans.UpsertAssignment(ctx, a); err != nil {
		return nil, err
	}
	s.changed(ctx, p, changeAssignment)
	return &AssignmentResponse{PlayerID: a.PlayerID, Team: a.Team, Position: a.Position}, nil
}

// Unassign moves a player back to the unassigned list
func (s *PlanService) Unassign(ctx context.Context, actor *membership.Profile, planID, playerID uuid.UUID) error {
	p, err := s.writable(ctx, actor, planID)
	if err != nil {
		return err
	}
	if err := s.plans.DeleteAssignment(ctx, planID, playerID); err != nil {
		return err
	}
	s.changed(ctx, p, changeAssignment)
	return nil
}

// Board returns the roster grouped by team
func (s *PlanService) Board(ctx context.Context, actor *membership.Profile, planID uuid.UUID) (*BoardResponse, error) {
	p, err := s.viewable(ctx, actor, planID)
	if err != nil {
		return nil, err
	}
	roster, err := s.plans.FindRoster(ctx, planID)
	if err != nil {
		return nil, err
	}
	assignments, err := s.plans.FindAssignments(ctx, planID)
	if err != nil {
		return nil, err
	}
	resp := toBoardResponse(p, warplan.BuildBoard(roster, assignments))
	return &resp, nil
}

// CountForAlliance is the number of plans an alliance has
func (s *PlanService) CountForAlliance(ctx context.Context, allianceID uuid.UUID) (int64, error) {
	return s.plans.CountByAlliance(ctx, allianceID)
}

func (s *PlanService) viewable(ctx context.Context, actor *membership.Profile, id uuid.UUID) (*warplan.Plan, error) {
	p, err := s.plans.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanViewAlliance(p.AllianceID) {
		return nil, shared.NewForbiddenError("you cannot view this war plan")
	}
	return p, nil
}

func (s *PlanService) writable(ctx context.Context, actor *membership.Profile, id uuid.UUID) (*warplan.Plan, error) {
	p, err := s.plans.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanManageAlliance(p.AllianceID) {
		return nil, shared.NewForbiddenError("only officers of the alliance can change this war plan")
	}
	return p, nil
}

func (s *PlanService) changed(ctx context.Context, p *warplan.Plan, change string) {
	p.MarkChanged(change)
	if err := shared.PublishPending(ctx, s.publisher, p); err != nil {
		s.logger.Warn("Failed to publish war plan event", zap.String("plan_id", p.ID.String()), zap.Error(err))
	}
}
