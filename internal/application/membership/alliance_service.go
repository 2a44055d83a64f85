package membership

import (
	"context"

	"github.com/google/uuid"
	"github.com/state244/hub/internal/domain/membership"
	"github.com/state244/hub/internal/domain/shared"
	"go.uber.org/zap"
)

const maxMembersPage = 100

// AllianceService handles alliance directory and administration
type AllianceService struct {
	alliances membership.AllianceRepository
	profiles  membership.ProfileRepository
	logger    *zap.Logger
}

// NewAllianceService creates a new AllianceService
func NewAllianceService(
	alliances membership.AllianceRepository,
	profiles membership.ProfileRepository,
	logger *zap.Logger,
) *AllianceService {
	return &AllianceService{
		alliances: alliances,
		profiles:  profiles,
		logger:    logger,
	}
}

// List returns alliances ordered by power, optionally filtered by recruitment status
func (s *AllianceService) List(ctx context.Context, recruitmentStatus string) ([]AllianceResponse, error) {
	var filter membership.AllianceFilter
	if recruitmentStatus != "" {
		rs := membership.RecruitmentStatus(recruitmentStatus)
		if !rs.IsValid() {
			return nil, shared.NewInvalidInputError("unknown recruitment status %q", recruitmentStatus)
		}
		filter.RecruitmentStatus = &rs
	}

	alliances, err := s.alliances.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]AllianceResponse, len(alliances))
	for i, a := range alliances {
		out[i] = ToAllianceResponse(a)
	}
	return out, nil
}

// Get returns one alliance
func (s *AllianceService) Get(ctx context.Context, id uuid.UUID) (*AllianceResponse, error) {
	a, err := s.alliances.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToAllianceResponse(a)
	return &resp, nil
}

// Create adds an alliance. Only state leadership may.
func (s *AllianceService) Create(ctx context.Context, actor *membership.Profile, in AllianceInput) (*AllianceResponse, error) {
	if !actor.IsStateLeadership() {
		return nil, shared.NewForbiddenError("only the president or an admin can create alliances")
	}
	a, err := membership.NewAlliance(in.toDomain())
	if err != nil {
		return nil, err
	}
	if err := s.alliances.Create(ctx, a); err != nil {
		return nil, err
	}
	s.logger.Info("Alliance created",
		zap.String("alliance_id", a.ID.String()),
		zap.String("tag", a.Tag),
		zap.String("actor_id", actor.ID.String()))
	resp := ToAllianceResponse(a)
	return &resp, nil
}

// Update edits an alliance. State leadership and the alliance's R5 always
// may; an R4 only with the can_edit_alliance grant.
func (s *AllianceService) Update(ctx context.Context, actor *membership.Profile, id uuid.UUID, in AllianceInput) (*AllianceResponse, error) {
	a, err := s.alliances.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanEditAllianceInfo(a.ID) {
		return nil, shared.NewForbiddenError("you cannot edit this alliance")
	}
	if err := a.Apply(in.toDomain()); err != nil {
		return nil, err
	}
	if err := s.alliances.Update(ctx, a); err != nil {
		return nil, err
	}
	resp := ToAllianceResponse(a)
	return &resp, nil
}

// Delete removes an alliance and detaches its members
func (s *AllianceService) Delete(ctx context.Context, actor *membership.Profile, id uuid.UUID) error {
	if !actor.IsStateLeadership() {
		return shared.NewForbiddenError("only the president or an admin can delete alliances")
	}
	if _, err := s.alliances.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.alliances.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Alliance deleted",
		zap.String("alliance_id", id.String()),
		zap.String("actor_id", actor.ID.String()))
	return nil
}

// Members lists the profiles in an alliance
func (s *AllianceService) Members(ctx context.Context, actor *membership.Profile, id uuid.UUID) ([]MemberResponse, error) {
	if _, err := s.alliances.FindByID(ctx, id); err != nil {
		return nil, err
	}
	if !actor.CanViewAlliance(id) {
		return nil, shared.NewForbiddenError("you are not a member of this alliance")
	}

	profiles, _, err := s.profiles.FindAll(ctx, membership.ProfileFilter{
		Filter:     shared.Filter{Page: 1, PageSize: maxMembersPage, OrderBy: "username", OrderDir: "asc"},
		AllianceID: &id,
	})
	if err != nil {
		return nil, err
	}
	out := make([]MemberResponse, len(profiles))
	for i, p := range profiles {
		out[i] = MemberResponse{ID: p.ID, Username: p.Username, Role: string(p.Role), GamePlayerID: p.GamePlayerID}
	}
	return out, nil
}
