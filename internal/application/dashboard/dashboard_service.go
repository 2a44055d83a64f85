package dashboard

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/state244/hub/internal/domain/inbox"
	"github.com/state244/hub/internal/domain/membership"
	"github.com/state244/hub/internal/domain/recruitment"
	"github.com/state244/hub/internal/domain/shared"
	"github.com/state244/hub/internal/domain/stateinfo"
	"github.com/state244/hub/internal/domain/warplan"
	"go.uber.org/zap"
)

// AllianceSummary names the caller's alliance
type AllianceSummary struct {
	ID   uuid.UUID `json:"id"`
	Tag  string    `json:"tag"`
	Name string    `json:"name"`
}

// Dashboard holds the counters the caller's role is allowed to see.
// Counters outside the caller's scope stay nil and are omitted.
type Dashboard struct {
	Role     string           `json:"role"`
	Alliance *AllianceSummary `json:"alliance,omitempty"`

	AlliancePendingApplications *int64 `json:"alliance_pending_applications,omitempty"`
	AllianceWarPlans            *int64 `json:"alliance_war_plans,omitempty"`

	PendingApplications          *int64 `json:"pending_applications,omitempty"`
	AllianceApprovedApplications *int64 `json:"alliance_approved_applications,omitempty"`
	OpenProposals                *int64 `json:"open_proposals,omitempty"`

	NewMessages *int64 `json:"new_messages,omitempty"`
	TotalUsers  *int64 `json:"total_users,omitempty"`
}

// DashboardService assembles role-gated counters
type DashboardService struct {
	alliances membership.AllianceRepository
	profiles  membership.ProfileRepository
	apps      recruitment.ApplicationRepository
	plans     warplan.PlanRepository
	proposals stateinfo.ProposalRepository
	messages  inbox.MessageRepository
	logger    *zap.Logger
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	alliances membership.AllianceRepository,
	profiles membership.ProfileRepository,
	apps recruitment.ApplicationRepository,
	plans warplan.PlanRepository,
	proposals stateinfo.ProposalRepository,
	messages inbox.MessageRepository,
	logger *zap.Logger,
) *DashboardService {
	return &DashboardService{
		alliances: alliances,
		profiles:  profiles,
		apps:      apps,
		plans:     plans,
		proposals: proposals,
		messages:  messages,
		logger:    logger,
	}
}

// Get builds the dashboard for actor
func (s *DashboardService) Get(ctx context.Context, actor *membership.Profile) (*Dashboard, error) {
	d := &Dashboard{Role: actor.Role.String()}

	if actor.AllianceID != nil {
		a, err := s.alliances.FindByID(ctx, *actor.AllianceID)
		switch {
		case err == nil:
			d.Alliance = &AllianceSummary{ID: a.ID, Tag: a.Tag, Name: a.Name}
		case errors.Is(err, shared.ErrNotFound):
			s.logger.Warn("Profile points at a missing alliance",
				zap.String("user_id", actor.ID.String()),
				zap.String("alliance_id", actor.AllianceID.String()))
		default:
			return nil, err
		}
	}

	if actor.Role.IsAllianceOfficer() && actor.AllianceID != nil {
		counts, err := s.apps.CountByStatus(ctx, actor.AllianceID)
		if err != nil {
			return nil, err
		}
		d.AlliancePendingApplications = ptr(counts[recruitment.StatusPending])

		plans, err := s.plans.CountByAlliance(ctx, *actor.AllianceID)
		if err != nil {
			return nil, err
		}
		d.AllianceWarPlans = ptr(plans)
	}

	if actor.IsStateLeadership() {
		counts, err := s.apps.CountByStatus(ctx, nil)
		if err != nil {
			return nil, err
		}
		d.PendingApplications = ptr(counts[recruitment.StatusPending])
		d.AllianceApprovedApplications = ptr(counts[recruitment.StatusAllianceApproved])

		open, err := s.proposals.CountPending(ctx)
		if err != nil {
			return nil, err
		}
		d.OpenProposals = ptr(open)
	}

	if actor.IsAdmin() {
		unread, err := s.messages.CountByStatus(ctx, inbox.StatusNew)
		if err != nil {
			return nil, err
		}
		d.NewMessages = ptr(unread)

		byRole, err := s.profiles.CountByRole(ctx)
		if err != nil {
			return nil, err
		}
		var total int64
		for _, n := range byRole {
			total += n
		}
		d.TotalUsers = ptr(total)
	}

	return d, nil
}

func ptr(n int64) *int64 { return &n }
