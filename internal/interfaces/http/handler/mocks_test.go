package handler

import (
	"context"

	"github.com/google/uuid"
	creativeapp "github.com/state244/hub/internal/application/creative"
	dashboardapp "github.com/state244/hub/internal/application/dashboard"
	inboxapp "github.com/state244/hub/internal/application/inbox"
	membershipapp "github.com/state244/hub/internal/application/membership"
	recruitmentapp "github.com/state244/hub/internal/application/recruitment"
	stateinfoapp "github.com/state244/hub/internal/application/stateinfo"
	warplanapp "github.com/state244/hub/internal/application/warplan"
	"github.com/state244/hub/internal/domain/membership"
	"github.com/state244/hub/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

type MockProfileUseCases struct{ mock.Mock }

func (m *MockProfileUseCases) UpdateMe(ctx context.Context, actor *membership.Profile, in membershipapp.UpdateMeInput) (*membershipapp.ProfileResponse, error) {
	args := m.Called(ctx, actor, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*membershipapp.ProfileResponse), args.Error(1)
}

func (m *MockProfileUseCases) ListUsers(ctx context.Context, in membershipapp.ListUsersInput) (shared.Paginated[membershipapp.ProfileResponse], error) {
	args := m.Called(ctx, in)
	return args.Get(0).(shared.Paginated[membershipapp.ProfileResponse]), args.Error(1)
}

func (m *MockProfileUseCases) GetUser(ctx context.Context, id uuid.UUID) (*membershipapp.ProfileResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*membershipapp.ProfileResponse), args.Error(1)
}

func (m *MockProfileUseCases) UpdateUser(ctx context.Context, actor *membership.Profile, id uuid.UUID, in membershipapp.UpdateUserInput) (*membershipapp.ProfileResponse, error) {
	args := m.Called(ctx, actor, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*membershipapp.ProfileResponse), args.Error(1)
}

func (m *MockProfileUseCases) DeleteUser(ctx context.Context, actor *membership.Profile, id uuid.UUID) error {
	return m.Called(ctx, actor, id).Error(0)
}

func (m *MockProfileUseCases) ExportUsers(ctx context.Context) ([]byte, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type MockAllianceUseCases struct{ mock.Mock }

func (m *MockAllianceUseCases) List(ctx context.Context, recruitmentStatus string) ([]membershipapp.AllianceResponse, error) {
	args := m.Called(ctx, recruitmentStatus)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]membershipapp.AllianceResponse), args.Error(1)
}

func (m *MockAllianceUseCases) Get(ctx context.Context, id uuid.UUID) (*membershipapp.AllianceResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*membershipapp.AllianceResponse), args.Error(1)
}

func (m *MockAllianceUseCases) Create(ctx context.Context, actor *membership.Profile, in membershipapp.AllianceInput) (*membershipapp.AllianceResponse, error) {
	args := m.Called(ctx, actor, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*membershipapp.AllianceResponse), args.Error(1)
}

func (m *MockAllianceUseCases) Update(ctx context.Context, actor *membership.Profile, id uuid.UUID, in membershipapp.AllianceInput) (*membershipapp.AllianceResponse, error) {
	args := m.Called(ctx, actor, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*membershipapp.AllianceResponse), args.Error(1)
}

func (m *MockAllianceUseCases) Delete(ctx context.Context, actor *membership.Profile, id uuid.UUID) error {
	return m.Called(ctx, actor, id).Error(0)
}

func (m *MockAllianceUseCases) Members(ctx context.Context, actor *membership.Profile, id uuid.UUID) ([]membershipapp.MemberResponse, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]membershipapp.MemberResponse), args.Error(1)
}

type MockApplicationUseCases struct{ mock.Mock }

func (m *MockApplicationUseCases) Submit(ctx context.Context, applicantID *uuid.UUID, in recruitmentapp.SubmitInput) (*recruitmentapp.SubmitResponse, error) {
	args := m.Called(ctx, applicantID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*recruitmentapp.SubmitResponse), args.Error(1)
}

func (m *MockApplicationUseCases) Status(ctx context.Context, id uuid.UUID, code string) (*recruitmentapp.StatusResponse, error) {
	args := m.Called(ctx, id, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*recruitmentapp.StatusResponse), args.Error(1)
}

func (m *MockApplicationUseCases) Withdraw(ctx context.Context, id uuid.UUID, code string) (*recruitmentapp.StatusResponse, error) {
	args := m.Called(ctx, id, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*recruitmentapp.StatusResponse), args.Error(1)
}

func (m *MockApplicationUseCases) List(ctx context.Context, actor *membership.Profile, in recruitmentapp.ListInput) (shared.Paginated[recruitmentapp.ApplicationResponse], error) {
	args := m.Called(ctx, actor, in)
	return args.Get(0).(shared.Paginated[recruitmentapp.ApplicationResponse]), args.Error(1)
}

func (m *MockApplicationUseCases) Get(ctx context.Context, actor *membership.Profile, id uuid.UUID) (*recruitmentapp.ApplicationResponse, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*recruitmentapp.ApplicationResponse), args.Error(1)
}

func (m *MockApplicationUseCases) AllianceReview(ctx context.Context, actor *membership.Profile, id uuid.UUID, in recruitmentapp.ReviewInput) (*recruitmentapp.ApplicationResponse, error) {
	args := m.Called(ctx, actor, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*recruitmentapp.ApplicationResponse), args.Error(1)
}

func (m *MockApplicationUseCases) PresidentReview(ctx context.Context, actor *membership.Profile, id uuid.UUID, in recruitmentapp.ReviewInput) (*recruitmentapp.ApplicationResponse, error) {
	args := m.Called(ctx, actor, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*recruitmentapp.ApplicationResponse), args.Error(1)
}

func (m *MockApplicationUseCases) Export(ctx context.Context, actor *membership.Profile, status string) ([]byte, error) {
	args := m.Called(ctx, actor, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type MockInboxUseCases struct{ mock.Mock }

func (m *MockInboxUseCases) Submit(ctx context.Context, in inboxapp.SubmitInput) (*inboxapp.MessageResponse, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inboxapp.MessageResponse), args.Error(1)
}

func (m *MockInboxUseCases) List(ctx context.Context, in inboxapp.ListInput) (shared.Paginated[inboxapp.MessageResponse], error) {
	args := m.Called(ctx, in)
	return args.Get(0).(shared.Paginated[inboxapp.MessageResponse]), args.Error(1)
}

func (m *MockInboxUseCases) Get(ctx context.Context, id uuid.UUID) (*inboxapp.MessageResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inboxapp.MessageResponse), args.Error(1)
}

func (m *MockInboxUseCases) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*inboxapp.MessageResponse, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inboxapp.MessageResponse), args.Error(1)
}

func (m *MockInboxUseCases) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockInboxUseCases) UnreadCount(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockStateInfoUseCases struct{ mock.Mock }

func (m *MockStateInfoUseCases) List(ctx context.Context) ([]stateinfoapp.SectionResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]stateinfoapp.SectionResponse), args.Error(1)
}

func (m *MockStateInfoUseCases) Get(ctx context.Context, key string) (*stateinfoapp.SectionResponse, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stateinfoapp.SectionResponse), args.Error(1)
}

func (m *MockStateInfoUseCases) Upsert(ctx context.Context, actor *membership.Profile, key string, in stateinfoapp.EditSectionInput) (*stateinfoapp.SectionResponse, error) {
	args := m.Called(ctx, actor, key, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stateinfoapp.SectionResponse), args.Error(1)
}

func (m *MockStateInfoUseCases) Propose(ctx context.Context, actor *membership.Profile, in stateinfoapp.ProposeInput) (*stateinfoapp.ProposalResponse, error) {
	args := m.Called(ctx, actor, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stateinfoapp.ProposalResponse), args.Error(1)
}

func (m *MockStateInfoUseCases) ListProposals(ctx context.Context, actor *membership.Profile, status string) ([]stateinfoapp.ProposalResponse, error) {
	args := m.Called(ctx, actor, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]stateinfoapp.ProposalResponse), args.Error(1)
}

func (m *MockStateInfoUseCases) GetProposal(ctx context.Context, actor *membership.Profile, id uuid.UUID) (*stateinfoapp.ProposalResponse, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stateinfoapp.ProposalResponse), args.Error(1)
}

func (m *MockStateInfoUseCases) Vote(ctx context.Context, actor *membership.Profile, id uuid.UUID, decision string) (*stateinfoapp.ProposalResponse, error) {
	args := m.Called(ctx, actor, id, decision)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stateinfoapp.ProposalResponse), args.Error(1)
}

type MockWarPlanUseCases struct{ mock.Mock }

func (m *MockWarPlanUseCases) List(ctx context.Context, actor *membership.Profile, allianceID *uuid.UUID) ([]warplanapp.PlanResponse, error) {
	args := m.Called(ctx, actor, allianceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]warplanapp.PlanResponse), args.Error(1)
}

func (m *MockWarPlanUseCases) Create(ctx context.Context, actor *membership.Profile, in warplanapp.PlanInput) (*warplanapp.PlanResponse, error) {
	args := m.Called(ctx, actor, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*warplanapp.PlanResponse), args.Error(1)
}

func (m *MockWarPlanUseCases) Get(ctx context.Context, actor *membership.Profile, id uuid.UUID) (*warplanapp.PlanResponse, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*warplanapp.PlanResponse), args.Error(1)
}

func (m *MockWarPlanUseCases) Update(ctx context.Context, actor *membership.Profile, id uuid.UUID, in warplanapp.PlanInput) (*warplanapp.PlanResponse, error) {
	args := m.Called(ctx, actor, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*warplanapp.PlanResponse), args.Error(1)
}

func (m *MockWarPlanUseCases) Delete(ctx context.Context, actor *membership.Profile, id uuid.UUID) error {
	return m.Called(ctx, actor, id).Error(0)
}

func (m *MockWarPlanUseCases) AddRosterPlayer(ctx context.Context, actor *membership.Profile, planID uuid.UUID, in warplanapp.RosterInput) (*warplanapp.RosterPlayerResponse, error) {
	args := m.Called(ctx, actor, planID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*warplanapp.RosterPlayerResponse), args.Error(1)
}

func (m *MockWarPlanUseCases) UpdateRosterPlayer(ctx context.Context, actor *membership.Profile, planID, playerID uuid.UUID, in warplanapp.RosterInput) (*warplanapp.RosterPlayerResponse, error) {
	args := m.Called(ctx, actor, planID, playerID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*warplanapp.RosterPlayerResponse), args.Error(1)
}

func (m *MockWarPlanUseCases) RemoveRosterPlayer(ctx context.Context, actor *membership.Profile, planID, playerID uuid.UUID) error {
	return m.Called(ctx, actor, planID, playerID).Error(0)
}

func (m *MockWarPlanUseCases) Assign(ctx context.Context, actor *membership.Profile, planID uuid.UUID, in warplanapp.AssignInput) (*warplanapp.AssignmentResponse, error) {
	args := m.Called(ctx, actor, planID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*warplanapp.AssignmentResponse), args.Error(1)
}

func (m *MockWarPlanUseCases) Unassign(ctx context.Context, actor *membership.Profile, planID, playerID uuid.UUID) error {
	return m.Called(ctx, actor, planID, playerID).Error(0)
}

func (m *MockWarPlanUseCases) Board(ctx context.Context, actor *membership.Profile, planID uuid.UUID) (*warplanapp.BoardResponse, error) {
	args := m.Called(ctx, actor, planID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*warplanapp.BoardResponse), args.Error(1)
}

type MockCreativeUseCases struct{ mock.Mock }

func (m *MockCreativeUseCases) GenerateText(ctx context.Context, actor *membership.Profile, in creativeapp.TextInput) (*creativeapp.TextResponse, error) {
	args := m.Called(ctx, actor, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*creativeapp.TextResponse), args.Error(1)
}

func (m *MockCreativeUseCases) GenerateImage(ctx context.Context, actor *membership.Profile, in creativeapp.ImageInput) (*creativeapp.ImageResponse, error) {
	args := m.Called(ctx, actor, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*creativeapp.ImageResponse), args.Error(1)
}

func (m *MockCreativeUseCases) ListImages(ctx context.Context, actor *membership.Profile) ([]creativeapp.ImageResponse, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]creativeapp.ImageResponse), args.Error(1)
}

func (m *MockCreativeUseCases) DeleteImage(ctx context.Context, actor *membership.Profile, id uuid.UUID) error {
	return m.Called(ctx, actor, id).Error(0)
}

type MockDashboardUseCases struct{ mock.Mock }

func (m *MockDashboardUseCases) Get(ctx context.Context, actor *membership.Profile) (*dashboardapp.Dashboard, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dashboardapp.Dashboard), args.Error(1)
}
