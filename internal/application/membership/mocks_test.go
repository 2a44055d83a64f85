package membership

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/state244/hub/internal/domain/membership"
	"github.com/stretchr/testify/mock"
)

// MockProfileRepository is a mock implementation of membership.ProfileRepository
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (*membership.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*membership.Profile), args.Error(1)
}

func (m *MockProfileRepository) FindAll(ctx context.Context, filter membership.ProfileFilter) ([]*membership.Profile, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*membership.Profile), args.Get(1).(int64), args.Error(2)
}

func (m *MockProfileRepository) Create(ctx context.Context, p *membership.Profile) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockProfileRepository) Update(ctx context.Context, p *membership.Profile) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockProfileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockProfileRepository) CountByRole(ctx context.Context) (map[membership.Role]int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[membership.Role]int64), args.Error(1)
}

func (m *MockProfileRepository) Emails(ctx context.Context, roles ...membership.Role) ([]string, error) {
	args := m.Called(ctx, roles)
	return args.Get(0).([]string), args.Error(1)
}

// MockAllianceRepository is a mock implementation of membership.AllianceRepository
type MockAllianceRepository struct {
	mock.Mock
}

func (m *MockAllianceRepository) FindByID(ctx context.Context, id uuid.UUID) (*membership.Alliance, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*membership.Alliance), args.Error(1)
}

func (m *MockAllianceRepository) FindAll(ctx context.Context, filter membership.AllianceFilter) ([]*membership.Alliance, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*membership.Alliance), args.Error(1)
}

func (m *MockAllianceRepository) Create(ctx context.Context, a *membership.Alliance) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockAllianceRepository) Update(ctx context.Context, a *membership.Alliance) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockAllianceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockRevoker is a mock SessionRevoker
type MockRevoker struct {
	mock.Mock
}

func (m *MockRevoker) RevokeUser(ctx context.Context, userID uuid.UUID, ttl time.Duration) error {
	return m.Called(ctx, userID, ttl).Error(0)
}

func newProfile(role membership.Role, allianceID *uuid.UUID) *membership.Profile {
	p := membership.NewProfile(uuid.New(), "player@example.com")
	p.Role = role
	p.AllianceID = allianceID
	return p
}

func newAlliance(tag string) *membership.Alliance {
	name := tag + " Pack"
	a, err := membership.NewAlliance(membership.AllianceInput{Tag: &tag, Name: &name})
	if err != nil {
		panic(err)
	}
	return a
}
