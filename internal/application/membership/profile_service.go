package membership

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/state244/hub/internal/domain/membership"
	"github.com/state244/hub/internal/domain/shared"
	"github.com/state244/hub/internal/infrastructure/spreadsheet"
	"go.uber.org/zap"
)

// SessionRevoker invalidates the tokens a user already holds
type SessionRevoker interface {
	RevokeUser(ctx context.Context, userID uuid.UUID, ttl time.Duration) error
}

// ProfileService handles profiles: first sign-in provisioning, self-service
// edits and admin user management
type ProfileService struct {
	profiles  membership.ProfileRepository
	alliances membership.AllianceRepository
	revoker   SessionRevoker
	tokenTTL  time.Duration
	exportMax int
	logger    *zap.Logger
}

// NewProfileService creates a new ProfileService. revoker may be nil.
func NewProfileService(
	profiles membership.ProfileRepository,
	alliances membership.AllianceRepository,
	revoker SessionRevoker,
	tokenTTL time.Duration,
	exportMax int,
	logger *zap.Logger,
) *ProfileService {
	if exportMax <= 0 {
		exportMax = 10000
	}
	return &ProfileService{
		profiles:  profiles,
		alliances: alliances,
		revoker:   revoker,
		tokenTTL:  tokenTTL,
		exportMax: exportMax,
		logger:    logger,
	}
}

// EnsureProfile loads the caller's profile, creating a default one on first sign-in
func (s *ProfileService) EnsureProfile(ctx context.Context, userID uuid.UUID, email string) (*membership.Profile, error) {
	p, err := s.profiles.FindByID(ctx, userID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	p = membership.NewProfile(userID, email)
	if err := s.profiles.Create(ctx, p); err != nil {
		// a concurrent first request created it
		if errors.Is(err, shared.ErrAlreadyExists) {
			return s.profiles.FindByID(ctx, userID)
		}
		return nil, err
	}
	s.logger.Info("Provisioned profile", zap.String("user_id", userID.String()))
	return p, nil
}

// UpdateMe applies self-service changes to the caller's profile
func (s *ProfileService) UpdateMe(ctx context.Context, actor *membership.Profile, in UpdateMeInput) (*ProfileResponse, error) {
	p, err := s.profiles.FindByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if err := p.UpdateDetails(in.Username, in.GamePlayerID); err != nil {
		return nil, err
	}
	if err := s.profiles.Update(ctx, p); err != nil {
		return nil, err
	}
	resp := ToProfileResponse(p)
	return &resp, nil
}

// ListUsers lists profiles for the admin console
func (s *ProfileService) ListUsers(ctx context.Context, in ListUsersInput) (shared.Paginated[ProfileResponse], error) {
	filter := membership.ProfileFilter{
		Filter: shared.Filter{
			Page:     in.Page,
			PageSize: in.PageSize,
			Keyword:  in.Keyword,
			OrderBy:  in.OrderBy,
			OrderDir: in.OrderDir,
		}.Normalize(),
		AllianceID: in.AllianceID,
	}
	if in.Role != "" {
		role, ok := membership.ParseRole(in.Role)
		if !ok {
			return shared.Paginated[ProfileResponse]{}, shared.NewInvalidInputError("unknown role %q", in.Role)
		}
		filter.Role = &role
	}

	profiles, total, err := s.profiles.FindAll(ctx, filter)
	if err != nil {
		return shared.Paginated[ProfileResponse]{}, err
	}
	items := make([]ProfileResponse, len(profiles))
	for i, p := range profiles {
		items[i] = ToProfileResponse(p)
	}
	return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
}

// GetUser returns one profile
func (s *ProfileService) GetUser(ctx context.Context, id uuid.UUID) (*ProfileResponse, error) {
	p, err := s.profiles.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToProfileResponse(p)
	return &resp, nil
}

// UpdateUser changes a user's role, alliance and alliance-edit grant
func (s *ProfileService) UpdateUser(ctx context.Context, actor *membership.Profile, id uuid.UUID, in UpdateUserInput) (*ProfileResponse, error) {
	p, err := s.profiles.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	role := p.Role
	if in.Role != nil {
		r, ok := membership.ParseRole(*in.Role)
		if !ok {
			return nil, shared.NewInvalidInputError("unknown role %q", *in.Role)
		}
		role = r
	}
	allianceID := p.AllianceID
	switch {
	case in.ClearAlliance:
		allianceID = nil
	case in.AllianceID != nil:
		if _, err := s.alliances.FindByID(ctx, *in.AllianceID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewInvalidInputError("alliance does not exist")
			}
			return nil, err
		}
		allianceID = in.AllianceID
	}
	canEdit := p.CanEditAlliance
	if in.CanEditAlliance != nil {
		canEdit = *in.CanEditAlliance
	}

	if err := p.Assign(role, allianceID, canEdit); err != nil {
		return nil, err
	}
	if err := s.profiles.Update(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info("User updated",
		zap.String("actor_id", actor.ID.String()),
		zap.String("user_id", p.ID.String()),
		zap.String("role", string(p.Role)))
	resp := ToProfileResponse(p)
	return &resp, nil
}

// DeleteUser removes a profile and revokes its sessions. Admins cannot delete themselves.
func (s *ProfileService) DeleteUser(ctx context.Context, actor *membership.Profile, id uuid.UUID) error {
	if actor.ID == id {
		return shared.NewInvalidStateError("you cannot delete your own account")
	}
	if _, err := s.profiles.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.profiles.Delete(ctx, id); err != nil {
		return err
	}
	if s.revoker != nil {
		if err := s.revoker.RevokeUser(ctx, id, s.tokenTTL); err != nil {
			s.logger.Warn("Failed to revoke sessions of deleted user",
				zap.String("user_id", id.String()), zap.Error(err))
		}
	}
	s.logger.Info("User deleted",
		zap.String("actor_id", actor.ID.String()),
		zap.String("user_id", id.String()))
	return nil
}

// ExportUsers renders every profile, up to the export cap, as an xlsx workbook
func (s *ProfileService) ExportUsers(ctx context.Context) ([]byte, error) {
	names, err := allianceNames(ctx, s.alliances)
	if err != nil {
		return nil, err
	}

	rows := make([][]any, 0, 64)
	filter := membership.ProfileFilter{Filter: shared.Filter{Page: 1, PageSize: shared.MaxPageSize, OrderBy: "created_at", OrderDir: "asc"}}
	for len(rows) < s.exportMax {
		profiles, _, err := s.profiles.FindAll(ctx, filter)
		if err != nil {
			return nil, err
		}
		for _, p := range profiles {
			var alliance string
			if p.AllianceID != nil {
				alliance = names[*p.AllianceID]
			}
			rows = append(rows, []any{p.ID, p.Email, p.Username, string(p.Role), alliance, p.CanEditAlliance, p.GamePlayerID, p.CreatedAt})
		}
		if len(profiles) < filter.PageSize {
			break
		}
		filter.Page++
	}
	if len(rows) > s.exportMax {
		rows = rows[:s.exportMax]
	}

	return spreadsheet.Render(spreadsheet.Table{
		Sheet:   "Users",
		Headers: []string{"ID", "Email", "Username", "Role", "Alliance", "Can Edit Alliance", "Game Player ID", "Created At"},
		Rows:    rows,
	})
}

func allianceNames(ctx context.Context, repo membership.AllianceRepository) (map[uuid.UUID]string, error) {
	alliances, err := repo.FindAll(ctx, membership.AllianceFilter{})
	if err != nil {
		return nil, err
	}
	names := make(map[uuid.UUID]string, len(alliances))
	for _, a := range alliances {
		names[a.ID] = "[" + a.Tag + "] " + a.Name
	}
	return names, nil
}
