package membership

import (
	"strings"

	"github.com/google/uuid"
	"github.com/state244/hub/internal/domain/shared"
)

const (
	minUsername = 3
	maxUsername = 32
)

// Profile is the hub's record of an authenticated person. Its ID is the
// user id assigned by the hosted auth provider.
type Profile struct {
	shared.BaseEntity
	Email           string
	Username        string
	Role            Role
	AllianceID      *uuid.UUID
	CanEditAlliance bool
	GamePlayerID    string
}

// NewProfile creates the default profile for a first-time sign-in
func NewProfile(id uuid.UUID, email string) *Profile {
	p := &Profile{
		BaseEntity: shared.NewBaseEntityWithID(id),
		Email:      strings.ToLower(strings.TrimSpace(email)),
		Role:       RoleUser,
	}
	if at := strings.IndexByte(p.Email, '@'); at > 0 {
		p.Username = defaultUsername(p.Email[:at])
	}
	return p
}

// defaultUsername derives a username from an email local part. Anything
// that cannot meet the username rules is left blank for the user to set.
func defaultUsername(local string) string {
	u := []rune(NormalizeName(local))
	if len(u) > maxUsername {
		u = []rune(strings.TrimSpace(string(u[:maxUsername])))
	}
	if len(u) < minUsername {
		return ""
	}
	return string(u)
}

// UpdateDetails changes the self-service fields
func (p *Profile) UpdateDetails(username, gamePlayerID *string) error {
	if username != nil {
		u := NormalizeName(*username)
		if n := RuneLen(u); n < minUsername || n > maxUsername {
			return shared.NewInvalidInputError("username must be 3 to 32 characters")
		}
		p.Username = u
	}
	if gamePlayerID != nil {
		g := strings.TrimSpace(*gamePlayerID)
		if g != "" && (!isDigits(g) || len(g) > 20) {
			return shared.NewInvalidInputError("game_player_id must be up to 20 digits")
		}
		p.GamePlayerID = g
	}
	p.Touch()
	return nil
}

// Assign sets role, alliance and the alliance-edit grant in one step so the
// combination is always consistent.
func (p *Profile) Assign(role Role, allianceID *uuid.UUID, canEditAlliance bool) error {
	if !role.IsValid() {
		return shared.NewInvalidInputError("unknown role %q", role)
	}
	if role.IsAllianceRole() && allianceID == nil {
		return shared.NewInvalidInputError("role %s requires an alliance", role)
	}
	p.Role = role
	p.AllianceID = allianceID
	// the grant only means something for R4
	p.CanEditAlliance = canEditAlliance && role == RoleR4
	p.Touch()
	return nil
}

// LeaveAlliance drops the alliance link and any alliance-only role
func (p *Profile) LeaveAlliance() {
	p.AllianceID = nil
	p.CanEditAlliance = false
	if p.Role.IsAllianceRole() {
		p.Role = RoleUser
	}
	p.Touch()
}

// BelongsTo reports membership of the given alliance
func (p *Profile) BelongsTo(allianceID uuid.UUID) bool {
	return p.AllianceID != nil && *p.AllianceID == allianceID
}

// IsAdmin reports the admin role
func (p *Profile) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// IsStateLeadership reports president or admin
func (p *Profile) IsStateLeadership() bool {
	return p.Role.IsStateLeadership()
}

// OfficerOf reports an R4 or R5 of the given alliance
func (p *Profile) OfficerOf(allianceID uuid.UUID) bool {
	return p.Role.IsAllianceOfficer() && p.BelongsTo(allianceID)
}

// CanManageAlliance reports whether the profile may review applications and
// run war plans for the alliance
func (p *Profile) CanManageAlliance(allianceID uuid.UUID) bool {
	return p.IsStateLeadership() || p.OfficerOf(allianceID)
}

// CanViewAlliance reports read access to alliance-internal data
func (p *Profile) CanViewAlliance(allianceID uuid.UUID) bool {
	return p.IsStateLeadership() || (p.Role.IsAllianceRole() && p.BelongsTo(allianceID))
}

// CanEditAllianceInfo applies the alliance edit rule: state leadership and
// the alliance's R5 always may, an R4 only with the explicit grant.
func (p *Profile) CanEditAllianceInfo(allianceID uuid.UUID) bool {
	switch {
	case p.IsStateLeadership():
		return true
	case p.Role == RoleR5:
		return p.BelongsTo(allianceID)
	case p.Role == RoleR4:
		return p.BelongsTo(allianceID) && p.CanEditAlliance
	default:
		return false
	}
}
