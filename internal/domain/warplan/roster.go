package warplan

import (
	"strings"

	"github.com/google/uuid"
	"github.com/state244/hub/internal/domain/membership"
	"github.com/state244/hub/internal/domain/shared"
)

// TroopType is a player's main troop line
type TroopType string

const (
	TroopInfantry TroopType = "infantry"
	TroopLancer   TroopType = "lancer"
	TroopMarksman TroopType = "marksman"
	TroopMixed    TroopType = "mixed"
)

// IsValid reports whether t is a known troop type
func (t TroopType) IsValid() bool {
	switch t {
	case TroopInfantry, TroopLancer, TroopMarksman, TroopMixed:
		return true
	}
	return false
}

const (
	maxRosterNameLen  = 50
	maxRosterNotesLen = 500
	maxTeamNameLen    = 32
)

// RosterPlayer is a player available for a plan
type RosterPlayer struct {
	shared.BaseEntity
	PlanID     uuid.UUID
	PlayerName string
	Power      int64
	TroopType  TroopType
	Notes      string
}

// RosterInput carries editable roster fields. Nil means unchanged.
type RosterInput struct {
	PlayerName *string
	Power      *int64
	TroopType  *TroopType
	Notes      *string
}

// NewRosterPlayer adds a player to a plan's roster
func NewRosterPlayer(planID uuid.UUID, in RosterInput) (*RosterPlayer, error) {
	if in.PlayerName == nil {
		return nil, shared.NewInvalidInputError("player_name is required")
	}
	r := &RosterPlayer{
		BaseEntity: shared.NewBaseEntity(),
		PlanID:     planID,
		TroopType:  TroopMixed,
	}
	if err := r.Apply(in); err != nil {
		return nil, err
	}
	return r, nil
}

// Apply validates and applies the non-nil fields
func (r *RosterPlayer) Apply(in RosterInput) error {
	if in.PlayerName != nil {
		name := membership.NormalizeName(*in.PlayerName)
		if n := membership.RuneLen(name); n < 1 || n > maxRosterNameLen {
			return shared.NewInvalidInputError("player_name must be 1 to 50 characters")
		}
		r.PlayerName = name
	}
	if in.Power != nil {
		if *in.Power < 0 {
			return shared.NewInvalidInputError("power cannot be negative")
		}
		r.Power = *in.Power
	}
	if in.TroopType != nil {
		if !in.TroopType.IsValid() {
			return shared.NewInvalidInputError("unknown troop type %q", *in.TroopType)
		}
		r.TroopType = *in.TroopType
	}
	if in.Notes != nil {
		if membership.RuneLen(*in.Notes) > maxRosterNotesLen {
			return shared.NewInvalidInputError("notes cannot exceed 500 characters")
		}
		r.Notes = *in.Notes
	}
	r.Touch()
	return nil
}

// Assignment places a roster player on a team. A player has at most one
// assignment per plan; saving again moves them.
type Assignment struct {
	PlanID   uuid.UUID
	PlayerID uuid.UUID
	Team     string
	Position int
}

// NewAssignment validates team and position
func NewAssignment(planID, playerID uuid.UUID, team string, position int) (*Assignment, error) {
	team = strings.TrimSpace(team)
	if n := membership.RuneLen(team); n < 1 || n > maxTeamNameLen {
		return nil, shared.NewInvalidInputError("team must be 1 to 32 characters")
	}
	if position < 0 {
		return nil, shared.NewInvalidInputError("position cannot be negative")
	}
	return &Assignment{PlanID: planID, PlayerID: playerID, Team: team, Position: position}, nil
}
