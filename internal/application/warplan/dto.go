package warplan

import (
	"time"

	"github.com/google/uuid"
	"github.com/state244/hub/internal/domain/warplan"
)

// PlanInput creates or edits a plan. Nil fields are left unchanged on edit.
type PlanInput struct {
	AllianceID  *uuid.UUID
	Title       *string
	EventType   *string
	ScheduledAt *time.Time
	Notes       *string
}

func (in PlanInput) toDomain() warplan.PlanInput {
	out := warplan.PlanInput{Title: in.Title, ScheduledAt: in.ScheduledAt, Notes: in.Notes}
	if in.EventType != nil {
		et := warplan.EventType(*in.EventType)
		out.EventType = &et
	}
	return out
}

// RosterInput adds or edits a roster player
type RosterInput struct {
	PlayerName *string
	Power      *int64
	TroopType  *string
	Notes      *string
}

func (in RosterInput) toDomain() warplan.RosterInput {
	out := warplan.RosterInput{PlayerName: in.PlayerName, Power: in.Power, Notes: in.Notes}
	if in.TroopType != nil {
		tt := warplan.TroopType(*in.TroopType)
		out.TroopType = &tt
	}
	return out
}

// AssignInput places a roster player on a team
type AssignInput struct {
	PlayerID uuid.UUID
	Team     string
	Position int
}

// PlanResponse is a war plan summary
type PlanResponse struct {
	ID          uuid.UUID  `json:"id"`
	AllianceID  uuid.UUID  `json:"alliance_id"`
	Title       string     `json:"title"`
	EventType   string     `json:"event_type"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
	Notes       string     `json:"notes"`
	CreatedBy   uuid.UUID  `json:"created_by"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ToPlanResponse converts a domain Plan to PlanResponse
func ToPlanResponse(p *warplan.Plan) PlanResponse {
	return PlanResponse{
		ID:          p.ID,
		AllianceID:  p.AllianceID,
		Title:       p.Title,
		EventType:   string(p.EventType),
		ScheduledAt: p.ScheduledAt,
		Notes:       p.Notes,
		CreatedBy:   p.CreatedBy,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// RosterPlayerResponse is one roster entry
type RosterPlayerResponse struct {
	ID         uuid.UUID `json:"id"`
	PlayerName string    `json:"player_name"`
	Power      int64     `json:"power"`
	TroopType  string    `json:"troop_type"`
	Notes      string    `json:"notes,omitempty"`
}

// ToRosterPlayerResponse converts a domain RosterPlayer
func ToRosterPlayerResponse(r *warplan.RosterPlayer) RosterPlayerResponse {
	return RosterPlayerResponse{
		ID:         r.ID,
		PlayerName: r.PlayerName,
		Power:      r.Power,
		TroopType:  string(r.TroopType),
		Notes:      r.Notes,
	}
}

// AssignmentResponse is a player's team and position
type AssignmentResponse struct {
	PlayerID uuid.UUID `json:"player_id"`
	Team     string    `json:"team"`
	Position int       `json:"position"`
}

// SlotResponse is a player at a position on the board
type SlotResponse struct {
	Position int                  `json:"position"`
	Player   RosterPlayerResponse `json:"player"`
}

// TeamResponse is a team on the board
type TeamResponse struct {
	Name  string         `json:"name"`
	Slots []SlotResponse `json:"slots"`
}

// BoardResponse is the plan with its roster laid out by team
type BoardResponse struct {
	Plan       PlanResponse           `json:"plan"`
	Teams      []TeamResponse         `json:"teams"`
	Unassigned []RosterPlayerResponse `json:"unassigned"`
}

func toBoardResponse(p *warplan.Plan, b warplan.Board) BoardResponse {
	out := BoardResponse{
		Plan:       ToPlanResponse(p),
		Teams:      make([]TeamResponse, len(b.Teams)),
		Unassigned: make([]RosterPlayerResponse, len(b.Unassigned)),
	}
	for i, t := range b.Teams {
		slots := make([]SlotResponse, len(t.Slots))
		for j, s := range t.Slots {
			slots[j] = SlotResponse{Position: s.Position, Player: ToRosterPlayerResponse(s.Player)}
		}
		out.Teams[i] = TeamResponse{Name: t.Name, Slots: slots}
	}
	for i, r := range b.Unassigned {
		out.Unassigned[i] = ToRosterPlayerResponse(r)
	}
	return out
}
