package recruitment

import (
	"time"

	"github.com/google/uuid"
	"github.com/state244/hub/internal/domain/recruitment"
)

// SubmitInput is a migration application as submitted
type SubmitInput struct {
	PlayerName       string
	GamePlayerID     string
	CurrentState     int
	FurnaceLevel     int
	Power            int64
	TargetAllianceID uuid.UUID
	DiscordHandle    string
	Message          string
}

// ApplicationResponse is an application as reviewers see it
type ApplicationResponse struct {
	ID                  uuid.UUID  `json:"id"`
	PlayerName          string     `json:"player_name"`
	GamePlayerID        string     `json:"game_player_id"`
	CurrentState        int        `json:"current_state"`
	FurnaceLevel        int        `json:"furnace_level"`
	Power               int64      `json:"power"`
	TargetAllianceID    uuid.UUID  `json:"target_alliance_id"`
	DiscordHandle       string     `json:"discord_handle"`
	Message             string     `json:"message"`
	Status              string     `json:"status"`
	AllianceReviewedBy  *uuid.UUID `json:"alliance_reviewed_by"`
	AllianceReviewedAt  *time.Time `json:"alliance_reviewed_at"`
	PresidentReviewedBy *uuid.UUID `json:"president_reviewed_by"`
	PresidentReviewedAt *time.Time `json:"president_reviewed_at"`
	RejectionReason     string     `json:"rejection_reason"`
	ApplicantID         *uuid.UUID `json:"applicant_id"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// ToApplicationResponse converts a domain application
func ToApplicationResponse(a *recruitment.Application) ApplicationResponse {
	return ApplicationResponse{
		ID:                  a.ID,
		PlayerName:          a.PlayerName,
		GamePlayerID:        a.GamePlayerID,
		CurrentState:        a.CurrentState,
		FurnaceLevel:        a.FurnaceLevel,
		Power:               a.Power,
		TargetAllianceID:    a.TargetAllianceID,
		DiscordHandle:       a.DiscordHandle,
		Message:             a.Message,
		Status:              string(a.Status),
		AllianceReviewedBy:  a.AllianceReviewedBy,
		AllianceReviewedAt:  a.AllianceReviewedAt,
		PresidentReviewedBy: a.PresidentReviewedBy,
		PresidentReviewedAt: a.PresidentReviewedAt,
		RejectionReason:     a.RejectionReason,
		ApplicantID:         a.ApplicantID,
		CreatedAt:           a.CreatedAt,
		UpdatedAt:           a.UpdatedAt,
	}
}

// SubmitResponse returns the new application with its one-time tracking code
type SubmitResponse struct {
	Application  ApplicationResponse `json:"application"`
	TrackingCode string              `json:"tracking_code"`
}

// StatusResponse is what an applicant sees through the tracking code
type StatusResponse struct {
	ID              uuid.UUID `json:"id"`
	PlayerName      string    `json:"player_name"`
	AllianceName    string    `json:"alliance_name"`
	Status          string    `json:"status"`
	RejectionReason string    `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ListInput filters the reviewer listing
type ListInput struct {
	Page       int
	PageSize   int
	Status     string
	AllianceID *uuid.UUID
	Keyword    string
	OrderBy    string
	OrderDir   string
}

// ReviewInput is a reviewer's decision
type ReviewInput struct {
	Decision string
	Reason   string
}
