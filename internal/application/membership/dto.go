package membership

import (
	"time"

	"github.com/google/uuid"
	"github.com/state244/hub/internal/domain/membership"
)

// ProfileResponse is a profile in API responses
type ProfileResponse struct {
	ID              uuid.UUID  `json:"id"`
	Email           string     `json:"email"`
	Username        string     `json:"username"`
	Role            string     `json:"role"`
	AllianceID      *uuid.UUID `json:"alliance_id"`
	CanEditAlliance bool       `json:"can_edit_alliance"`
	GamePlayerID    string     `json:"game_player_id"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// ToProfileResponse converts a domain profile
func ToProfileResponse(p *membership.Profile) ProfileResponse {
	return ProfileResponse{
		ID:              p.ID,
		Email:           p.Email,
		Username:        p.Username,
		Role:            string(p.Role),
		AllianceID:      p.AllianceID,
		CanEditAlliance: p.CanEditAlliance,
		GamePlayerID:    p.GamePlayerID,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

// UpdateMeInput carries self-service profile changes. Nil means unchanged.
type UpdateMeInput struct {
	Username     *string
	GamePlayerID *string
}

// ListUsersInput filters the admin user listing
type ListUsersInput struct {
	Page       int
	PageSize   int
	Keyword    string
	Role       string
	AllianceID *uuid.UUID
	OrderBy    string
	OrderDir   string
}

// UpdateUserInput carries an admin's changes to a user. Nil means unchanged;
// ClearAlliance removes the alliance link.
type UpdateUserInput struct {
	Role            *string
	AllianceID      *uuid.UUID
	ClearAlliance   bool
	CanEditAlliance *bool
}

// AllianceResponse is an alliance in API responses
type AllianceResponse struct {
	ID                uuid.UUID  `json:"id"`
	Tag               string     `json:"tag"`
	Name              string     `json:"name"`
	Description       string     `json:"description"`
	RecruitmentStatus string     `json:"recruitment_status"`
	Language          string     `json:"language"`
	DiscordURL        string     `json:"discord_url"`
	Power             int64      `json:"power"`
	MemberCount       int        `json:"member_count"`
	LeaderID          *uuid.UUID `json:"leader_id"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// ToAllianceResponse converts a domain alliance
func ToAllianceResponse(a *membership.Alliance) AllianceResponse {
	return AllianceResponse{
		ID:                a.ID,
		Tag:               a.Tag,
		Name:              a.Name,
		Description:       a.Description,
		RecruitmentStatus: string(a.RecruitmentStatus),
		Language:          a.Language,
		DiscordURL:        a.DiscordURL,
		Power:             a.Power,
		MemberCount:       a.MemberCount,
		LeaderID:          a.LeaderID,
		CreatedAt:         a.CreatedAt,
		UpdatedAt:         a.UpdatedAt,
	}
}

// AllianceInput carries alliance fields for create and update. Nil means unchanged.
type AllianceInput struct {
	Tag               *string
	Name              *string
	Description       *string
	RecruitmentStatus *string
	Language          *string
	DiscordURL        *string
	Power             *int64
	MemberCount       *int
	LeaderID          *uuid.UUID
}

func (in AllianceInput) toDomain() membership.AllianceInput {
	out := membership.AllianceInput{
		Tag:         in.Tag,
		Name:        in.Name,
		Description: in.Description,
		Language:    in.Language,
		DiscordURL:  in.DiscordURL,
		Power:       in.Power,
		MemberCount: in.MemberCount,
		LeaderID:    in.LeaderID,
	}
	if in.RecruitmentStatus != nil {
		rs := membership.RecruitmentStatus(*in.RecruitmentStatus)
		out.RecruitmentStatus = &rs
	}
	return out
}

// MemberResponse is a profile as seen by fellow alliance members
type MemberResponse struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Role         string    `json:"role"`
	GamePlayerID string    `json:"game_player_id"`
}
