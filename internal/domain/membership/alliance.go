package membership

import (
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/state244/hub/internal/domain/shared"
)

// RecruitmentStatus controls whether an alliance takes migration applications
type RecruitmentStatus string

const (
	RecruitmentOpen       RecruitmentStatus = "open"
	RecruitmentClosed     RecruitmentStatus = "closed"
	RecruitmentInviteOnly RecruitmentStatus = "invite_only"
)

// IsValid reports whether s is a known status
func (s RecruitmentStatus) IsValid() bool {
	switch s {
	case RecruitmentOpen, RecruitmentClosed, RecruitmentInviteOnly:
		return true
	}
	return false
}

const (
	maxAllianceMembers  = 100
	maxAllianceDescLen  = 2000
	maxAllianceNameLen  = 50
	minAllianceTagLen   = 2
	maxAllianceTagLen   = 5
	maxAllianceLanguage = 32
)

// Alliance is a named group inside the state
type Alliance struct {
	shared.BaseEntity
	Tag               string
	Name              string
	Description       string
	RecruitmentStatus RecruitmentStatus
	Language          string
	DiscordURL        string
	Power             int64
	MemberCount       int
	LeaderID          *uuid.UUID
}

// AllianceInput carries the editable alliance fields. Nil means unchanged.
type AllianceInput struct {
	Tag               *string
	Name              *string
	Description       *string
	RecruitmentStatus *RecruitmentStatus
	Language          *string
	DiscordURL        *string
	Power             *int64
	MemberCount       *int
	LeaderID          *uuid.UUID
}

// NewAlliance creates an alliance; tag and name are required
func NewAlliance(in AllianceInput) (*Alliance, error) {
	if in.Tag == nil || in.Name == nil {
		return nil, shared.NewInvalidInputError("tag and name are required")
	}
	a := &Alliance{
		BaseEntity:        shared.NewBaseEntity(),
		RecruitmentStatus: RecruitmentOpen,
	}
	if err := a.Apply(in); err != nil {
		return nil, err
	}
	return a, nil
}

// Apply validates and applies the non-nil fields
func (a *Alliance) Apply(in AllianceInput) error {
	if in.Tag != nil {
		tag := NormalizeTag(*in.Tag)
		if n := RuneLen(tag); n < minAllianceTagLen || n > maxAllianceTagLen || !isAlphanumeric(tag) {
			return shared.NewInvalidInputError("tag must be 2 to 5 letters or digits")
		}
		a.Tag = tag
	}
	if in.Name != nil {
		name := NormalizeName(*in.Name)
		if n := RuneLen(name); n < 1 || n > maxAllianceNameLen {
			return shared.NewInvalidInputError("name must be 1 to 50 characters")
		}
		a.Name = name
	}
	if in.Description != nil {
		if RuneLen(*in.Description) > maxAllianceDescLen {
			return shared.NewInvalidInputError("description cannot exceed 2000 characters")
		}
		a.Description = strings.TrimSpace(*in.Description)
	}
	if in.RecruitmentStatus != nil {
		if !in.RecruitmentStatus.IsValid() {
			return shared.NewInvalidInputError("unknown recruitment status %q", *in.RecruitmentStatus)
		}
		a.RecruitmentStatus = *in.RecruitmentStatus
	}
	if in.Language != nil {
		if RuneLen(*in.Language) > maxAllianceLanguage {
			return shared.NewInvalidInputError("language cannot exceed 32 characters")
		}
		a.Language = strings.TrimSpace(*in.Language)
	}
	if in.DiscordURL != nil {
		d := strings.TrimSpace(*in.DiscordURL)
		if d != "" {
			u, err := url.Parse(d)
			if err != nil || u.Scheme != "https" || u.Host == "" {
				return shared.NewInvalidInputError("discord_url must be an https URL")
			}
		}
		a.DiscordURL = d
	}
	if in.Power != nil {
		if *in.Power < 0 {
			return shared.NewInvalidInputError("power cannot be negative")
		}
		a.Power = *in.Power
	}
	if in.MemberCount != nil {
		if *in.MemberCount < 0 || *in.MemberCount > maxAllianceMembers {
			return shared.NewInvalidInputError("member_count must be between 0 and 100")
		}
		a.MemberCount = *in.MemberCount
	}
	if in.LeaderID != nil {
		id := *in.LeaderID
		a.LeaderID = &id
	}
	a.Touch()
	return nil
}

// AcceptsApplications reports whether the alliance takes migration applications
func (a *Alliance) AcceptsApplications() bool {
	return a.RecruitmentStatus != RecruitmentClosed
}
