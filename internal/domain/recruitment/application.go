package recruitment

import (
	"crypto/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/state244/hub/internal/domain/membership"
	"github.com/state244/hub/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Status is the position of an application in the two-stage review
type Status string

const (
	StatusPending           Status = "pending"
	StatusAllianceApproved  Status = "alliance_approved"
	StatusPresidentApproved Status = "president_approved"
	StatusRejected          Status = "rejected"
	StatusWithdrawn         Status = "withdrawn"
)

// IsValid reports whether s is a known status
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusAllianceApproved, StatusPresidentApproved, StatusRejected, StatusWithdrawn:
		return true
	}
	return false
}

// IsFinal reports statuses no transition leaves
func (s Status) IsFinal() bool {
	return s == StatusPresidentApproved || s == StatusRejected || s == StatusWithdrawn
}

// Decision is a reviewer's verdict
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

// IsValid reports whether d is approve or reject
func (d Decision) IsValid() bool {
	return d == DecisionApprove || d == DecisionReject
}

const (
	maxPlayerNameLen    = 50
	maxGamePlayerIDLen  = 20
	maxDiscordHandleLen = 64
	maxMessageLen       = 2000
	maxReasonLen        = 500
	maxPower            = int64(10_000_000_000_000)
	maxFurnaceLevel     = 35
	maxStateNumber      = 9999

	trackingCodeLen      = 12
	trackingCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	trackingCodeCost     = 10
)

// Application is a request from a player in another state to move into an alliance here
type Application struct {
	shared.BaseAggregateRoot
	PlayerName          string
	GamePlayerID        string
	CurrentState        int
	FurnaceLevel        int
	Power               int64
	TargetAllianceID    uuid.UUID
	DiscordHandle       string
	Message             string
	Status              Status
	AllianceReviewedBy  *uuid.UUID
	AllianceReviewedAt  *time.Time
	PresidentReviewedBy *uuid.UUID
	PresidentReviewedAt *time.Time
	RejectionReason     string
	TrackingCodeHash    string
	ApplicantID         *uuid.UUID
}

// ApplicationInput carries what an applicant submits
type ApplicationInput struct {
	PlayerName       string
	GamePlayerID     string
	CurrentState     int
	FurnaceLevel     int
	Power            int64
	TargetAllianceID uuid.UUID
	DiscordHandle    string
	Message          string
	ApplicantID      *uuid.UUID
}

// NewApplication validates the input and returns the pending application
// together with the plain tracking code. Only the bcrypt hash is kept.
func NewApplication(in ApplicationInput) (*Application, string, error) {
	name := membership.NormalizeName(in.PlayerName)
	if n := membership.RuneLen(name); n < 1 || n > maxPlayerNameLen {
		return nil, "", shared.NewInvalidInputError("player_name must be 1 to 50 characters")
	}
	gid := strings.TrimSpace(in.GamePlayerID)
	if gid == "" || len(gid) > maxGamePlayerIDLen || strings.Trim(gid, "0123456789") != "" {
		return nil, "", shared.NewInvalidInputError("game_player_id must be 1 to 20 digits")
	}
	if in.CurrentState < 1 || in.CurrentState > maxStateNumber {
		return nil, "", shared.NewInvalidInputError("current_state must be between 1 and 9999")
	}
	if in.FurnaceLevel < 1 || in.FurnaceLevel > maxFurnaceLevel {
		return nil, "", shared.NewInvalidInputError("furnace_level must be between 1 and 35")
	}
	if in.Power < 0 || in.Power > maxPower {
		return nil, "", shared.NewInvalidInputError("power is out of range")
	}
	if in.TargetAllianceID == uuid.Nil {
		return nil, "", shared.NewInvalidInputError("target_alliance_id is required")
	}
	discord := strings.TrimSpace(in.DiscordHandle)
	if membership.RuneLen(discord) > maxDiscordHandleLen {
		return nil, "", shared.NewInvalidInputError("discord_handle cannot exceed 64 characters")
	}
	msg := strings.TrimSpace(in.Message)
	if membership.RuneLen(msg) > maxMessageLen {
		return nil, "", shared.NewInvalidInputError("message cannot exceed 2000 characters")
	}

	code, err := newTrackingCode()
	if err != nil {
		return nil, "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), trackingCodeCost)
	if err != nil {
		return nil, "", err
	}

	app := &Application{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		PlayerName:        name,
		GamePlayerID:      gid,
		CurrentState:      in.CurrentState,
		FurnaceLevel:      in.FurnaceLevel,
		Power:             in.Power,
		TargetAllianceID:  in.TargetAllianceID,
		DiscordHandle:     discord,
		Message:           msg,
		Status:            StatusPending,
		TrackingCodeHash:  string(hash),
		ApplicantID:       in.ApplicantID,
	}
	app.Record(NewApplicationEvent(EventApplicationUpdated, app))
	return app, code, nil
}

func newTrackingCode() (string, error) {
	buf := make([]byte, trackingCodeLen)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = trackingCodeAlphabet[int(b)%len(trackingCodeAlphabet)]
	}
	return string(buf), nil
}

// VerifyTrackingCode checks a code handed back by the applicant
func (a *Application) VerifyTrackingCode(code string) bool {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" || a.TrackingCodeHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(a.TrackingCodeHash), []byte(code)) == nil
}

// AllianceReview records the first-stage decision
func (a *Application) AllianceReview(reviewer uuid.UUID, decision Decision, reason string) error {
	if err := validateDecision(decision, reason); err != nil {
		return err
	}
	if a.Status != StatusPending {
		return shared.NewInvalidStateError("application is %s; alliance review needs a pending application", a.Status)
	}
	now := time.Now()
	a.AllianceReviewedBy = &reviewer
	a.AllianceReviewedAt = &now
	a.decide(decision, StatusAllianceApproved, reason)
	return nil
}

// PresidentReview records the final decision. The alliance must have approved first.
func (a *Application) PresidentReview(reviewer uuid.UUID, decision Decision, reason string) error {
	if err := validateDecision(decision, reason); err != nil {
		return err
	}
	if a.Status != StatusAllianceApproved {
		return shared.NewInvalidStateError("application is %s; president review needs alliance approval first", a.Status)
	}
	now := time.Now()
	a.PresidentReviewedBy = &reviewer
	a.PresidentReviewedAt = &now
	a.decide(decision, StatusPresidentApproved, reason)
	return nil
}

// Withdraw lets the applicant pull a pending application
func (a *Application) Withdraw(code string) error {
	if !a.VerifyTrackingCode(code) {
		return shared.NewForbiddenError("tracking code does not match")
	}
	if a.Status != StatusPending {
		return shared.NewInvalidStateError("only pending applications can be withdrawn")
	}
	a.Status = StatusWithdrawn
	a.Touch()
	a.Record(NewApplicationEvent(EventApplicationUpdated, a))
	return nil
}

func (a *Application) decide(decision Decision, approved Status, reason string) {
	if decision == DecisionApprove {
		a.Status = approved
	} else {
		a.Status = StatusRejected
		a.RejectionReason = strings.TrimSpace(reason)
	}
	a.Touch()
	a.Record(NewApplicationEvent(EventApplicationUpdated, a))
}

func validateDecision(decision Decision, reason string) error {
	if !decision.IsValid() {
		return shared.NewInvalidInputError("decision must be approve or reject")
	}
	if membership.RuneLen(reason) > maxReasonLen {
		return shared.NewInvalidInputError("reason cannot exceed 500 characters")
	}
	return nil
}
