package recruitment

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/state244/hub/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() ApplicationInput {
	return ApplicationInput{
		PlayerName:       "Frostbite",
		GamePlayerID:     "987654321",
		CurrentState:     1021,
		FurnaceLevel:     30,
		Power:            250_000_000,
		TargetAllianceID: uuid.New(),
		DiscordHandle:    "frostbite#0001",
		Message:          "Looking for an active alliance",
	}
}

func newPending(t *testing.T) (*Application, string) {
	t.Helper()
	app, code, err := NewApplication(validInput())
	require.NoError(t, err)
	return app, code
}

func TestNewApplication(t *testing.T) {
	app, code := newPending(t)

	assert.Equal(t, StatusPending, app.Status)
	assert.Len(t, code, trackingCodeLen)
	assert.NotEqual(t, code, app.TrackingCodeHash)
	assert.True(t, app.VerifyTrackingCode(code))
	assert.True(t, app.VerifyTrackingCode(strings.ToLower(code)))
	assert.False(t, app.VerifyTrackingCode("WRONGCODE123"))

	events := app.Events()
	require.Len(t, events, 1)
	assert.Equal(t, EventApplicationUpdated, events[0].EventType())
	assert.Equal(t, StatusPending, events[0].(*ApplicationEvent).Status)
	audience, alliance := events[0].Scope()
	assert.Equal(t, shared.AudienceAlliance, audience)
	assert.Equal(t, app.TargetAllianceID, *alliance)
}

func TestNewApplication_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ApplicationInput)
	}{
		{"empty name", func(in *ApplicationInput) { in.PlayerName = "  " }},
		{"long name", func(in *ApplicationInput) { in.PlayerName = strings.Repeat("x", 51) }},
		{"non digit player id", func(in *ApplicationInput) { in.GamePlayerID = "12a" }},
		{"state zero", func(in *ApplicationInput) { in.CurrentState = 0 }},
		{"state too high", func(in *ApplicationInput) { in.CurrentState = 10000 }},
		{"furnace zero", func(in *ApplicationInput) { in.FurnaceLevel = 0 }},
		{"furnace too high", func(in *ApplicationInput) { in.FurnaceLevel = 36 }},
		{"negative power", func(in *ApplicationInput) { in.Power = -1 }},
		{"huge power", func(in *ApplicationInput) { in.Power = maxPower + 1 }},
		{"no alliance", func(in *ApplicationInput) { in.TargetAllianceID = uuid.Nil }},
		{"long message", func(in *ApplicationInput) { in.Message = strings.Repeat("m", 2001) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)
			_, _, err := NewApplication(in)
			assert.True(t, errors.Is(err, shared.ErrInvalidInput), "got %v", err)
		})
	}
}

func TestApplication_FullApproval(t *testing.T) {
	app, _ := newPending(t)
	officer, president := uuid.New(), uuid.New()

	require.NoError(t, app.AllianceReview(officer, DecisionApprove, ""))
	assert.Equal(t, StatusAllianceApproved, app.Status)
	assert.Equal(t, officer, *app.AllianceReviewedBy)
	assert.NotNil(t, app.AllianceReviewedAt)

	require.NoError(t, app.PresidentReview(president, DecisionApprove, ""))
	assert.Equal(t, StatusPresidentApproved, app.Status)
	assert.Equal(t, president, *app.PresidentReviewedBy)
	assert.True(t, app.Status.IsFinal())
}

func TestApplication_PresidentNeedsAllianceApproval(t *testing.T) {
	app, _ := newPending(t)

	err := app.PresidentReview(uuid.New(), DecisionApprove, "")
	assert.True(t, errors.Is(err, shared.ErrInvalidState))
	assert.Equal(t, StatusPending, app.Status)
}

func TestApplication_Rejections(t *testing.T) {
	t.Run("alliance rejects", func(t *testing.T) {
		app, _ := newPending(t)
		require.NoError(t, app.AllianceReview(uuid.New(), DecisionReject, " roster full "))
		assert.Equal(t, StatusRejected, app.Status)
		assert.Equal(t, "roster full", app.RejectionReason)

		err := app.AllianceReview(uuid.New(), DecisionApprove, "")
		assert.True(t, errors.Is(err, shared.ErrInvalidState))
	})

	t.Run("president rejects", func(t *testing.T) {
		app, _ := newPending(t)
		require.NoError(t, app.AllianceReview(uuid.New(), DecisionApprove, ""))
		require.NoError(t, app.PresidentReview(uuid.New(), DecisionReject, "state cap reached"))
		assert.Equal(t, StatusRejected, app.Status)
	})

	t.Run("bad decision", func(t *testing.T) {
		app, _ := newPending(t)
		err := app.AllianceReview(uuid.New(), Decision("maybe"), "")
		assert.True(t, errors.Is(err, shared.ErrInvalidInput))
	})
}

func TestApplication_Withdraw(t *testing.T) {
	app, code := newPending(t)

	err := app.Withdraw("nope")
	assert.True(t, errors.Is(err, shared.ErrForbidden))

	require.NoError(t, app.Withdraw(code))
	assert.Equal(t, StatusWithdrawn, app.Status)

	err = app.Withdraw(code)
	assert.True(t, errors.Is(err, shared.ErrInvalidState))
}

func TestApplication_WithdrawAfterReview(t *testing.T) {
	app, code := newPending(t)
	require.NoError(t, app.AllianceReview(uuid.New(), DecisionApprove, ""))

	err := app.Withdraw(code)
	assert.True(t, errors.Is(err, shared.ErrInvalidState))
}
