package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/state244/hub/internal/domain/recruitment"
	"github.com/state244/hub/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApplication(t *testing.T, name string, allianceID uuid.UUID) *recruitment.Application {
	t.Helper()
	app, _, err := recruitment.NewApplication(recruitment.ApplicationInput{
		PlayerName:       name,
		GamePlayerID:     "123456789",
		CurrentState:     101,
		FurnaceLevel:     25,
		Power:            45_000_000,
		TargetAllianceID: allianceID,
	})
	require.NoError(t, err)
	return app
}

func TestGormApplicationRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormApplicationRepository(db)
	ctx := context.Background()

	allianceA, allianceB := uuid.New(), uuid.New()
	first := newTestApplication(t, "Frostbite", allianceA)
	second := newTestApplication(t, "Snowfall", allianceA)
	third := newTestApplication(t, "Glacier", allianceB)
	for _, a := range []*recruitment.Application{first, second, third} {
		require.NoError(t, repo.Create(ctx, a))
	}

	t.Run("persists review progress", func(t *testing.T) {
		reviewer := uuid.New()
		require.NoError(t, first.AllianceReview(reviewer, recruitment.DecisionApprove, ""))
		require.NoError(t, repo.Update(ctx, first))

		got, err := repo.FindByID(ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, recruitment.StatusAllianceApproved, got.Status)
		require.NotNil(t, got.AllianceReviewedBy)
		assert.Equal(t, reviewer, *got.AllianceReviewedBy)
		assert.Equal(t, first.TrackingCodeHash, got.TrackingCodeHash)
	})

	t.Run("scopes listings to an alliance and status", func(t *testing.T) {
		pending := recruitment.StatusPending
		list, total, err := repo.FindAll(ctx, recruitment.ApplicationFilter{
			Filter:     shared.DefaultFilter(),
			Status:     &pending,
			AllianceID: &allianceA,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, list, 1)
		assert.Equal(t, second.ID, list[0].ID)
	})

	t.Run("searches by player name", func(t *testing.T) {
		list, total, err := repo.FindAll(ctx, recruitment.ApplicationFilter{
			Filter: shared.Filter{Page: 1, PageSize: 10, Keyword: "glac"},
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Equal(t, third.ID, list[0].ID)
	})

	t.Run("counts by status", func(t *testing.T) {
		counts, err := repo.CountByStatus(ctx, &allianceA)
		require.NoError(t, err)
		assert.Equal(t, int64(1), counts[recruitment.StatusPending])
		assert.Equal(t, int64(1), counts[recruitment.StatusAllianceApproved])

		all, err := repo.CountByStatus(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(2), all[recruitment.StatusPending])
	})

	t.Run("missing application is not found", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
