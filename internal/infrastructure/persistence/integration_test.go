//go:build integration

package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/state244/hub/internal/domain/membership"
	"github.com/state244/hub/internal/domain/shared"
	"github.com/state244/hub/internal/domain/stateinfo"
	"github.com/state244/hub/internal/domain/warplan"
	"github.com/state244/hub/internal/infrastructure/migration"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupPostgres starts a disposable PostgreSQL and applies the embedded migrations
func setupPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("hub_test"),
		tcpostgres.WithUsername("hub"),
		tcpostgres.WithPassword("hub"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)

	m, err := migration.New(sqlDB, "", zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, m.Up())

	version, dirty, err := m.Version()
	require.NoError(t, err)
	assert.NotZero(t, version)
	assert.False(t, dirty)

	return db
}

func TestPostgres_Repositories(t *testing.T) {
	db := setupPostgres(t)
	ctx := context.Background()

	alliances := NewGormAllianceRepository(db)
	profiles := NewGormProfileRepository(db)
	plans := NewGormPlanRepository(db)
	proposals := NewGormProposalRepository(db)

	alliance := newTestAlliance(t, "ICE", "Ice Guard", 1000)
	require.NoError(t, alliances.Create(ctx, alliance))

	t.Run("unique tag maps to conflict", func(t *testing.T) {
		err := alliances.Create(ctx, newTestAlliance(t, "ICE", "Other", 1))
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	})

	t.Run("alliance members are cleared", func(t *testing.T) {
		p := membership.NewProfile(uuid.New(), "r5@example.com")
		require.NoError(t, p.Assign(membership.RoleR5, &alliance.ID, false))
		require.NoError(t, profiles.Create(ctx, p))

		doomed := newTestAlliance(t, "GONE", "Gone Away", 1)
		require.NoError(t, alliances.Create(ctx, doomed))
		require.NoError(t, p.Assign(membership.RoleR5, &doomed.ID, false))
		require.NoError(t, profiles.Update(ctx, p))

		require.NoError(t, alliances.Delete(ctx, doomed.ID))
		got, err := profiles.FindByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, membership.RoleUser, got.Role)
		assert.Nil(t, got.AllianceID)
	})

	t.Run("assignment upsert on postgres", func(t *testing.T) {
		plan, err := warplan.NewPlan(alliance.ID, uuid.New(), warplan.PlanInput{Title: ptr("Bear")})
		require.NoError(t, err)
		require.NoError(t, plans.Create(ctx, plan))
		player, err := warplan.NewRosterPlayer(plan.ID, warplan.RosterInput{PlayerName: ptr("Zed")})
		require.NoError(t, err)
		require.NoError(t, plans.SaveRosterPlayer(ctx, player))

		for _, team := range []string{"Rally 1", "Rally 2"} {
			a, err := warplan.NewAssignment(plan.ID, player.ID, team, 1)
			require.NoError(t, err)
			require.NoError(t, plans.UpsertAssignment(ctx, a))
		}
		assignments, err := plans.FindAssignments(ctx, plan.ID)
		require.NoError(t, err)
		require.Len(t, assignments, 1)
		assert.Equal(t, "Rally 2", assignments[0].Team)
	})

	t.Run("duplicate vote on postgres", func(t *testing.T) {
		proposer := newTestProfile(t, membership.RoleR4)
		voter := newTestProfile(t, membership.RoleAdmin)
		p, err := stateinfo.NewProposal(proposer, "rules", "Rules", "Be nice.", "")
		require.NoError(t, err)
		require.NoError(t, proposals.Create(ctx, p))

		v, err := p.CastVote(voter, stateinfo.VoteApprove)
		require.NoError(t, err)
		require.NoError(t, proposals.RecordVote(ctx, p, v, nil))

		stale, err := proposals.FindByID(ctx, p.ID)
		require.NoError(t, err)
		again, err := stale.CastVote(voter, stateinfo.VoteApprove)
		require.NoError(t, err)
		assert.ErrorIs(t, proposals.RecordVote(ctx, stale, again, nil), shared.ErrAlreadyExists)
	})
}
