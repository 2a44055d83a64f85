package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/state244/hub/internal/infrastructure/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryRevocationList(t *testing.T) {
	list := auth.NewInMemoryRevocationList()
	ctx := context.Background()
	user := uuid.New()
	issued := time.Now().Add(-time.Minute)

	revoked, err := list.IsRevoked(ctx, user, issued)
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, list.RevokeUser(ctx, user, time.Hour))

	revoked, err = list.IsRevoked(ctx, user, issued)
	require.NoError(t, err)
	assert.True(t, revoked, "tokens issued before the cutoff are revoked")

	revoked, err = list.IsRevoked(ctx, user, time.Now().Add(time.Second))
	require.NoError(t, err)
	assert.False(t, revoked, "tokens issued after the cutoff stay valid")

	revoked, err = list.IsRevoked(ctx, uuid.New(), issued)
	require.NoError(t, err)
	assert.False(t, revoked)
}
