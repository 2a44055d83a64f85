package storage

import (
	"context"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/state244/hub/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestS3(t *testing.T) *S3ObjectStorage {
	t.Helper()
	s, err := NewS3ObjectStorage(context.Background(), config.StorageConfig{
		Endpoint:        "http://localhost:9000",
		Region:          "us-east-1",
		Bucket:          "hub-media",
		AccessKeyID:     "test-key",
		SecretAccessKey: "test-secret",
		UsePathStyle:    true,
		PresignExpiry:   10 * time.Minute,
	}, zaptest.NewLogger(t))
	require.NoError(t, err)
	return s
}

func TestNewS3ObjectStorage_Validation(t *testing.T) {
	t.Run("missing bucket", func(t *testing.T) {
		_, err := NewS3ObjectStorage(context.Background(), config.StorageConfig{}, zaptest.NewLogger(t))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bucket is required")
	})

	t.Run("bad endpoint", func(t *testing.T) {
		_, err := NewS3ObjectStorage(context.Background(), config.StorageConfig{
			Bucket:   "b",
			Endpoint: "::not a url",
		}, zaptest.NewLogger(t))
		require.Error(t, err)
	})

	t.Run("defaults presign expiry", func(t *testing.T) {
		s, err := NewS3ObjectStorage(context.Background(), config.StorageConfig{
			Bucket:          "b",
			Region:          "us-east-1",
			AccessKeyID:     "k",
			SecretAccessKey: "s",
		}, zaptest.NewLogger(t))
		require.NoError(t, err)
		assert.Equal(t, 15*time.Minute, s.presignExpiry)
		assert.Equal(t, "b", s.Bucket())
	})
}

func TestS3ObjectStorage_PresignGet(t *testing.T) {
	s := newTestS3(t)

	raw, expiresAt, err := s.PresignGet(context.Background(), "ai-images/u/1.png")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(10*time.Minute), expiresAt, 5*time.Second)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "localhost:9000", u.Host)
	assert.True(t, strings.HasPrefix(u.Path, "/hub-media/ai-images/u/1.png"))
	assert.Equal(t, "600", u.Query().Get("X-Amz-Expires"))
	assert.NotEmpty(t, u.Query().Get("X-Amz-Signature"))
}

func TestS3ObjectStorage_EmptyKey(t *testing.T) {
	s := newTestS3(t)
	ctx := context.Background()

	assert.ErrorIs(t, s.Put(ctx, "", nil, "image/png"), ErrEmptyKey)
	assert.ErrorIs(t, s.Delete(ctx, ""), ErrEmptyKey)
	_, _, err := s.PresignGet(ctx, "")
	assert.ErrorIs(t, err, ErrEmptyKey)
}

func TestMemoryObjectStorage(t *testing.T) {
	s := NewMemoryObjectStorage()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "ai-images/u/1.png", []byte{1, 2, 3}, "image/png"))
	data, ok := s.Get("ai-images/u/1.png")
	require.True(t, ok)
	assert.Equal(t, []byte{1, 2, 3}, data)

	link, _, err := s.PresignGet(ctx, "ai-images/u/1.png")
	require.NoError(t, err)
	assert.Contains(t, link, "ai-images/u/1.png")

	require.NoError(t, s.Delete(ctx, "ai-images/u/1.png"))
	_, ok = s.Get("ai-images/u/1.png")
	assert.False(t, ok)
}
