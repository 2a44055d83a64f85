package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/state244/hub/internal/domain/creative"
)

const rateLimitKeyPrefix = "hub:ratelimit:"

// decrementScript lowers a counter without letting it go below zero
var decrementScript = redis.NewScript(`
local v = tonumber(redis.call("GET", KEYS[1]) or "0")
if v > 0 then
	return redis.call("DECR", KEYS[1])
end
return 0
`)

// RedisRateLimitStore keeps fixed-window quota counters in Redis. Keys expire
// on their own one window after they close, so PurgeBefore has nothing to do.
type RedisRateLimitStore struct {
	client redis.UniversalClient
}

// NewRedisRateLimitStore creates a store on an existing client
func NewRedisRateLimitStore(client redis.UniversalClient) *RedisRateLimitStore {
	return &RedisRateLimitStore{client: client}
}

// RateLimitKey returns the counter key for one user, action and window
func RateLimitKey(userID uuid.UUID, action creative.Action, windowStart time.Time) string {
	return fmt.Sprintf("%s%s:%s:%d", rateLimitKeyPrefix, action, userID, windowStart.UTC().Unix())
}

// Increment implements creative.RateLimitStore
func (s *RedisRateLimitStore) Increment(ctx context.Context, userID uuid.UUID, action creative.Action, windowStart time.Time, window time.Duration) (int, error) {
	key := RateLimitKey(userID, action, windowStart)

	var incr *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.ExpireAt(ctx, key, windowStart.Add(2*window))
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to increment rate limit: %w", err)
	}
	return int(incr.Val()), nil
}

// Decrement implements creative.RateLimitStore
func (s *RedisRateLimitStore) Decrement(ctx context.Context, userID uuid.UUID, action creative.Action, windowStart time.Time) error {
	key := RateLimitKey(userID, action, windowStart)
	if err := decrementScript.Run(ctx, s.client, []string{key}).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("failed to decrement rate limit: %w", err)
	}
	return nil
}

// PurgeBefore implements creative.RateLimitStore
func (s *RedisRateLimitStore) PurgeBefore(context.Context, time.Time) (int64, error) {
	return 0, nil
}

var _ creative.RateLimitStore = (*RedisRateLimitStore)(nil)
