package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RevocationList rejects tokens issued to a user before a cutoff. Deleting a
// user revokes every session they hold until those tokens expire.
type RevocationList interface {
	RevokeUser(ctx context.Context, userID uuid.UUID, ttl time.Duration) error
	IsRevoked(ctx context.Context, userID uuid.UUID, issuedAt time.Time) (bool, error)
}

// RedisRevocationList stores the per-user cutoff as a unix timestamp
type RedisRevocationList struct {
	client    redis.UniversalClient
	keyPrefix string
}

// NewRedisRevocationList creates a revocation list on an existing client
func NewRedisRevocationList(client redis.UniversalClient) *RedisRevocationList {
	return &RedisRevocationList{client: client, keyPrefix: "hub:revoked:"}
}

// RevokeUser invalidates every token issued to the user so far
func (l *RedisRevocationList) RevokeUser(ctx context.Context, userID uuid.UUID, ttl time.Duration) error {
	if err := l.client.Set(ctx, l.keyPrefix+userID.String(), time.Now().Unix(), ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke user tokens: %w", err)
	}
	return nil
}

// IsRevoked reports whether a token issued at issuedAt predates the user's cutoff
func (l *RedisRevocationList) IsRevoked(ctx context.Context, userID uuid.UUID, issuedAt time.Time) (bool, error) {
	raw, err := l.client.Get(ctx, l.keyPrefix+userID.String()).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}
	cutoff, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return false, fmt.Errorf("failed to parse revocation timestamp: %w", err)
	}
	return issuedAt.Unix() <= cutoff, nil
}

// InMemoryRevocationList is a single-instance RevocationList
type InMemoryRevocationList struct {
	mu      sync.RWMutex
	cutoffs map[uuid.UUID]time.Time
}

// NewInMemoryRevocationList creates an empty list
func NewInMemoryRevocationList() *InMemoryRevocationList {
	return &InMemoryRevocationList{cutoffs: make(map[uuid.UUID]time.Time)}
}

// RevokeUser records now as the user's cutoff. Entries are not expired.
func (l *InMemoryRevocationList) RevokeUser(_ context.Context, userID uuid.UUID, _ time.Duration) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cutoffs[userID] = time.Now()
	return nil
}

// IsRevoked compares issuedAt against the recorded cutoff
func (l *InMemoryRevocationList) IsRevoked(_ context.Context, userID uuid.UUID, issuedAt time.Time) (bool, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	cutoff, ok := l.cutoffs[userID]
	if !ok {
		return false, nil
	}
	return !issuedAt.After(cutoff), nil
}

var (
	_ RevocationList = (*RedisRevocationList)(nil)
	_ RevocationList = (*InMemoryRevocationList)(nil)
)
