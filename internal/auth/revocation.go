package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenRevocations records per-user revocation cutoffs. Tokens issued
// before the cutoff are rejected, which makes a stateless JWT behave like
// "revoke all tokens for this user".
type TokenRevocations interface {
	RevokeAll(ctx context.Context, userID int64) error
	RevokedAt(ctx context.Context, userID int64) (time.Time, error)
}

type redisTokenRevocations struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisTokenRevocations stores cutoffs in Redis. Keys expire after the
// token TTL; older tokens are already invalid by then.
func NewRedisTokenRevocations(client *redis.Client, tokenTTL time.Duration) TokenRevocations {
	return &redisTokenRevocations{client: client, ttl: tokenTTL}
}

func revocationKey(userID int64) string {
	return fmt.Sprintf("auth:revoked_at:%d", userID)
}

func (s *redisTokenRevocations) RevokeAll(ctx context.Context, userID int64) error {
	now := time.Now().UTC()
	return s.client.Set(ctx, revocationKey(userID), now.Format(time.RFC3339Nano), s.ttl).Err()
}

// RevokedAt returns the zero time when no cutoff is recorded.
func (s *redisTokenRevocations) RevokedAt(ctx context.Context, userID int64) (time.Time, error) {
	val, err := s.client.Get(ctx, revocationKey(userID)).Result()
	if err == redis.Nil {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	return time.Parse(time.RFC3339Nano, val)
}
