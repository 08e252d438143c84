package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionStore keeps one record per live token (jti -> user id) so /logout can
// revoke a JWT before its natural expiry. TTL matches the token lifetime.
type SessionStore struct {
	cache *redis.Client
	ttl   time.Duration
}

func NewSessionStore(cache *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{cache: cache, ttl: ttl}
}

func key(jti string) string { return fmt.Sprintf("session:%s", jti) }

func (s *SessionStore) Put(ctx context.Context, jti string, userID uint) error {
	return s.cache.Set(ctx, key(jti), strconv.FormatUint(uint64(userID), 10), s.ttl).Err()
}

// Get returns (userID, true) for a live session, (0, false) for a revoked or
// expired one.
func (s *SessionStore) Get(ctx context.Context, jti string) (uint, bool, error) {
	val, err := s.cache.Get(ctx, key(jti)).Result()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	id, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0, false, err
	}
	return uint(id), true, nil
}

func (s *SessionStore) Delete(ctx context.Context, jti string) error {
	return s.cache.Del(ctx, key(jti)).Err()
}
