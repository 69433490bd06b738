// Package cache holds the redis-backed profile cache consulted by the
// profile endpoint. At most one logical session's cached data is live per
// token; logout invalidates it.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hasan-mia/the-x-tribune-server/internal/model"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "profile:"

// ProfileCache maps a token to the profile it was issued for. Entries
// expire on their own; logout removes them eagerly.
type ProfileCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewProfileCache creates a cache with the given entry lifetime.
func NewProfileCache(rdb *redis.Client, ttl time.Duration) *ProfileCache {
	return &ProfileCache{rdb: rdb, ttl: ttl}
}

// key derives the cache key; tokens are credentials and never stored
// verbatim.
func key(token string) string {
	sum := sha256.Sum256([]byte(token))
	return keyPrefix + hex.EncodeToString(sum[:])
}

// Get returns the cached profile, or (nil, nil) on a miss.
func (c *ProfileCache) Get(ctx context.Context, token string) (*model.User, error) {
	data, err := c.rdb.Get(ctx, key(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("profile cache get: %w", err)
	}

	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		// A corrupt entry is a miss; the caller re-reads the database.
		return nil, nil
	}
	return &user, nil
}

// Set stores the profile for the token.
func (c *ProfileCache) Set(ctx context.Context, token string, user *model.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("profile cache encode: %w", err)
	}
	if err := c.rdb.Set(ctx, key(token), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("profile cache set: %w", err)
	}
	return nil
}

// Invalidate removes the token's cached profile. Removing a missing entry
// is not an error.
func (c *ProfileCache) Invalidate(ctx context.Context, token string) error {
	if err := c.rdb.Del(ctx, key(token)).Err(); err != nil {
		return fmt.Errorf("profile cache invalidate: %w", err)
	}
	return nil
}
