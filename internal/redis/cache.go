package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"courier-chat/internal/domain/user"
)

// Cache key patterns:
// - profile:{username} - 5m TTL, full profile cache (no password hash)

// CacheConfig contains configuration for caching
type CacheConfig struct {
	ProfileTTL time.Duration // TTL for profile cache (default 5m)
}

// DefaultCacheConfig returns sensible defaults
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		ProfileTTL: 5 * time.Minute,
	}
}

// CacheStore handles caching in Redis
type CacheStore struct {
	client *goredis.Client
	config CacheConfig
}

// NewCacheStore creates a new cache store
func NewCacheStore(client *goredis.Client, config CacheConfig) *CacheStore {
	return &CacheStore{
		client: client,
		config: config,
	}
}

// ProfileCache is the cached form of a user record. The password hash is
// never written to the cache.
type ProfileCache struct {
	Username    string     `json:"username"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Phone       string     `json:"phone"`
	JoinAt      time.Time  `json:"join_at"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// GetProfile retrieves a profile from cache. A cache miss returns (nil, nil).
func (c *CacheStore) GetProfile(ctx context.Context, username string) (*ProfileCache, error) {
	key := fmt.Sprintf("profile:%s", username)
	data, err := c.client.Get(ctx, key).Result()
	if err == goredis.Nil {
		return nil, nil // Cache miss
	}
	if err != nil {
		return nil, err
	}

	var profile ProfileCache
	if err := json.Unmarshal([]byte(data), &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// SetProfile stores a profile in cache
func (c *CacheStore) SetProfile(ctx context.Context, profile *ProfileCache) error {
	key := fmt.Sprintf("profile:%s", profile.Username)
	data, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, c.config.ProfileTTL).Err()
}

// SetProfileFromEntity stores a profile from the domain entity
func (c *CacheStore) SetProfileFromEntity(ctx context.Context, u user.User) error {
	cached := &ProfileCache{
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
		JoinAt:    u.JoinAt,
	}
	if u.LastLoginAt.Valid {
		t := u.LastLoginAt.Time
		cached.LastLoginAt = &t
	}
	return c.SetProfile(ctx, cached)
}

// InvalidateProfile removes a profile from cache
func (c *CacheStore) InvalidateProfile(ctx context.Context, username string) error {
	key := fmt.Sprintf("profile:%s", username)
	return c.client.Del(ctx, key).Err()
}
