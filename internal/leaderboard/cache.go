package leaderboard

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheKey = "leaderboard:top"

// ErrCacheMiss indicates the leaderboard is not present in Redis.
var ErrCacheMiss = errors.New("leaderboard: cache miss")

// Cache wraps Redis based caching of the ranked entries.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache instantiates the cache helper.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Get returns the cached entries, or ErrCacheMiss when absent.
func (c *Cache) Get(ctx context.Context) ([]Entry, error) {
	if c == nil || c.client == nil {
		return nil, ErrCacheMiss
	}
	raw, err := c.client.Get(ctx, cacheKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, err
	}
	var entries []Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Set stores the entries under the configured TTL.
func (c *Cache) Set(ctx context.Context, entries []Entry) error {
	if c == nil || c.client == nil {
		return nil
	}
	raw, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, cacheKey, raw, c.ttl).Err()
}
