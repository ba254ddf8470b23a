// Package redis provides a Redis-backed cache for task statistics.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/example/worklog/internal/ports/secondary"
)

// DefaultPrefix namespaces every key written by the cache.
const DefaultPrefix = "worklog:"

// StatsCache implements secondary.StatsCache with cache-aside semantics.
type StatsCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	hits   atomic.Uint64
	misses atomic.Uint64
}

// Open parses a redis:// URL, connects and verifies the connection.
func Open(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

// NewStatsCache creates a cache that stores entries for ttl.
func NewStatsCache(client *redis.Client, prefix string, ttl time.Duration) *StatsCache {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &StatsCache{client: client, prefix: prefix, ttl: ttl}
}

func (c *StatsCache) key(ownerID, day string, gen int64) string {
	return fmt.Sprintf("%sstats:%s:%d:%s", c.prefix, ownerID, gen, day)
}

func (c *StatsCache) genKey(ownerID string) string {
	return c.prefix + "stats-gen:" + ownerID
}

// Generation returns the owner's invalidation counter.
func (c *StatsCache) Generation(ctx context.Context, ownerID string) (int64, error) {
	gen, err := c.client.Get(ctx, c.genKey(ownerID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("cache generation error: %w", err)
	}
	return gen, nil
}

// Get returns the cached stats for the generation, or nil on a miss.
func (c *StatsCache) Get(ctx context.Context, ownerID, day string, gen int64) (*secondary.TaskStatsRecord, error) {
	data, err := c.client.Get(ctx, c.key(ownerID, day, gen)).Bytes()
	if errors.Is(err, redis.Nil) {
		c.misses.Add(1)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	var stats secondary.TaskStatsRecord
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, fmt.Errorf("cache unmarshal error: %w", err)
	}
	c.hits.Add(1)
	return &stats, nil
}

// Set stores stats under the generation they were computed for.
func (c *StatsCache) Set(ctx context.Context, ownerID, day string, gen int64, stats *secondary.TaskStatsRecord) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("cache marshal error: %w", err)
	}
	if err := c.client.Set(ctx, c.key(ownerID, day, gen), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set error: %w", err)
	}
	return nil
}

// Invalidate bumps the owner's generation. Entries under older generations
// are never read again and expire with their TTL.
func (c *StatsCache) Invalidate(ctx context.Context, ownerID string) error {
	if err := c.client.Incr(ctx, c.genKey(ownerID)).Err(); err != nil {
		return fmt.Errorf("cache invalidate error: %w", err)
	}
	return nil
}

// HitRate returns the percentage of Get calls served from the cache.
func (c *StatsCache) HitRate() float64 {
	hits, misses := c.hits.Load(), c.misses.Load()
	if hits+misses == 0 {
		return 0
	}
	return float64(hits) / float64(hits+misses) * 100
}

// Ping checks if the Redis connection is healthy.
func (c *StatsCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the Redis client connection.
func (c *StatsCache) Close() error {
	return c.client.Close()
}

var _ secondary.StatsCache = (*StatsCache)(nil)
