package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
)

// JudgeListTTL bounds how stale the public judge list may be.
const JudgeListTTL = 60 * time.Second

// CacheService provides a Redis cache-aside layer for the judge listing.
type CacheService struct {
	rdb    *redis.Client
	hits   prometheus.Counter
	misses prometheus.Counter
}

// NewCacheService creates a new CacheService. If redisURL is empty or the
// connection fails, it returns a CacheService with a nil client and every
// operation becomes a no-op.
func NewCacheService(redisURL string) *CacheService {
	if redisURL == "" {
		log.Println("redis: no URL configured, caching disabled")
		return &CacheService{}
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("redis: invalid URL %q, caching disabled: %v", redisURL, err)
		return &CacheService{}
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("redis: connection failed, caching disabled: %v", err)
		return &CacheService{}
	}

	log.Println("redis: connected, caching enabled")
	return &CacheService{rdb: rdb}
}

// Client returns the underlying Redis client (for health checks). May be nil.
func (c *CacheService) Client() *redis.Client {
	return c.rdb
}

// SetCounters attaches hit/miss counters to cache lookups. Either may be
// nil; a disabled cache records neither hits nor misses.
func (c *CacheService) SetCounters(hits, misses prometheus.Counter) {
	c.hits = hits
	c.misses = misses
}

// GetJudges retrieves the cached judge listing for a filter variant.
// Returns nil when not cached or the cache is disabled.
func (c *CacheService) GetJudges(ctx context.Context, usaOnly bool) ([]byte, error) {
	if c.rdb == nil {
		return nil, nil
	}
	data, err := c.rdb.Get(ctx, judgesKey(usaOnly)).Bytes()
	if err == redis.Nil {
		if c.misses != nil {
			c.misses.Inc()
		}
		return nil, nil
	}
	if err == nil && c.hits != nil {
		c.hits.Inc()
	}
	return data, err
}

// SetJudges stores a judge listing response.
func (c *CacheService) SetJudges(ctx context.Context, usaOnly bool, data interface{}) error {
	if c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, judgesKey(usaOnly), b, JudgeListTTL).Err()
}

// InvalidateJudges drops both filter variants after any write that could
// change counts, visibility, or status.
func (c *CacheService) InvalidateJudges(ctx context.Context) error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Del(ctx, judgesKey(false), judgesKey(true)).Err()
}

// Close shuts down the Redis connection.
func (c *CacheService) Close() error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

func judgesKey(usaOnly bool) string {
	if usaOnly {
		return "judges:list:us"
	}
	return "judges:list:all"
}
