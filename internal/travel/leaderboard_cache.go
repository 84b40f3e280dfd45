package travel

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	leaderboardKey = "rahi:leaderboard"
	leaderboardTTL = 30 * time.Second
)

// LeaderboardCache keeps the computed leaderboard in Redis for a short TTL so
// the Explore screen does not rescan every travel record on each refresh.
// Cache failures are soft: callers fall back to recomputing.
type LeaderboardCache struct {
	client *redis.Client
}

// NewLeaderboardCache connects to Redis at addr. Returns nil (caching
// disabled) when addr is empty.
func NewLeaderboardCache(addr string) *LeaderboardCache {
	if addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	return &LeaderboardCache{client: client}
}

// Get returns the cached leaderboard, or ok=false on miss or error.
func (c *LeaderboardCache) Get(ctx context.Context) ([]LeaderboardEntry, bool) {
	data, err := c.client.Get(ctx, leaderboardKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("Leaderboard cache read failed: %v", err)
		}
		return nil, false
	}

	var entries []LeaderboardEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		log.Printf("Leaderboard cache decode failed: %v", err)
		return nil, false
	}
	return entries, true
}

// Set stores the leaderboard with a short expiry.
func (c *LeaderboardCache) Set(ctx context.Context, entries []LeaderboardEntry) {
	data, err := json.Marshal(entries)
	if err != nil {
		log.Printf("Leaderboard cache encode failed: %v", err)
		return
	}
	if err := c.client.Set(ctx, leaderboardKey, data, leaderboardTTL).Err(); err != nil {
		log.Printf("Leaderboard cache write failed: %v", err)
	}
}

// Close releases the Redis connection.
func (c *LeaderboardCache) Close() error {
	return c.client.Close()
}
