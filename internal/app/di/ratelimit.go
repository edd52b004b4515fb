// Package di provides dependency injection factories for creating application components.
package di

import (
	"log/slog"

	"github.com/redis/go-redis/v9"

	"uventory_backend/internal/platform/config"
	"uventory_backend/internal/shared/ratelimiter"
)

// NewRateLimitStore creates the rate limit counter store.
// With kind "redis" and a live client it returns a Redis-backed store shared by
// every instance. Otherwise, it falls back to process memory.
func NewRateLimitStore(kind string, rdb *redis.Client) ratelimiter.Store {
	if kind == config.StoreRedis {
		if rdb != nil {
			return ratelimiter.NewRedisStore(rdb, "ratelimit")
		}
		slog.Warn("redis rate limit store requested but redis is unavailable; using memory store")
	}
	return ratelimiter.NewMemoryStore()
}
