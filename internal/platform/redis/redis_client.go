// Package redis connects to the optional Redis instance used for caching and shared rate limits.
package redis

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// Options holds connection settings.
type Options struct {
	Addr     string
	Password string
}

// NewRedisClient connects and pings Redis. The caller decides how to degrade
// when it is unreachable.
func NewRedisClient(ctx context.Context, opts Options) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       0,
	})

	// 接続確認
	if err := rdb.Ping(ctx).Err(); err != nil {
		slog.Error("Redis connection failed", "address", opts.Addr, "error", err)
		_ = rdb.Close()
		return nil, err
	}

	slog.Info("Redis connection successful", "address", opts.Addr)
	return rdb, nil
}
