package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin/binding"
	redisv9 "github.com/redis/go-redis/v9"

	"uventory_backend/internal/app/di"
	"uventory_backend/internal/platform/config"
	"uventory_backend/internal/platform/db"
	"uventory_backend/internal/platform/logging"
	platformredis "uventory_backend/internal/platform/redis"
	"uventory_backend/internal/shared/ratelimiter"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := logging.Setup(cfg.LogLevel)

	// 未定義のJSONフィールドは400にする
	binding.EnableDecoderDisallowUnknownFields = true

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// db
	gdb, err := db.Open(ctx, db.Options{
		DSN:            cfg.DatabaseURL,
		PoolSize:       cfg.DBPoolSize,
		ConnectTimeout: cfg.DBConnectionTimeout(),
		RunMigrations:  cfg.RunMigrations,
	})
	if err != nil {
		return err
	}
	if sqlDB, err := gdb.DB(); err == nil {
		defer func() { _ = sqlDB.Close() }()
	}

	// Redis（任意）
	var rdb *redisv9.Client
	if cfg.Redis.Enabled() {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		tmp, err := platformredis.NewRedisClient(pingCtx, platformredis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
		})
		cancel()
		if err != nil {
			logger.Warn("Redis unavailable. Running without cache.")
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					logger.Error("failed to close Redis client", "error", err)
				}
			}()
		}
	}

	// レート制限ストア
	store := di.NewRateLimitStore(cfg.RateLimitStore, rdb)
	if ms, ok := store.(*ratelimiter.MemoryStore); ok {
		go ms.RunCleanup(ctx, cfg.RateLimitWindow(), cfg.RateLimitWindow())
	}

	engine, err := di.NewRouter(cfg, di.Infra{DB: gdb, Redis: rdb, RateLimitStore: store, Logger: logger})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("application is running", "addr", srv.Addr, "api", "/api/v1")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
