package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"uventory_backend/internal/feature/users/adapters"
	"uventory_backend/internal/feature/users/domain/entity"
	"uventory_backend/internal/feature/users/usecase"
	"uventory_backend/internal/platform/config"
	"uventory_backend/internal/platform/db"
	"uventory_backend/internal/platform/logging"
	"uventory_backend/internal/platform/password"
)

// seedUsers are created on an empty database. Existing emails are skipped.
var seedUsers = []usecase.RegisterInput{
	{Email: "admin@uventory.com", Password: "admin123", FirstName: "Admin", LastName: "User"},
	{Email: "test@uventory.com", Password: "test123", FirstName: "Test", LastName: "User"},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	gdb, err := db.Open(ctx, db.Options{
		DSN:            cfg.DatabaseURL,
		PoolSize:       1,
		ConnectTimeout: cfg.DBConnectionTimeout(),
		RunMigrations:  cfg.RunMigrations,
	})
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}

	uc := usecase.NewUserUsecase(adapters.NewUserPostgres(gdb), password.NewHasher())
	if err := seed(ctx, uc, seedUsers); err != nil {
		slog.Error("seed failed", "error", err)
		os.Exit(1)
	}
	slog.Info("seed ok")
}

type registrar interface {
	Register(ctx context.Context, in usecase.RegisterInput) (*entity.User, error)
}

func seed(ctx context.Context, users registrar, inputs []usecase.RegisterInput) error {
	for _, in := range inputs {
		u, err := users.Register(ctx, in)
		switch {
		case errors.Is(err, usecase.ErrEmailAlreadyExists):
			slog.Info("user already exists, skipping", "email", in.Email)
		case err != nil:
			return err
		default:
			slog.Info("user created", "email", u.Email, "user_id", u.ID)
		}
	}
	return nil
}
