package di

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"uventory_backend/internal/app/router"
	authhandler "uventory_backend/internal/feature/auth/transport/handler"
	"uventory_backend/internal/feature/auth/transport/guard"
	authusecase "uventory_backend/internal/feature/auth/usecase"
	productadapters "uventory_backend/internal/feature/products/adapters"
	producthandler "uventory_backend/internal/feature/products/transport/handler"
	productusecase "uventory_backend/internal/feature/products/usecase"
	useradapters "uventory_backend/internal/feature/users/adapters"
	userhandler "uventory_backend/internal/feature/users/transport/handler"
	userusecase "uventory_backend/internal/feature/users/usecase"
	"uventory_backend/internal/platform/cache"
	"uventory_backend/internal/platform/config"
	platformhandler "uventory_backend/internal/platform/http/handler"
	jwtmw "uventory_backend/internal/platform/jwt"
	"uventory_backend/internal/platform/password"
	"uventory_backend/internal/shared/ratelimiter"
)

// Infra holds the already-connected backends. Redis is optional.
type Infra struct {
	DB             *gorm.DB
	Redis          *redis.Client
	RateLimitStore ratelimiter.Store
	Logger         *slog.Logger
}

// NewProductRepository returns the product store wrapped in the Redis cache.
// A nil rdb yields a pass-through wrapper.
func NewProductRepository(db *gorm.DB, rdb *redis.Client, ttl time.Duration) productusecase.ProductRepository {
	return cache.NewCachingProductRepository(rdb, ttl, productadapters.NewProductPostgres(db), "products")
}

// NewRouter wires every feature and returns the HTTP engine.
func NewRouter(cfg *config.Config, infra Infra) (*gin.Engine, error) {
	sqlDB, err := infra.DB.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	// Repository
	userRepo := useradapters.NewUserPostgres(infra.DB)
	productRepo := NewProductRepository(infra.DB, infra.Redis, cfg.ProductCacheTTL)

	// Platform services
	hasher := password.NewHasher()
	issuer := jwtmw.NewIssuer(cfg.JWTSecret, cfg.JWTExpiresIn)

	// Usecase
	usersUC := userusecase.NewUserUsecase(userRepo, hasher)
	authUC := authusecase.NewAuthUsecase(usersUC, issuer)
	productsUC := productusecase.NewProductUsecase(productRepo)

	// Guards
	var bearerOpts []guard.BearerOption
	if cfg.RevalidateUser {
		bearerOpts = append(bearerOpts, guard.WithAliveCheck(usersUC))
	}

	store := infra.RateLimitStore
	if store == nil {
		store = ratelimiter.NewMemoryStore()
	}

	return router.NewRouter(router.Deps{
		Auth:        authhandler.NewAuthHandler(authUC),
		Users:       userhandler.NewUserHandler(usersUC),
		Products:    producthandler.NewProductHandler(productsUC),
		Status:      platformhandler.NewStatusHandler(sqlDB),
		Credential:  guard.NewCredentialStrategy(usersUC),
		Bearer:      guard.NewBearerStrategy(issuer, bearerOpts...),
		Limiter:     ratelimiter.NewRateLimiter(store, cfg.RateLimitLimit, cfg.RateLimitWindow()),
		Logger:      infra.Logger,
		CORSOrigins: cfg.CORSOrigins,
	}), nil
}
