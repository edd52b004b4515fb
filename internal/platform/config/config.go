// Package config loads server configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Rate limit store backends.
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// DefaultEnvFiles are read in order; earlier files win because godotenv never
// overrides a variable that is already set.
var DefaultEnvFiles = []string{".env.local", ".env"}

// RedisConfig holds the optional Redis connection. An empty Host disables Redis.
type RedisConfig struct {
	Host     string `env:"REDIS_HOST"`
	Port     string `env:"REDIS_PORT" envDefault:"6379"`
	Password string `env:"REDIS_PASSWORD"`
}

// Addr returns host:port.
func (r RedisConfig) Addr() string {
	return r.Host + ":" + r.Port
}

// Enabled reports whether a Redis host is configured.
func (r RedisConfig) Enabled() bool {
	return r.Host != ""
}

// Config is the full server configuration.
type Config struct {
	DatabaseURL           string        `env:"DATABASE_URL,required"`
	DBPoolSize            int           `env:"DB_POOL_SIZE" envDefault:"10"`
	DBConnectionTimeoutMS int           `env:"DB_CONNECTION_TIMEOUT" envDefault:"30000"`
	RunMigrations         bool          `env:"RUN_MIGRATIONS" envDefault:"false"`
	JWTSecret             string        `env:"JWT_SECRET,required"`
	JWTExpiresIn          time.Duration `env:"JWT_EXPIRES_IN" envDefault:"24h"`
	RevalidateUser        bool          `env:"AUTH_REVALIDATE_USER" envDefault:"false"`
	Port                  int           `env:"PORT" envDefault:"3000"`
	LogLevel              string        `env:"LOG_LEVEL" envDefault:"info"`
	CORSOrigins           []string      `env:"CORS_ORIGIN" envSeparator:"," envDefault:"http://localhost:3000"`
	RateLimitTTLMS        int           `env:"RATE_LIMIT_TTL" envDefault:"60000"`
	RateLimitLimit        int           `env:"RATE_LIMIT_LIMIT" envDefault:"100"`
	RateLimitStore        string        `env:"RATE_LIMIT_STORE" envDefault:"memory"`
	ProductCacheTTL       time.Duration `env:"PRODUCT_CACHE_TTL" envDefault:"5m"`
	Redis                 RedisConfig
}

// RateLimitWindow returns RATE_LIMIT_TTL as a duration.
func (c *Config) RateLimitWindow() time.Duration {
	return time.Duration(c.RateLimitTTLMS) * time.Millisecond
}

// DBConnectionTimeout returns DB_CONNECTION_TIMEOUT as a duration.
func (c *Config) DBConnectionTimeout() time.Duration {
	return time.Duration(c.DBConnectionTimeoutMS) * time.Millisecond
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Load reads the given dotenv files (missing files are skipped) and then parses
// the environment. With no files, DefaultEnvFiles are used.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = DefaultEnvFiles
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return Parse()
}

// Parse builds a Config from the current environment and validates it.
func Parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.JWTSecret) == "" {
		return errors.New("JWT_SECRET must not be blank")
	}
	if c.JWTExpiresIn <= 0 {
		return errors.New("JWT_EXPIRES_IN must be positive")
	}
	if c.RateLimitTTLMS <= 0 || c.RateLimitLimit <= 0 {
		return errors.New("RATE_LIMIT_TTL and RATE_LIMIT_LIMIT must be positive")
	}
	switch c.RateLimitStore {
	case StoreMemory, StoreRedis:
	default:
		return fmt.Errorf("RATE_LIMIT_STORE must be %q or %q, got %q", StoreMemory, StoreRedis, c.RateLimitStore)
	}
	if c.RateLimitStore == StoreRedis && !c.Redis.Enabled() {
		return errors.New("RATE_LIMIT_STORE=redis requires REDIS_HOST")
	}

	origins := c.CORSOrigins[:0]
	for _, o := range c.CORSOrigins {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	c.CORSOrigins = origins
	return nil
}
