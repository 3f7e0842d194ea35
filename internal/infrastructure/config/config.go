package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=3000"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// Separate secrets per token family; refresh-token compromise must not
	// allow forging access tokens, and vice versa.
	JWTSecret        string `env:"JWT_SECRET, required"`
	RefreshJWTSecret string `env:"REFRESH_JWT_SECRET, required"`

	AccessTokenExpiry  time.Duration `env:"ACCESS_TOKEN_EXPIRY,  default=20m"`
	RefreshTokenExpiry time.Duration `env:"REFRESH_TOKEN_EXPIRY, default=1h"`

	// AuditWorkers sizes the audit dispatcher pool.
	AuditWorkers int `env:"AUDIT_WORKERS, default=4"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=hierarchy"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
