package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	SessionBackendMemory = "memory"
	SessionBackendRedis  = "redis"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET, required"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	Auth  AuthConfig
	Redis RedisConfig
	Mongo MongoConfig
}

type AuthConfig struct {
	TokenTTL        time.Duration `env:"TOKEN_TTL,        default=24h"`
	LoginDelay      time.Duration `env:"LOGIN_DELAY,      default=0s"`
	BcryptCost      int           `env:"BCRYPT_COST,      default=10"`
	CredentialsFile string        `env:"CREDENTIALS_FILE"`
	SessionBackend  string        `env:"SESSION_BACKEND,  default=memory"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	DB       int    `env:"REDIS_DB,   default=0"`
	Password string `env:"REDIS_PASSWORD"`
}

type MongoConfig struct {
	AuditEnabled bool   `env:"AUDIT_ENABLED, default=false"`
	URI          string `env:"MONGO_URI,     default=mongodb://localhost:27017"`
	Database     string `env:"MONGO_DB,      default=marketplace_identity"`
	AuditWorkers int    `env:"AUDIT_WORKERS, default=4"`
}

// IsDevelopment reports whether the service runs with developer defaults.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Auth.SessionBackend {
	case SessionBackendMemory, SessionBackendRedis:
	default:
		return fmt.Errorf("SESSION_BACKEND must be %q or %q, got %q", SessionBackendMemory, SessionBackendRedis, c.Auth.SessionBackend)
	}
	if c.Auth.TokenTTL <= 0 {
		return errors.New("TOKEN_TTL must be positive")
	}
	if c.Auth.LoginDelay < 0 {
		return errors.New("LOGIN_DELAY must not be negative")
	}
	if len(c.JWTSecret) < 16 && !c.IsDevelopment() {
		return errors.New("JWT_SECRET must be at least 16 bytes outside development")
	}
	return nil
}
