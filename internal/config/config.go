// Package config provides application configuration management.
// Configuration is loaded from environment variables following 12-factor principles.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Journal backend kinds.
const (
	BackendRemote = "remote"
	BackendLocal  = "local"
)

// Config holds all application configuration.
// All fields are populated from environment variables.
type Config struct {
	// Application settings
	AppEnv  string `env:"APP_ENV" envDefault:"development"`
	AppHost string `env:"APP_HOST" envDefault:"0.0.0.0"`
	AppPort int    `env:"APP_PORT" envDefault:"8096"`

	// URL prefix the dashboard and API are mounted under
	BasePath string `env:"BASE_PATH" envDefault:"/shanghai"`

	// Journal backend selection: "remote" (upstream journal service)
	// or "local" (PostgreSQL)
	JournalBackend string `env:"JOURNAL_BACKEND" envDefault:"remote"`

	// Upstream journal service (remote backend)
	JournalURL     string `env:"JOURNAL_URL" envDefault:"http://s.cympfh.cc/journal"`
	JournalSection string `env:"JOURNAL_SECTION" envDefault:"shanghai2026"`

	// Secret key appended to the journal URL path. Empty by default;
	// injected at container run time.
	SecretKey string `env:"SHANGHAI_SECRET_KEY" envDefault:""`

	// Database (PostgreSQL, local backend only)
	DatabaseURL string `env:"DATABASE_URL" envDefault:""`

	// Cache (Redis, optional)
	RedisURL string        `env:"REDIS_URL" envDefault:""`
	CacheTTL time.Duration `env:"CACHE_TTL" envDefault:"30s"`

	// Household accounts; the first two settle against each other
	Accounts string `env:"ACCOUNTS" envDefault:"神楽,枚方"`

	// Optional Argon2id hash guarding mutations
	WriteTokenHash string `env:"WRITE_TOKEN_HASH" envDefault:""`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Server timeouts
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// Rate limiting on mutation endpoints
	RateLimitEnabled bool `env:"RATE_LIMIT_ENABLED" envDefault:"true"`
	RateLimitRPS     int  `env:"RATE_LIMIT_RPS" envDefault:"5"`
	RateLimitBurst   int  `env:"RATE_LIMIT_BURST" envDefault:"10"`

	// Request body size limit in bytes (default 1MB)
	MaxRequestBodySize int64 `env:"MAX_REQUEST_BODY_SIZE" envDefault:"1048576"`
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// GetAccounts parses the comma-separated accounts string into a slice.
func (c *Config) GetAccounts() []string {
	parts := strings.Split(c.Accounts, ",")
	accounts := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			accounts = append(accounts, trimmed)
		}
	}
	return accounts
}

// Load parses environment variables and returns a Config.
// Returns an error on invalid or inconsistent settings.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	switch cfg.JournalBackend {
	case BackendRemote:
		// Upstream URL has a default; nothing further required.
	case BackendLocal:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required with JOURNAL_BACKEND=local")
		}
	default:
		return nil, fmt.Errorf("invalid JOURNAL_BACKEND %q", cfg.JournalBackend)
	}

	if !strings.HasPrefix(cfg.BasePath, "/") || strings.HasSuffix(cfg.BasePath, "/") {
		return nil, fmt.Errorf("BASE_PATH must start with '/' and not end with one, got %q", cfg.BasePath)
	}

	return cfg, nil
}
