// Package config loads console settings from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds everything the console reads from the environment.
type Config struct {
	ListenAddr string `envconfig:"LISTEN_ADDR" default:":8080"`

	// Booking platform API.
	APIBaseURL   string        `envconfig:"API_BASE_URL" required:"true"`
	APITimeout   time.Duration `envconfig:"API_TIMEOUT" default:"10s"`
	APIRateLimit int           `envconfig:"API_RATE_LIMIT" default:"20"`

	// Session persistence. Empty RedisAddr keeps sessions in memory.
	RedisAddr     string        `envconfig:"REDIS_ADDR"`
	RedisPassword string        `envconfig:"REDIS_PASSWORD"`
	RedisDB       int           `envconfig:"REDIS_DB" default:"0"`
	SessionTTL    time.Duration `envconfig:"SESSION_TTL" default:"24h"`

	// Audit trail. Empty DSN disables persistence.
	AuditDSN string `envconfig:"AUDIT_PG_DSN"`

	// Request throttling on the HTTP surface.
	RateLimitRequests int           `envconfig:"RATE_LIMIT_REQUESTS" default:"100"`
	RateLimitWindow   time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"1m"`

	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// Load reads .env if present, then the CONSOLE_* environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("console", &cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}
