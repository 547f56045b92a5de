// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	// AppName is the application name.
	AppName = "tasksync"

	// DefaultBaseURL is the remote store endpoint used when TODOS_API_URL is unset.
	DefaultBaseURL = "https://mate.academy/students-api"

	// OwnerEnv is the environment variable holding the owner id.
	OwnerEnv = "TODOS_USER_ID"
)

// Config holds configuration and settings.
type Config struct {
	// OwnerID scopes every request. Zero means not configured.
	OwnerID int

	// RawOwnerID is TODOS_USER_ID as set. Anything that is not a positive
	// integer leaves OwnerID unset rather than failing the load.
	RawOwnerID string `env:"TODOS_USER_ID" env-description:"owner id all tasks belong to"`

	// BaseURL is the remote store endpoint.
	BaseURL string `env:"TODOS_API_URL" env-default:"https://mate.academy/students-api"`

	// Latency is the minimum wait before each request is dispatched.
	Latency time.Duration `env:"TODOS_LATENCY" env-default:"100ms"`

	// NotificationTimeout is how long a failure banner stays up.
	NotificationTimeout time.Duration `env:"TODOS_NOTIFICATION_TIMEOUT" env-default:"3s"`

	// MaxConcurrency caps requests in flight per bulk operation. Zero is unbounded.
	MaxConcurrency int `env:"TODOS_MAX_CONCURRENCY" env-default:"0"`

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}
	cfg.OwnerID = parseOwner(cfg.RawOwnerID)
	if cfg.Latency < 0 {
		return nil, fmt.Errorf("TODOS_LATENCY must not be negative")
	}
	if cfg.NotificationTimeout <= 0 {
		return nil, fmt.Errorf("TODOS_NOTIFICATION_TIMEOUT must be positive")
	}
	if cfg.MaxConcurrency < 0 {
		return nil, fmt.Errorf("TODOS_MAX_CONCURRENCY must not be negative")
	}
	return &cfg, nil
}

func parseOwner(raw string) int {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || id < 0 {
		return 0
	}
	return id
}

// HasOwner reports whether a usable owner id is configured.
func (c *Config) HasOwner() bool {
	return c.OwnerID > 0
}
