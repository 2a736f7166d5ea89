package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rgehrsitz/dcasim/internal/domain"
)

// ServerConfig configures the HTTP projection API.
type ServerConfig struct {
	Addr          string        `env:"DCASIM_ADDR"           envDefault:":8080"`
	RedisAddr     string        `env:"DCASIM_REDIS_ADDR"`
	RedisPassword string        `env:"DCASIM_REDIS_PASSWORD"`
	RedisDB       int           `env:"DCASIM_REDIS_DB"       envDefault:"0"`
	RateLimit     int           `env:"DCASIM_RATE_LIMIT"     envDefault:"60"`
	RateWindow    time.Duration `env:"DCASIM_RATE_WINDOW"    envDefault:"1m"`
	CacheTTL      time.Duration `env:"DCASIM_CACHE_TTL"      envDefault:"10m"`
	MaxYears      int           `env:"DCASIM_MAX_YEARS"      envDefault:"100"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadServerConfig reads and validates the server configuration.
func LoadServerConfig() (ServerConfig, error) {
	var cfg ServerConfig
	if err := ParseEnv(&cfg); err != nil {
		return ServerConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return ServerConfig{}, err
	}
	return cfg, nil
}

// UsesRedis reports whether projections should be cached in redis.
func (c ServerConfig) UsesRedis() bool {
	return c.RedisAddr != ""
}

// Validate checks the server limits.
func (c ServerConfig) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("DCASIM_ADDR cannot be empty")
	}
	if c.RateLimit <= 0 {
		return fmt.Errorf("DCASIM_RATE_LIMIT must be positive, got %d", c.RateLimit)
	}
	if c.RateWindow <= 0 {
		return fmt.Errorf("DCASIM_RATE_WINDOW must be positive, got %s", c.RateWindow)
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("DCASIM_CACHE_TTL cannot be negative, got %s", c.CacheTTL)
	}
	if c.MaxYears <= 0 || c.MaxYears > domain.MaxDurationYears {
		return fmt.Errorf("DCASIM_MAX_YEARS must be between 1 and %d, got %d", domain.MaxDurationYears, c.MaxYears)
	}
	return nil
}
