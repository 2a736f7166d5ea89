package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadServerConfig_Defaults(t *testing.T) {
	cfg, err := LoadServerConfig()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 60, cfg.RateLimit)
	assert.Equal(t, time.Minute, cfg.RateWindow)
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 100, cfg.MaxYears)
	assert.False(t, cfg.UsesRedis())
}

func TestLoadServerConfig_FromEnvironment(t *testing.T) {
	t.Setenv("DCASIM_ADDR", "127.0.0.1:9090")
	t.Setenv("DCASIM_REDIS_ADDR", "localhost:6379")
	t.Setenv("DCASIM_RATE_LIMIT", "5")
	t.Setenv("DCASIM_RATE_WINDOW", "30s")
	t.Setenv("DCASIM_MAX_YEARS", "50")

	cfg, err := LoadServerConfig()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9090", cfg.Addr)
	assert.True(t, cfg.UsesRedis())
	assert.Equal(t, 5, cfg.RateLimit)
	assert.Equal(t, 30*time.Second, cfg.RateWindow)
	assert.Equal(t, 50, cfg.MaxYears)
}

func TestLoadServerConfig_ParseError(t *testing.T) {
	t.Setenv("DCASIM_RATE_LIMIT", "not-an-int")

	_, err := LoadServerConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")
}

func TestServerConfig_Validate(t *testing.T) {
	base := ServerConfig{Addr: ":8080", RateLimit: 10, RateWindow: time.Second, CacheTTL: time.Minute, MaxYears: 40}
	require.NoError(t, base.Validate())

	tests := []struct {
		name   string
		mutate func(c *ServerConfig)
	}{
		{"empty addr", func(c *ServerConfig) { c.Addr = "" }},
		{"zero rate limit", func(c *ServerConfig) { c.RateLimit = 0 }},
		{"zero window", func(c *ServerConfig) { c.RateWindow = 0 }},
		{"negative ttl", func(c *ServerConfig) { c.CacheTTL = -time.Second }},
		{"max years too large", func(c *ServerConfig) { c.MaxYears = 500 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
