package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f4ah6o/htmlserve/internal/config"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "localhost:3000", cfg.Addr())
	assert.Equal(t, "./public", cfg.Root)
	assert.True(t, cfg.Confine)
}

func TestLoad(t *testing.T) {
	t.Run("Empty path", func(t *testing.T) {
		cfg, err := config.Load("")
		require.NoError(t, err)
		assert.Equal(t, config.Default(), cfg)
	})

	t.Run("TOML", func(t *testing.T) {
		cfg, err := config.Load("testdata/server.toml")
		require.NoError(t, err)

		want := config.Default()
		want.Host = "0.0.0.0"
		want.Port = 8080
		want.Root = "/srv/pages"
		want.MaxConns = 64
		want.ShutdownTimeout = config.Duration{Duration: 10 * time.Second}
		want.LogLevel = "debug"
		assert.Equal(t, want, cfg)
	})

	t.Run("YAML keeps unset defaults", func(t *testing.T) {
		cfg, err := config.Load("testdata/server.yaml")
		require.NoError(t, err)

		want := config.Default()
		want.Port = 4000
		want.Confine = false
		want.LogJSON = true
		assert.Equal(t, want, cfg)
	})

	t.Run("Unsupported extension", func(t *testing.T) {
		_, err := config.Load("testdata/server.ini")
		assert.ErrorIs(t, err, config.ErrUnsupportedFormat)
	})

	t.Run("Malformed TOML", func(t *testing.T) {
		_, err := config.Load("testdata/broken.toml")
		assert.Error(t, err)
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := config.Load("testdata/nope.toml")
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"empty host", func(c *config.Config) { c.Host = " " }},
		{"port zero", func(c *config.Config) { c.Port = 0 }},
		{"port too large", func(c *config.Config) { c.Port = 70000 }},
		{"negative max conns", func(c *config.Config) { c.MaxConns = -1 }},
		{"zero shutdown timeout", func(c *config.Config) { c.ShutdownTimeout = config.Duration{} }},
		{"bad log level", func(c *config.Config) { c.LogLevel = "chatty" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
