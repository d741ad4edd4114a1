package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f4ah6o/htmlserve/internal/config"
)

var errStop = errors.New("stop before serving")

// run executes a command with args and returns the config handed to the builder.
func run(t *testing.T, args ...string) (config.Config, error) {
	t.Helper()
	var got config.Config
	cmd := NewCommand("test", "test server", func(cfg config.Config) (http.Handler, error) {
		got = cfg
		return nil, errStop
	})
	cmd.SetArgs(append([]string{}, args...))
	err := cmd.ExecuteContext(context.Background())
	return got, err
}

func TestNewCommandDefaults(t *testing.T) {
	cfg, err := run(t)
	require.ErrorIs(t, err, errStop)
	assert.Equal(t, config.Default(), cfg)
}

func TestNewCommandFlags(t *testing.T) {
	cfg, err := run(t,
		"--host", "0.0.0.0",
		"--port", "8081",
		"--root", "site",
		"--confine=false",
		"--max-conns", "10",
		"--shutdown-timeout", "2s",
		"--log-json",
		"-v",
	)
	require.ErrorIs(t, err, errStop)

	want := config.Default()
	want.Host = "0.0.0.0"
	want.Port = 8081
	want.Root = "site"
	want.Confine = false
	want.MaxConns = 10
	want.ShutdownTimeout = config.Duration{Duration: 2 * time.Second}
	want.LogJSON = true
	want.LogLevel = "debug"
	assert.Equal(t, want, cfg)
}

func TestNewCommandFlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: 4000\nroot: /srv/www\n"), 0o644))

	cfg, err := run(t, "--config", path, "--port", "5000")
	require.ErrorIs(t, err, errStop)
	assert.Equal(t, 5000, cfg.Port)
	assert.Equal(t, "/srv/www", cfg.Root)
}

func TestNewCommandInvalid(t *testing.T) {
	t.Run("Bad port", func(t *testing.T) {
		_, err := run(t, "--port", "0")
		require.Error(t, err)
		assert.NotErrorIs(t, err, errStop)
	})

	t.Run("Positional args", func(t *testing.T) {
		_, err := run(t, "extra")
		require.Error(t, err)
		assert.NotErrorIs(t, err, errStop)
	})
}
