// Package cli builds the cobra root command shared by the server binaries.
package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/f4ah6o/htmlserve/internal/config"
	"github.com/f4ah6o/htmlserve/internal/log"
	"github.com/f4ah6o/htmlserve/internal/server"
)

// HandlerFunc builds the handler a command serves from the final config.
type HandlerFunc func(cfg config.Config) (http.Handler, error)

type flags struct {
	configFile string
	verbose    bool
	override   config.Config
}

// NewCommand returns a root command named use that loads the config, applies
// flag overrides, and runs build's handler until interrupted.
func NewCommand(use, short string, build HandlerFunc) *cobra.Command {
	f := &flags{override: config.Default()}
	cmd := &cobra.Command{
		Use:           use,
		Short:         short,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := f.resolve(cmd)
			if err != nil {
				return err
			}
			h, err := build(cfg)
			if err != nil {
				return err
			}
			return server.New(cfg, use, h).Run(cmd.Context())
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&f.configFile, "config", "", "config file (.toml or .yaml)")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "enable debug logging")
	fs.StringVar(&f.override.Host, "host", f.override.Host, "host to bind")
	fs.IntVar(&f.override.Port, "port", f.override.Port, "port to bind")
	fs.StringVar(&f.override.Root, "root", f.override.Root, "directory to serve HTML files from")
	fs.BoolVar(&f.override.Confine, "confine", f.override.Confine, "refuse paths resolving outside --root")
	fs.IntVar(&f.override.MaxConns, "max-conns", f.override.MaxConns, "maximum concurrent connections (0 = unlimited)")
	fs.DurationVar(&f.override.ShutdownTimeout.Duration, "shutdown-timeout", f.override.ShutdownTimeout.Duration, "graceful shutdown timeout")
	fs.StringVar(&f.override.LogLevel, "log-level", f.override.LogLevel, "log level (debug, info, warn, error)")
	fs.BoolVar(&f.override.LogJSON, "log-json", f.override.LogJSON, "log in JSON")
	return cmd
}

// resolve layers explicitly set flags over the config file and initializes logging.
func (f *flags) resolve(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(f.configFile)
	if err != nil {
		return cfg, err
	}
	fs := cmd.Flags()
	if fs.Changed("host") {
		cfg.Host = f.override.Host
	}
	if fs.Changed("port") {
		cfg.Port = f.override.Port
	}
	if fs.Changed("root") {
		cfg.Root = f.override.Root
	}
	if fs.Changed("confine") {
		cfg.Confine = f.override.Confine
	}
	if fs.Changed("max-conns") {
		cfg.MaxConns = f.override.MaxConns
	}
	if fs.Changed("shutdown-timeout") {
		cfg.ShutdownTimeout = f.override.ShutdownTimeout
	}
	if fs.Changed("log-level") {
		cfg.LogLevel = f.override.LogLevel
	}
	if fs.Changed("log-json") {
		cfg.LogJSON = f.override.LogJSON
	}
	if f.verbose {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}

	level, _ := log.ParseLevel(cfg.LogLevel)
	log.Init(level, cfg.LogJSON, os.Stderr)
	log.Debugf("Effective config: %+v", cfg)
	return cfg, nil
}

// Execute runs cmd with a context cancelled on SIGINT or SIGTERM and exits
// non-zero on error.
func Execute(cmd *cobra.Command) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		stop()
		os.Exit(1)
	}
}
