// Package server wires configuration parsing and startup for the tracker
// web service.
package server

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/mofahq/tasktracker/internal/platform/config"
	"github.com/mofahq/tasktracker/internal/services/web"
	"github.com/mofahq/tasktracker/internal/services/web/storage/sqlite"
)

// Config holds the server command configuration.
type Config struct {
	HTTPAddr string `env:"TASKTRACKER_HTTP_ADDR" envDefault:"localhost:8080"`
	DBPath   string `env:"TASKTRACKER_DB_PATH" envDefault:"tracker.db"`
	Timezone string `env:"TASKTRACKER_TIMEZONE"`
}

// ParseConfig loads configuration from the environment and then applies
// flag overrides.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "sqlite database path")
	fs.StringVar(&cfg.Timezone, "tz", cfg.Timezone, "IANA timezone for report bucketing (default local)")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Run opens the store and serves HTTP until ctx is cancelled.
func Run(ctx context.Context, cfg Config) error {
	loc := time.Local
	if cfg.Timezone != "" {
		parsed, err := time.LoadLocation(cfg.Timezone)
		if err != nil {
			return fmt.Errorf("load timezone: %w", err)
		}
		loc = parsed
	}

	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer store.Close()

	server, err := web.NewServer(store, web.Config{
		HTTPAddr: cfg.HTTPAddr,
		Location: loc,
	})
	if err != nil {
		return fmt.Errorf("init web server: %w", err)
	}

	if err := server.ListenAndServe(ctx); err != nil {
		return fmt.Errorf("serve web: %w", err)
	}
	return nil
}
