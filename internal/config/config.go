// Package config loads server settings from defaults and the environment.
package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mcuadros/go-defaults"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Server struct {
		Addr            string        `env:"BILLING_SERVER_ADDR" default:":8080"`
		ShutdownTimeout time.Duration `env:"BILLING_SERVER_SHUTDOWN_TIMEOUT" default:"10s"`
		CORSOrigin      string        `env:"BILLING_SERVER_CORS_ORIGIN" default:"*"`
	}

	Database struct {
		Path        string        `env:"BILLING_DATABASE_PATH" default:"./data/billing.db"`
		BusyTimeout time.Duration `env:"BILLING_DATABASE_BUSY_TIMEOUT" default:"5s"`
	}

	Log struct {
		// debug, info, warn or error
		Level string `env:"LOG_LEVEL" default:"info"`
		// text (colored, for terminals) or json
		Format string `env:"LOG_FORMAT" default:"text"`
	}

	Metrics struct {
		Enabled bool   `env:"BILLING_METRICS_ENABLED" default:"true"`
		Path    string `env:"BILLING_METRICS_PATH" default:"/metrics"`
	}
}

// Load fills a Config from its defaults, then overrides them with the values
// lookuper finds. A nil lookuper reads the process environment.
func Load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	defer slog.Debug("end load config")
	slog.Debug("start load config")

	cfg := &Config{}
	defaults.SetDefaults(cfg)

	if lookuper == nil {
		lookuper = envconfig.OsLookuper()
	}
	err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:           cfg,
		Lookuper:         lookuper,
		DefaultOverwrite: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	return cfg, nil
}

// Validate reports every setting the server cannot start with.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Server.Addr) == "" {
		errs = append(errs, errors.New("server address must not be empty"))
	}
	if c.Server.ShutdownTimeout < 0 {
		errs = append(errs, errors.New("shutdown timeout must not be negative"))
	}
	if strings.TrimSpace(c.Database.Path) == "" {
		errs = append(errs, errors.New("database path must not be empty"))
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("unknown log format %q: want text or json", c.Log.Format))
	}
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		errs = append(errs, fmt.Errorf("metrics path %q must start with /", c.Metrics.Path))
	}

	return errors.Join(errs...)
}

// ParseLevel maps a level name to its slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}
