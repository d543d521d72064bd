// Package config loads the application settings from BRIDGEWISE_*
// environment variables and sets up logging.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"

	"github.com/abhisek/bridgewise/internal/economy"
	"github.com/abhisek/bridgewise/internal/store"
)

// EnvPrefix is prepended to every variable name below.
const EnvPrefix = "BRIDGEWISE_"

// Config holds application settings. LLM settings live in llm.Config.
type Config struct {
	// DBPath overrides the default database location.
	DBPath string `env:"DB"`

	// Packs are extra world pack files merged over the built-in worlds.
	Packs []string `env:"PACKS" envSeparator:","`

	// EconomyFile is an optional YAML file of economy tuning values.
	EconomyFile string `env:"ECONOMY_FILE" validate:"omitempty,file"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`

	// LogFile receives the log. The TUI owns the terminal, so logs never go
	// to stderr. Defaults to bridgewise.log in the data directory.
	LogFile string `env:"LOG_FILE"`
}

var validate = validator.New()

// Load reads the configuration from the process environment.
func Load() (Config, error) {
	return load(env.Options{Prefix: EnvPrefix})
}

func load(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// ResolveDBPath returns the database path: flag first, then BRIDGEWISE_DB,
// then the XDG default. The parent directory is created.
func (c Config) ResolveDBPath(flag string) (string, error) {
	for _, p := range []string{flag, c.DBPath} {
		if p != "" {
			return p, store.EnsureDir(p)
		}
	}
	return store.DefaultDBPath()
}

// Rules returns the economy rules, applying EconomyFile when set.
func (c Config) Rules() (economy.Rules, error) {
	return economy.LoadRules(c.EconomyFile)
}

// Level returns the configured slog level.
func (c Config) Level() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// SetupLogger opens the log file, installs a text logger as the slog default
// and returns it. The caller closes the returned io.Closer on exit.
func (c Config) SetupLogger() (*slog.Logger, io.Closer, error) {
	path := c.LogFile
	if path == "" {
		dir, err := store.DataDir()
		if err != nil {
			return nil, nil, err
		}
		path = filepath.Join(dir, "bridgewise.log")
	}
	if err := store.EnsureDir(path); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	logger := c.NewLogger(f)
	slog.SetDefault(logger)
	return logger, f, nil
}

// NewLogger returns a text logger writing to w at the configured level.
func (c Config) NewLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: c.Level()}))
}
