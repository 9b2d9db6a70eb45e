// Package config loads runtime settings from the environment and optional
// .env files.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"

	"github.com/megaloja/fidelidade/pkg/storage"
)

// Deployment modes.
const (
	Development = "development"
	Production  = "production"
)

// DevelopmentAPIURL is the API root used in development when none is set.
const DevelopmentAPIURL = "http://localhost:5000/api"

type Config struct {
	Env     string        `env:"FIDELIDADE_ENV,      default=development" validate:"oneof=development production"`
	Home    string        `env:"FIDELIDADE_HOME"`
	APIURL  string        `env:"FIDELIDADE_API_URL"  validate:"omitempty,url"`
	WebURL  string        `env:"FIDELIDADE_WEB_URL"  validate:"omitempty,url"`
	Timeout time.Duration `env:"FIDELIDADE_HTTP_TIMEOUT, default=30s" validate:"gte=0"`

	Store StoreConfig
	Log   LogConfig
}

type StoreConfig struct {
	Backend   string `env:"FIDELIDADE_STORE,       default=file" validate:"oneof=file sqlite redis memory"`
	Path      string `env:"FIDELIDADE_STORE_PATH"`
	RedisAddr string `env:"FIDELIDADE_REDIS_ADDR,  default=localhost:6379"`
	RedisDB   int    `env:"FIDELIDADE_REDIS_DB,    default=0" validate:"gte=0"`
}

type LogConfig struct {
	Level string `env:"FIDELIDADE_LOG_LEVEL, default=info"`
	File  string `env:"FIDELIDADE_LOG_FILE"`
}

// Load reads .env files (missing ones are skipped; real environment
// variables win) and then the environment. Relative paths and the API root
// are resolved here, once.
func Load(ctx context.Context, dotenvFiles ...string) (*Config, error) {
	for _, f := range dotenvFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	cfg.Env = strings.ToLower(strings.TrimSpace(cfg.Env))
	cfg.Store.Backend = strings.ToLower(strings.TrimSpace(cfg.Store.Backend))
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.Env == Production && cfg.APIURL == "" {
		return nil, errors.New("config: FIDELIDADE_API_URL is required in production")
	}

	if cfg.Home == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("config: home dir: %w", err)
		}
		cfg.Home = filepath.Join(home, ".fidelidade")
	}
	if cfg.Store.Path == "" {
		switch cfg.Store.Backend {
		case storage.BackendSQLite:
			cfg.Store.Path = filepath.Join(cfg.Home, "session.db")
		default:
			cfg.Store.Path = filepath.Join(cfg.Home, "session.json")
		}
	}
	if cfg.Log.File == "" {
		cfg.Log.File = filepath.Join(cfg.Home, "fidelidade.log")
	}
	return &cfg, nil
}

// BaseURL returns the API root for the deployment mode, without a trailing
// slash.
func (c *Config) BaseURL() string {
	if c.APIURL != "" {
		return strings.TrimRight(c.APIURL, "/")
	}
	return DevelopmentAPIURL
}

// WebConsoleURL returns the browser console address. Without an explicit
// FIDELIDADE_WEB_URL it is the API root minus its /api suffix.
func (c *Config) WebConsoleURL() string {
	if c.WebURL != "" {
		return c.WebURL
	}
	return strings.TrimSuffix(c.BaseURL(), "/api") + "/"
}

// StorageOptions maps the store settings onto storage.Options.
func (c *Config) StorageOptions() storage.Options {
	return storage.Options{
		Backend:   c.Store.Backend,
		Path:      c.Store.Path,
		RedisAddr: c.Store.RedisAddr,
		RedisDB:   c.Store.RedisDB,
	}
}
