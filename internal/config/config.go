// Package config provides application configuration.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// EnvPrefix starts every environment variable read by Load.
const EnvPrefix = "BODYPATH_"

// Store backends.
const (
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// Notify backends.
const (
	NotifyNone  = "none"
	NotifyLog   = "log"
	NotifyRedis = "redis"
)

// Config holds all application configuration.
type Config struct {
	Store  StoreConfig  `yaml:"store" envPrefix:"STORE_"`
	Redis  RedisConfig  `yaml:"redis" envPrefix:"REDIS_"`
	Notify NotifyConfig `yaml:"notify" envPrefix:"NOTIFY_"`
	Log    LogConfig    `yaml:"log" envPrefix:"LOG_"`

	// UserID is the signed-in learner's UUID; empty means guest.
	UserID string `yaml:"user_id" env:"USER_ID"`

	// ContentDir overrides the built-in question bank.
	ContentDir string `yaml:"content_dir" env:"CONTENT_DIR"`
}

// StoreConfig selects where progress is kept.
type StoreConfig struct {
	Backend string `yaml:"backend" env:"BACKEND"`
	// Path is the SQLite file. Empty means store.DefaultDBPath.
	Path string `yaml:"path" env:"PATH"`
}

// RedisConfig is shared by the redis store and notifier.
type RedisConfig struct {
	Addr      string `yaml:"addr" env:"ADDR"`
	Password  string `yaml:"password" env:"PASSWORD"`
	DB        int    `yaml:"db" env:"DB"`
	Namespace string `yaml:"namespace" env:"NAMESPACE"`
}

// NotifyConfig selects where storage-update events go.
type NotifyConfig struct {
	Backend string `yaml:"backend" env:"BACKEND"`
	Channel string `yaml:"channel" env:"CHANNEL"`
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Mode  string `yaml:"mode" env:"MODE"`
	Level string `yaml:"level" env:"LEVEL"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		Store: StoreConfig{Backend: StoreSQLite},
		Redis: RedisConfig{
			Addr:      "localhost:6379",
			Namespace: "bodypath:",
		},
		Notify: NotifyConfig{
			Backend: NotifyNone,
			Channel: "bodypath:events",
		},
		Log: LogConfig{Mode: "prod", Level: "warn"},
	}
}

// Load builds the configuration from defaults, then the YAML file at path
// (skipped when path is empty), then a .env file in the working directory,
// then the process environment. Later sources win.
func Load(path string) (Config, error) {
	return load(path, ".env", environ())
}

func load(path, dotenv string, osEnv map[string]string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		if err := readFile(path, &cfg); err != nil {
			return cfg, err
		}
	}

	vars := make(map[string]string)
	if dotenv != "" {
		fileVars, err := godotenv.Read(dotenv)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("read %s: %w", dotenv, err)
		}
		for k, v := range fileVars {
			vars[k] = v
		}
	}
	for k, v := range osEnv {
		vars[k] = v
	}

	if err := env.ParseWithOptions(&cfg, env.Options{
		Prefix:      EnvPrefix,
		Environment: vars,
	}); err != nil {
		return cfg, fmt.Errorf("parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func readFile(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func environ() map[string]string {
	out := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			out[k] = v
		}
	}
	return out
}

// Validate checks that all configuration fields hold usable values.
func (c Config) Validate() error {
	var errs []error

	switch c.Store.Backend {
	case StoreSQLite, StoreMemory:
	case StoreRedis:
		if c.Redis.Addr == "" {
			errs = append(errs, fmt.Errorf("redis store needs %sREDIS_ADDR", EnvPrefix))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown store backend %q", c.Store.Backend))
	}

	switch c.Notify.Backend {
	case NotifyNone, NotifyLog:
	case NotifyRedis:
		if c.Redis.Addr == "" {
			errs = append(errs, fmt.Errorf("redis notifier needs %sREDIS_ADDR", EnvPrefix))
		}
		if c.Notify.Channel == "" {
			errs = append(errs, errors.New("redis notifier needs a channel"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown notify backend %q", c.Notify.Backend))
	}

	if c.Redis.DB < 0 {
		errs = append(errs, fmt.Errorf("redis db must be >= 0, got %d", c.Redis.DB))
	}

	switch c.Log.Mode {
	case "dev", "prod":
	default:
		errs = append(errs, fmt.Errorf("log mode must be dev or prod, got %q", c.Log.Mode))
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log level: %w", err))
	}

	return errors.Join(errs...)
}
