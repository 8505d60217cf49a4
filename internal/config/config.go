// Package config loads the inkwell command's settings: a YAML file merged
// over defaults, then INKWELL_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type DatabaseConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

type RedisConfig struct {
	URL             string `yaml:"url"`
	DraftTTLSeconds int    `yaml:"draft_ttl_seconds"`
	AutosaveSeconds int    `yaml:"autosave_seconds"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	File   string `yaml:"file"`
	Pretty bool   `yaml:"pretty"`
}

type EditorConfig struct {
	Placeholder  string   `yaml:"placeholder"`
	HistoryLimit int      `yaml:"history_limit"`
	Fonts        []string `yaml:"fonts,omitempty"`
	Colors       []string `yaml:"colors,omitempty"`
}

type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Logging  LoggingConfig  `yaml:"logging"`
	Editor   EditorConfig   `yaml:"editor"`
}

// Env var names used as overrides.
const (
	EnvDBDriver        = "INKWELL_DB_DRIVER"
	EnvDBDSN           = "INKWELL_DB_DSN"
	EnvRedisURL        = "INKWELL_REDIS_URL"
	EnvDraftTTLSeconds = "INKWELL_DRAFT_TTL_SECONDS"
	EnvLogFile         = "INKWELL_LOG_FILE"
	EnvLogLevel        = "INKWELL_LOG_LEVEL"
	EnvConfig          = "INKWELL_CONFIG"
)

// Defaults returns the built-in settings.
func Defaults() Config {
	return Config{
		Database: DatabaseConfig{Driver: "sqlite", DSN: "file:" + filepath.ToSlash(filepath.Join(dataDir(), "inkwell.db"))},
		Redis:    RedisConfig{DraftTTLSeconds: 7 * 24 * 60 * 60, AutosaveSeconds: 5},
		Logging:  LoggingConfig{Level: "info", File: filepath.Join(dataDir(), "inkwell.log")},
		Editor:   EditorConfig{Placeholder: "Start writing…", HistoryLimit: 1000},
	}
}

// DefaultPath is where Load looks when no path is given.
func DefaultPath() string {
	if p := os.Getenv(EnvConfig); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "inkwell.yaml"
	}
	return filepath.Join(dir, "inkwell", "config.yaml")
}

func dataDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "."
	}
	return filepath.Join(dir, "inkwell")
}

// Load reads path (or DefaultPath when empty). A missing file is not an
// error; the defaults and environment still apply.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultPath()
	}
	cfg := Defaults()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg.applyEnv(os.Getenv)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	c.Database.Driver = envOr(getenv, EnvDBDriver, c.Database.Driver)
	c.Database.DSN = envOr(getenv, EnvDBDSN, c.Database.DSN)
	c.Redis.URL = envOr(getenv, EnvRedisURL, c.Redis.URL)
	c.Redis.DraftTTLSeconds = envIntOr(getenv, EnvDraftTTLSeconds, c.Redis.DraftTTLSeconds)
	c.Logging.File = envOr(getenv, EnvLogFile, c.Logging.File)
	c.Logging.Level = envOr(getenv, EnvLogLevel, c.Logging.Level)
}

func (c Config) Validate() error {
	switch c.Database.Driver {
	case "sqlite", "pgx", "postgres":
	default:
		return fmt.Errorf("config: unsupported database driver %q", c.Database.Driver)
	}
	if strings.TrimSpace(c.Database.DSN) == "" {
		return errors.New("config: database dsn is required")
	}
	if c.Redis.DraftTTLSeconds < 0 || c.Redis.AutosaveSeconds < 0 {
		return errors.New("config: redis durations must not be negative")
	}
	return nil
}

// DriverName maps the configured driver to its database/sql name.
func (c Config) DriverName() string {
	if c.Database.Driver == "postgres" {
		return "pgx"
	}
	return c.Database.Driver
}

func (c Config) DraftTTL() time.Duration {
	return time.Duration(c.Redis.DraftTTLSeconds) * time.Second
}

func (c Config) AutosaveInterval() time.Duration {
	return time.Duration(c.Redis.AutosaveSeconds) * time.Second
}

// Save writes c to path as YAML, creating parent directories.
func Save(path string, c Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

func envOr(getenv func(string) string, key, fallback string) string {
	if v := strings.TrimSpace(getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envIntOr(getenv func(string) string, key string, fallback int) int {
	v := strings.TrimSpace(getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
