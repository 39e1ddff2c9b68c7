// Package config handles loading and parsing application configuration.
// It supports two sources (in priority order):
//  1. An environment variable:  CONFIG_PATH=/path/to/config.yaml
//  2. A command-line flag:      --config=/path/to/config.yaml
//
// The parsed values are returned as a *Config pointer so the struct is
// shared by reference rather than copied everywhere.
package config

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Backend names accepted in storage.backend.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Config is the root configuration structure.
// Every field maps to a key in the YAML file AND can be overridden
// by the corresponding environment variable (env:"...").
//
// env-required:"true" means the app refuses to start if that value is
// missing. env-default fills in anything optional.
type Config struct {
	// Env controls log format and verbosity.
	// Valid values: "dev", "staging", "prod"
	Env string `yaml:"env" env:"ENV" env-required:"true"`

	// Storage selects and configures the backing key-value store that
	// holds the student list and the display preference.
	Storage Storage `yaml:"storage"`

	// HTTPServer is embedded (not a pointer) so its fields are accessible
	// directly on Config:  cfg.HTTPServer.Addr  or after promotion cfg.Addr
	HTTPServer `yaml:"http_server"`

	// PageSize is the default window size used when a caller does not
	// ask for one explicitly.
	PageSize int `yaml:"page_size" env:"PAGE_SIZE" env-default:"5"`
}

// Storage holds the backing store settings.
type Storage struct {
	// Backend is one of "sqlite", "redis" or "memory".
	Backend string `yaml:"backend" env:"STORAGE_BACKEND" env-default:"sqlite"`

	// Path is the filesystem path to the SQLite .db file.
	Path string `yaml:"path" env:"STORAGE_PATH" env-default:"storage/storage.db"`

	Redis Redis `yaml:"redis"`
}

// Redis holds the connection settings used when Backend is "redis".
type Redis struct {
	Addr     string `yaml:"address"  env:"REDIS_ADDR"     env-default:"localhost:6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db"       env:"REDIS_DB"       env-default:"0"`

	// Prefix namespaces the two keys so several lists can share one
	// Redis database.
	Prefix string `yaml:"prefix" env:"REDIS_PREFIX" env-default:"records:"`
}

// HTTPServer holds settings specific to the HTTP server.
// Nested under http_server: in the YAML file.
type HTTPServer struct {
	// Addr is the TCP address the server listens on, e.g. "localhost:8082".
	Addr string `yaml:"address" env:"HTTP_SERVER_ADDR" env-default:"localhost:8082"`
}

// Validate rejects settings cleanenv cannot express as tags.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendSQLite, BackendRedis, BackendMemory:
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	if c.PageSize <= 0 {
		return errors.New("page_size must be positive")
	}
	return nil
}

// Load reads and validates the config file at path. Unlike MustLoad it
// reports problems as an error, which suits callers such as the CLI that
// own their own flag parsing.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is not set")
	}

	// Verify the file exists before trying to read it, so the caller gets
	// a clear message rather than a cryptic "open: no such file" later.
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", path)
	}

	// cleanenv.ReadConfig reads the YAML file and populates the struct.
	// It also reads any env:"..." tagged fields from the environment,
	// applies env-default values and checks env-required constraints.
	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("cannot read config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// MustLoad reads, validates, and returns the application config.
//
// Functions prefixed with "Must" are allowed to fatal on failure. If this
// function returns, the config is valid.
func MustLoad() *Config {
	// ── Source 1: environment variable ───────────────────────────────
	configPath := os.Getenv("CONFIG_PATH")

	// ── Source 2: command-line flag ───────────────────────────────────
	//   go run ./cmd/students-api --config=config/local.yaml
	if configPath == "" {
		flags := flag.String("config", "", "Path to the configuration YAML file")
		flag.Parse()
		configPath = *flags
	}

	if configPath == "" {
		log.Fatal("config path is not set: use --config flag or CONFIG_PATH env var")
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatal(err.Error())
	}

	return cfg
}
