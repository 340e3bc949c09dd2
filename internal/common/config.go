// Package common provides shared utilities for the restocaja server.
package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for the closure engine.
type Config struct {
	Environment string        `toml:"environment"`
	Server      ServerConfig  `toml:"server"`
	Storage     StorageConfig `toml:"storage"`
	Logging     LoggingConfig `toml:"logging"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host      string  `toml:"host"`
	Port      int     `toml:"port"`
	RateLimit float64 `toml:"rate_limit"` // requests per second, 0 disables
	RateBurst int     `toml:"rate_burst"`
}

// StorageConfig selects and configures the persistence backend.
type StorageConfig struct {
	Backend string `toml:"backend"` // "badger" (default) or "surrealdb"

	// Badger (embedded) backend.
	Path string `toml:"path"`

	// SurrealDB backend.
	Address   string `toml:"address"`
	Username  string `toml:"username"`
	Password  string `toml:"password"`
	Namespace string `toml:"namespace"`
	Database  string `toml:"database"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "console" or "json"
}

// NewDefaultConfig returns a Config with sensible defaults.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host:      "0.0.0.0",
			Port:      8080,
			RateLimit: 50,
			RateBurst: 100,
		},
		Storage: StorageConfig{
			Backend:   "badger",
			Path:      "data/closures",
			Address:   "ws://localhost:8000",
			Username:  "root",
			Password:  "root",
			Namespace: "restocaja",
			Database:  "closures",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides.
// Later files override earlier ones; missing files are skipped.
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config.
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("RESTOCAJA_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("RESTOCAJA_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("RESTOCAJA_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("RESTOCAJA_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if backend := os.Getenv("RESTOCAJA_STORAGE_BACKEND"); backend != "" {
		config.Storage.Backend = backend
	}

	if path := os.Getenv("RESTOCAJA_DATA_PATH"); path != "" {
		config.Storage.Path = path
	}

	if addr := os.Getenv("RESTOCAJA_SURREAL_ADDRESS"); addr != "" {
		config.Storage.Address = addr
	}
	if user := os.Getenv("RESTOCAJA_SURREAL_USERNAME"); user != "" {
		config.Storage.Username = user
	}
	if pass := os.Getenv("RESTOCAJA_SURREAL_PASSWORD"); pass != "" {
		config.Storage.Password = pass
	}
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}
