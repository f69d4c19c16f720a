// Package config internal/config/config.go
package config

import (
	"os"
	"strconv"
)

// Config carries the runtime settings of the service. Defaults suit local
// development; environment variables override individual fields.
type Config struct {
	Port            string
	DBPath          string
	PTAXBaseURL     string
	MaxLookbackDays int
	HTTPTimeoutSec  int
	LogLevel        string
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Port:            "8080",
		DBPath:          "data",
		PTAXBaseURL:     "",
		MaxLookbackDays: 30,
		HTTPTimeoutSec:  10,
		LogLevel:        "INFO",
	}
}

// Load builds the configuration from defaults overridden by environment
// variables: PORT, DB_PATH, PTAX_BASE_URL, MAX_LOOKBACK_DAYS,
// HTTP_TIMEOUT_SEC, LOG_LEVEL.
func Load() Config {
	cfg := Default()

	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv("DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("PTAX_BASE_URL"); v != "" {
		cfg.PTAXBaseURL = v
	}
	if v := os.Getenv("MAX_LOOKBACK_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxLookbackDays = n
		}
	}
	if v := os.Getenv("HTTP_TIMEOUT_SEC"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.HTTPTimeoutSec = n
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	return cfg
}
