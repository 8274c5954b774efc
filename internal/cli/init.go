// Package cli provides common initialization utilities for the
// abrechnung binary: environment loading, logging, configuration
// and store setup.
package cli

import (
	"os"

	"github.com/joho/godotenv"

	"abrechnung/internal/config"
	applog "abrechnung/internal/log"
	"abrechnung/internal/store"
)

// SetupLogger initializes structured logging at the given level and sets
// it as the process default logger.
func SetupLogger(level string) *applog.Logger {
	cfg := applog.DefaultConfig()
	cfg.Level = applog.ParseLevel(level)
	logger := applog.New(cfg)
	applog.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *applog.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

// InitStore creates the configured persistence backend.
// Returns the store result or exits the process on failure.
func InitStore(logger *applog.Logger, cfg *config.Config) *store.Result {
	factory := store.NewFactory(logger.Logger)
	result, err := factory.CreateStore(store.Config{
		Type:         store.BackendType(cfg.DataBackend),
		SQLiteDBPath: cfg.SQLiteDBPath,
		FilePath:     cfg.DataFilePath,
	})
	if err != nil {
		logger.Error("Failed to initialize store backend", "error", err, applog.FieldBackend, cfg.DataBackend)
		os.Exit(1)
	}
	return result
}
