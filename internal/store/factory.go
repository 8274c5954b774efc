package store

import (
	"fmt"
	"log/slog"
)

// BackendType selects the durable substrate behind the bill slot.
type BackendType string

const (
	MemoryBackend BackendType = "memory"
	FileBackend   BackendType = "file"
	SQLiteBackend BackendType = "sqlite"
)

// String implements fmt.Stringer
func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid
func (bt BackendType) IsValid() bool {
	switch bt {
	case MemoryBackend, FileBackend, SQLiteBackend:
		return true
	default:
		return false
	}
}

// Config holds configuration for store creation.
type Config struct {
	Type BackendType

	// SQLite specific
	SQLiteDBPath string

	// File specific
	FilePath string
}

// Result contains the store instance and optional cleanup function.
type Result struct {
	Store   Store
	Cleanup CleanupFunc
}

// Factory creates stores based on configuration.
type Factory struct {
	logger *slog.Logger
}

func NewFactory(logger *slog.Logger) *Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &Factory{logger: logger}
}

func (f *Factory) CreateStore(config Config) (*Result, error) {
	if !config.Type.IsValid() {
		return nil, fmt.Errorf("invalid store backend type: %s", config.Type)
	}

	switch config.Type {
	case SQLiteBackend:
		st, err := NewSQLiteStore(config.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite store: %w", err)
		}
		f.logger.Info("Initialized SQLite store", "db_path", config.SQLiteDBPath)
		return &Result{Store: st, Cleanup: st.Close}, nil

	case FileBackend:
		st, err := NewFileStore(config.FilePath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize file store: %w", err)
		}
		f.logger.Info("Initialized file store", "path", config.FilePath)
		return &Result{Store: st, Cleanup: nil}, nil

	default:
		f.logger.Info("Initialized memory store")
		return &Result{Store: NewMemoryStore(), Cleanup: nil}, nil
	}
}
