package config

import (
	"strings"
	"testing"
)

func validConfig() Config {
	return Config{
		Port:           "8081",
		DataBackend:    "file",
		DataFilePath:   "./data/bills.json",
		SQLiteDBPath:   "./data/abrechnung.db",
		MaxUploadBytes: 1 << 20,
		LogLevel:       "info",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		wantErr     bool
		errorString string
	}{
		{
			name:   "valid file backend config",
			mutate: func(c *Config) {},
		},
		{
			name:   "valid sqlite backend config",
			mutate: func(c *Config) { c.DataBackend = "sqlite" },
		},
		{
			name:   "valid memory backend config",
			mutate: func(c *Config) { c.DataBackend = "memory" },
		},
		{
			name:        "invalid port - non-numeric",
			mutate:      func(c *Config) { c.Port = "abc" },
			wantErr:     true,
			errorString: "invalid port 'abc': must be a number",
		},
		{
			name:        "invalid port - out of range",
			mutate:      func(c *Config) { c.Port = "70000" },
			wantErr:     true,
			errorString: "invalid port 70000: must be between 1 and 65535",
		},
		{
			name:        "invalid backend",
			mutate:      func(c *Config) { c.DataBackend = "sheets" },
			wantErr:     true,
			errorString: "invalid data backend 'sheets'",
		},
		{
			name: "sqlite backend without path",
			mutate: func(c *Config) {
				c.DataBackend = "sqlite"
				c.SQLiteDBPath = ""
			},
			wantErr:     true,
			errorString: "SQLite database path cannot be empty",
		},
		{
			name: "file backend without path",
			mutate: func(c *Config) {
				c.DataBackend = "file"
				c.DataFilePath = ""
			},
			wantErr:     true,
			errorString: "data file path cannot be empty",
		},
		{
			name:        "zero upload limit",
			mutate:      func(c *Config) { c.MaxUploadBytes = 0 },
			wantErr:     true,
			errorString: "invalid max upload size",
		},
		{
			name:        "bad log level",
			mutate:      func(c *Config) { c.LogLevel = "verbose" },
			wantErr:     true,
			errorString: "invalid log level 'verbose'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				if !strings.Contains(err.Error(), tt.errorString) {
					t.Fatalf("error %q does not contain %q", err.Error(), tt.errorString)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.Port != "8081" {
		t.Fatalf("default port = %q", cfg.Port)
	}
	if cfg.DataBackend != "file" {
		t.Fatalf("default backend = %q", cfg.DataBackend)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}
