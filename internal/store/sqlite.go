package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"abrechnung/internal/core"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps the slot in a one-row key/value table. The database is
// the durable substrate; the slot value stays an opaque serialized string,
// exactly like the browser storage it replaces.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	// Run migrations
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) Load(ctx context.Context) ([]core.Bill, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM slots WHERE key = ?`, SlotKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return []core.Bill{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read bill slot: %w", err)
	}
	return decodeBills(value)
}

func (s *SQLiteStore) Save(ctx context.Context, bills []core.Bill) error {
	encoded, err := encodeBills(bills)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO slots (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		SlotKey, encoded)
	if err != nil {
		return fmt.Errorf("write bill slot: %w", err)
	}

	slog.DebugContext(ctx, "Bill slot saved to SQLite", "bills", len(bills))
	return nil
}
