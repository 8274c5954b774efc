package store

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"abrechnung/internal/core"
)

// FileStore persists the slot as a single JSON document on disk. Saves go
// through a temp file plus rename so a crash never leaves a half-written
// collection behind.
type FileStore struct {
	mu   sync.Mutex
	path string
}

func NewFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &FileStore{path: path}, nil
}

func (s *FileStore) Load(ctx context.Context) ([]core.Bill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return []core.Bill{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read bill slot: %w", err)
	}
	return decodeBills(string(raw))
}

func (s *FileStore) Save(ctx context.Context, bills []core.Bill) error {
	encoded, err := encodeBills(bills)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(encoded), 0o644); err != nil {
		return fmt.Errorf("write bill slot: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace bill slot: %w", err)
	}

	slog.DebugContext(ctx, "Bill slot saved", "path", s.path, "bills", len(bills))
	return nil
}
