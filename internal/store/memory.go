package store

import (
	"context"
	"sync"

	"abrechnung/internal/core"
)

// MemoryStore keeps the slot in process memory. It still round-trips every
// Load/Save through the JSON codec so it exercises the exact serialization
// the durable backends use; tests rely on that.
type MemoryStore struct {
	mu    sync.Mutex
	value string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(_ context.Context) ([]core.Bill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return decodeBills(s.value)
}

func (s *MemoryStore) Save(_ context.Context, bills []core.Bill) error {
	encoded, err := encodeBills(bills)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = encoded
	return nil
}
