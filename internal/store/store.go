package store

import (
	"context"
	"fmt"

	"abrechnung/internal/core"
)

// SlotKey is the single durable slot holding the serialized bill collection.
const SlotKey = "bills"

// Store is the port for the persistent bill slot. Both operations work on
// the entire collection; there are no partial writes. Load on an empty or
// missing slot returns an empty collection, never an error.
type Store interface {
	Load(ctx context.Context) ([]core.Bill, error)
	Save(ctx context.Context, bills []core.Bill) error
}

// CleanupFunc releases backend resources (database handles and the like).
type CleanupFunc func() error

// SerializationError reports that the slot content could not be encoded or
// decoded. It always propagates: returning an empty collection instead would
// mask data loss.
type SerializationError struct {
	Op  string // "encode" or "decode"
	Err error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("bill slot %s failed: %v", e.Op, e.Err)
}

func (e *SerializationError) Unwrap() error {
	return e.Err
}
