// Package repo implements the typed CRUD layer over the persistent bill
// slot. Every operation loads the full collection, mutates it in memory and
// writes the full collection back; an internal mutex keeps that
// read-modify-write cycle single-writer within the process.
package repo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"abrechnung/internal/core"
	"abrechnung/internal/store"

	"github.com/google/uuid"
)

var (
	// ErrNotFound means the requested bill or invoice id does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvariantViolation means an update-shaped write (non-empty id)
	// matched no existing record. That is a caller bug; the operation
	// aborts instead of silently inserting or dropping data.
	ErrInvariantViolation = errors.New("update matches no existing record")
)

// IdentityNew is the sentinel id meaning "not yet persisted — assign on
// save". Generated ids are UUIDs and can never be empty, so the sentinel
// cannot collide with a real id.
const IdentityNew = ""

type Repository struct {
	mu    sync.Mutex
	store store.Store
	newID func() string
}

func New(s store.Store) *Repository {
	return &Repository{store: s, newID: uuid.NewString}
}

// ListBills returns the whole collection in stored order.
func (r *Repository) ListBills(ctx context.Context) ([]core.Bill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.store.Load(ctx)
}

// GetBill returns the bill with the given id or ErrNotFound.
func (r *Repository) GetBill(ctx context.Context, id string) (core.Bill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.getBillLocked(ctx, id)
}

func (r *Repository) getBillLocked(ctx context.Context, id string) (core.Bill, error) {
	bills, err := r.store.Load(ctx)
	if err != nil {
		return core.Bill{}, err
	}
	for _, b := range bills {
		if b.ID == id {
			return b, nil
		}
	}
	return core.Bill{}, fmt.Errorf("bill %s: %w", id, ErrNotFound)
}

// UpsertBill saves a bill and returns it with its id filled in. A bill with
// the sentinel id gets a fresh unique id and is appended. A known id
// replaces the record in place, position preserved. An unknown non-sentinel
// id is appended as-is — a defensive fallback, not an error.
func (r *Repository) UpsertBill(ctx context.Context, bill core.Bill) (core.Bill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	bills, err := r.store.Load(ctx)
	if err != nil {
		return core.Bill{}, err
	}

	if bill.ID == IdentityNew {
		bill.ID = r.newID()
		bills = append(bills, bill)
	} else {
		replaced := false
		for i := range bills {
			if bills[i].ID == bill.ID {
				bills[i] = bill
				replaced = true
				break
			}
		}
		if !replaced {
			bills = append(bills, bill)
		}
	}

	if err := r.store.Save(ctx, bills); err != nil {
		return core.Bill{}, err
	}

	slog.InfoContext(ctx, "Bill saved",
		"id", bill.ID,
		"name", bill.Name,
		"invoices", len(bill.Invoices))
	return bill, nil
}

// DeleteBill removes the bill and everything nested in it. Deleting an
// unknown id is a no-op.
func (r *Repository) DeleteBill(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	bills, err := r.store.Load(ctx)
	if err != nil {
		return err
	}

	kept := bills[:0]
	for _, b := range bills {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	if len(kept) == len(bills) {
		return nil
	}

	if err := r.store.Save(ctx, kept); err != nil {
		return err
	}

	slog.InfoContext(ctx, "Bill deleted", "id", id)
	return nil
}

// UpsertInvoice saves an invoice inside the given bill and returns it with
// its id filled in. The bill must exist. An invoice with the sentinel id is
// appended under a fresh id; a known id replaces in place; an unknown
// non-sentinel id fails with ErrInvariantViolation and leaves the bill
// untouched.
func (r *Repository) UpsertInvoice(ctx context.Context, billID string, inv core.Invoice) (core.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	bills, err := r.store.Load(ctx)
	if err != nil {
		return core.Invoice{}, err
	}

	billIdx := -1
	for i := range bills {
		if bills[i].ID == billID {
			billIdx = i
			break
		}
	}
	if billIdx < 0 {
		return core.Invoice{}, fmt.Errorf("bill %s: %w", billID, ErrNotFound)
	}

	bill := &bills[billIdx]
	if inv.ID == IdentityNew {
		inv.ID = r.newID()
		bill.Invoices = append(bill.Invoices, inv)
	} else {
		replaced := false
		for i := range bill.Invoices {
			if bill.Invoices[i].ID == inv.ID {
				bill.Invoices[i] = inv
				replaced = true
				break
			}
		}
		if !replaced {
			return core.Invoice{}, fmt.Errorf("invoice %s in bill %s: %w", inv.ID, billID, ErrInvariantViolation)
		}
	}

	if err := r.store.Save(ctx, bills); err != nil {
		return core.Invoice{}, err
	}

	slog.InfoContext(ctx, "Invoice saved",
		"bill_id", billID,
		"invoice_id", inv.ID,
		"manual_id", inv.ManualID,
		"type", string(inv.Type))
	return inv, nil
}

// DeleteInvoice removes an invoice from a bill. Unlike UpsertInvoice this is
// a no-op when the bill or the invoice is missing.
func (r *Repository) DeleteInvoice(ctx context.Context, billID, invoiceID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	bills, err := r.store.Load(ctx)
	if err != nil {
		return err
	}

	for i := range bills {
		if bills[i].ID != billID {
			continue
		}
		invs := bills[i].Invoices
		kept := invs[:0]
		for _, inv := range invs {
			if inv.ID != invoiceID {
				kept = append(kept, inv)
			}
		}
		if len(kept) == len(invs) {
			return nil
		}
		bills[i].Invoices = kept

		if err := r.store.Save(ctx, bills); err != nil {
			return err
		}
		slog.InfoContext(ctx, "Invoice deleted", "bill_id", billID, "invoice_id", invoiceID)
		return nil
	}
	return nil
}
