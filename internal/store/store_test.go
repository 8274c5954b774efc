package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"abrechnung/internal/core"

	"github.com/shopspring/decimal"
)

func sampleBills() []core.Bill {
	return []core.Bill{
		{
			ID:                "b1",
			Name:              "Zeltlager",
			ResponsiblePerson: "Max Mustermann",
			IBAN:              "DE89370400440532013000",
			Date:              core.NewDate(2025, 4, 2),
			Invoices: []core.Invoice{
				{
					ID:       "i1",
					ManualID: "B-01",
					Amount:   decimal.RequireFromString("10.50"),
					Type:     core.Fahrkosten,
					Date:     core.NewDate(2025, 4, 1),
					Files: []core.Attachment{
						{Name: "ticket.pdf", Kind: core.KindPDF, Data: "data:application/pdf;base64,JVBERg=="},
					},
				},
			},
			Files: []core.Attachment{
				{Name: "plan.jpg", Kind: core.KindImage, Data: "data:image/jpeg;base64,/9j/"},
			},
		},
	}
}

func assertRoundTrip(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	loaded, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load empty: %v", err)
	}
	if len(loaded) != 0 {
		t.Fatalf("empty store returned %d bills", len(loaded))
	}

	in := sampleBills()
	if err := s.Save(ctx, in); err != nil {
		t.Fatalf("save: %v", err)
	}

	out, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 bill, got %d", len(out))
	}
	got := out[0]
	want := in[0]
	if got.ID != want.ID || got.Name != want.Name || got.IBAN != want.IBAN {
		t.Fatalf("bill fields changed: %+v", got)
	}
	// Dates must come back as real date values, not strings.
	if !got.Date.Time.Equal(want.Date.Time) {
		t.Fatalf("bill date changed: %v != %v", got.Date.Time, want.Date.Time)
	}
	if len(got.Invoices) != 1 {
		t.Fatalf("expected 1 invoice, got %d", len(got.Invoices))
	}
	inv := got.Invoices[0]
	if !inv.Date.Time.Equal(want.Invoices[0].Date.Time) {
		t.Fatalf("invoice date changed: %v", inv.Date.Time)
	}
	if !inv.Amount.Equal(want.Invoices[0].Amount) {
		t.Fatalf("invoice amount changed: %s", inv.Amount)
	}
	if len(inv.Files) != 1 || inv.Files[0].Data != want.Invoices[0].Files[0].Data {
		t.Fatalf("invoice attachment changed: %+v", inv.Files)
	}
	if len(got.Files) != 1 || got.Files[0].Name != "plan.jpg" {
		t.Fatalf("bill attachment changed: %+v", got.Files)
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	assertRoundTrip(t, NewMemoryStore())
}

func TestFileStoreRoundTrip(t *testing.T) {
	s, err := NewFileStore(filepath.Join(t.TempDir(), "bills.json"))
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	assertRoundTrip(t, s)
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "bills.db"))
	if err != nil {
		t.Fatalf("new sqlite store: %v", err)
	}
	defer s.Close()
	assertRoundTrip(t, s)
}

func TestFileStoreCorruptSlotPropagates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bills.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	s, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}

	_, err = s.Load(context.Background())
	var serr *SerializationError
	if !errors.As(err, &serr) {
		t.Fatalf("expected SerializationError, got %v", err)
	}
	if serr.Op != "decode" {
		t.Fatalf("expected decode op, got %q", serr.Op)
	}
}

func TestBackendTypeIsValid(t *testing.T) {
	for _, bt := range []BackendType{MemoryBackend, FileBackend, SQLiteBackend} {
		if !bt.IsValid() {
			t.Fatalf("%s should be valid", bt)
		}
	}
	if BackendType("sheets").IsValid() {
		t.Fatal("unexpected valid backend")
	}
}
