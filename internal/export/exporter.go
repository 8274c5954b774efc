// Package export packages one bill into the downloadable zip archive handed
// to the treasurer: a metadata document, the invoice ledger, the per-type
// totals report and the original attachment bytes.
package export

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"abrechnung/internal/attach"
	"abrechnung/internal/core"
)

// MIMEType of the produced archive.
const MIMEType = "application/zip"

// BillReader is the slice of the repository the exporter needs. Export is
// read-only: the store is never written during an export.
type BillReader interface {
	GetBill(ctx context.Context, id string) (core.Bill, error)
}

type Exporter struct {
	bills BillReader
}

func New(bills BillReader) *Exporter {
	return &Exporter{bills: bills}
}

// billInfo is the info.json document: the bill minus its invoice list, with
// files reduced to attachment names.
type billInfo struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	ResponsiblePerson string   `json:"responsiblePerson"`
	IBAN              string   `json:"iban"`
	Date              string   `json:"date"`
	Files             []string `json:"files"`
}

// Export resolves the bill and returns the raw archive bytes. The whole
// archive is produced or the operation fails; there is no partial output.
func (e *Exporter) Export(ctx context.Context, billID string) ([]byte, error) {
	bill, err := e.bills.GetBill(ctx, billID)
	if err != nil {
		return nil, err
	}

	info, err := infoJSON(bill)
	if err != nil {
		return nil, err
	}

	names, contents, err := collectAttachments(bill)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	entries := []struct {
		name string
		data []byte
	}{
		{"info.json", info},
		{"invoices.csv", []byte(ledgerCSV(bill.Invoices))},
		{"invoice_totals.csv", []byte(totalsCSV(core.Summarize(bill.Invoices)))},
	}
	for _, entry := range entries {
		w, err := zw.Create(entry.name)
		if err != nil {
			return nil, fmt.Errorf("create archive entry %s: %w", entry.name, err)
		}
		if _, err := w.Write(entry.data); err != nil {
			return nil, fmt.Errorf("write archive entry %s: %w", entry.name, err)
		}
	}
	for _, name := range names {
		w, err := zw.Create(name)
		if err != nil {
			return nil, fmt.Errorf("create archive entry %s: %w", name, err)
		}
		if _, err := w.Write(contents[name]); err != nil {
			return nil, fmt.Errorf("write archive entry %s: %w", name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finalize archive: %w", err)
	}

	slog.InfoContext(ctx, "Bill exported",
		"bill_id", bill.ID,
		"invoices", len(bill.Invoices),
		"attachments", len(names),
		"archive_bytes", buf.Len())
	return buf.Bytes(), nil
}

func infoJSON(bill core.Bill) ([]byte, error) {
	names := make([]string, len(bill.Files))
	for i, f := range bill.Files {
		names[i] = f.Name
	}
	raw, err := json.MarshalIndent(billInfo{
		ID:                bill.ID,
		Name:              bill.Name,
		ResponsiblePerson: bill.ResponsiblePerson,
		IBAN:              bill.IBAN,
		Date:              bill.Date.ISO(),
		Files:             names,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode info.json: %w", err)
	}
	return raw, nil
}

// collectAttachments gathers every attachment — bill files first, then each
// invoice's files in order — decoded back to raw bytes. When two attachments
// share a name the later one wins and the archive holds exactly one entry of
// that name; entry order follows first appearance.
func collectAttachments(bill core.Bill) ([]string, map[string][]byte, error) {
	var names []string
	contents := make(map[string][]byte)

	add := func(owner string, f core.Attachment) error {
		raw, _, err := attach.Decode(f.Data)
		if err != nil {
			return fmt.Errorf("decode attachment %s of %s: %w", f.Name, owner, err)
		}
		if _, seen := contents[f.Name]; !seen {
			names = append(names, f.Name)
		}
		contents[f.Name] = raw
		return nil
	}

	for _, f := range bill.Files {
		if err := add("bill", f); err != nil {
			return nil, nil, err
		}
	}
	for _, inv := range bill.Invoices {
		for _, f := range inv.Files {
			if err := add("invoice "+inv.ManualID, f); err != nil {
				return nil, nil, err
			}
		}
	}
	return names, contents, nil
}
