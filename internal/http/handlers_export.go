package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"abrechnung/internal/export"
	applog "abrechnung/internal/log"
)

func (s *Server) handleExportBill(w http.ResponseWriter, r *http.Request) {
	billID := r.PathValue("billID")

	bill, err := s.bills.GetBill(r.Context(), billID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	archive, err := s.exporter.Export(r.Context(), billID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	filename := archiveFilename(bill.Name)
	w.Header().Set("Content-Type", export.MIMEType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(archive)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(archive); err != nil {
		slog.WarnContext(r.Context(), "Archive download aborted",
			applog.FieldBillID, billID, "error", err)
		return
	}

	slog.InfoContext(r.Context(), "Bill archive downloaded",
		applog.FieldBillID, billID,
		applog.FieldOperation, applog.OpExport,
		"archive_bytes", len(archive))
}

// archiveFilename derives the download name from the bill name, falling back
// to a fixed name when the bill name has no usable characters.
func archiveFilename(billName string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', '"', ':', '*', '?', '<', '>', '|':
			return -1
		}
		return r
	}, billName)
	name = strings.TrimSpace(name)
	if name == "" {
		name = "abrechnung"
	}
	return name + ".zip"
}
