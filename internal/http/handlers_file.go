package http

import (
	"io"
	"log/slog"
	"net/http"

	"abrechnung/internal/attach"
	"abrechnung/internal/core"
	applog "abrechnung/internal/log"
)

// readUpload pulls the "file" part out of a multipart request and wraps it
// into an Attachment. The part's filename names the attachment; the declared
// Content-Type is trusted when present, otherwise the bytes are sniffed.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (core.Attachment, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart request: "+err.Error())
		return core.Attachment{}, false
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field")
		return core.Attachment{}, false
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "read upload: "+err.Error())
		return core.Attachment{}, false
	}

	a := attach.FromUpload(header.Filename, raw, header.Header.Get("Content-Type"))
	if err := a.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return core.Attachment{}, false
	}
	return a, true
}

func (s *Server) handleUploadBillFile(w http.ResponseWriter, r *http.Request) {
	billID := r.PathValue("billID")

	a, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	bill, err := s.bills.GetBill(r.Context(), billID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	bill.Files = append(bill.Files, a)
	if err := bill.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if _, err := s.bills.UpsertBill(r.Context(), bill); err != nil {
		writeDomainError(w, r, err)
		return
	}

	slog.InfoContext(r.Context(), "Attachment added to bill",
		applog.FieldBillID, billID,
		applog.FieldFileName, a.Name,
		applog.FieldOperation, applog.OpUpload)
	writeJSON(w, http.StatusCreated, a)
}

func (s *Server) handleUploadInvoiceFile(w http.ResponseWriter, r *http.Request) {
	billID := r.PathValue("billID")
	invoiceID := r.PathValue("invoiceID")

	a, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	bill, err := s.bills.GetBill(r.Context(), billID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	var target *core.Invoice
	for i := range bill.Invoices {
		if bill.Invoices[i].ID == invoiceID {
			target = &bill.Invoices[i]
			break
		}
	}
	if target == nil {
		writeError(w, http.StatusNotFound, "invoice "+invoiceID+" not found")
		return
	}

	target.Files = append(target.Files, a)
	if err := target.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if _, err := s.bills.UpsertInvoice(r.Context(), billID, *target); err != nil {
		writeDomainError(w, r, err)
		return
	}

	slog.InfoContext(r.Context(), "Attachment added to invoice",
		applog.FieldBillID, billID,
		applog.FieldInvoiceID, invoiceID,
		applog.FieldFileName, a.Name,
		applog.FieldOperation, applog.OpUpload)
	writeJSON(w, http.StatusCreated, a)
}
