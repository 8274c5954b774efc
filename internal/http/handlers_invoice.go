package http

import (
	"log/slog"
	"net/http"

	"abrechnung/internal/core"
	applog "abrechnung/internal/log"
)

func (s *Server) handleCreateInvoice(w http.ResponseWriter, r *http.Request) {
	var inv core.Invoice
	if !decodeBody(w, r, &inv) {
		return
	}
	inv.ID = ""
	s.saveInvoice(w, r, inv, applog.OpCreate, http.StatusCreated)
}

func (s *Server) handleUpdateInvoice(w http.ResponseWriter, r *http.Request) {
	var inv core.Invoice
	if !decodeBody(w, r, &inv) {
		return
	}
	inv.ID = r.PathValue("invoiceID")
	s.saveInvoice(w, r, inv, applog.OpUpdate, http.StatusOK)
}

func (s *Server) saveInvoice(w http.ResponseWriter, r *http.Request, inv core.Invoice, op string, okStatus int) {
	billID := r.PathValue("billID")

	if err := inv.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	saved, err := s.bills.UpsertInvoice(r.Context(), billID, inv)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	slog.InfoContext(r.Context(), "Invoice saved",
		applog.FieldBillID, billID,
		applog.FieldInvoiceID, saved.ID,
		applog.FieldManualID, saved.ManualID,
		applog.FieldOperation, op)
	writeJSON(w, okStatus, saved)
}

func (s *Server) handleDeleteInvoice(w http.ResponseWriter, r *http.Request) {
	billID := r.PathValue("billID")
	invoiceID := r.PathValue("invoiceID")

	if err := s.bills.DeleteInvoice(r.Context(), billID, invoiceID); err != nil {
		writeDomainError(w, r, err)
		return
	}

	slog.InfoContext(r.Context(), "Invoice deleted",
		applog.FieldBillID, billID,
		applog.FieldInvoiceID, invoiceID,
		applog.FieldOperation, applog.OpDelete)
	w.WriteHeader(http.StatusNoContent)
}
