package http

import (
	"log/slog"
	"net/http"

	"abrechnung/internal/core"
	applog "abrechnung/internal/log"
)

func (s *Server) handleListBills(w http.ResponseWriter, r *http.Request) {
	bills, err := s.bills.ListBills(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, bills)
}

func (s *Server) handleGetBill(w http.ResponseWriter, r *http.Request) {
	bill, err := s.bills.GetBill(r.Context(), r.PathValue("billID"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, bill)
}

func (s *Server) handleCreateBill(w http.ResponseWriter, r *http.Request) {
	var bill core.Bill
	if !decodeBody(w, r, &bill) {
		return
	}
	bill.ID = "" // ids come from the repository, never from the caller

	if err := bill.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	saved, err := s.bills.UpsertBill(r.Context(), bill)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	slog.InfoContext(r.Context(), "Bill created",
		applog.FieldBillID, saved.ID,
		applog.FieldOperation, applog.OpCreate)
	writeJSON(w, http.StatusCreated, saved)
}

func (s *Server) handleUpdateBill(w http.ResponseWriter, r *http.Request) {
	var bill core.Bill
	if !decodeBody(w, r, &bill) {
		return
	}
	bill.ID = r.PathValue("billID")

	if err := bill.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	// Full-record replace keeps the invoice list the caller sent; fetch the
	// stored one so an update without invoices does not wipe them.
	if bill.Invoices == nil {
		current, err := s.bills.GetBill(r.Context(), bill.ID)
		if err == nil {
			bill.Invoices = current.Invoices
			if bill.Files == nil {
				bill.Files = current.Files
			}
		}
	}

	saved, err := s.bills.UpsertBill(r.Context(), bill)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	slog.InfoContext(r.Context(), "Bill updated",
		applog.FieldBillID, saved.ID,
		applog.FieldOperation, applog.OpUpdate)
	writeJSON(w, http.StatusOK, saved)
}

func (s *Server) handleDeleteBill(w http.ResponseWriter, r *http.Request) {
	billID := r.PathValue("billID")
	if err := s.bills.DeleteBill(r.Context(), billID); err != nil {
		writeDomainError(w, r, err)
		return
	}

	slog.InfoContext(r.Context(), "Bill deleted",
		applog.FieldBillID, billID,
		applog.FieldOperation, applog.OpDelete)
	w.WriteHeader(http.StatusNoContent)
}
