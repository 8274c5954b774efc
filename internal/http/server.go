// Package http exposes the bill manager as a small JSON API.
package http

import (
	"context"
	"net/http"

	"abrechnung/internal/core"
	"abrechnung/internal/middleware/trace"
)

// BillService is the repository surface the handlers need.
type BillService interface {
	ListBills(ctx context.Context) ([]core.Bill, error)
	GetBill(ctx context.Context, id string) (core.Bill, error)
	UpsertBill(ctx context.Context, bill core.Bill) (core.Bill, error)
	DeleteBill(ctx context.Context, id string) error
	UpsertInvoice(ctx context.Context, billID string, inv core.Invoice) (core.Invoice, error)
	DeleteInvoice(ctx context.Context, billID, invoiceID string) error
}

// BillExporter produces the downloadable archive for one bill.
type BillExporter interface {
	Export(ctx context.Context, billID string) ([]byte, error)
}

type Server struct {
	http.Server
	bills          BillService
	exporter       BillExporter
	maxUploadBytes int64
}

func NewServer(addr string, bills BillService, exporter BillExporter, maxUploadBytes int64) *Server {
	s := &Server{
		bills:          bills,
		exporter:       exporter,
		maxUploadBytes: maxUploadBytes,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)

	mux.HandleFunc("GET /bills", s.handleListBills)
	mux.HandleFunc("POST /bills", s.handleCreateBill)
	mux.HandleFunc("GET /bills/{billID}", s.handleGetBill)
	mux.HandleFunc("PUT /bills/{billID}", s.handleUpdateBill)
	mux.HandleFunc("DELETE /bills/{billID}", s.handleDeleteBill)

	mux.HandleFunc("POST /bills/{billID}/invoices", s.handleCreateInvoice)
	mux.HandleFunc("PUT /bills/{billID}/invoices/{invoiceID}", s.handleUpdateInvoice)
	mux.HandleFunc("DELETE /bills/{billID}/invoices/{invoiceID}", s.handleDeleteInvoice)

	mux.HandleFunc("POST /bills/{billID}/files", s.handleUploadBillFile)
	mux.HandleFunc("POST /bills/{billID}/invoices/{invoiceID}/files", s.handleUploadInvoiceFile)

	mux.HandleFunc("GET /bills/{billID}/export", s.handleExportBill)

	s.Addr = addr
	s.Handler = trace.Middleware(mux)
	return s
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if _, err := s.bills.ListBills(r.Context()); err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("store unavailable"))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
