package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"abrechnung/internal/repo"
	"abrechnung/internal/store"
)

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

// writeDomainError maps repository and store failures onto HTTP statuses:
// missing records are 404, update-shaped writes that match nothing are 409,
// a corrupted slot is 500 and must never be masked.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var serr *store.SerializationError
	switch {
	case errors.Is(err, repo.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, repo.ErrInvariantViolation):
		writeError(w, http.StatusConflict, err.Error())
	case errors.As(err, &serr):
		slog.ErrorContext(r.Context(), "Bill slot unreadable", "error", err)
		writeError(w, http.StatusInternalServerError, "stored data is corrupted")
	default:
		slog.ErrorContext(r.Context(), "Unhandled store error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}
