package handler

// Response helpers shared by all handlers.
//
// Every error response from this API has the single shape
//
//	{"error": "<message>"}
//
// and which status an error maps to is decided per endpoint (register
// failures are 400, login failures are 401 — the same duplicate-check
// machinery would be a 400 on one path and never occurs on the other).
// The helpers here only standardise encoding; the mapping lives in the
// handlers, the one layer allowed to know about HTTP status codes.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakif/auth-service/internal/apperror"
)

// errorResponse is the standard error body.
type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON sends a JSON response with the given status code.
// Headers and status must be written before the body — once Encode writes,
// the headers are on the wire.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeAppError sends err's user-facing message with the given status when
// err is (or wraps) an *apperror.AppError, and a generic 500 otherwise.
//
// Raw non-AppError messages never reach the client: they can carry SQL,
// file paths, or driver internals.
func writeAppError(w http.ResponseWriter, err error, status int) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		writeJSON(w, status, errorResponse{Error: appErr.Message})
		return
	}
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal server error"})
}
