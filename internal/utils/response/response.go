// Package response provides helpers for writing consistent JSON HTTP
// responses from the record handlers.
//
// Success responses carry whatever the handler returns (a record, a page,
// an index, the preferences). Error responses always share one envelope
// so a client can render any failure the same way.
package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/aanand-mishra/student-records/internal/records"
)

// ─────────────────────────────────────────────────────────────────────────────
// Response is the standard envelope returned for error cases:
//
//	{ "status": "error", "error": "field marks must be at most 100" }
//
// ─────────────────────────────────────────────────────────────────────────────
type Response struct {
	Status string `json:"status"` // always StatusError
	Error  string `json:"error"`  // human-readable error detail
}

// StatusError is the Status of every error envelope.
const StatusError = "error"

// ─────────────────────────────────────────────────────────────────────────────
// WriteJSON writes data as JSON with the given HTTP status code.
//
// Order matters: Header() → WriteHeader() → body. Once WriteHeader is
// called the headers are locked.
// ─────────────────────────────────────────────────────────────────────────────
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// GeneralError wraps any Go error into the standard Response shape.
// Use this for decode errors, bad paths and storage failures.
func GeneralError(err error) Response {
	return Response{
		Status: StatusError,
		Error:  err.Error(),
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// ValidationError converts the validator's per-field errors into a single
// human-readable Response, one sentence per failing field joined by ", ".
//
//	{ "status": "error", "error": "field name is required, field age must be greater than 0" }
//
// ─────────────────────────────────────────────────────────────────────────────
func ValidationError(errs validator.ValidationErrors) Response {
	ve := &records.ValidationError{Errs: errs}
	return Response{
		Status: StatusError,
		Error:  strings.Join(ve.Messages(), ", "),
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Error maps a core error onto a status code and the standard envelope:
//
//	ValidationError → 400 with one sentence per failing field
//	IndexError      → 404 (no record at that position)
//	StorageError    → 500 (the change is applied in memory but not saved)
//	anything else   → 500
//
// ─────────────────────────────────────────────────────────────────────────────
func Error(w http.ResponseWriter, err error) error {
	var ve *records.ValidationError
	switch {
	case errors.As(err, &ve):
		return WriteJSON(w, http.StatusBadRequest, ValidationError(ve.Errs))
	case errors.Is(err, records.ErrIndex):
		return WriteJSON(w, http.StatusNotFound, GeneralError(err))
	default:
		return WriteJSON(w, http.StatusInternalServerError, GeneralError(err))
	}
}
