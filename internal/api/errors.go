package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/openlaptop/msiec-core/internal/attr"
)

// Error represents a structured error response.
type Error struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Common error codes.
const (
	ErrCodeBadRequest     = "bad_request"
	ErrCodeNotFound       = "not_found"
	ErrCodeUnauthorized   = "unauthorised"
	ErrCodeValidation     = "validation_error"
	ErrCodeReadOnly       = "read_only"
	ErrCodeAddressUnknown = "address_unverified"
	ErrCodeECFault        = "ec_io_error"
	ErrCodeInternal       = "internal_error"
)

// writeJSON writes a JSON response with the given status code and payload.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		//nolint:errcheck // Best-effort write to response; connection may be closed
		json.NewEncoder(w).Encode(v)
	}
}

// writeError writes a structured error response.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, Error{
		Status:  status,
		Code:    code,
		Message: message,
	})
}

// writeBadRequest writes a 400 error response.
func writeBadRequest(w http.ResponseWriter, message string) {
	writeError(w, http.StatusBadRequest, ErrCodeBadRequest, message)
}

// writeNotFound writes a 404 error response.
func writeNotFound(w http.ResponseWriter, message string) {
	writeError(w, http.StatusNotFound, ErrCodeNotFound, message)
}

// writeUnauthorized writes a 401 error response.
func writeUnauthorized(w http.ResponseWriter, message string) {
	writeError(w, http.StatusUnauthorized, ErrCodeUnauthorized, message)
}

// writeInternalError writes a 500 error response.
func writeInternalError(w http.ResponseWriter, message string) {
	writeError(w, http.StatusInternalServerError, ErrCodeInternal, message)
}

// writeAttributeError maps attribute layer errors onto HTTP responses.
// Anything not recognised is treated as an EC I/O failure, since the
// attribute closures only ever surface validation or register errors.
func writeAttributeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, attr.ErrNotSupported):
		writeNotFound(w, err.Error())
	case errors.Is(err, attr.ErrAddressUnknown):
		writeError(w, http.StatusConflict, ErrCodeAddressUnknown, err.Error())
	case errors.Is(err, attr.ErrReadOnly):
		writeError(w, http.StatusMethodNotAllowed, ErrCodeReadOnly, err.Error())
	case errors.Is(err, attr.ErrInvalidValue):
		writeError(w, http.StatusUnprocessableEntity, ErrCodeValidation, err.Error())
	default:
		writeError(w, http.StatusBadGateway, ErrCodeECFault, err.Error())
	}
}
