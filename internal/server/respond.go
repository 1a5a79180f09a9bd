package server

import (
	"encoding/json"
	"net/http"
)

// Response is the standard success wrapper.
type Response struct {
	Data any `json:"data"`
}

// ErrorResponse is the standard error wrapper.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a machine-readable code alongside the message.
// Clients dispatch on the code, not the message.
type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// Error codes the client maps onto its error taxonomy.
const (
	codeNotFound        = "not_found"
	codeInvalidEditKey  = "invalid_edit_key"
	codeValidationError = "validation_error"
	codeTransformFailed = "transform_failed"
	codeBadRequest      = "bad_request"
	codeInternalError   = "internal_error"
	codeRateLimited     = "rate_limited"
)

func writeJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

func writeData(w http.ResponseWriter, statusCode int, data any) {
	writeJSON(w, statusCode, Response{Data: data})
}

func writeError(w http.ResponseWriter, statusCode int, code, message string, details map[string]string) {
	writeJSON(w, statusCode, ErrorResponse{Error: ErrorDetail{
		Code:    code,
		Message: message,
		Details: details,
	}})
}

func writeNotFound(w http.ResponseWriter) {
	writeError(w, http.StatusNotFound, codeNotFound, "Record not found", nil)
}

func writeInvalidEditKey(w http.ResponseWriter) {
	writeError(w, http.StatusForbidden, codeInvalidEditKey, "Invalid edit key", nil)
}

func writeValidationError(w http.ResponseWriter, fields map[string]string) {
	writeError(w, http.StatusUnprocessableEntity, codeValidationError, "Validation failed", fields)
}

func writeInternalError(w http.ResponseWriter) {
	writeError(w, http.StatusInternalServerError, codeInternalError, "Internal error", nil)
}
