package response

import (
	"encoding/json"
	"net/http"
)

// Envelope is the uniform response body for every endpoint.
type Envelope struct {
	Success   bool         `json:"success"`
	Message   string       `json:"message,omitempty"`
	Data      any          `json:"data,omitempty"`
	Errors    []FieldError `json:"errors,omitempty"`
	RequestID string       `json:"request_id,omitempty"`
}

// FieldError is a single field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// WriteJSON writes v as JSON with the given status code.
// It sets Content-Type to application/json; charset=utf-8 if not already set.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	if w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
	}
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// OK writes a 200 response with {"success": true, "data": ...}.
func OK(w http.ResponseWriter, r *http.Request, data any) {
	WriteJSON(w, http.StatusOK, Envelope{
		Success:   true,
		Data:      data,
		RequestID: RequestIDFromContext(r),
	})
}

// OKMessage writes a 200 response with a human-readable message.
func OKMessage(w http.ResponseWriter, r *http.Request, message string, data any) {
	WriteJSON(w, http.StatusOK, Envelope{
		Success:   true,
		Message:   message,
		Data:      data,
		RequestID: RequestIDFromContext(r),
	})
}

// Created writes a 201 response with {"success": true, "data": ...}.
func Created(w http.ResponseWriter, r *http.Request, message string, data any) {
	WriteJSON(w, http.StatusCreated, Envelope{
		Success:   true,
		Message:   message,
		Data:      data,
		RequestID: RequestIDFromContext(r),
	})
}

// NoContent writes a 204 response with no body.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
