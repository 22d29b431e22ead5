package response

import (
	"errors"
	"net/http"

	"github.com/leadcapture/lead-service/internal/domain"
)

// WriteError converts a domain error into a consistent JSON HTTP error response.
// Non-domain errors are treated as internal errors (500) without leaking details.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	message := "internal error"
	var fields []FieldError

	var de *domain.Error
	if errors.As(err, &de) {
		status = statusFromKind(de.Kind)
		message = de.Message
		if f, ok := de.Meta["field"]; ok {
			msg := de.Message
			if reason, ok := de.Meta["reason"]; ok {
				msg = reason
			}
			fields = append(fields, FieldError{Field: f, Message: msg})
		}
	}

	// Validation failures may carry a full field list.
	var ve *ValidationError
	if errors.As(err, &ve) {
		status = http.StatusBadRequest
		message = "validation failed"
		fields = ve.Fields
	}

	WriteJSON(w, status, Envelope{
		Success:   false,
		Message:   message,
		Errors:    fields,
		RequestID: RequestIDFromContext(r),
	})
}

// ValidationError aggregates field-level failures for a 400 response.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string { return "validation failed" }

// statusFromKind maps domain error kinds to HTTP status codes.
func statusFromKind(kind domain.ErrKind) int {
	switch kind {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindAuth:
		return http.StatusUnauthorized
	case domain.KindForbidden:
		return http.StatusForbidden
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindConflict:
		return http.StatusConflict
	case domain.KindRateLimited:
		return http.StatusTooManyRequests
	case domain.KindInfrastructure:
		return http.StatusServiceUnavailable
	case domain.KindInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
