package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	appctx "github.com/leadcapture/lead-service/internal/pkg/context"

	"github.com/leadcapture/lead-service/internal/domain"
)

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v (body=%s)", err, rec.Body.String())
	}
	return env
}

func TestOK_EnvelopeShape(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req = req.WithContext(appctx.WithRequestID(req.Context(), "rid-1"))

	OK(rec, req, map[string]string{"k": "v"})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("unexpected content type %q", ct)
	}
	env := decodeEnvelope(t, rec)
	if !env.Success || env.RequestID != "rid-1" {
		t.Fatalf("unexpected envelope: %+v", env)
	}
}

func TestWriteError_KindMapping(t *testing.T) {
	t.Parallel()

	cases := []struct {
		err    error
		status int
	}{
		{domain.ErrInvalidJSON(errors.New("x")), http.StatusBadRequest},
		{domain.ErrTokenMissing(), http.StatusUnauthorized},
		{domain.ErrInsufficientRole("admin"), http.StatusForbidden},
		{domain.ErrLeadNotFound(), http.StatusNotFound},
		{domain.ErrEmailAlreadyExists(), http.StatusConflict},
		{domain.ErrRateLimited("x"), http.StatusTooManyRequests},
		{domain.ErrDBUnavailable(errors.New("down")), http.StatusServiceUnavailable},
		{domain.ErrInternal(errors.New("boom")), http.StatusInternalServerError},
		{errors.New("plain error"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/x", nil)

		WriteError(rec, req, tc.err)

		if rec.Code != tc.status {
			t.Fatalf("err=%v: expected %d, got %d", tc.err, tc.status, rec.Code)
		}
		env := decodeEnvelope(t, rec)
		if env.Success {
			t.Fatalf("err=%v: success must be false", tc.err)
		}
	}
}

func TestWriteError_PlainError_DoesNotLeak(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)

	WriteError(rec, req, errors.New("secret database password"))

	if strings.Contains(rec.Body.String(), "secret") {
		t.Fatalf("internal error detail leaked: %s", rec.Body.String())
	}
}

func TestWriteError_FieldMeta(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)

	WriteError(rec, req, domain.ErrInvalidField("birthDate", "must not be in the future"))

	env := decodeEnvelope(t, rec)
	if len(env.Errors) != 1 {
		t.Fatalf("expected one field error, got %+v", env.Errors)
	}
	fe := env.Errors[0]
	if fe.Field != "birthDate" || fe.Message != "must not be in the future" {
		t.Fatalf("unexpected field error: %+v", fe)
	}
}

func TestWriteError_ValidationError(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)

	WriteError(rec, req, &ValidationError{Fields: []FieldError{
		{Field: "email", Message: "email must be a valid email address"},
		{Field: "phone", Message: "phone must be at least 10 characters"},
	}})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Message != "validation failed" || len(env.Errors) != 2 {
		t.Fatalf("unexpected envelope: %+v", env)
	}
}

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	type payload struct {
		Name string `json:"name"`
	}

	var p payload
	req := httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(`{"name":"a"}`))
	if err := DecodeJSON(req, &p); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if p.Name != "a" {
		t.Fatalf("unexpected payload: %+v", p)
	}

	req = httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(`{"name":`))
	if err := DecodeJSON(req, &p); !domain.Is(err, "invalid_json") {
		t.Fatalf("expected invalid_json, got %v", err)
	}

	req = httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(`{"name":"a"}{"name":"b"}`))
	if err := DecodeJSON(req, &p); !domain.Is(err, "invalid_json") {
		t.Fatalf("expected invalid_json for trailing value, got %v", err)
	}
}
