package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/leadcapture/lead-service/internal/transport/http/response"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthHandler struct {
	db Pinger
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// Healthz reports process liveness. It never touches dependencies.
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	response.OK(w, r, map[string]string{"status": "ok"})
}

// Readyz reports whether the service can take traffic. The database is the
// only hard dependency; Redis and the broker degrade gracefully.
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if h.db != nil {
		if err := h.db.PingContext(ctx); err != nil {
			response.WriteJSON(w, http.StatusServiceUnavailable, response.Envelope{
				Success:   false,
				Message:   "database unavailable",
				RequestID: response.RequestIDFromContext(r),
			})
			return
		}
	}
	response.OK(w, r, map[string]string{"status": "ready"})
}
