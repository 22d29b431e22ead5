package middleware

import (
	"net/http"

	"github.com/google/uuid"

	appctx "github.com/leadcapture/lead-service/internal/pkg/context"
)

const requestIDHeader = "X-Request-Id"

// RequestID attaches a request ID to the context and echoes it on the
// response. An inbound X-Request-Id is trusted so IDs survive proxies.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(appctx.WithRequestID(r.Context(), id)))
	})
}
