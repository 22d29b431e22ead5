package response

import (
	"net/http"

	appctx "github.com/leadcapture/lead-service/internal/pkg/context"
)

// RequestIDFromContext extracts the request id injected by the RequestID middleware.
func RequestIDFromContext(r *http.Request) string {
	if r == nil {
		return ""
	}
	return appctx.GetRequestID(r.Context())
}
