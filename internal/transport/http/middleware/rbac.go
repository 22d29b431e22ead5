package middleware

import (
	"net/http"

	"github.com/leadcapture/lead-service/internal/domain"
	"github.com/leadcapture/lead-service/internal/transport/http/response"
)

// RequireRole allows only identities whose role ranks at least as high as
// the required role. Must run after Auth.
func RequireRole(required string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := IdentityFromContext(r.Context())
			if !ok {
				response.WriteError(w, r, domain.ErrTokenMissing())
				return
			}
			if domain.RoleRank(id.Role) < domain.RoleRank(required) {
				response.WriteError(w, r, domain.ErrInsufficientRole(required))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
