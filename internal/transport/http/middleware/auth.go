package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/leadcapture/lead-service/internal/domain"
	"github.com/leadcapture/lead-service/internal/transport/http/response"
)

// IdentityResolver re-resolves the token subject against the user store so a
// deleted account cannot keep using a still-valid token.
type IdentityResolver interface {
	VerifyToken(ctx context.Context, token string) (domain.Identity, error)
}

// Auth extracts and verifies the Bearer token, then injects the resolved
// identity into the request context.
func Auth(resolver IdentityResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := bearerToken(r)
			if err != nil {
				response.WriteError(w, r, err)
				return
			}

			id, err := resolver.VerifyToken(r.Context(), token)
			if err != nil {
				response.WriteError(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

func bearerToken(r *http.Request) (string, error) {
	h := r.Header.Get("Authorization")
	if h == "" {
		return "", domain.ErrTokenMissing()
	}

	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", domain.ErrTokenInvalid()
	}
	return strings.TrimSpace(parts[1]), nil
}
