package middleware

import (
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/leadcapture/lead-service/internal/domain"
	"github.com/leadcapture/lead-service/internal/infrastructure/redis"
	"github.com/leadcapture/lead-service/internal/transport/http/response"
)

// FixedWindowConfig scopes a limiter to one route.
type FixedWindowConfig struct {
	RouteKey string
	Limit    int
	Window   time.Duration
}

// RateLimitFixedWindow limits requests per identity (authenticated user ID,
// falling back to client IP) within a fixed window. A nil limiter or a Redis
// failure lets traffic through; availability wins over strictness here.
func RateLimitFixedWindow(limiter *redis.FixedWindowLimiter, cfg FixedWindowConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limiter == nil || cfg.Limit <= 0 {
				next.ServeHTTP(w, r)
				return
			}

			key := fmt.Sprintf("rl:%s:%s:%d", cfg.RouteKey, userOrIP(r), windowBucket(time.Now(), cfg.Window))
			d, err := limiter.AllowFixedWindow(r.Context(), key, cfg.Limit, cfg.Window)
			if err != nil {
				log.Warn().Err(err).Str("route", cfg.RouteKey).Msg("rate limiter unavailable, allowing request")
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(d.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))

			if !d.Allowed {
				w.Header().Set("Retry-After", strconv.Itoa(int(d.RetryAfter.Seconds()+0.999)))
				response.WriteError(w, r, domain.ErrRateLimited(cfg.RouteKey))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func userOrIP(r *http.Request) string {
	if id := UserIDFromContext(r.Context()); id != "" {
		return "u:" + id
	}
	return "ip:" + clientIP(r)
}

// clientIP prefers the first X-Forwarded-For hop (set by the load balancer)
// over the raw remote address.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			fwd = fwd[:i]
		}
		if ip := strings.TrimSpace(fwd); ip != "" {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func windowBucket(now time.Time, window time.Duration) int64 {
	if window <= 0 {
		window = time.Minute
	}
	return now.UnixNano() / int64(window)
}
