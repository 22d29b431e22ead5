package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/leadcapture/lead-service/internal/infrastructure/redis"
	"github.com/leadcapture/lead-service/internal/metrics"
	"github.com/leadcapture/lead-service/internal/transport/http/handlers"
	"github.com/leadcapture/lead-service/internal/transport/http/middleware"
)

// Deps is everything the router needs wired in.
type Deps struct {
	Leads  *handlers.LeadHandler
	Auth   *handlers.AuthHandler
	Health *handlers.HealthHandler

	Verifier middleware.IdentityResolver
	Limiter  *redis.FixedWindowLimiter
	Metrics  *metrics.Metrics

	FrontendOrigin string

	// Public submission and login limits.
	LeadSubmitLimit  int
	LeadSubmitWindow time.Duration
	LoginLimit       int
	LoginWindow      time.Duration
}

// New builds the HTTP routing tree.
func New(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger)
	r.Use(middleware.CORS(d.FrontendOrigin))
	if d.Metrics != nil {
		r.Use(middleware.Instrument(d.Metrics))
	}

	r.Get("/health", d.Health.Healthz)
	r.Get("/ready", d.Health.Readyz)
	if d.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", d.Metrics.Handler())
	}

	authn := middleware.Auth(d.Verifier)
	adminOnly := middleware.RequireRole("admin")

	submitLimit := middleware.RateLimitFixedWindow(d.Limiter, middleware.FixedWindowConfig{
		RouteKey: "leads.submit",
		Limit:    d.LeadSubmitLimit,
		Window:   d.LeadSubmitWindow,
	})
	loginLimit := middleware.RateLimitFixedWindow(d.Limiter, middleware.FixedWindowConfig{
		RouteKey: "auth.login",
		Limit:    d.LoginLimit,
		Window:   d.LoginWindow,
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/leads", func(r chi.Router) {
			// Public submission form.
			r.With(submitLimit).Post("/", d.Leads.Create)

			// Back-office.
			r.Route("/admin", func(r chi.Router) {
				r.Use(authn)
				r.Post("/", d.Leads.Create)
				r.Get("/", d.Leads.List)
				r.Get("/stats", d.Leads.Stats)
				r.Get("/{id}", d.Leads.GetByID)
				r.Put("/{id}", d.Leads.Update)
				r.Delete("/{id}", d.Leads.Deactivate)
				r.With(adminOnly).Delete("/{id}/permanent", d.Leads.DeletePermanent)
			})
		})

		r.Route("/auth", func(r chi.Router) {
			r.With(loginLimit).Post("/login", d.Auth.Login)

			r.Group(func(r chi.Router) {
				r.Use(authn)
				r.Get("/me", d.Auth.Me)
				r.Post("/users", d.Auth.CreateUser)
				r.Get("/users", d.Auth.ListUsers)
			})
		})
	})

	return r
}
