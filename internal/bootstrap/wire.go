package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/leadcapture/lead-service/internal/application/auth"
	"github.com/leadcapture/lead-service/internal/application/lead"
	"github.com/leadcapture/lead-service/internal/config"
	"github.com/leadcapture/lead-service/internal/infrastructure/db/postgres"
	"github.com/leadcapture/lead-service/internal/infrastructure/memory"
	rabbitmq_pub "github.com/leadcapture/lead-service/internal/infrastructure/messaging/rabbitmq"
	"github.com/leadcapture/lead-service/internal/infrastructure/redis"
	"github.com/leadcapture/lead-service/internal/infrastructure/security"
	"github.com/leadcapture/lead-service/internal/logger"
	"github.com/leadcapture/lead-service/internal/metrics"
	http_handlers "github.com/leadcapture/lead-service/internal/transport/http/handlers"
	"github.com/leadcapture/lead-service/internal/transport/http/router"
)

/*
========================
 Public entry (prod)
========================
*/

func NewServer() (*http.Server, func(), error) {
	return newServer(defaultDeps())
}

// NewServerWithDeps allows injecting dependencies for testing
func NewServerWithDeps(deps Deps) (*http.Server, func(), error) {
	return newServer(deps)
}

/*
========================
 Dependency injection
========================
*/

type Deps struct {
	LoadConfig func() (*config.Config, error)

	NewDB func(addr string, debug bool) (DBCloser, error)

	NewRedis func(addr, password string, db int) RedisClient

	NewPublisher func(rabbitURL string) (Publisher, error)

	NewRouter func(router.Deps) http.Handler
}

type DBCloser interface {
	Close() error
}

type RedisClient interface {
	Ping(ctx context.Context) error
	Close() error
}

type Publisher interface{}

/*
========================
 Core bootstrap logic
========================
*/

func newServer(deps Deps) (*http.Server, func(), error) {
	// 0) config
	cfg, err := deps.LoadConfig()
	if err != nil {
		return nil, nil, err
	}

	// 1) db
	db, err := deps.NewDB(cfg.DBAddr, cfg.DBDebug)
	if err != nil {
		return nil, nil, err
	}

	cleanupFns := []func(){
		func() { _ = db.Close() },
	}

	sqlDB, ok := db.(*sql.DB)
	if !ok {
		runCleanup(cleanupFns)
		return nil, nil, errors.New("bootstrap: NewDB did not return *sql.DB")
	}

	if err := postgres.EnsureSchema(context.Background(), sqlDB); err != nil {
		runCleanup(cleanupFns)
		return nil, nil, err
	}

	// 2) repos
	userRepo := postgres.NewUserRepo(sqlDB)
	leadRepo := postgres.NewLeadRepo(sqlDB)

	// 3) redis (best-effort)
	var redisCli RedisClient
	if deps.NewRedis != nil && cfg.RedisAddr != "" {
		c := deps.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if err := c.Ping(ctx); err != nil {
			logger.Logger.Warn().Err(err).Msg("redis unavailable; rate limiting disabled")
			_ = c.Close()
		} else {
			logger.Logger.Info().Msg("redis connected")
			redisCli = c
			cleanupFns = append(cleanupFns, func() { _ = c.Close() })
		}
	}

	// 4) publisher
	var pub Publisher
	if deps.NewPublisher != nil && cfg.RabbitURL != "" {
		pub, err = deps.NewPublisher(cfg.RabbitURL)
		if err != nil {
			if cfg.Env == "dev" {
				logger.Logger.Warn().Err(err).Msg("rabbitmq unavailable; using noop publisher")
				pub = memory.NewNoopPublisher()
			} else {
				runCleanup(cleanupFns)
				return nil, nil, err
			}
		}
	} else {
		pub = memory.NewNoopPublisher()
	}

	if c, ok := pub.(interface{ Close() error }); ok {
		cleanupFns = append(cleanupFns, func() { _ = c.Close() })
	}

	// 5) security
	logger.Logger.Info().Str("issuer", cfg.JWTIssuer).Msg("initializing jwt signer")
	hasher := security.NewBcryptHasher(12)
	signer := security.NewJWTSigner(cfg.JWTSecret, cfg.JWTIssuer)

	// seed (dev only)
	if cfg.Env == "dev" {
		postgres.SeedUsers(context.Background(), userRepo, hasher)
	}

	// 6) services
	authSvc := auth.NewService(userRepo, hasher, signer, auth.Config{
		TokenTTL: cfg.TokenTTL,
	})
	authSvc = authSvc.WithAudit(func(action string, fields map[string]string) {
		evt := logger.Logger.Info().
			Bool("audit", true).
			Str("action", action)
		for k, v := range fields {
			evt = evt.Str(k, v)
		}
		evt.Msg("audit")
	})

	eventPub, ok := pub.(lead.EventPublisher)
	if !ok {
		runCleanup(cleanupFns)
		return nil, nil, errors.New("bootstrap: publisher does not implement lead.EventPublisher")
	}
	leadSvc := lead.NewService(leadRepo, eventPub, cfg.StatsTimezone)

	// 7) handlers + middleware
	m := metrics.New()

	leadH := http_handlers.NewLeadHandler(leadSvc, m)
	authH := http_handlers.NewAuthHandler(authSvc)
	healthH := http_handlers.NewHealthHandler(sqlDB)

	var fwLimiter *redis.FixedWindowLimiter
	if redisCli != nil {
		if rc, ok := redisCli.(*redis.Client); ok {
			fwLimiter = redis.NewFixedWindowLimiter(rc)
		}
	}

	// 8) router
	mux := deps.NewRouter(router.Deps{
		Leads:    leadH,
		Auth:     authH,
		Health:   healthH,
		Verifier: authSvc,
		Limiter:  fwLimiter,
		Metrics:  m,

		FrontendOrigin: cfg.FrontendOrigin,

		LeadSubmitLimit:  5,
		LeadSubmitWindow: time.Minute,
		LoginLimit:       5,
		LoginWindow:      time.Minute,
	})

	// 9) server
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	cleanup := func() {
		runCleanup(cleanupFns)
	}

	return srv, cleanup, nil
}

/*
========================
 Default deps (prod)
========================
*/

func defaultDeps() Deps {
	return Deps{
		LoadConfig: config.Load,
		NewDB: func(addr string, debug bool) (DBCloser, error) {
			return config.NewDB(addr, debug)
		},
		NewRedis: func(addr, password string, db int) RedisClient {
			return redis.New(addr, password, db)
		},
		NewPublisher: func(url string) (Publisher, error) {
			return rabbitmq_pub.NewPublisher(url)
		},
		NewRouter: router.New,
	}
}

/*
========================
 helpers
========================
*/

func runCleanup(fns []func()) {
	for i := len(fns) - 1; i >= 0; i-- {
		fns[i]()
	}
}
