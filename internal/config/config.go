package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// App
	Env string // dev / staging / prod
	// HTTP
	HTTPAddr string
	// Auth / Security
	JWTSecret string
	JWTIssuer string
	TokenTTL  time.Duration

	// Infrastructure
	DBAddr        string
	DBDebug       bool
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RabbitURL     string

	// CORS
	FrontendOrigin string

	// Stats use "start of current month" in this timezone.
	// The source of truth is deliberately configurable instead of
	// assuming UTC or server-local time.
	StatsTimezone *time.Location

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
}

func Load() (*Config, error) {
	// best-effort .env for local development
	_ = godotenv.Load()

	cfg := &Config{
		Env:      getEnv("ENV", "dev"),
		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),
	}

	// required values
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("missing required env var: JWT_SECRET")
	}

	cfg.DBAddr = os.Getenv("DB_ADDR")
	if cfg.DBAddr == "" {
		return nil, fmt.Errorf("missing required env var: DB_ADDR")
	}

	cfg.JWTIssuer = getEnv("JWT_ISSUER", "lead-service")

	// session tokens are long-lived: back-office users stay signed in for a week
	ttl, err := getDuration("JWT_TTL", 7*24*time.Hour)
	if err != nil {
		return nil, err
	}
	cfg.TokenTTL = ttl

	cfg.DBDebug = getEnv("DB_DEBUG", "false") == "true"

	// Redis is optional: without it the rate limiter is disabled (fail-open).
	cfg.RedisAddr = os.Getenv("REDIS_ADDR")
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
	if v := os.Getenv("REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB: %q: %w", v, err)
		}
		cfg.RedisDB = n
	}

	// RabbitMQ is optional: without it lead events use a noop publisher.
	cfg.RabbitURL = os.Getenv("RABBIT_URL")

	cfg.FrontendOrigin = getEnv("FRONTEND_ORIGIN", "http://localhost:3000")

	tzName := getEnv("STATS_TIMEZONE", "UTC")
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("invalid STATS_TIMEZONE: %q: %w", tzName, err)
	}
	cfg.StatsTimezone = loc

	rt, err := getDuration("HTTP_READ_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.HTTPReadTimeout = rt

	wt, err := getDuration("HTTP_WRITE_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.HTTPWriteTimeout = wt

	it, err := getDuration("HTTP_IDLE_TIMEOUT", time.Minute)
	if err != nil {
		return nil, err
	}
	cfg.HTTPIdleTimeout = it

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid duration for %s: %q: %w", key, v, err)
	}
	return d, nil
}
