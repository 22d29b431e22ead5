package auth

import (
	"time"

	"github.com/leadcapture/lead-service/internal/domain"
)

type Service struct {
	users  UserRepo
	hasher PasswordHasher
	signer TokenSigner

	tokenTTL time.Duration
	audit    func(action string, fields map[string]string)
}

type Config struct {
	TokenTTL time.Duration
}

func NewService(users UserRepo, hasher PasswordHasher, signer TokenSigner, cfg Config) *Service {
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &Service{
		users:    users,
		hasher:   hasher,
		signer:   signer,
		tokenTTL: ttl,
		audit:    func(string, map[string]string) {},
	}
}

func (s *Service) WithAudit(fn func(action string, fields map[string]string)) *Service {
	if fn != nil {
		s.audit = fn
	}
	return s
}

// LoginResult is the token + identity output of a successful login.
type LoginResult struct {
	Token     string
	User      domain.Identity
	ExpiresIn int64 // seconds
}

func domainCode(err error) string {
	return domain.Code(err)
}
