package auth

import (
	"context"
	"strings"

	"github.com/leadcapture/lead-service/internal/domain"
)

// Login authenticates a back-office user and issues a session token.
// IMPORTANT: must not leak whether the email exists (avoid user enumeration).
func (s *Service) Login(ctx context.Context, email, password string) (LoginResult, error) {
	email = strings.TrimSpace(email)

	if email == "" || password == "" {
		return LoginResult{}, domain.ErrInvalidCredentials()
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		// Hide not-found behind invalid credentials
		return LoginResult{}, domain.ErrInvalidCredentials()
	}

	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		return LoginResult{}, domain.ErrInvalidCredentials()
	}

	token, err := s.signer.Sign(u.Identity(), s.tokenTTL)
	if err != nil {
		return LoginResult{}, err
	}

	s.audit("auth.login", map[string]string{"user_id": u.ID})

	return LoginResult{
		Token:     token,
		User:      u.Identity(),
		ExpiresIn: int64(s.tokenTTL.Seconds()),
	}, nil
}
