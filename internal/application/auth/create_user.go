package auth

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/leadcapture/lead-service/internal/domain"
)

// CreateUser registers a back-office user. Role defaults to admin when empty.
func (s *Service) CreateUser(ctx context.Context, email, password, role string) (domain.Identity, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	role = strings.TrimSpace(role)

	if email == "" {
		return domain.Identity{}, domain.ErrMissingField("email")
	}
	if password == "" {
		return domain.Identity{}, domain.ErrMissingField("password")
	}
	if role == "" {
		role = string(domain.DefaultRole)
	}
	if !domain.IsValidRole(role) {
		return domain.Identity{}, domain.ErrInvalidRole(role)
	}

	// Fast-path pre-check for a clear error message. The unique index on
	// users.email remains the authoritative guard against races.
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return domain.Identity{}, domain.ErrEmailAlreadyExists()
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return domain.Identity{}, err
	}

	created, err := s.users.Create(ctx, domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	})
	if err != nil {
		return domain.Identity{}, err
	}

	s.audit("auth.create_user", map[string]string{
		"user_id": created.ID,
		"role":    created.Role,
	})

	return created.Identity(), nil
}
