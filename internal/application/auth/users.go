package auth

import (
	"context"
	"strings"

	"github.com/leadcapture/lead-service/internal/domain"
)

// ListUsers returns all back-office users without their password hashes.
func (s *Service) ListUsers(ctx context.Context) ([]domain.Identity, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]domain.Identity, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.Identity())
	}
	return ids, nil
}

func (s *Service) GetUserByID(ctx context.Context, id string) (domain.Identity, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.Identity{}, domain.ErrMissingField("id")
	}

	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return domain.Identity{}, err
	}
	return u.Identity(), nil
}

// DeleteUser removes an account by id.
func (s *Service) DeleteUser(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.ErrMissingField("id")
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}

	s.audit("auth.delete_user", map[string]string{"user_id": id})
	return nil
}
