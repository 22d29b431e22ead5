package auth

import (
	"context"

	"github.com/leadcapture/lead-service/internal/domain"
)

// VerifyToken validates a session token and re-resolves the embedded user.
// A token whose subject no longer exists (deleted account) is rejected.
func (s *Service) VerifyToken(ctx context.Context, token string) (domain.Identity, error) {
	claims, err := s.signer.Verify(token)
	if err != nil {
		return domain.Identity{}, err
	}

	u, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return domain.Identity{}, domain.ErrTokenInvalid()
	}

	return u.Identity(), nil
}
