package postgres

import (
	"context"

	"github.com/google/uuid"

	"github.com/leadcapture/lead-service/internal/application/auth"
	"github.com/leadcapture/lead-service/internal/domain"
	"github.com/leadcapture/lead-service/internal/logger"
)

// SeedUsers inserts a default admin account for local development.
// Never called outside dev.
func SeedUsers(ctx context.Context, repo auth.UserRepo, hasher auth.PasswordHasher) {
	const (
		email    = "admin@example.com"
		password = "admin12345"
	)

	if _, err := repo.GetByEmail(ctx, email); err == nil {
		return // already seeded
	}

	hash, err := hasher.Hash(password)
	if err != nil {
		logger.Logger.Warn().Err(err).Msg("seed: hashing failed")
		return
	}

	_, err = repo.Create(ctx, domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Role:         string(domain.RoleAdmin),
	})
	if err != nil {
		logger.Logger.Warn().Err(err).Msg("seed: insert failed")
		return
	}

	logger.Logger.Info().Str("email", email).Msg("seeded dev admin user")
}
