package auth

import (
	"context"
	"time"

	"github.com/leadcapture/lead-service/internal/domain"
)

/*
UserRepo
--------
Persistence port for back-office users.
Only describes WHAT the auth service needs, not HOW it's stored.
*/
type UserRepo interface {
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	GetByID(ctx context.Context, id string) (domain.User, error)
	Create(ctx context.Context, u domain.User) (domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Delete(ctx context.Context, id string) error
}

/*
PasswordHasher
--------------
Abstracts bcrypt / argon2.
*/
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash string, password string) error // nil if match
}

/*
TokenSigner
-----------
Issues and verifies session tokens (JWT).
Used by service + auth middleware.
*/
type TokenClaims struct {
	UserID string
	Email  string
	Role   string
	Exp    time.Time
}

type TokenSigner interface {
	Sign(id domain.Identity, ttl time.Duration) (string, error)
	Verify(token string) (TokenClaims, error)
}
