package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/leadcapture/lead-service/internal/domain"
)

func newMockUserRepo(t *testing.T) (*UserRepo, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return NewUserRepo(db), mock
}

func userRows(id, email, role string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{"id", "email", "password_hash", "role", "created_at", "updated_at"}).
		AddRow(id, email, "hash", role, now, now)
}

func TestUserRepo_GetByEmail(t *testing.T) {
	repo, mock := newMockUserRepo(t)

	mock.ExpectQuery(`SELECT (.+) FROM users WHERE email`).
		WithArgs("admin@example.com").
		WillReturnRows(userRows("u1", "admin@example.com", "admin"))

	u, err := repo.GetByEmail(context.Background(), "  Admin@Example.COM ")
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if u.ID != "u1" || u.Role != "admin" {
		t.Fatalf("unexpected user: %+v", u)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestUserRepo_GetByEmail_NotFound(t *testing.T) {
	repo, mock := newMockUserRepo(t)

	mock.ExpectQuery(`SELECT (.+) FROM users WHERE email`).
		WithArgs("ghost@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "role", "created_at", "updated_at"}))

	_, err := repo.GetByEmail(context.Background(), "ghost@example.com")
	if !domain.Is(err, "user_not_found") {
		t.Fatalf("expected user_not_found, got %v", err)
	}
}

func TestUserRepo_Create_UniqueViolation(t *testing.T) {
	repo, mock := newMockUserRepo(t)

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("u1", "dup@example.com", "hash", "admin").
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := repo.Create(context.Background(), domain.User{
		ID: "u1", Email: "dup@example.com", PasswordHash: "hash", Role: "admin",
	})
	if !domain.Is(err, "email_already_exists") {
		t.Fatalf("expected email_already_exists, got %v", err)
	}
}

func TestUserRepo_Create_DBError(t *testing.T) {
	repo, mock := newMockUserRepo(t)

	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnError(errors.New("connection refused"))

	_, err := repo.Create(context.Background(), domain.User{
		ID: "u1", Email: "a@example.com", PasswordHash: "hash",
	})
	if !domain.Is(err, "db_unavailable") {
		t.Fatalf("expected db_unavailable, got %v", err)
	}
}

func TestUserRepo_Delete_NotFound(t *testing.T) {
	repo, mock := newMockUserRepo(t)

	mock.ExpectExec(`DELETE FROM users WHERE id`).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "missing")
	if !domain.Is(err, "user_not_found") {
		t.Fatalf("expected user_not_found, got %v", err)
	}
}

func TestUserRepo_List(t *testing.T) {
	repo, mock := newMockUserRepo(t)

	rows := userRows("u1", "a@example.com", "admin")
	rows.AddRow("u2", "b@example.com", "hash", "user", time.Now(), time.Now())
	mock.ExpectQuery(`SELECT (.+) FROM users ORDER BY created_at DESC`).
		WillReturnRows(rows)

	users, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
}
