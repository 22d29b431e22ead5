package postgres

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/leadcapture/lead-service/internal/application/lead"
	"github.com/leadcapture/lead-service/internal/domain"
)

var leadColNames = []string{
	"id", "name", "email", "phone", "position", "birth_date", "message",
	"utm_source", "utm_medium", "utm_campaign", "utm_term", "utm_content", "gclid", "fbclid",
	"ip_address", "user_agent", "referrer", "submitted_at",
	"is_active", "created_at", "updated_at",
}

func newMockLeadRepo(t *testing.T) (*LeadRepo, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return NewLeadRepo(db), mock
}

func leadRow(id, email string, active bool) *sqlmock.Rows {
	now := time.Now()
	birth := time.Date(1990, time.March, 10, 0, 0, 0, 0, time.UTC)
	return sqlmock.NewRows(leadColNames).AddRow(
		id, "Jane Doe", email, "+15550001234", "Engineer", birth, "hi",
		nil, nil, nil, nil, nil, nil, nil,
		"203.0.113.7", "agent", "https://ref.example", now,
		active, now, now,
	)
}

func TestLeadRepo_GetByID(t *testing.T) {
	repo, mock := newMockLeadRepo(t)

	mock.ExpectQuery(`SELECT (.+) FROM leads WHERE id`).
		WithArgs("l1").
		WillReturnRows(leadRow("l1", "jane@example.com", true))

	l, err := repo.GetByID(context.Background(), "l1")
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if l.ID != "l1" || !l.IsActive {
		t.Fatalf("unexpected lead: %+v", l)
	}
	if l.Tracking.UTMSource != nil {
		t.Fatalf("expected nil utm_source, got %v", *l.Tracking.UTMSource)
	}
}

func TestLeadRepo_GetByID_NotFound(t *testing.T) {
	repo, mock := newMockLeadRepo(t)

	mock.ExpectQuery(`SELECT (.+) FROM leads WHERE id`).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows(leadColNames))

	_, err := repo.GetByID(context.Background(), "ghost")
	if !domain.Is(err, "lead_not_found") {
		t.Fatalf("expected lead_not_found, got %v", err)
	}
}

func TestLeadRepo_Create_UniqueViolation(t *testing.T) {
	repo, mock := newMockLeadRepo(t)

	mock.ExpectQuery(`INSERT INTO leads`).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := repo.Create(context.Background(), domain.Lead{
		ID: "l1", Email: "dup@example.com",
	})
	if !domain.Is(err, "email_already_exists") {
		t.Fatalf("expected email_already_exists, got %v", err)
	}
}

func TestLeadRepo_List_WithFilters(t *testing.T) {
	repo, mock := newMockLeadRepo(t)

	active := true
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM leads WHERE is_active`).
		WithArgs(true, "%jane%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT (.+) FROM leads WHERE is_active (.+) ORDER BY created_at DESC LIMIT`).
		WithArgs(true, "%jane%", 10, 0).
		WillReturnRows(leadRow("l1", "jane@example.com", true))

	leads, total, err := repo.List(context.Background(),
		lead.PageRequest{Page: 1, Limit: 10, SortBy: "created_at", SortOrder: lead.SortDesc},
		lead.Filters{IsActive: &active, Search: "jane"},
	)
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if total != 1 || len(leads) != 1 {
		t.Fatalf("expected 1/1, got %d/%d", len(leads), total)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestLeadRepo_Update_BuildsSetClause(t *testing.T) {
	repo, mock := newMockLeadRepo(t)

	name := "Renamed"
	mock.ExpectQuery(`UPDATE leads SET name = \$1, updated_at = NOW\(\) WHERE id = \$2`).
		WithArgs("Renamed", "l1").
		WillReturnRows(leadRow("l1", "jane@example.com", true))

	_, err := repo.Update(context.Background(), "l1", domain.LeadUpdate{Name: &name})
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestLeadRepo_Update_NotFound(t *testing.T) {
	repo, mock := newMockLeadRepo(t)

	name := "Renamed"
	mock.ExpectQuery(`UPDATE leads SET`).
		WillReturnRows(sqlmock.NewRows(leadColNames))

	_, err := repo.Update(context.Background(), "ghost", domain.LeadUpdate{Name: &name})
	if !domain.Is(err, "lead_not_found") {
		t.Fatalf("expected lead_not_found, got %v", err)
	}
}

func TestLeadRepo_SetActive(t *testing.T) {
	repo, mock := newMockLeadRepo(t)

	mock.ExpectQuery(`UPDATE leads`).
		WithArgs("l1", false).
		WillReturnRows(leadRow("l1", "jane@example.com", false))

	l, err := repo.SetActive(context.Background(), "l1", false)
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if l.IsActive {
		t.Fatalf("expected inactive")
	}
}

func TestLeadRepo_Delete_NotFound(t *testing.T) {
	repo, mock := newMockLeadRepo(t)

	mock.ExpectExec(`DELETE FROM leads WHERE id`).
		WithArgs("ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "ghost")
	if !domain.Is(err, "lead_not_found") {
		t.Fatalf("expected lead_not_found, got %v", err)
	}
}

func TestLeadRepo_EmailExists_ExcludesSelf(t *testing.T) {
	repo, mock := newMockLeadRepo(t)

	mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM leads WHERE email = \$1 AND id <> \$2\)`).
		WithArgs("jane@example.com", "l1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	exists, err := repo.EmailExists(context.Background(), "Jane@Example.com", "l1")
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if exists {
		t.Fatalf("expected false")
	}
}

func TestLeadRepo_CountCreatedSince(t *testing.T) {
	repo, mock := newMockLeadRepo(t)

	since := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM leads WHERE created_at >=`).
		WithArgs(since).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	n, err := repo.CountCreatedSince(context.Background(), since)
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if n != 7 {
		t.Fatalf("expected 7, got %d", n)
	}
}
