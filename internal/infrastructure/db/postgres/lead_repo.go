package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/leadcapture/lead-service/internal/application/lead"
	"github.com/leadcapture/lead-service/internal/domain"
)

type LeadRepo struct {
	db *sql.DB
}

func NewLeadRepo(db *sql.DB) *LeadRepo {
	return &LeadRepo{db: db}
}

const leadCols = `id, name, email, phone, position, birth_date, message,
utm_source, utm_medium, utm_campaign, utm_term, utm_content, gclid, fbclid,
ip_address, user_agent, referrer, submitted_at,
is_active, created_at, updated_at`

func scanLead(s interface{ Scan(...any) error }) (domain.Lead, error) {
	var l domain.Lead
	err := s.Scan(
		&l.ID, &l.Name, &l.Email, &l.Phone, &l.Position, &l.BirthDate, &l.Message,
		&l.Tracking.UTMSource, &l.Tracking.UTMMedium, &l.Tracking.UTMCampaign,
		&l.Tracking.UTMTerm, &l.Tracking.UTMContent, &l.Tracking.GCLID, &l.Tracking.FBCLID,
		&l.SubmissionInfo.IPAddress, &l.SubmissionInfo.UserAgent, &l.SubmissionInfo.Referrer,
		&l.SubmissionInfo.SubmittedAt,
		&l.IsActive, &l.CreatedAt, &l.UpdatedAt,
	)
	return l, err
}

// leadFilterWhere builds the WHERE clause shared by List and Count.
func leadFilterWhere(f lead.Filters) (string, []any) {
	var where []string
	var args []any

	if f.IsActive != nil {
		args = append(args, *f.IsActive)
		where = append(where, fmt.Sprintf("is_active = $%d", len(args)))
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		args = append(args, "%"+s+"%")
		n := len(args)
		where = append(where, fmt.Sprintf("(name ILIKE $%d OR email ILIKE $%d)", n, n))
	}

	if len(where) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(where, " AND "), args
}

// sortColumn maps service sort keys to real columns. The service already
// whitelists keys; this keeps the repo safe even if called directly.
func sortColumn(key string) string {
	switch key {
	case "name", "email", "position", "created_at":
		return key
	default:
		return "created_at"
	}
}

// ---------- lead.LeadRepo ----------

func (r *LeadRepo) Create(ctx context.Context, l domain.Lead) (domain.Lead, error) {
	l.Email = normalizeEmail(l.Email)
	if l.ID == "" {
		return domain.Lead{}, domain.ErrMissingField("id")
	}
	if l.Email == "" {
		return domain.Lead{}, domain.ErrMissingField("email")
	}

	const q = `
INSERT INTO leads (
  id, name, email, phone, position, birth_date, message,
  utm_source, utm_medium, utm_campaign, utm_term, utm_content, gclid, fbclid,
  ip_address, user_agent, referrer, submitted_at, is_active
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)
RETURNING ` + leadCols + `;
`
	created, err := scanLead(r.db.QueryRowContext(ctx, q,
		l.ID, l.Name, l.Email, l.Phone, l.Position, l.BirthDate, l.Message,
		l.Tracking.UTMSource, l.Tracking.UTMMedium, l.Tracking.UTMCampaign,
		l.Tracking.UTMTerm, l.Tracking.UTMContent, l.Tracking.GCLID, l.Tracking.FBCLID,
		l.SubmissionInfo.IPAddress, l.SubmissionInfo.UserAgent, l.SubmissionInfo.Referrer,
		l.SubmissionInfo.SubmittedAt, l.IsActive,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Lead{}, domain.ErrEmailAlreadyExists()
		}
		return domain.Lead{}, domain.ErrDBUnavailable(err)
	}
	return created, nil
}

func (r *LeadRepo) GetByID(ctx context.Context, id string) (domain.Lead, error) {
	const q = `
SELECT ` + leadCols + `
FROM leads
WHERE id = $1
LIMIT 1;
`
	l, err := scanLead(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Lead{}, domain.ErrLeadNotFound()
		}
		return domain.Lead{}, domain.ErrDBUnavailable(err)
	}
	return l, nil
}

func (r *LeadRepo) List(ctx context.Context, page lead.PageRequest, f lead.Filters) ([]domain.Lead, int, error) {
	where, args := leadFilterWhere(f)

	total, err := r.count(ctx, where, args)
	if err != nil {
		return nil, 0, err
	}

	order := "DESC"
	if page.SortOrder == lead.SortAsc {
		order = "ASC"
	}

	offset := (page.Page - 1) * page.Limit
	args = append(args, page.Limit, offset)
	q := fmt.Sprintf(
		`SELECT %s FROM leads%s ORDER BY %s %s LIMIT $%d OFFSET $%d;`,
		leadCols, where, sortColumn(page.SortBy), order, len(args)-1, len(args),
	)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, 0, domain.ErrDBUnavailable(err)
	}
	defer rows.Close()

	var leads []domain.Lead
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, 0, domain.ErrDBUnavailable(err)
		}
		leads = append(leads, l)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, domain.ErrDBUnavailable(err)
	}
	return leads, total, nil
}

func (r *LeadRepo) Update(ctx context.Context, id string, u domain.LeadUpdate) (domain.Lead, error) {
	var set []string
	var args []any

	add := func(col string, v any) {
		args = append(args, v)
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if u.Name != nil {
		add("name", *u.Name)
	}
	if u.Email != nil {
		add("email", normalizeEmail(*u.Email))
	}
	if u.Phone != nil {
		add("phone", *u.Phone)
	}
	if u.Position != nil {
		add("position", *u.Position)
	}
	if u.BirthDate != nil {
		add("birth_date", *u.BirthDate)
	}
	if u.Message != nil {
		add("message", *u.Message)
	}
	if u.IsActive != nil {
		add("is_active", *u.IsActive)
	}
	if len(set) == 0 {
		return domain.Lead{}, domain.ErrEmptyUpdate()
	}

	set = append(set, "updated_at = NOW()")

	args = append(args, id)
	q := fmt.Sprintf(
		`UPDATE leads SET %s WHERE id = $%d RETURNING %s;`,
		strings.Join(set, ", "), len(args), leadCols,
	)

	l, err := scanLead(r.db.QueryRowContext(ctx, q, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Lead{}, domain.ErrLeadNotFound()
		}
		if isUniqueViolation(err) {
			return domain.Lead{}, domain.ErrEmailAlreadyExists()
		}
		return domain.Lead{}, domain.ErrDBUnavailable(err)
	}
	return l, nil
}

func (r *LeadRepo) SetActive(ctx context.Context, id string, active bool) (domain.Lead, error) {
	const q = `
UPDATE leads
SET is_active = $2,
    updated_at = NOW()
WHERE id = $1
RETURNING ` + leadCols + `;
`
	l, err := scanLead(r.db.QueryRowContext(ctx, q, id, active))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Lead{}, domain.ErrLeadNotFound()
		}
		return domain.Lead{}, domain.ErrDBUnavailable(err)
	}
	return l, nil
}

func (r *LeadRepo) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM leads WHERE id = $1;`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return domain.ErrDBUnavailable(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrLeadNotFound()
	}
	return nil
}

func (r *LeadRepo) EmailExists(ctx context.Context, email, excludeID string) (bool, error) {
	email = normalizeEmail(email)

	var (
		q    string
		args []any
	)
	if excludeID == "" {
		q = `SELECT EXISTS (SELECT 1 FROM leads WHERE email = $1);`
		args = []any{email}
	} else {
		q = `SELECT EXISTS (SELECT 1 FROM leads WHERE email = $1 AND id <> $2);`
		args = []any{email, excludeID}
	}

	var exists bool
	if err := r.db.QueryRowContext(ctx, q, args...).Scan(&exists); err != nil {
		return false, domain.ErrDBUnavailable(err)
	}
	return exists, nil
}

func (r *LeadRepo) Count(ctx context.Context, f lead.Filters) (int, error) {
	where, args := leadFilterWhere(f)
	return r.count(ctx, where, args)
}

func (r *LeadRepo) count(ctx context.Context, where string, args []any) (int, error) {
	var total int
	q := `SELECT COUNT(*) FROM leads` + where + `;`
	if err := r.db.QueryRowContext(ctx, q, args...).Scan(&total); err != nil {
		return 0, domain.ErrDBUnavailable(err)
	}
	return total, nil
}

func (r *LeadRepo) CountCreatedSince(ctx context.Context, since time.Time) (int, error) {
	const q = `SELECT COUNT(*) FROM leads WHERE created_at >= $1;`
	var total int
	if err := r.db.QueryRowContext(ctx, q, since).Scan(&total); err != nil {
		return 0, domain.ErrDBUnavailable(err)
	}
	return total, nil
}
