package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/leadcapture/lead-service/internal/application/lead"
	"github.com/leadcapture/lead-service/internal/domain"
)

// LeadRepo is an in-memory lead.LeadRepo used by tests. It mirrors the
// postgres repo's semantics: unique email, partial update, soft delete.
type LeadRepo struct {
	mu   sync.RWMutex
	byID map[string]domain.Lead
	now  func() time.Time
}

func NewLeadRepo() *LeadRepo {
	return &LeadRepo{
		byID: make(map[string]domain.Lead),
		now:  time.Now,
	}
}

// WithClock pins the repo clock in tests.
func (r *LeadRepo) WithClock(now func() time.Time) *LeadRepo {
	if now != nil {
		r.now = now
	}
	return r
}

func (r *LeadRepo) Create(ctx context.Context, l domain.Lead) (domain.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if l.ID == "" {
		return domain.Lead{}, domain.ErrInternal(nil)
	}
	for _, existing := range r.byID {
		if existing.Email == l.Email {
			return domain.Lead{}, domain.ErrEmailAlreadyExists()
		}
	}

	ts := r.now()
	l.CreatedAt = ts
	l.UpdatedAt = ts
	r.byID[l.ID] = l
	return l, nil
}

func (r *LeadRepo) GetByID(ctx context.Context, id string) (domain.Lead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.byID[id]
	if !ok {
		return domain.Lead{}, domain.ErrLeadNotFound()
	}
	return l, nil
}

func matches(l domain.Lead, f lead.Filters) bool {
	if f.IsActive != nil && l.IsActive != *f.IsActive {
		return false
	}
	if f.Search != "" {
		s := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(l.Name), s) &&
			!strings.Contains(strings.ToLower(l.Email), s) {
			return false
		}
	}
	return true
}

func (r *LeadRepo) List(ctx context.Context, page lead.PageRequest, f lead.Filters) ([]domain.Lead, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var all []domain.Lead
	for _, l := range r.byID {
		if matches(l, f) {
			all = append(all, l)
		}
	}

	sort.Slice(all, func(i, j int) bool {
		a, b := all[i], all[j]
		var less bool
		switch page.SortBy {
		case "name":
			less = a.Name < b.Name
		case "email":
			less = a.Email < b.Email
		case "position":
			less = a.Position < b.Position
		default:
			less = a.CreatedAt.Before(b.CreatedAt)
		}
		if page.SortOrder == lead.SortAsc {
			return less
		}
		return !less
	})

	total := len(all)
	start := (page.Page - 1) * page.Limit
	if start > total {
		start = total
	}
	end := start + page.Limit
	if end > total {
		end = total
	}
	return all[start:end], total, nil
}

func (r *LeadRepo) Update(ctx context.Context, id string, u domain.LeadUpdate) (domain.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.byID[id]
	if !ok {
		return domain.Lead{}, domain.ErrLeadNotFound()
	}

	if u.Name != nil {
		l.Name = *u.Name
	}
	if u.Email != nil {
		for otherID, other := range r.byID {
			if otherID != id && other.Email == *u.Email {
				return domain.Lead{}, domain.ErrEmailAlreadyExists()
			}
		}
		l.Email = *u.Email
	}
	if u.Phone != nil {
		l.Phone = *u.Phone
	}
	if u.Position != nil {
		l.Position = *u.Position
	}
	if u.BirthDate != nil {
		l.BirthDate = *u.BirthDate
	}
	if u.Message != nil {
		l.Message = *u.Message
	}
	if u.IsActive != nil {
		l.IsActive = *u.IsActive
	}

	l.UpdatedAt = r.now()
	r.byID[id] = l
	return l, nil
}

func (r *LeadRepo) SetActive(ctx context.Context, id string, active bool) (domain.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.byID[id]
	if !ok {
		return domain.Lead{}, domain.ErrLeadNotFound()
	}
	l.IsActive = active
	l.UpdatedAt = r.now()
	r.byID[id] = l
	return l, nil
}

func (r *LeadRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return domain.ErrLeadNotFound()
	}
	delete(r.byID, id)
	return nil
}

func (r *LeadRepo) EmailExists(ctx context.Context, email, excludeID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for id, l := range r.byID {
		if l.Email == email && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *LeadRepo) Count(ctx context.Context, f lead.Filters) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, l := range r.byID {
		if matches(l, f) {
			n++
		}
	}
	return n, nil
}

func (r *LeadRepo) CountCreatedSince(ctx context.Context, since time.Time) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, l := range r.byID {
		if !l.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}
