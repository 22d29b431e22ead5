package lead

import (
	"context"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/leadcapture/lead-service/internal/domain"
)

/*
Fakes for ports
*/

type fakeLeadRepo struct {
	mu    sync.Mutex
	byID  map[string]domain.Lead
	clock func() time.Time

	createErr error
	listErr   error
	updateErr error
}

func newFakeLeadRepo() *fakeLeadRepo {
	return &fakeLeadRepo{
		byID:  map[string]domain.Lead{},
		clock: time.Now,
	}
}

func (f *fakeLeadRepo) Create(ctx context.Context, l domain.Lead) (domain.Lead, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return domain.Lead{}, f.createErr
	}
	for _, ex := range f.byID {
		if ex.Email == l.Email {
			return domain.Lead{}, domain.ErrEmailAlreadyExists()
		}
	}
	now := f.clock()
	l.CreatedAt = now
	l.UpdatedAt = now
	f.byID[l.ID] = l
	return l, nil
}

func (f *fakeLeadRepo) GetByID(ctx context.Context, id string) (domain.Lead, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	l, ok := f.byID[id]
	if !ok {
		return domain.Lead{}, domain.ErrLeadNotFound()
	}
	return l, nil
}

func (f *fakeLeadRepo) List(ctx context.Context, page PageRequest, filt Filters) ([]domain.Lead, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.listErr != nil {
		return nil, 0, f.listErr
	}

	all := make([]domain.Lead, 0, len(f.byID))
	for _, l := range f.byID {
		if matches(l, filt) {
			all = append(all, l)
		}
	}

	sort.Slice(all, func(i, j int) bool {
		less := sortLess(all[i], all[j], page.SortBy)
		if page.SortOrder == SortDesc {
			return !less
		}
		return less
	})

	total := len(all)
	start := (page.Page - 1) * page.Limit
	if start >= total {
		return nil, total, nil
	}
	end := start + page.Limit
	if end > total {
		end = total
	}
	return all[start:end], total, nil
}

func sortLess(a, b domain.Lead, by string) bool {
	switch by {
	case "name":
		return a.Name < b.Name
	case "email":
		return a.Email < b.Email
	case "position":
		return a.Position < b.Position
	default:
		return a.CreatedAt.Before(b.CreatedAt)
	}
}

func matches(l domain.Lead, f Filters) bool {
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

func (f *fakeLeadRepo) Update(ctx context.Context, id string, u domain.LeadUpdate) (domain.Lead, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.updateErr != nil {
		return domain.Lead{}, f.updateErr
	}
	l, ok := f.byID[id]
	if !ok {
		return domain.Lead{}, domain.ErrLeadNotFound()
	}

	if u.Name != nil {
		l.Name = *u.Name
	}
	if u.Email != nil {
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
	l.UpdatedAt = f.clock()
	f.byID[id] = l
	return l, nil
}

func (f *fakeLeadRepo) SetActive(ctx context.Context, id string, active bool) (domain.Lead, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	l, ok := f.byID[id]
	if !ok {
		return domain.Lead{}, domain.ErrLeadNotFound()
	}
	l.IsActive = active
	l.UpdatedAt = f.clock()
	f.byID[id] = l
	return l, nil
}

func (f *fakeLeadRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.byID[id]; !ok {
		return domain.ErrLeadNotFound()
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeLeadRepo) EmailExists(ctx context.Context, email, excludeID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for id, l := range f.byID {
		if l.Email == email && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeLeadRepo) Count(ctx context.Context, filt Filters) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	n := 0
	for _, l := range f.byID {
		if matches(l, filt) {
			n++
		}
	}
	return n, nil
}

func (f *fakeLeadRepo) CountCreatedSince(ctx context.Context, since time.Time) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	n := 0
	for _, l := range f.byID {
		if !l.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

type capturePublisher struct {
	mu     sync.Mutex
	events []CreatedEvent
	done   chan struct{}
}

func newCapturePublisher() *capturePublisher {
	return &capturePublisher{done: make(chan struct{}, 16)}
}

func (p *capturePublisher) PublishLeadCreated(ctx context.Context, evt CreatedEvent) error {
	p.mu.Lock()
	p.events = append(p.events, evt)
	p.mu.Unlock()
	p.done <- struct{}{}
	return nil
}

// waitEvent blocks until one publish lands; publishing is async.
func (p *capturePublisher) waitEvent(t *testing.T) CreatedEvent {
	t.Helper()
	select {
	case <-p.done:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for published event")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.events[len(p.events)-1]
}

/*
Shared harness
*/

func newSvcForTest(now time.Time) (*Service, *fakeLeadRepo, *capturePublisher) {
	repo := newFakeLeadRepo()
	pub := newCapturePublisher()

	svc := NewService(repo, pub, time.UTC)
	if !now.IsZero() {
		svc = svc.WithClock(func() time.Time { return now })
		repo.clock = func() time.Time { return now }
	}
	return svc, repo, pub
}

func validInput(email string) CreateInput {
	return CreateInput{
		Name:      "Jane Doe",
		Email:     email,
		Phone:     "+15550001234",
		Position:  "Engineer",
		BirthDate: time.Date(1990, time.March, 10, 0, 0, 0, 0, time.UTC),
		Message:   "interested",
		SubmissionInfo: domain.SubmissionInfo{
			IPAddress: "203.0.113.7",
			UserAgent: "test-agent",
		},
	}
}

func requireErrCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error code=%q, got nil", code)
	}
	if !domain.Is(err, code) {
		t.Fatalf("expected code=%q, got err=%v", code, err)
	}
}
