package auth

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/leadcapture/lead-service/internal/domain"
)

/*
Fakes for ports
*/

type fakeUserRepo struct {
	mu sync.Mutex

	byID    map[string]domain.User
	byEmail map[string]domain.User

	// injected errors (if set, method returns error)
	getByIDErr    error
	getByEmailErr error
	createErr     error
	listErr       error
	deleteErr     error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    map[string]domain.User{},
		byEmail: map[string]domain.User{},
	}
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getByEmailErr != nil {
		return domain.User{}, f.getByEmailErr
	}
	u, ok := f.byEmail[email]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return u, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getByIDErr != nil {
		return domain.User{}, f.getByIDErr
	}
	u, ok := f.byID[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return u, nil
}

func (f *fakeUserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return domain.User{}, f.createErr
	}
	if _, ok := f.byEmail[u.Email]; ok {
		return domain.User{}, domain.ErrEmailAlreadyExists()
	}
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	f.byID[u.ID] = u
	f.byEmail[u.Email] = u
	return u, nil
}

func (f *fakeUserRepo) List(ctx context.Context) ([]domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]domain.User, 0, len(f.byID))
	for _, u := range f.byID {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.deleteErr != nil {
		return f.deleteErr
	}
	u, ok := f.byID[id]
	if !ok {
		return domain.ErrUserNotFound()
	}
	delete(f.byID, id)
	delete(f.byEmail, u.Email)
	return nil
}

type fakeHasher struct {
	hashFn    func(pw string) (string, error)
	compareFn func(hash, pw string) error
}

func (f *fakeHasher) Hash(pw string) (string, error) {
	if f.hashFn != nil {
		return f.hashFn(pw)
	}
	return "hashed:" + pw, nil
}

func (f *fakeHasher) Compare(hash, pw string) error {
	if f.compareFn != nil {
		return f.compareFn(hash, pw)
	}
	if hash != "hashed:"+pw {
		return fmt.Errorf("mismatch")
	}
	return nil
}

type fakeSigner struct {
	signErr   error
	verifyErr error

	// token => claims issued by Sign
	issued map[string]TokenClaims
}

func newFakeSigner() *fakeSigner {
	return &fakeSigner{issued: map[string]TokenClaims{}}
}

func (f *fakeSigner) Sign(id domain.Identity, ttl time.Duration) (string, error) {
	if f.signErr != nil {
		return "", f.signErr
	}
	tok := "tok-" + id.ID
	f.issued[tok] = TokenClaims{
		UserID: id.ID,
		Email:  id.Email,
		Role:   id.Role,
		Exp:    time.Now().Add(ttl),
	}
	return tok, nil
}

func (f *fakeSigner) Verify(token string) (TokenClaims, error) {
	if f.verifyErr != nil {
		return TokenClaims{}, f.verifyErr
	}
	c, ok := f.issued[token]
	if !ok {
		return TokenClaims{}, domain.ErrTokenInvalid()
	}
	return c, nil
}

/*
Shared harness
*/

type auditEntry struct {
	action string
	fields map[string]string
}

func newSvcForTest() (*Service, *fakeUserRepo, *fakeHasher, *fakeSigner, *[]auditEntry) {
	users := newFakeUserRepo()
	hasher := &fakeHasher{}
	signer := newFakeSigner()

	var audits []auditEntry
	svc := NewService(users, hasher, signer, Config{TokenTTL: time.Hour}).
		WithAudit(func(action string, fields map[string]string) {
			audits = append(audits, auditEntry{action: action, fields: fields})
		})

	return svc, users, hasher, signer, &audits
}

func seedUser(users *fakeUserRepo, id, email, password, role string) domain.User {
	u := domain.User{
		ID:           id,
		Email:        email,
		PasswordHash: "hashed:" + password,
		Role:         role,
	}
	users.byID[id] = u
	users.byEmail[email] = u
	return u
}
