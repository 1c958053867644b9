package usecase_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ganeshgampa27/Capstone-Project-Backend-code/internal/domain"
	"github.com/ganeshgampa27/Capstone-Project-Backend-code/internal/repository"
)

// ---- users ----

type memUserRepo struct {
	mu     sync.Mutex
	nextID uint
	byID   map[uint]*domain.User

	// hooks
	createErr         error
	createRows        *int64
	updatePasswordErr error
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byID: map[uint]*domain.User{}}
}

func (r *memUserRepo) FindByID(_ context.Context, id uint) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.Email == domain.NormalizeEmail(email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memUserRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.byID)), nil
}

func (r *memUserRepo) Create(_ context.Context, u *domain.User) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return 0, r.createErr
	}
	if r.createRows != nil {
		return *r.createRows, nil
	}
	for _, existing := range r.byID {
		if existing.Email == u.Email {
			return 0, domain.ErrDuplicateEmail
		}
	}
	r.insertLocked(u)
	return 1, nil
}

func (r *memUserRepo) CreateBatch(_ context.Context, users []*domain.User) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range users {
		r.insertLocked(u)
	}
	return int64(len(users)), nil
}

func (r *memUserRepo) insertLocked(u *domain.User) {
	r.nextID++
	u.ID = r.nextID
	if u.Role == "" {
		u.Role = domain.RoleUser
	}
	cp := *u
	r.byID[u.ID] = &cp
}

func (r *memUserRepo) UpdatePassword(_ context.Context, id uint, hash, confirm string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updatePasswordErr != nil {
		return 0, r.updatePasswordErr
	}
	u, ok := r.byID[id]
	if !ok {
		return 0, nil
	}
	u.PasswordHash, u.ConfirmPasswordHash = hash, confirm
	return 1, nil
}

func (r *memUserRepo) UpdateRole(_ context.Context, id uint, role domain.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Role = role
	return nil
}

func (r *memUserRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *memUserRepo) List(_ context.Context, filter repository.UserFilter, page domain.PageRequest) ([]*domain.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []*domain.User
	for _, u := range r.byID {
		if filter.Role != "" && u.Role != filter.Role {
			continue
		}
		if filter.ExcludeRole != "" && u.Role == filter.ExcludeRole {
			continue
		}
		cp := *u
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	total := int64(len(all))
	if page.Size < 0 {
		return all, total, nil
	}
	start := min(page.Offset(), len(all))
	end := min(start+page.Size, len(all))
	return all[start:end], total, nil
}

func (r *memUserRepo) ExistingEmails(_ context.Context, emails []string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var found []string
	for _, e := range emails {
		for _, u := range r.byID {
			if u.Email == domain.NormalizeEmail(e) {
				found = append(found, u.Email)
				break
			}
		}
	}
	return found, nil
}

// ---- templates ----

type memTemplateRepo struct {
	nextID uint
	byID   map[uint]*domain.Template
}

func newMemTemplateRepo() *memTemplateRepo {
	return &memTemplateRepo{byID: map[uint]*domain.Template{}}
}

func (r *memTemplateRepo) List(_ context.Context) ([]*domain.Template, error) {
	out := make([]*domain.Template, 0, len(r.byID))
	for id := uint(1); id <= r.nextID; id++ {
		if t, ok := r.byID[id]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *memTemplateRepo) ListPage(ctx context.Context, page domain.PageRequest) ([]*domain.Template, int64, error) {
	all, _ := r.List(ctx)
	start := min(page.Offset(), len(all))
	end := min(start+page.Size, len(all))
	return all[start:end], int64(len(all)), nil
}

func (r *memTemplateRepo) FindByID(_ context.Context, id uint) (*domain.Template, error) {
	t, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrTemplateNotFound
	}
	return t, nil
}

func (r *memTemplateRepo) Create(_ context.Context, t *domain.Template) error {
	r.nextID++
	t.ID = r.nextID
	r.byID[t.ID] = t
	return nil
}

func (r *memTemplateRepo) Update(_ context.Context, t *domain.Template) error {
	if _, ok := r.byID[t.ID]; !ok {
		return domain.ErrTemplateNotFound
	}
	r.byID[t.ID] = t
	return nil
}

func (r *memTemplateRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrTemplateNotFound
	}
	delete(r.byID, id)
	return nil
}

// ---- resumes ----

type memResumeRepo struct {
	nextID uint
	byID   map[uint]*domain.Resume
}

func newMemResumeRepo() *memResumeRepo {
	return &memResumeRepo{byID: map[uint]*domain.Resume{}}
}

func (r *memResumeRepo) ListByUser(_ context.Context, userID uint, page domain.PageRequest) ([]*domain.Resume, int64, error) {
	var own []*domain.Resume
	for id := r.nextID; id >= 1; id-- {
		if res, ok := r.byID[id]; ok && res.UserID == userID {
			own = append(own, res)
		}
	}
	start := min(page.Offset(), len(own))
	end := min(start+page.Size, len(own))
	return own[start:end], int64(len(own)), nil
}

func (r *memResumeRepo) FindByID(_ context.Context, id, userID uint) (*domain.Resume, error) {
	res, ok := r.byID[id]
	if !ok || res.UserID != userID {
		return nil, domain.ErrResumeNotFound
	}
	cp := *res
	return &cp, nil
}

func (r *memResumeRepo) Create(_ context.Context, res *domain.Resume) error {
	r.nextID++
	res.ID = r.nextID
	cp := *res
	r.byID[res.ID] = &cp
	return nil
}

func (r *memResumeRepo) Update(_ context.Context, res *domain.Resume) error {
	existing, ok := r.byID[res.ID]
	if !ok || existing.UserID != res.UserID {
		return domain.ErrResumeNotFound
	}
	cp := *res
	r.byID[res.ID] = &cp
	return nil
}

func (r *memResumeRepo) Delete(_ context.Context, id, userID uint) error {
	res, ok := r.byID[id]
	if !ok || res.UserID != userID {
		return domain.ErrResumeNotFound
	}
	delete(r.byID, id)
	return nil
}

// ---- notifier ----

type sentMail struct {
	kind, to, code string
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (n *fakeNotifier) record(kind, to, code string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentMail{kind: kind, to: to, code: code})
	return n.err
}

func (n *fakeNotifier) SendRegistrationOTP(_ context.Context, to, _, code string) error {
	return n.record("registration", to, code)
}

func (n *fakeNotifier) SendPasswordResetOTP(_ context.Context, to, code string) error {
	return n.record("reset", to, code)
}

func (n *fakeNotifier) SendCredentials(_ context.Context, to, _, pw string) error {
	return n.record("credentials", to, pw)
}

func (n *fakeNotifier) SendAccountCreated(_ context.Context, to, _ string) error {
	return n.record("account_created", to, "")
}

func (n *fakeNotifier) last() sentMail {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.sent) == 0 {
		return sentMail{}
	}
	return n.sent[len(n.sent)-1]
}

// ---- clock ----

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 5, 3, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
