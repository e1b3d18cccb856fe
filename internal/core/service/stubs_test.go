package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/vetclinic/user-service/internal/core/domain"
	"github.com/vetclinic/user-service/internal/pkg/password"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	mu        sync.Mutex
	byID      map[uint]*domain.User
	nextID    uint
	clock     time.Time
	createErr error
	listErr   error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		byID:   make(map[uint]*domain.User),
		nextID: 1,
		clock:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	for _, existing := range r.byID {
		if existing.Email == u.Email {
			return domain.ErrDuplicateEmail
		}
	}
	r.clock = r.clock.Add(time.Second)
	u.ID = r.nextID
	u.CreatedAt = r.clock
	u.UpdatedAt = r.clock
	r.nextID++
	r.byID[u.ID] = cloneUser(u)
	return nil
}

func (r *stubUserRepo) Update(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	r.byID[u.ID] = cloneUser(u)
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id uint) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) sorted() []domain.User {
	out := make([]domain.User, 0, len(r.byID))
	for _, u := range r.byID {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *stubUserRepo) List(_ context.Context, offset, limit int) ([]domain.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, 0, r.listErr
	}
	all := r.sorted()
	total := int64(len(all))
	if offset >= len(all) {
		return []domain.User{}, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (r *stubUserRepo) ListActiveByRole(_ context.Context, role domain.RoleName) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.User
	for _, u := range r.sorted() {
		if u.IsActive && u.Role.Name == role {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *stubUserRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}

type stubRoleRepo struct {
	roles map[domain.RoleName]*domain.Role
}

func newStubRoleRepo() *stubRoleRepo {
	r := &stubRoleRepo{roles: make(map[domain.RoleName]*domain.Role)}
	_ = r.EnsureRoles(context.Background(), domain.RoleCatalog())
	return r
}

func (r *stubRoleRepo) FindByName(_ context.Context, name domain.RoleName) (*domain.Role, error) {
	role, ok := r.roles[name]
	if !ok {
		return nil, domain.ErrUnknownRole
	}
	clone := *role
	return &clone, nil
}

func (r *stubRoleRepo) EnsureRoles(_ context.Context, names []domain.RoleName) error {
	for _, n := range names {
		if _, ok := r.roles[n]; !ok {
			r.roles[n] = &domain.Role{ID: uint(len(r.roles) + 1), Name: n}
		}
	}
	return nil
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []domain.UserCreatedEvent
}

func (n *recordingNotifier) NotifyUserCreated(_ context.Context, e domain.UserCreatedEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, e)
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.events)
}

func testHasher() *password.Hasher { return password.NewHasher(bcrypt.MinCost) }

func nopLogger() zerolog.Logger { return zerolog.Nop() }

func boolPtr(b bool) *bool    { return &b }
func strPtr(s string) *string { return &s }
