package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/vetclinic/user-service/internal/core/domain"
	"github.com/vetclinic/user-service/internal/core/ports"
)

type userFixture struct {
	users    *stubUserRepo
	roles    *stubRoleRepo
	notifier *recordingNotifier
	svc      *UserService
}

func newUserFixture() *userFixture {
	f := &userFixture{
		users:    newStubUserRepo(),
		roles:    newStubRoleRepo(),
		notifier: &recordingNotifier{},
	}
	f.svc = NewUserService(f.users, f.roles, testHasher(), f.notifier, nopLogger())
	return f
}

func (f *userFixture) create(t *testing.T, email, role string) *domain.User {
	t.Helper()
	u, err := f.svc.Create(context.Background(), ports.CreateUserInput{
		FullName: "User " + email,
		Email:    email,
		Password: "Pwd12345",
		RoleName: role,
	})
	if err != nil {
		t.Fatalf("create %s: %v", email, err)
	}
	return u
}

func TestUserService_List_Pagination(t *testing.T) {
	f := newUserFixture()
	for i := 0; i < 5; i++ {
		f.create(t, fmt.Sprintf("u%d@x.com", i), "")
	}

	page, err := f.svc.List(context.Background(), 2, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Total != 5 || page.TotalPages != 3 || page.Page != 2 || page.Limit != 2 {
		t.Fatalf("unexpected page meta: %+v", page)
	}
	if !page.HasNext() || !page.HasPrev() {
		t.Fatalf("expected both next and prev")
	}
	if len(page.Users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(page.Users))
	}
	// Newest first: page 2 holds the third and fourth newest.
	if page.Users[0].Email != "u2@x.com" || page.Users[1].Email != "u1@x.com" {
		t.Fatalf("unexpected order: %s, %s", page.Users[0].Email, page.Users[1].Email)
	}
}

func TestUserService_List_ClampsLimit(t *testing.T) {
	f := newUserFixture()
	f.create(t, "a@x.com", "")

	page, err := f.svc.List(context.Background(), 1, 1000)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Limit != ports.MaxPageLimit {
		t.Fatalf("expected limit %d, got %d", ports.MaxPageLimit, page.Limit)
	}
	if page.HasNext() || page.HasPrev() {
		t.Fatalf("single page must not have neighbours")
	}
}

func TestUserService_List_InvalidPagination(t *testing.T) {
	f := newUserFixture()

	for _, tc := range [][2]int{{0, 10}, {1, 0}, {-1, 5}, {math.MaxInt / 50, 100}, {math.MaxInt/2 + 1, 2}} {
		if _, err := f.svc.List(context.Background(), tc[0], tc[1]); !errors.Is(err, domain.ErrInvalidPagination) {
			t.Fatalf("page=%d limit=%d: expected ErrInvalidPagination, got %v", tc[0], tc[1], err)
		}
	}
}

func TestUserService_List_Empty(t *testing.T) {
	f := newUserFixture()

	page, err := f.svc.List(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.TotalPages != 0 || len(page.Users) != 0 {
		t.Fatalf("unexpected page: %+v", page)
	}
}

func TestUserService_Create_UnknownRole(t *testing.T) {
	f := newUserFixture()

	_, err := f.svc.Create(context.Background(), ports.CreateUserInput{FullName: "X", Email: "x@x.com", Password: "Pwd12345", RoleName: "unknown"})
	if !errors.Is(err, domain.ErrUnknownRole) {
		t.Fatalf("expected ErrUnknownRole, got %v", err)
	}
	if f.users.count() != 0 {
		t.Fatalf("expected no row persisted")
	}
	if f.notifier.count() != 0 {
		t.Fatalf("expected no notification")
	}
}

func TestUserService_Create_InactiveAndNotifies(t *testing.T) {
	f := newUserFixture()
	inactive := false

	u, err := f.svc.Create(context.Background(), ports.CreateUserInput{
		FullName: "Vet",
		Email:    "vet@x.com",
		Password: "Pwd12345",
		RoleName: "veterinarian",
		IsActive: &inactive,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.IsActive || u.Role.Name != domain.RoleVeterinarian {
		t.Fatalf("unexpected user: %+v", u)
	}
	if f.notifier.count() != 1 {
		t.Fatalf("expected one notification, got %d", f.notifier.count())
	}
	if e := f.notifier.events[0]; e.Email != "vet@x.com" || e.Role != domain.RoleVeterinarian {
		t.Fatalf("unexpected event: %+v", e)
	}
}

func TestUserService_Create_RequiredFields(t *testing.T) {
	f := newUserFixture()

	_, err := f.svc.Create(context.Background(), ports.CreateUserInput{Email: "x@x.com", Password: "Pwd12345"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestUserService_Create_Duplicate(t *testing.T) {
	f := newUserFixture()
	f.create(t, "a@x.com", "")

	_, err := f.svc.Create(context.Background(), ports.CreateUserInput{FullName: "X", Email: "a@x.com", Password: "Pwd12345"})
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestUserService_Update_PartialFields(t *testing.T) {
	f := newUserFixture()
	u, err := f.svc.Create(context.Background(), ports.CreateUserInput{
		FullName:  "Original",
		Telephone: "555-0100",
		Address:   "1 Main St",
		Email:     "a@x.com",
		Password:  "Pwd12345",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := f.svc.Update(context.Background(), u.ID, ports.UpdateUserInput{
		Telephone: strPtr("555-0199"),
		RoleName:  strPtr("veterinarian"),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if updated.FullName != "Original" || updated.Address != "1 Main St" || updated.Email != "a@x.com" {
		t.Fatalf("omitted fields changed: %+v", updated)
	}
	if updated.Telephone != "555-0199" {
		t.Fatalf("telephone not updated: %s", updated.Telephone)
	}
	if updated.Role.Name != domain.RoleVeterinarian {
		t.Fatalf("role not updated: %s", updated.Role.Name)
	}
	if updated.PasswordHash != u.PasswordHash {
		t.Fatalf("password changed without being supplied")
	}
}

func TestUserService_Update_Password(t *testing.T) {
	f := newUserFixture()
	u := f.create(t, "a@x.com", "")

	updated, err := f.svc.Update(context.Background(), u.ID, ports.UpdateUserInput{Password: strPtr("Another123")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.PasswordHash == u.PasswordHash || updated.PasswordHash == "Another123" {
		t.Fatalf("expected a new hash")
	}
	if !testHasher().Verify("Another123", updated.PasswordHash) {
		t.Fatalf("new hash does not verify")
	}

	if _, err := f.svc.Update(context.Background(), u.ID, ports.UpdateUserInput{Password: strPtr("short")}); !errors.Is(err, domain.ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
	long := strings.Repeat("a", domain.MaxPasswordLength+1)
	if _, err := f.svc.Update(context.Background(), u.ID, ports.UpdateUserInput{Password: &long}); err != domain.ErrPasswordTooLong {
		t.Fatalf("expected ErrPasswordTooLong, got %v", err)
	}
}

func TestUserService_Update_Conflicts(t *testing.T) {
	f := newUserFixture()
	a := f.create(t, "a@x.com", "")
	f.create(t, "b@x.com", "")

	if _, err := f.svc.Update(context.Background(), a.ID, ports.UpdateUserInput{Email: strPtr("b@x.com")}); !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
	if _, err := f.svc.Update(context.Background(), a.ID, ports.UpdateUserInput{Email: strPtr("a@x.com")}); err != nil {
		t.Fatalf("same email must be accepted: %v", err)
	}
	if _, err := f.svc.Update(context.Background(), a.ID, ports.UpdateUserInput{RoleName: strPtr("root")}); !errors.Is(err, domain.ErrUnknownRole) {
		t.Fatalf("expected ErrUnknownRole, got %v", err)
	}
	if _, err := f.svc.Update(context.Background(), 999, ports.UpdateUserInput{}); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_Deactivate(t *testing.T) {
	f := newUserFixture()
	u := f.create(t, "a@x.com", "")

	out, err := f.svc.Deactivate(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if out.IsActive {
		t.Fatalf("expected inactive result")
	}

	fetched, err := f.svc.Get(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if fetched.IsActive {
		t.Fatalf("deactivation not persisted")
	}

	if _, err := f.svc.Deactivate(context.Background(), u.ID); !errors.Is(err, domain.ErrAlreadyInactive) {
		t.Fatalf("expected ErrAlreadyInactive, got %v", err)
	}
	if _, err := f.svc.Deactivate(context.Background(), 42); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_ListVeterinarians(t *testing.T) {
	f := newUserFixture()
	f.create(t, "vet1@x.com", "veterinarian")
	vet2 := f.create(t, "vet2@x.com", "veterinarian")
	f.create(t, "client@x.com", "client")
	_, _ = f.svc.Deactivate(context.Background(), vet2.ID)

	vets, err := f.svc.ListVeterinarians(context.Background())
	if err != nil {
		t.Fatalf("list vets: %v", err)
	}
	if len(vets) != 1 || vets[0].Email != "vet1@x.com" {
		t.Fatalf("unexpected vets: %+v", vets)
	}
}
