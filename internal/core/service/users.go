package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vetclinic/user-service/internal/core/domain"
	"github.com/vetclinic/user-service/internal/core/ports"
)

// newUserParams is the common input of self-registration and admin creation.
type newUserParams struct {
	FullName  string
	Telephone string
	Address   string
	Email     string
	Password  string
	RoleName  string
	IsActive  *bool
}

// createUser runs the checks shared by Register and admin Create, hashes the
// password and persists the row. Hashing happens here, never in the store.
func createUser(
	ctx context.Context,
	users ports.UserRepository,
	roles ports.RoleRepository,
	hasher ports.PasswordHasher,
	p newUserParams,
) (*domain.User, error) {
	if err := domain.CheckPassword(p.Password); err != nil {
		return nil, err
	}

	if err := ensureEmailFree(ctx, users, p.Email); err != nil {
		return nil, err
	}

	role, err := resolveRole(ctx, roles, p.RoleName)
	if err != nil {
		return nil, err
	}

	hash, err := hasher.Hash(p.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		FullName:     p.FullName,
		Telephone:    p.Telephone,
		Address:      p.Address,
		Email:        p.Email,
		PasswordHash: hash,
		IsActive:     boolOr(p.IsActive, true),
		RoleID:       role.ID,
		Role:         *role,
	}
	if err := users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ensureEmailFree reports domain.ErrDuplicateEmail when email is taken.
func ensureEmailFree(ctx context.Context, users ports.UserRepository, email string) error {
	_, err := users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return domain.ErrDuplicateEmail
	case errors.Is(err, domain.ErrUserNotFound):
		return nil
	default:
		return fmt.Errorf("check email: %w", err)
	}
}

func resolveRole(ctx context.Context, roles ports.RoleRepository, requested string) (*domain.Role, error) {
	name, err := domain.ParseRoleName(requested)
	if err != nil {
		return nil, err
	}
	role, err := roles.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownRole) {
			return nil, domain.UnknownRole(string(name))
		}
		return nil, fmt.Errorf("find role: %w", err)
	}
	return role, nil
}

// notifyCreated hands the event to the notifier. Delivery is best-effort and
// never reported back to the caller.
func notifyCreated(ctx context.Context, n ports.UserNotifier, u *domain.User) {
	if n == nil {
		return
	}
	n.NotifyUserCreated(ctx, domain.UserCreatedEvent{
		EventID:    uuid.NewString(),
		Type:       domain.EventUserCreated,
		UserID:     u.ID,
		Email:      u.Email,
		FullName:   u.FullName,
		Role:       u.Role.Name,
		OccurredAt: time.Now().UTC(),
	})
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
