package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/vetclinic/user-service/internal/core/domain"
	"github.com/vetclinic/user-service/internal/core/ports"
	"github.com/vetclinic/user-service/internal/pkg/password"
)

// SeedRoles makes sure every catalog role exists.
func SeedRoles(ctx context.Context, roles ports.RoleRepository) error {
	if err := roles.EnsureRoles(ctx, domain.RoleCatalog()); err != nil {
		return fmt.Errorf("seed roles: %w", err)
	}
	return nil
}

// AdminAccount describes the bootstrap administrator. An empty Password
// means one is generated and must be changed on first login.
type AdminAccount struct {
	Email    string
	Password string
}

// BootstrapAdmin creates an active admin for acc.Email unless a user with
// that email already exists. It reports whether a user was created.
func BootstrapAdmin(
	ctx context.Context,
	users ports.UserRepository,
	roles ports.RoleRepository,
	hasher ports.PasswordHasher,
	acc AdminAccount,
	log zerolog.Logger,
) (bool, error) {
	if acc.Email == "" {
		return false, nil
	}

	_, err := users.FindByEmail(ctx, acc.Email)
	switch {
	case err == nil:
		log.Debug().Str("email", acc.Email).Msg("admin account already present")
		return false, nil
	case !errors.Is(err, domain.ErrUserNotFound):
		return false, fmt.Errorf("look up admin: %w", err)
	}

	plain := acc.Password
	generated := plain == ""
	if generated {
		plain, err = password.Generate(password.DefaultGeneratedLength)
		if err != nil {
			return false, fmt.Errorf("generate admin password: %w", err)
		}
	} else if err := domain.CheckPassword(plain); err != nil {
		return false, err
	}

	role, err := roles.FindByName(ctx, domain.RoleAdmin)
	if err != nil {
		return false, fmt.Errorf("find admin role: %w", err)
	}

	hash, err := hasher.Hash(plain)
	if err != nil {
		return false, fmt.Errorf("hash admin password: %w", err)
	}

	admin := &domain.User{
		FullName:           "Administrator",
		Email:              acc.Email,
		PasswordHash:       hash,
		IsActive:           true,
		MustChangePassword: generated,
		RoleID:             role.ID,
		Role:               *role,
	}
	if err := users.Create(ctx, admin); err != nil {
		return false, fmt.Errorf("create admin: %w", err)
	}

	ev := log.Info().Str("email", admin.Email).Uint("user_id", admin.ID)
	if generated {
		// Printed once so the operator can log in and rotate it.
		ev = ev.Str("generated_password", plain)
	}
	ev.Msg("admin account created")
	return true, nil
}
