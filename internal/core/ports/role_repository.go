package ports

import (
	"context"

	"github.com/vetclinic/user-service/internal/core/domain"
)

// RoleRepository resolves catalog roles. FindByName reports
// domain.ErrUnknownRole when the role has not been seeded.
type RoleRepository interface {
	FindByName(ctx context.Context, name domain.RoleName) (*domain.Role, error)
	EnsureRoles(ctx context.Context, names []domain.RoleName) error
}
