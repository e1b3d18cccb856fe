package ports

import (
	"context"

	"github.com/vetclinic/user-service/internal/core/domain"
)

// UserRepository persists users. Lookups return users with their Role loaded
// and report domain.ErrUserNotFound when no row matches.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id uint) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// List returns users newest first together with the total row count.
	List(ctx context.Context, offset, limit int) ([]domain.User, int64, error)
	ListActiveByRole(ctx context.Context, role domain.RoleName) ([]domain.User, error)
}
