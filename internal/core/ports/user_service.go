package ports

import (
	"context"

	"github.com/vetclinic/user-service/internal/core/domain"
)

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

// CreateUserInput carries an admin create request.
type CreateUserInput struct {
	FullName  string
	Telephone string
	Address   string
	Email     string
	Password  string
	RoleName  string
	IsActive  *bool
}

// UpdateUserInput carries an admin partial update. Nil fields keep their
// stored value.
type UpdateUserInput struct {
	FullName  *string
	Telephone *string
	Address   *string
	Email     *string
	Password  *string
	RoleName  *string
	IsActive  *bool
}

// UserService implements user administration.
type UserService interface {
	List(ctx context.Context, page, limit int) (*domain.UserPage, error)
	Get(ctx context.Context, id uint) (*domain.User, error)
	ListVeterinarians(ctx context.Context) ([]domain.User, error)
	Create(ctx context.Context, in CreateUserInput) (*domain.User, error)
	Update(ctx context.Context, id uint, in UpdateUserInput) (*domain.User, error)
	Deactivate(ctx context.Context, id uint) (*domain.User, error)
}
