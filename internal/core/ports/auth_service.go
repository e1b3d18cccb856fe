package ports

import (
	"context"

	"github.com/vetclinic/user-service/internal/core/domain"
)

// RegisterInput carries a self-registration request.
type RegisterInput struct {
	FullName  string
	Telephone string
	Address   string
	Email     string
	Password  string
	RoleName  string
	IsActive  *bool
}

// AuthService implements registration, login and password change.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	ChangePassword(ctx context.Context, userID uint, current, next string) error
}
