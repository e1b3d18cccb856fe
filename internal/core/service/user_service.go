package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/vetclinic/user-service/internal/core/domain"
	"github.com/vetclinic/user-service/internal/core/ports"
)

// UserService implements user administration.
type UserService struct {
	users    ports.UserRepository
	roles    ports.RoleRepository
	hasher   ports.PasswordHasher
	notifier ports.UserNotifier
	log      zerolog.Logger
}

func NewUserService(
	users ports.UserRepository,
	roles ports.RoleRepository,
	hasher ports.PasswordHasher,
	notifier ports.UserNotifier,
	log zerolog.Logger,
) *UserService {
	return &UserService{
		users:    users,
		roles:    roles,
		hasher:   hasher,
		notifier: notifier,
		log:      log,
	}
}

// List returns one newest-first page. limit is clamped to ports.MaxPageLimit.
func (s *UserService) List(ctx context.Context, page, limit int) (*domain.UserPage, error) {
	if page < 1 || limit < 1 {
		return nil, domain.ErrInvalidPagination
	}
	if limit > ports.MaxPageLimit {
		limit = ports.MaxPageLimit
	}
	// The offset must fit in an int.
	if page > math.MaxInt/limit {
		return nil, domain.ErrInvalidPagination
	}

	users, total, err := s.users.List(ctx, (page-1)*limit, limit)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	totalPages := int(total / int64(limit))
	if total%int64(limit) != 0 {
		totalPages++
	}

	return &domain.UserPage{
		Users:      users,
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}

func (s *UserService) Get(ctx context.Context, id uint) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *UserService) ListVeterinarians(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.ListActiveByRole(ctx, domain.RoleVeterinarian)
	if err != nil {
		return nil, fmt.Errorf("list veterinarians: %w", err)
	}
	return users, nil
}

func (s *UserService) Create(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
	if in.FullName == "" || in.Email == "" || in.Password == "" {
		return nil, domain.Invalid("Fullname, email, and password are required.")
	}

	user, err := createUser(ctx, s.users, s.roles, s.hasher, newUserParams(in))
	if err != nil {
		return nil, err
	}

	s.log.Info().Uint("user_id", user.ID).Str("role", string(user.Role.Name)).Msg("user created by admin")
	notifyCreated(ctx, s.notifier, user)
	return user, nil
}

// Update applies only the supplied fields. Empty strings for fullname, email,
// role and password are treated as omitted.
func (s *UserService) Update(ctx context.Context, id uint, in ports.UpdateUserInput) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Email != nil && *in.Email != "" && *in.Email != user.Email {
		if err := ensureEmailFree(ctx, s.users, *in.Email); err != nil {
			return nil, err
		}
		user.Email = *in.Email
	}

	if in.RoleName != nil && *in.RoleName != "" {
		role, err := resolveRole(ctx, s.roles, *in.RoleName)
		if err != nil {
			return nil, err
		}
		user.RoleID = role.ID
		user.Role = *role
	}

	if in.Password != nil && *in.Password != "" {
		if err := domain.CheckPassword(*in.Password); err != nil {
			return nil, err
		}
		hash, err := s.hasher.Hash(*in.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = hash
	}

	if in.FullName != nil && *in.FullName != "" {
		user.FullName = *in.FullName
	}
	if in.Telephone != nil {
		user.Telephone = *in.Telephone
	}
	if in.Address != nil {
		user.Address = *in.Address
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info().Uint("user_id", user.ID).Msg("user updated")
	return s.users.FindByID(ctx, id)
}

// Deactivate soft-deletes an active user. Deactivating an inactive user is
// rejected with domain.ErrAlreadyInactive.
func (s *UserService) Deactivate(ctx context.Context, id uint) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, domain.ErrAlreadyInactive
	}

	user.IsActive = false
	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("deactivate user: %w", err)
	}

	s.log.Info().Uint("user_id", user.ID).Msg("user deactivated")
	return user, nil
}
