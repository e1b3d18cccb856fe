package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/vetclinic/user-service/internal/core/domain"
	"github.com/vetclinic/user-service/internal/core/ports"
	"github.com/vetclinic/user-service/internal/pkg/token"
)

// AuthService implements registration, login and password change.
type AuthService struct {
	users    ports.UserRepository
	roles    ports.RoleRepository
	hasher   ports.PasswordHasher
	tokens   ports.TokenIssuer
	notifier ports.UserNotifier
	log      zerolog.Logger

	dummyOnce sync.Once
	dummyHash string
}

func NewAuthService(
	users ports.UserRepository,
	roles ports.RoleRepository,
	hasher ports.PasswordHasher,
	tokens ports.TokenIssuer,
	notifier ports.UserNotifier,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:    users,
		roles:    roles,
		hasher:   hasher,
		tokens:   tokens,
		notifier: notifier,
		log:      log,
	}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if in.Email == "" || in.Password == "" {
		return nil, domain.ErrMissingCredentials
	}

	user, err := createUser(ctx, s.users, s.roles, s.hasher, newUserParams(in))
	if err != nil {
		return nil, err
	}

	s.log.Info().Uint("user_id", user.ID).Str("role", string(user.Role.Name)).Msg("user registered")
	notifyCreated(ctx, s.notifier, user)
	return user, nil
}

// Login verifies credentials and returns a signed token. An unknown email and
// a wrong password yield the same domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrMissingCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Spend the same bcrypt work as a real comparison.
			s.hasher.Verify(password, s.timingHash())
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("find user: %w", err)
	}

	if !user.IsActive {
		return "", nil, domain.ErrAccountInactive
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return "", nil, domain.ErrInvalidCredentials
	}

	signed, err := s.tokens.Issue(token.Claims{
		ID:    user.ID,
		Email: user.Email,
		Role:  token.RoleClaim{ID: user.Role.ID, Name: string(user.Role.Name)},
	})
	if err != nil {
		return "", nil, err
	}

	return signed, user, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, userID uint, current, next string) error {
	if current == "" || next == "" {
		return domain.Invalid("Current password and new password are required.")
	}
	if err := domain.CheckPassword(next); err != nil {
		return err
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if !s.hasher.Verify(current, user.PasswordHash) {
		return domain.ErrInvalidCredentials
	}

	hash, err := s.hasher.Hash(next)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = hash
	user.MustChangePassword = false

	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	s.log.Info().Uint("user_id", user.ID).Msg("password changed")
	return nil
}

func (s *AuthService) timingHash() string {
	s.dummyOnce.Do(func() {
		h, err := s.hasher.Hash("timing-equalisation-only")
		if err != nil {
			s.log.Warn().Err(err).Msg("could not prepare timing hash")
			return
		}
		s.dummyHash = h
	})
	return s.dummyHash
}
