package handler

import (
	"context"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/vetclinic/user-service/internal/api/middleware"
	"github.com/vetclinic/user-service/internal/core/domain"
	"github.com/vetclinic/user-service/internal/core/ports"
)

type stubAuthService struct {
	registerFn       func(ctx context.Context, in ports.RegisterInput) (*domain.User, error)
	loginFn          func(ctx context.Context, email, password string) (string, *domain.User, error)
	changePasswordFn func(ctx context.Context, userID uint, current, next string) error
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) ChangePassword(ctx context.Context, userID uint, current, next string) error {
	return s.changePasswordFn(ctx, userID, current, next)
}

type stubUserService struct {
	listFn       func(ctx context.Context, page, limit int) (*domain.UserPage, error)
	getFn        func(ctx context.Context, id uint) (*domain.User, error)
	vetsFn       func(ctx context.Context) ([]domain.User, error)
	createFn     func(ctx context.Context, in ports.CreateUserInput) (*domain.User, error)
	updateFn     func(ctx context.Context, id uint, in ports.UpdateUserInput) (*domain.User, error)
	deactivateFn func(ctx context.Context, id uint) (*domain.User, error)
}

func (s *stubUserService) List(ctx context.Context, page, limit int) (*domain.UserPage, error) {
	return s.listFn(ctx, page, limit)
}

func (s *stubUserService) Get(ctx context.Context, id uint) (*domain.User, error) {
	return s.getFn(ctx, id)
}

func (s *stubUserService) ListVeterinarians(ctx context.Context) ([]domain.User, error) {
	return s.vetsFn(ctx)
}

func (s *stubUserService) Create(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
	return s.createFn(ctx, in)
}

func (s *stubUserService) Update(ctx context.Context, id uint, in ports.UpdateUserInput) (*domain.User, error) {
	return s.updateFn(ctx, id, in)
}

func (s *stubUserService) Deactivate(ctx context.Context, id uint) (*domain.User, error) {
	return s.deactivateFn(ctx, id)
}

func newTestContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func withUser(c echo.Context, u *domain.User) echo.Context {
	c.Set(middleware.ContextKeyUser, u)
	return c
}

func sampleUser() *domain.User {
	return &domain.User{
		ID:           7,
		FullName:     "Alice Doe",
		Email:        "alice@example.com",
		PasswordHash: "$2a$10$secret",
		IsActive:     true,
		RoleID:       1,
		Role:         domain.Role{ID: 1, Name: domain.RoleClient},
	}
}
