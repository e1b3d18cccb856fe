package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vetclinic/user-service/internal/api/metrics"
	"github.com/vetclinic/user-service/internal/api/middleware"
	"github.com/vetclinic/user-service/internal/core/domain"
	"github.com/vetclinic/user-service/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerRequest struct {
	FullName  string `json:"fullname"  validate:"max=255"`
	Telephone string `json:"telephone" validate:"max=50"`
	Address   string `json:"address"   validate:"max=255"`
	Email     string `json:"email"     validate:"omitempty,email"`
	Password  string `json:"password"`
	RoleName  string `json:"roleName"`
	IsActive  *bool  `json:"isActive"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  Envelope{data=userResponse}
// @Failure      400   {object}  Envelope
// @Failure      500   {object}  Envelope
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		FullName:  req.FullName,
		Telephone: req.Telephone,
		Address:   req.Address,
		Email:     req.Email,
		Password:  req.Password,
		RoleName:  req.RoleName,
		IsActive:  req.IsActive,
	})
	if err != nil {
		recordAttempt("register", err)
		return err
	}

	recordAttempt("register", nil)
	metrics.UsersCreatedTotal.WithLabelValues(string(user.Role.Name), "register").Inc()
	return c.JSON(http.StatusCreated, ok("User successfully registered.", toUserResponse(user)))
}

// Login authenticates a user and returns a JWT token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  Envelope{data=loginResponse}
// @Failure      400   {object}  Envelope
// @Failure      401   {object}  Envelope
// @Failure      403   {object}  Envelope
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		recordAttempt("login", err)
		return err
	}

	recordAttempt("login", nil)
	return c.JSON(http.StatusOK, ok("Login successfully.", loginResponse{
		Token: token,
		User:  toUserResponse(user),
	}))
}

// Verify echoes the authenticated user.
//
// @Summary      Verify token
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  Envelope{data=verifyResponse}
// @Failure      401  {object}  Envelope
// @Failure      403  {object}  Envelope
// @Router       /api/auth/verify [get]
func (h *AuthHandler) Verify(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ok("Token is valid.", verifyResponse{User: toUserResponse(user)}))
}

// ChangePassword replaces the caller's password.
//
// @Summary      Change password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      changePasswordRequest  true  "Current and new password"
// @Success      200   {object}  Envelope
// @Failure      400   {object}  Envelope
// @Failure      401   {object}  Envelope
// @Router       /api/auth/change-password [post]
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req changePasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.authService.ChangePassword(c.Request().Context(), user.ID, req.CurrentPassword, req.NewPassword); err != nil {
		recordAttempt("change_password", err)
		return err
	}

	recordAttempt("change_password", nil)
	return c.JSON(http.StatusOK, ok("Password changed successfully.", nil))
}

// currentUser extracts the user injected by the Auth middleware. Its absence
// means the route was wired without the guard.
func currentUser(c echo.Context) (*domain.User, error) {
	user, found := middleware.CurrentUser(c)
	if !found {
		return nil, domain.AuthenticationRequired()
	}
	return user, nil
}

func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domain.Invalid("Invalid request payload.")
	}
	if c.Echo().Validator == nil {
		return nil
	}
	return c.Validate(req)
}

func recordAttempt(operation string, err error) {
	result := "success"
	if err != nil {
		result = "error"
		if de, found := domain.AsError(err); found {
			result = de.Code()
		}
	}
	metrics.AuthAttemptsTotal.WithLabelValues(operation, result).Inc()
}
