package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/vetclinic/user-service/internal/api/metrics"
	"github.com/vetclinic/user-service/internal/core/domain"
	"github.com/vetclinic/user-service/internal/core/ports"
)

// UserHandler handles the user administration endpoints.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

type createUserRequest struct {
	FullName  string `json:"fullname"  validate:"max=255"`
	Telephone string `json:"telephone" validate:"max=50"`
	Address   string `json:"address"   validate:"max=255"`
	Email     string `json:"email"     validate:"omitempty,email"`
	Password  string `json:"password"`
	RoleName  string `json:"roleName"`
	IsActive  *bool  `json:"isActive"`
}

type updateUserRequest struct {
	FullName  *string `json:"fullname"  validate:"omitempty,max=255"`
	Telephone *string `json:"telephone" validate:"omitempty,max=50"`
	Address   *string `json:"address"   validate:"omitempty,max=255"`
	Email     *string `json:"email"     validate:"omitempty,email"`
	Password  *string `json:"password"`
	RoleName  *string `json:"roleName"`
	IsActive  *bool   `json:"isActive"`
}

// List handles GET /api/users.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Page size (default 10, max 100)"
// @Success      200    {object}  Envelope{data=userPageResponse}
// @Failure      400    {object}  Envelope
// @Failure      401    {object}  Envelope
// @Failure      403    {object}  Envelope
// @Router       /api/users [get]
func (h *UserHandler) List(c echo.Context) error {
	page, err := queryInt(c, "page", 1)
	if err != nil {
		return err
	}
	limit, err := queryInt(c, "limit", ports.DefaultPageLimit)
	if err != nil {
		return err
	}

	result, err := h.service.List(c.Request().Context(), page, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ok("Users retrieved successfully.", toUserPageResponse(result)))
}

// Get handles GET /api/users/:id.
//
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  Envelope{data=userResponse}
// @Failure      400  {object}  Envelope
// @Failure      404  {object}  Envelope
// @Router       /api/users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	user, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ok("User retrieved successfully.", toUserResponse(user)))
}

// Veterinarians handles GET /api/users/veterinarians/list.
//
// @Summary      List active veterinarians
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  Envelope{data=[]userResponse}
// @Failure      401  {object}  Envelope
// @Router       /api/users/veterinarians/list [get]
func (h *UserHandler) Veterinarians(c echo.Context) error {
	users, err := h.service.ListVeterinarians(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ok("Veterinarians retrieved successfully.", toUserResponses(users)))
}

// Create handles POST /api/users.
//
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "User details"
// @Success      201   {object}  Envelope{data=userResponse}
// @Failure      400   {object}  Envelope
// @Failure      403   {object}  Envelope
// @Router       /api/users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.service.Create(c.Request().Context(), ports.CreateUserInput{
		FullName:  req.FullName,
		Telephone: req.Telephone,
		Address:   req.Address,
		Email:     req.Email,
		Password:  req.Password,
		RoleName:  req.RoleName,
		IsActive:  req.IsActive,
	})
	if err != nil {
		return err
	}

	metrics.UsersCreatedTotal.WithLabelValues(string(user.Role.Name), "admin").Inc()
	return c.JSON(http.StatusCreated, ok("User created successfully by admin.", toUserResponse(user)))
}

// Update handles PUT /api/users/:id.
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                true  "User ID"
// @Param        body  body      updateUserRequest  true  "Fields to change"
// @Success      200   {object}  Envelope{data=userResponse}
// @Failure      400   {object}  Envelope
// @Failure      404   {object}  Envelope
// @Router       /api/users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.service.Update(c.Request().Context(), id, ports.UpdateUserInput{
		FullName:  req.FullName,
		Telephone: req.Telephone,
		Address:   req.Address,
		Email:     req.Email,
		Password:  req.Password,
		RoleName:  req.RoleName,
		IsActive:  req.IsActive,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ok("User updated successfully.", toUserResponse(user)))
}

// Deactivate handles DELETE /api/users/:id. The row is kept; only isActive
// flips to false.
//
// @Summary      Deactivate a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  Envelope{data=userResponse}
// @Failure      400  {object}  Envelope
// @Failure      404  {object}  Envelope
// @Router       /api/users/{id} [delete]
func (h *UserHandler) Deactivate(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	user, err := h.service.Deactivate(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ok("User deactivated successfully.", toUserResponse(user)))
}

func pathID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, domain.Invalid("Invalid user id.")
	}
	return uint(id), nil
}

// queryInt reads an optional integer query parameter. Non-numeric values are
// rejected rather than silently replaced by the default.
func queryInt(c echo.Context, name string, def int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.ErrInvalidPagination
	}
	return n, nil
}
