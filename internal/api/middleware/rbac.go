package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/vetclinic/user-service/internal/core/domain"
)

// RBAC enforces role-based access control. It must run after Auth; a request
// without an authenticated user is rejected as unauthenticated.
func RBAC(allowedRoles ...domain.RoleName) echo.MiddlewareFunc {
	allowed := make(map[domain.RoleName]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := CurrentUser(c)
			if !ok {
				return domain.AuthenticationRequired()
			}
			if _, ok := allowed[user.Role.Name]; !ok {
				return domain.ForbiddenRoles(allowedRoles)
			}
			return next(c)
		}
	}
}
