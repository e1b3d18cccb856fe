package middleware

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/vetclinic/user-service/internal/api/metrics"
	"github.com/vetclinic/user-service/internal/core/domain"
	"github.com/vetclinic/user-service/internal/core/ports"
	"github.com/vetclinic/user-service/internal/pkg/token"
)

// ContextKeyUser is the echo context key holding the authenticated *domain.User.
const ContextKeyUser = "user"

// UserLoader fetches the token subject with its current role.
type UserLoader interface {
	FindByID(ctx context.Context, id uint) (*domain.User, error)
}

// Auth validates the bearer token, reloads the user from the store and
// injects it into the context. The role used downstream is always the
// freshly loaded one, never the role embedded in the token.
func Auth(verifier ports.TokenVerifier, users UserLoader) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				metrics.TokenValidationsTotal.WithLabelValues("missing").Inc()
				return domain.ErrUnauthenticated
			}

			claims, err := verifier.Verify(raw)
			if err != nil {
				if errors.Is(err, token.ErrExpired) {
					metrics.TokenValidationsTotal.WithLabelValues("expired").Inc()
					return domain.ErrTokenExpired
				}
				metrics.TokenValidationsTotal.WithLabelValues("invalid").Inc()
				return domain.ErrInvalidToken
			}

			user, err := users.FindByID(c.Request().Context(), claims.ID)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					metrics.TokenValidationsTotal.WithLabelValues("user_not_found").Inc()
					return domain.UserNotFoundAuth()
				}
				return fmt.Errorf("load current user: %w", err)
			}

			if !user.IsActive {
				metrics.TokenValidationsTotal.WithLabelValues("inactive").Inc()
				return domain.ErrAccountInactive
			}

			metrics.TokenValidationsTotal.WithLabelValues("ok").Inc()
			c.Set(ContextKeyUser, user)
			return next(c)
		}
	}
}

// CurrentUser returns the user injected by Auth.
func CurrentUser(c echo.Context) (*domain.User, bool) {
	u, ok := c.Get(ContextKeyUser).(*domain.User)
	return u, ok && u != nil
}

func bearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	raw := strings.TrimSpace(parts[1])
	return raw, raw != ""
}
