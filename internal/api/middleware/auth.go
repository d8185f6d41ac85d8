package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Sirpyerre/hotel-booking/internal/core/domain"
)

// Context keys set by Auth.
const (
	PrincipalKey = "principal"
	UserIDKey    = "user_id"
	RoleKey      = "role"
)

// Authenticator resolves a bearer token to the account it names.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}

// Auth validates the bearer token and injects the caller into the context.
// The role always comes from the stored account, never from the token.
func Auth(authn Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			user, err := authn.Authenticate(c.Request().Context(), strings.TrimSpace(parts[1]))
			switch {
			case errors.Is(err, domain.ErrAccountDisabled):
				return echo.NewHTTPError(http.StatusUnauthorized, domain.ErrAccountDisabled.Error())
			case errors.Is(err, domain.ErrUnauthenticated):
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			case err != nil:
				return err
			}

			p := user.Principal()
			c.Set(PrincipalKey, p)
			c.Set(UserIDKey, p.UserID)
			c.Set(RoleKey, string(p.Role))

			return next(c)
		}
	}
}
