package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Sirpyerre/hotel-booking/internal/api/middleware"
	"github.com/Sirpyerre/hotel-booking/internal/core/domain"
)

// principal returns the caller injected by the Auth middleware. Its absence
// means the route was mounted without Auth, which is answered with 401.
func principal(c echo.Context) (domain.Principal, error) {
	p, ok := c.Get(middleware.PrincipalKey).(domain.Principal)
	if !ok || p.UserID == "" {
		return domain.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return p, nil
}

// bindAndValidate decodes the body into req and runs the struct validator.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return c.Validate(req)
}
