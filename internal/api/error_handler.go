package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/Sirpyerre/hotel-booking/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// sentinelStatus maps domain errors to HTTP codes. Order matters only when an
// error wraps more than one sentinel.
var sentinelStatus = []struct {
	err  error
	code int
}{
	{domain.ErrInvalidCredentials, http.StatusUnauthorized},
	{domain.ErrUnauthenticated, http.StatusUnauthorized},
	{domain.ErrAccountDisabled, http.StatusUnauthorized},
	{domain.ErrForbidden, http.StatusForbidden},
	{domain.ErrUserNotFound, http.StatusNotFound},
	{domain.ErrRoomNotFound, http.StatusNotFound},
	{domain.ErrBookingNotFound, http.StatusNotFound},
	{domain.ErrBookingOverlap, http.StatusConflict},
	{domain.ErrIdempotencyInFlight, http.StatusConflict},
	{domain.ErrRoomInUse, http.StatusConflict},
	{domain.ErrUserHasBookings, http.StatusConflict},
	{domain.ErrSelfDelete, http.StatusConflict},
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that renders every
// failure as {"error": "<message>"}. Unknown errors are logged and hidden
// behind a generic 500.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, unknown routes, middleware rejections)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, ve.Msg
	}
	if errors.Is(err, domain.ErrInvalidRequest) {
		return http.StatusBadRequest, err.Error()
	}
	if errors.Is(err, domain.ErrInvalidTransition) {
		return http.StatusUnprocessableEntity, err.Error()
	}

	for _, s := range sentinelStatus {
		if errors.Is(err, s.err) {
			return s.code, s.err.Error()
		}
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
