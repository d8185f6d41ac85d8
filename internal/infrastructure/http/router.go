package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Sirpyerre/hotel-booking/internal/infrastructure/http/handlers"
)

// RegisterProbes mounts the unauthenticated operational routes: the service
// banner, liveness and readiness over deps.
func RegisterProbes(e *echo.Echo, deps ...handlers.Dependency) {
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(deps...)

	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"message": "Hotel Booking API is running",
			"version": "1.0.0",
		})
	})
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
}
