package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/Sirpyerre/hotel-booking/internal/api/handler"
	"github.com/Sirpyerre/hotel-booking/internal/api/middleware"
	"github.com/Sirpyerre/hotel-booking/internal/core/domain"
	"github.com/Sirpyerre/hotel-booking/internal/core/ports"
	infrahttp "github.com/Sirpyerre/hotel-booking/internal/infrastructure/http"
	"github.com/Sirpyerre/hotel-booking/internal/infrastructure/http/handlers"
)

// Deps is everything the HTTP surface needs. Services are constructed by the
// caller; the router only wires them to routes.
type Deps struct {
	Auth     ports.AuthService
	Users    ports.UserService
	Rooms    ports.RoomService
	Bookings ports.BookingService
	Probes   []handlers.Dependency
	Log      zerolog.Logger

	CORSOrigin     string
	RequestTimeout time.Duration
	AuthRateLimit  float64
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     []string{d.CORSOrigin},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, "Idempotency-Key"},
		AllowCredentials: true,
	}))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace: "hotel",
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))
	if d.RequestTimeout > 0 {
		e.Use(echomiddleware.ContextTimeoutWithConfig(echomiddleware.ContextTimeoutConfig{
			Timeout: d.RequestTimeout,
		}))
	}

	// --- Ops (no auth required) ---
	infrahttp.RegisterProbes(e, d.Probes...)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	authHandler := handler.NewAuthHandler(d.Auth, d.Users)
	roomHandler := handler.NewRoomHandler(d.Rooms)
	bookingHandler := handler.NewBookingHandler(d.Bookings)
	userHandler := handler.NewUserHandler(d.Users)

	requireAuth := middleware.Auth(d.Auth)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	api := e.Group("/api")

	// --- Auth ---
	auth := api.Group("/auth")
	limited := middleware.RateLimit(d.AuthRateLimit)
	auth.POST("/signup", authHandler.Signup, limited)
	auth.POST("/login", authHandler.Login, limited)
	auth.GET("/me", authHandler.Me, requireAuth)

	// --- Rooms ---
	rooms := api.Group("/rooms")
	rooms.GET("", roomHandler.List)
	rooms.GET("/:id", roomHandler.Get)
	rooms.POST("", roomHandler.Create, requireAuth, adminOnly)
	rooms.PUT("/:id", roomHandler.Update, requireAuth, adminOnly)
	rooms.DELETE("/:id", roomHandler.Delete, requireAuth, adminOnly)

	// --- Bookings ---
	bookings := api.Group("/bookings", requireAuth)
	bookings.POST("", bookingHandler.Create)
	bookings.GET("/user", bookingHandler.ListMine)
	bookings.GET("/admin", bookingHandler.ListAll, adminOnly)
	bookings.GET("/:id", bookingHandler.Get)
	bookings.PUT("/:id", bookingHandler.Update, adminOnly)
	bookings.DELETE("/:id", bookingHandler.Cancel)
	bookings.PUT("/:id/payment", bookingHandler.UpdatePayment, adminOnly)
	bookings.GET("/:id/history", bookingHandler.History)

	// --- Users ---
	users := api.Group("/users", requireAuth)
	users.GET("/profile", userHandler.Profile)
	users.PUT("/profile", userHandler.UpdateProfile)
	users.GET("", userHandler.List, adminOnly)
	users.DELETE("/:id", userHandler.Delete, adminOnly)
	users.PATCH("/:id/status", userHandler.SetStatus, adminOnly)

	return e
}
