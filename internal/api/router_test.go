package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/Sirpyerre/hotel-booking/internal/core/domain"
	"github.com/Sirpyerre/hotel-booking/internal/core/ports"
	"github.com/Sirpyerre/hotel-booking/internal/infrastructure/http/handlers"
)

type routerAuth struct{ ports.AuthService }

func (routerAuth) Authenticate(_ context.Context, token string) (*domain.User, error) {
	switch token {
	case "guest-token":
		return &domain.User{ID: "user-1", Role: domain.RoleUser, IsActive: true}, nil
	case "admin-token":
		return &domain.User{ID: "admin-1", Role: domain.RoleAdmin, IsActive: true}, nil
	}
	return nil, domain.ErrUnauthenticated
}

type routerRooms struct{ ports.RoomService }

func (routerRooms) ListRooms(context.Context, ports.RoomFilter) ([]*domain.Room, error) {
	return []*domain.Room{{ID: "r-1"}}, nil
}

type routerBookings struct{ ports.BookingService }

func (routerBookings) ListAllBookings(_ context.Context, actor domain.Principal) ([]*domain.BookingDetail, error) {
	return []*domain.BookingDetail{}, nil
}

var (
	routerOnce sync.Once
	testRouter *echo.Echo
)

// sharedRouter builds the router once; the prometheus middleware registers
// collectors globally and cannot be constructed twice per process.
func sharedRouter() *echo.Echo {
	routerOnce.Do(func() {
		testRouter = NewRouter(Deps{
			Auth:           routerAuth{},
			Rooms:          routerRooms{},
			Bookings:       routerBookings{},
			Probes:         []handlers.Dependency{{Name: "postgres", Ping: func(context.Context) error { return nil }}},
			Log:            zerolog.Nop(),
			CORSOrigin:     "http://localhost:5173",
			RequestTimeout: 5 * time.Second,
			AuthRateLimit:  0,
		})
	})
	return testRouter
}

func serve(method, target, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(""))
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	sharedRouter().ServeHTTP(rec, req)
	return rec
}

func TestRouter_Routes(t *testing.T) {
	cases := []struct {
		name   string
		method string
		target string
		token  string
		want   int
	}{
		{"banner", http.MethodGet, "/", "", http.StatusOK},
		{"liveness", http.MethodGet, "/health", "", http.StatusOK},
		{"readiness", http.MethodGet, "/health/ready", "", http.StatusOK},
		{"metrics", http.MethodGet, "/metrics", "", http.StatusOK},
		{"public rooms", http.MethodGet, "/api/rooms", "", http.StatusOK},
		{"bookings need auth", http.MethodGet, "/api/bookings/admin", "", http.StatusUnauthorized},
		{"bad token", http.MethodGet, "/api/bookings/admin", "nope", http.StatusUnauthorized},
		{"guest on admin route", http.MethodGet, "/api/bookings/admin", "guest-token", http.StatusForbidden},
		{"admin route", http.MethodGet, "/api/bookings/admin", "admin-token", http.StatusOK},
		{"room mutation needs admin", http.MethodDelete, "/api/rooms/r-1", "guest-token", http.StatusForbidden},
		{"unknown route", http.MethodGet, "/api/nowhere", "", http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := serve(tc.method, tc.target, tc.token)
			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d (%s)", tc.want, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestRouter_ErrorEnvelope(t *testing.T) {
	rec := serve(http.MethodGet, "/api/users", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if body["error"] == "" {
		t.Fatalf("expected error envelope, got %s", rec.Body.String())
	}
}
