package handler

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/Sirpyerre/hotel-booking/internal/api/middleware"
	"github.com/Sirpyerre/hotel-booking/internal/core/domain"
	"github.com/Sirpyerre/hotel-booking/internal/core/ports"
)

var (
	guest = domain.Principal{UserID: "user-1", Role: domain.RoleUser}
	admin = domain.Principal{UserID: "admin-1", Role: domain.RoleAdmin}
)

// newRequest builds an echo context the way the router would see it. A nil
// principal means an unauthenticated request.
func newRequest(method, target, body string, p *domain.Principal) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if p != nil {
		c.Set(middleware.PrincipalKey, *p)
	}
	return c, rec
}

func assertHTTPError(t *testing.T, err error, code int) {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected echo.HTTPError %d, got %v", code, err)
	}
	if he.Code != code {
		t.Fatalf("expected %d, got %d", code, he.Code)
	}
}

func assertValidation(t *testing.T, err error) {
	t.Helper()
	if !errors.Is(err, domain.ErrInvalidRequest) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func mustNotCall(t *testing.T) {
	t.Helper()
	t.Fatalf("service should not be called")
}

type stubAuthService struct {
	signupFn       func(ctx context.Context, in ports.SignupInput) (*ports.AuthResult, error)
	loginFn        func(ctx context.Context, email, password string) (*ports.AuthResult, error)
	authenticateFn func(ctx context.Context, token string) (*domain.User, error)
}

func (s *stubAuthService) Signup(ctx context.Context, in ports.SignupInput) (*ports.AuthResult, error) {
	return s.signupFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	return s.authenticateFn(ctx, token)
}

type stubUserService struct {
	getProfileFn    func(ctx context.Context, actor domain.Principal) (*domain.User, error)
	updateProfileFn func(ctx context.Context, actor domain.Principal, in ports.UpdateProfileInput) (*domain.User, error)
	listFn          func(ctx context.Context, actor domain.Principal) ([]*domain.User, error)
	deleteFn        func(ctx context.Context, actor domain.Principal, id string) error
	setActiveFn     func(ctx context.Context, actor domain.Principal, id string, active bool) (*domain.User, error)
}

func (s *stubUserService) GetProfile(ctx context.Context, actor domain.Principal) (*domain.User, error) {
	return s.getProfileFn(ctx, actor)
}

func (s *stubUserService) UpdateProfile(ctx context.Context, actor domain.Principal, in ports.UpdateProfileInput) (*domain.User, error) {
	return s.updateProfileFn(ctx, actor, in)
}

func (s *stubUserService) ListUsers(ctx context.Context, actor domain.Principal) ([]*domain.User, error) {
	return s.listFn(ctx, actor)
}

func (s *stubUserService) DeleteUser(ctx context.Context, actor domain.Principal, id string) error {
	return s.deleteFn(ctx, actor, id)
}

func (s *stubUserService) SetUserActive(ctx context.Context, actor domain.Principal, id string, active bool) (*domain.User, error) {
	return s.setActiveFn(ctx, actor, id, active)
}

type stubRoomService struct {
	listFn   func(ctx context.Context, f ports.RoomFilter) ([]*domain.Room, error)
	getFn    func(ctx context.Context, id string) (*domain.Room, error)
	createFn func(ctx context.Context, actor domain.Principal, room *domain.Room) (*domain.Room, error)
	updateFn func(ctx context.Context, actor domain.Principal, id string, p domain.RoomPatch) (*domain.Room, error)
	deleteFn func(ctx context.Context, actor domain.Principal, id string) error
}

func (s *stubRoomService) ListRooms(ctx context.Context, f ports.RoomFilter) ([]*domain.Room, error) {
	return s.listFn(ctx, f)
}

func (s *stubRoomService) GetRoom(ctx context.Context, id string) (*domain.Room, error) {
	return s.getFn(ctx, id)
}

func (s *stubRoomService) CreateRoom(ctx context.Context, actor domain.Principal, room *domain.Room) (*domain.Room, error) {
	return s.createFn(ctx, actor, room)
}

func (s *stubRoomService) UpdateRoom(ctx context.Context, actor domain.Principal, id string, p domain.RoomPatch) (*domain.Room, error) {
	return s.updateFn(ctx, actor, id, p)
}

func (s *stubRoomService) DeleteRoom(ctx context.Context, actor domain.Principal, id string) error {
	return s.deleteFn(ctx, actor, id)
}

type stubBookingService struct {
	createFn  func(ctx context.Context, actor domain.Principal, in ports.CreateBookingInput) (*ports.CreateBookingResult, error)
	getFn     func(ctx context.Context, actor domain.Principal, id string) (*domain.BookingDetail, error)
	mineFn    func(ctx context.Context, actor domain.Principal) ([]*domain.BookingDetail, error)
	allFn     func(ctx context.Context, actor domain.Principal) ([]*domain.BookingDetail, error)
	updateFn  func(ctx context.Context, actor domain.Principal, id string, in ports.UpdateBookingInput) (*domain.BookingDetail, error)
	paymentFn func(ctx context.Context, actor domain.Principal, id string, p domain.PaymentStatus) (*domain.BookingDetail, error)
	cancelFn  func(ctx context.Context, actor domain.Principal, id string) (*domain.BookingDetail, error)
	historyFn func(ctx context.Context, actor domain.Principal, id string) ([]domain.BookingEvent, error)
}

func (s *stubBookingService) CreateBooking(ctx context.Context, actor domain.Principal, in ports.CreateBookingInput) (*ports.CreateBookingResult, error) {
	return s.createFn(ctx, actor, in)
}

func (s *stubBookingService) GetBooking(ctx context.Context, actor domain.Principal, id string) (*domain.BookingDetail, error) {
	return s.getFn(ctx, actor, id)
}

func (s *stubBookingService) ListMyBookings(ctx context.Context, actor domain.Principal) ([]*domain.BookingDetail, error) {
	return s.mineFn(ctx, actor)
}

func (s *stubBookingService) ListAllBookings(ctx context.Context, actor domain.Principal) ([]*domain.BookingDetail, error) {
	return s.allFn(ctx, actor)
}

func (s *stubBookingService) UpdateBooking(ctx context.Context, actor domain.Principal, id string, in ports.UpdateBookingInput) (*domain.BookingDetail, error) {
	return s.updateFn(ctx, actor, id, in)
}

func (s *stubBookingService) UpdatePayment(ctx context.Context, actor domain.Principal, id string, p domain.PaymentStatus) (*domain.BookingDetail, error) {
	return s.paymentFn(ctx, actor, id, p)
}

func (s *stubBookingService) CancelBooking(ctx context.Context, actor domain.Principal, id string) (*domain.BookingDetail, error) {
	return s.cancelFn(ctx, actor, id)
}

func (s *stubBookingService) History(ctx context.Context, actor domain.Principal, id string) ([]domain.BookingEvent, error) {
	return s.historyFn(ctx, actor, id)
}
