package ports

import (
	"context"

	"github.com/Sirpyerre/hotel-booking/internal/core/domain"
)

// CreateBookingInput carries a booking request from the transport layer.
type CreateBookingInput struct {
	Stay           domain.StayRequest
	IdempotencyKey string
}

// CreateBookingResult wraps the created booking.
type CreateBookingResult struct {
	Booking *domain.BookingDetail
	// AlreadyExisted is true when the Idempotency-Key matched an earlier request.
	AlreadyExisted bool
}

// UpdateBookingInput is a partial admin update. Nil fields are left untouched.
type UpdateBookingInput struct {
	Status        *domain.BookingStatus
	PaymentStatus *domain.PaymentStatus
}

// BookingService defines the booking lifecycle use cases.
type BookingService interface {
	CreateBooking(ctx context.Context, actor domain.Principal, input CreateBookingInput) (*CreateBookingResult, error)
	GetBooking(ctx context.Context, actor domain.Principal, id string) (*domain.BookingDetail, error)
	ListMyBookings(ctx context.Context, actor domain.Principal) ([]*domain.BookingDetail, error)
	ListAllBookings(ctx context.Context, actor domain.Principal) ([]*domain.BookingDetail, error)
	UpdateBooking(ctx context.Context, actor domain.Principal, id string, input UpdateBookingInput) (*domain.BookingDetail, error)
	UpdatePayment(ctx context.Context, actor domain.Principal, id string, payment domain.PaymentStatus) (*domain.BookingDetail, error)
	CancelBooking(ctx context.Context, actor domain.Principal, id string) (*domain.BookingDetail, error)
	History(ctx context.Context, actor domain.Principal, id string) ([]domain.BookingEvent, error)
}
