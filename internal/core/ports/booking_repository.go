package ports

import (
	"context"

	"github.com/Sirpyerre/hotel-booking/internal/core/domain"
)

// BuildBookingFunc turns the locked room into the booking to insert.
type BuildBookingFunc func(room *domain.Room) (*domain.Booking, error)

// MutateBookingFunc modifies a locked booking in place. Returning an error
// rolls the transaction back.
type MutateBookingFunc func(b *domain.Booking) error

// BookingRepository defines persistence operations for bookings. Create and
// Mutate each run as a single transaction.
type BookingRepository interface {
	// Create locks the room row, calls build, rejects overlaps with blocking
	// bookings and returns the inserted booking joined with its room and guest.
	Create(ctx context.Context, roomID string, build BuildBookingFunc) (*domain.BookingDetail, error)
	FindByID(ctx context.Context, id string) (*domain.BookingDetail, error)
	// ListByUser returns the bookings owned by userID, newest first.
	ListByUser(ctx context.Context, userID string) ([]*domain.BookingDetail, error)
	ListAll(ctx context.Context) ([]*domain.BookingDetail, error)
	// Mutate locks the booking row, calls fn and persists status and payment.
	Mutate(ctx context.Context, id string, fn MutateBookingFunc) (*domain.BookingDetail, error)
}
