package ports

import (
	"context"

	"github.com/Sirpyerre/hotel-booking/internal/core/domain"
)

// EventRepository persists the booking audit history.
type EventRepository interface {
	InsertEvent(ctx context.Context, event *domain.BookingEvent) error
	// ListByBooking returns the history of one booking, oldest first.
	ListByBooking(ctx context.Context, bookingID string) ([]domain.BookingEvent, error)
}
