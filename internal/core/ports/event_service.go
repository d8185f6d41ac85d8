package ports

import (
	"context"

	"github.com/Sirpyerre/hotel-booking/internal/core/domain"
)

// EventService records booking audit entries. It is driven by the queue
// dispatcher, never directly by a request.
type EventService interface {
	Process(ctx context.Context, event domain.BookingEvent) error
}

// EventPublisher hands audit entries to the asynchronous writer.
type EventPublisher interface {
	Publish(event domain.BookingEvent)
}
