package domain

import "time"

// BookingEventType classifies an entry in a booking's audit history.
type BookingEventType string

const (
	EventBookingCreated  BookingEventType = "created"
	EventStatusChanged   BookingEventType = "status_changed"
	EventPaymentChanged  BookingEventType = "payment_changed"
	EventBookingCanceled BookingEventType = "cancelled"
)

// BookingEvent is one audit entry. Events are written asynchronously and are
// not part of the booking's transactional state.
type BookingEvent struct {
	BookingID  string           `json:"bookingId" bson:"booking_id"`
	Type       BookingEventType `json:"type" bson:"type"`
	ActorID    string           `json:"actorId" bson:"actor_id"`
	ActorRole  Role             `json:"actorRole" bson:"actor_role"`
	From       string           `json:"from,omitempty" bson:"from,omitempty"`
	To         string           `json:"to,omitempty" bson:"to,omitempty"`
	OccurredAt time.Time        `json:"occurredAt" bson:"occurred_at"`
}

// EventsForChanges maps lifecycle changes to audit entries.
func EventsForChanges(bookingID string, actor Principal, changes []Change, at time.Time) []BookingEvent {
	events := make([]BookingEvent, 0, len(changes))
	for _, ch := range changes {
		typ := EventStatusChanged
		switch {
		case ch.Field == FieldPayment:
			typ = EventPaymentChanged
		case ch.To == string(BookingCancelled):
			typ = EventBookingCanceled
		}
		events = append(events, BookingEvent{
			BookingID:  bookingID,
			Type:       typ,
			ActorID:    actor.UserID,
			ActorRole:  actor.Role,
			From:       ch.From,
			To:         ch.To,
			OccurredAt: at,
		})
	}
	return events
}
