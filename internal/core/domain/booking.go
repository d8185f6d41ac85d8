package domain

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	BookingPending   BookingStatus = "Pending"
	BookingConfirmed BookingStatus = "Confirmed"
	BookingCancelled BookingStatus = "Cancelled"
	BookingCompleted BookingStatus = "Completed"
)

// validTransitions defines the allowed booking status changes.
var validTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:   {BookingConfirmed, BookingCancelled},
	BookingConfirmed: {BookingCompleted, BookingCancelled},
	BookingCancelled: {},
	BookingCompleted: {},
}

func (s BookingStatus) IsValid() bool {
	_, ok := validTransitions[s]
	return ok
}

// CanTransitionTo reports whether moving from s to next is allowed.
// Re-applying the current status is always allowed and is a no-op.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	if s == next {
		return s.IsValid()
	}
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s BookingStatus) IsTerminal() bool {
	return len(validTransitions[s]) == 0
}

// CanBeCancelled is true for Pending and Confirmed bookings.
func (s BookingStatus) CanBeCancelled() bool {
	return s != BookingCancelled && s.CanTransitionTo(BookingCancelled)
}

// Blocking reports whether a booking in this status holds its room's dates.
func (s BookingStatus) Blocking() bool {
	return s == BookingPending || s == BookingConfirmed
}

// ParseBookingStatus converts client input into a BookingStatus.
func ParseBookingStatus(s string) (BookingStatus, error) {
	status := BookingStatus(s)
	if !status.IsValid() {
		return "", NewValidationError(fmt.Sprintf("invalid booking status: %q", s))
	}
	return status, nil
}

// PaymentStatus is the payment state of a booking.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "Pending"
	PaymentPaid     PaymentStatus = "Paid"
	PaymentRefunded PaymentStatus = "Refunded"
)

var validPaymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentPending:  {PaymentPaid, PaymentRefunded},
	PaymentPaid:     {PaymentRefunded},
	PaymentRefunded: {},
}

func (p PaymentStatus) IsValid() bool {
	_, ok := validPaymentTransitions[p]
	return ok
}

// CanTransitionTo reports whether moving from p to next is allowed.
func (p PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	if p == next {
		return p.IsValid()
	}
	for _, allowed := range validPaymentTransitions[p] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ParsePaymentStatus converts client input into a PaymentStatus.
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	status := PaymentStatus(s)
	if !status.IsValid() {
		return "", NewValidationError(fmt.Sprintf("invalid payment status: %q", s))
	}
	return status, nil
}

// Booking is a reservation of one room by one user for a date range.
type Booking struct {
	ID              string        `json:"id"`
	UserID          string        `json:"userId"`
	RoomID          string        `json:"roomId"`
	CheckInDate     time.Time     `json:"checkInDate"`
	CheckOutDate    time.Time     `json:"checkOutDate"`
	NumberOfGuests  int           `json:"numberOfGuests"`
	NumberOfNights  int           `json:"numberOfNights"`
	TotalPrice      float64       `json:"totalPrice"`
	Status          BookingStatus `json:"status"`
	PaymentStatus   PaymentStatus `json:"paymentStatus"`
	SpecialRequests string        `json:"specialRequests,omitempty"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
}

// BookingRoom is the room summary joined onto a booking read.
type BookingRoom struct {
	Name   string   `json:"name"`
	Type   string   `json:"type"`
	Price  float64  `json:"price"`
	Images []string `json:"images"`
}

// BookingGuest is the user summary joined onto a booking read.
type BookingGuest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// BookingDetail is a booking with its room and guest summaries.
type BookingDetail struct {
	Booking
	Room  BookingRoom  `json:"room"`
	Guest BookingGuest `json:"user"`
}

// StayRequest is the client input for a new booking.
type StayRequest struct {
	RoomID          string
	CheckIn         time.Time
	CheckOut        time.Time
	NumberOfGuests  int
	SpecialRequests string
}

const stayDateLayout = "2006-01-02"

// ParseStayDate accepts a calendar date (YYYY-MM-DD) or an RFC 3339 timestamp.
func ParseStayDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(stayDateLayout, s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, NewValidationError(fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", s))
}

// Booking limits. MaxBookingTotal matches the NUMERIC(10,2) total_price column.
const (
	MaxStayNights   = 365
	MaxBookingTotal = 99999999.99
)

const secondsPerDay = 24 * 60 * 60

// StayNights is the number of nights between check-in and check-out, rounded up.
// It works on whole seconds so the count stays exact for any pair of dates.
func StayNights(checkIn, checkOut time.Time) (int, error) {
	if !checkOut.After(checkIn) {
		return 0, ErrInvalidDates
	}
	secs := checkOut.Unix() - checkIn.Unix()
	days := secs / secondsPerDay
	if rem := secs % secondsPerDay; rem > 0 || (rem == 0 && checkOut.Nanosecond() > checkIn.Nanosecond()) {
		days++
	}
	return int(days), nil
}

// StayPrice is nights times the nightly rate, rounded to cents.
func StayPrice(nights int, nightly float64) float64 {
	return math.Round(float64(nights)*nightly*100) / 100
}

// NewBooking validates req against room and builds a Pending booking owned by userID.
// Price is snapshotted from the room at this moment.
func NewBooking(id, userID string, room *Room, req StayRequest, now time.Time) (*Booking, error) {
	if !room.Available {
		return nil, ErrRoomUnavailable
	}
	nights, err := StayNights(req.CheckIn, req.CheckOut)
	if err != nil {
		return nil, err
	}
	if nights > MaxStayNights {
		return nil, ErrStayTooLong
	}
	if req.NumberOfGuests < 1 || (room.Capacity > 0 && req.NumberOfGuests > room.Capacity) {
		return nil, ErrInvalidGuests
	}
	total := StayPrice(nights, room.Price)
	if total > MaxBookingTotal {
		return nil, ErrTotalTooHigh
	}

	return &Booking{
		ID:              id,
		UserID:          userID,
		RoomID:          room.ID,
		CheckInDate:     req.CheckIn,
		CheckOutDate:    req.CheckOut,
		NumberOfGuests:  req.NumberOfGuests,
		NumberOfNights:  nights,
		TotalPrice:      total,
		Status:          BookingPending,
		PaymentStatus:   PaymentPending,
		SpecialRequests: req.SpecialRequests,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// Change records one field that a lifecycle operation actually modified.
type Change struct {
	Field string
	From  string
	To    string
}

const (
	FieldStatus  = "status"
	FieldPayment = "payment_status"
)

// ApplyUpdate sets status and/or payment. The explicit status is applied first;
// a payment of Paid on a booking that is then Pending promotes it to Confirmed.
// Nothing is modified when an error is returned.
func (b *Booking) ApplyUpdate(status *BookingStatus, payment *PaymentStatus, now time.Time) ([]Change, error) {
	if status == nil && payment == nil {
		return nil, ErrNoFieldsToUpdate
	}

	nextStatus, nextPayment := b.Status, b.PaymentStatus
	if status != nil {
		if !status.IsValid() {
			return nil, NewValidationError(fmt.Sprintf("invalid booking status: %q", *status))
		}
		if !b.Status.CanTransitionTo(*status) {
			return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, b.Status, *status)
		}
		nextStatus = *status
	}
	if payment != nil {
		if !payment.IsValid() {
			return nil, NewValidationError(fmt.Sprintf("invalid payment status: %q", *payment))
		}
		if !b.PaymentStatus.CanTransitionTo(*payment) {
			return nil, fmt.Errorf("%w: payment %s -> %s", ErrInvalidTransition, b.PaymentStatus, *payment)
		}
		nextPayment = *payment
		if nextPayment == PaymentPaid && nextStatus == BookingPending {
			nextStatus = BookingConfirmed
		}
	}

	var changes []Change
	if nextStatus != b.Status {
		changes = append(changes, Change{Field: FieldStatus, From: string(b.Status), To: string(nextStatus)})
		b.Status = nextStatus
	}
	if nextPayment != b.PaymentStatus {
		changes = append(changes, Change{Field: FieldPayment, From: string(b.PaymentStatus), To: string(nextPayment)})
		b.PaymentStatus = nextPayment
	}
	if len(changes) > 0 {
		b.UpdatedAt = now
	}
	return changes, nil
}

// Cancel moves a Pending or Confirmed booking to Cancelled. Payment is untouched.
func (b *Booking) Cancel(now time.Time) (Change, error) {
	if !b.Status.CanBeCancelled() {
		return Change{}, fmt.Errorf("%w: cannot cancel a %s booking", ErrInvalidTransition, b.Status)
	}
	ch := Change{Field: FieldStatus, From: string(b.Status), To: string(BookingCancelled)}
	b.Status = BookingCancelled
	b.UpdatedAt = now
	return ch, nil
}
