package domain

import "errors"

// ErrInvalidRequest matches every ValidationError via errors.Is.
var ErrInvalidRequest = errors.New("invalid request")

// ValidationError is a client input problem; its message is safe to return as-is.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidRequest }

// NewValidationError builds a 400-class error with a client-facing message.
func NewValidationError(msg string) error {
	return &ValidationError{Msg: msg}
}

// Validation failures (400).
var (
	ErrNoFieldsToUpdate = NewValidationError("no fields to update")
	ErrUserExists       = NewValidationError("user already exists")
	ErrRoomUnavailable  = NewValidationError("room is not available")
	ErrInvalidDates     = NewValidationError("check-out date must be after check-in date")
	ErrInvalidGuests    = NewValidationError("number of guests must be between 1 and the room capacity")
	ErrStayTooLong      = NewValidationError("a stay cannot be longer than 365 nights")
	ErrTotalTooHigh     = NewValidationError("total price exceeds the maximum allowed amount")
)

// Authentication failures (401).
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthenticated    = errors.New("not authenticated")
	ErrAccountDisabled    = errors.New("account is disabled")
)

// ErrForbidden is returned when the caller lacks the capability (403).
var ErrForbidden = errors.New("access forbidden")

// Lookups (404).
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrRoomNotFound    = errors.New("room not found")
	ErrBookingNotFound = errors.New("booking not found")
)

// Conflicts with current state (409).
var (
	ErrBookingOverlap      = errors.New("room is already booked for the selected dates")
	ErrIdempotencyInFlight = errors.New("a request with this idempotency key is still being processed")
	ErrRoomInUse           = errors.New("room has bookings and cannot be deleted")
	ErrUserHasBookings     = errors.New("user has bookings and cannot be deleted")
	ErrSelfDelete          = errors.New("admins cannot delete their own account")
)

// ErrInvalidTransition is returned for a disallowed status or payment change (422).
var ErrInvalidTransition = errors.New("invalid status transition")
