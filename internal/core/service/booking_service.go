package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Sirpyerre/hotel-booking/internal/api/metrics"
	"github.com/Sirpyerre/hotel-booking/internal/core/domain"
	"github.com/Sirpyerre/hotel-booking/internal/core/ports"
)

// IdempotencyStore abstracts the idempotency key store (Redis).
type IdempotencyStore interface {
	// Reserve claims key for scope. When the key is already taken it returns
	// reserved=false and the booking id recorded for it, or "" while the first
	// request is still in flight.
	Reserve(ctx context.Context, scope, key string) (bookingID string, reserved bool, err error)
	Complete(ctx context.Context, scope, key, bookingID string) error
	Release(ctx context.Context, scope, key string) error
}

type BookingService struct {
	repo   ports.BookingRepository
	events ports.EventPublisher
	audit  ports.EventRepository
	idem   IdempotencyStore
	logger zerolog.Logger
	now    func() time.Time
}

// NewBookingService wires the booking engine. idem may be nil, in which case
// Idempotency-Key headers are ignored.
func NewBookingService(
	repo ports.BookingRepository,
	events ports.EventPublisher,
	audit ports.EventRepository,
	idem IdempotencyStore,
	logger zerolog.Logger,
) *BookingService {
	return &BookingService{
		repo:   repo,
		events: events,
		audit:  audit,
		idem:   idem,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// CreateBooking books a room for the caller. The room lock, availability and
// overlap checks and the insert happen in one transaction in the repository.
func (s *BookingService) CreateBooking(ctx context.Context, actor domain.Principal, in ports.CreateBookingInput) (*ports.CreateBookingResult, error) {
	if in.Stay.RoomID == "" {
		return nil, domain.NewValidationError("roomId is required")
	}

	key := in.IdempotencyKey
	if key != "" && s.idem != nil {
		existingID, reserved, err := s.idem.Reserve(ctx, actor.UserID, key)
		switch {
		case err != nil:
			s.logger.Warn().Err(err).Str("idempotency_key", key).Msg("idempotency reserve failed, processing anyway")
			key = ""
		case reserved:
			metrics.IdempotencyTotal.WithLabelValues("miss").Inc()
		case existingID == "":
			metrics.IdempotencyTotal.WithLabelValues("in_flight").Inc()
			return nil, domain.ErrIdempotencyInFlight
		default:
			metrics.IdempotencyTotal.WithLabelValues("replay").Inc()
			existing, err := s.repo.FindByID(ctx, existingID)
			if err != nil {
				return nil, fmt.Errorf("idempotent replay: %w", err)
			}
			s.logger.Info().Str("idempotency_key", key).Str("booking_id", existing.ID).Msg("idempotent replay")
			return &ports.CreateBookingResult{Booking: existing, AlreadyExisted: true}, nil
		}
	} else {
		key = ""
	}

	now := s.now()
	detail, err := s.repo.Create(ctx, in.Stay.RoomID, func(room *domain.Room) (*domain.Booking, error) {
		return domain.NewBooking(uuid.NewString(), actor.UserID, room, in.Stay, now)
	})
	if err != nil {
		if key != "" {
			if relErr := s.idem.Release(ctx, actor.UserID, key); relErr != nil {
				s.logger.Warn().Err(relErr).Str("idempotency_key", key).Msg("failed to release idempotency key")
			}
		}
		return nil, err
	}

	if key != "" {
		if err := s.idem.Complete(ctx, actor.UserID, key, detail.ID); err != nil {
			s.logger.Warn().Err(err).Str("idempotency_key", key).Msg("failed to record idempotency key")
		}
	}

	metrics.BookingsCreatedTotal.WithLabelValues(detail.Room.Type).Inc()
	s.events.Publish(domain.BookingEvent{
		BookingID:  detail.ID,
		Type:       domain.EventBookingCreated,
		ActorID:    actor.UserID,
		ActorRole:  actor.Role,
		To:         string(detail.Status),
		OccurredAt: now,
	})

	s.logger.Info().
		Str("booking_id", detail.ID).
		Str("room_id", detail.RoomID).
		Str("user_id", actor.UserID).
		Int("nights", detail.NumberOfNights).
		Msg("booking created")

	return &ports.CreateBookingResult{Booking: detail}, nil
}

func (s *BookingService) GetBooking(ctx context.Context, actor domain.Principal, id string) (*domain.BookingDetail, error) {
	detail, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanViewBooking(&detail.Booking) {
		return nil, domain.ErrForbidden
	}
	return detail, nil
}

// ListMyBookings always scopes to the caller.
func (s *BookingService) ListMyBookings(ctx context.Context, actor domain.Principal) ([]*domain.BookingDetail, error) {
	return s.repo.ListByUser(ctx, actor.UserID)
}

func (s *BookingService) ListAllBookings(ctx context.Context, actor domain.Principal) ([]*domain.BookingDetail, error) {
	if !actor.CanManageBookings() {
		return nil, domain.ErrForbidden
	}
	return s.repo.ListAll(ctx)
}

func (s *BookingService) UpdateBooking(ctx context.Context, actor domain.Principal, id string, in ports.UpdateBookingInput) (*domain.BookingDetail, error) {
	if !actor.CanManageBookings() {
		return nil, domain.ErrForbidden
	}
	if in.Status == nil && in.PaymentStatus == nil {
		return nil, domain.ErrNoFieldsToUpdate
	}
	return s.mutate(ctx, actor, id, func(b *domain.Booking, now time.Time) ([]domain.Change, error) {
		return b.ApplyUpdate(in.Status, in.PaymentStatus, now)
	})
}

func (s *BookingService) UpdatePayment(ctx context.Context, actor domain.Principal, id string, payment domain.PaymentStatus) (*domain.BookingDetail, error) {
	if !actor.CanManageBookings() {
		return nil, domain.ErrForbidden
	}
	if !payment.IsValid() {
		return nil, domain.NewValidationError(fmt.Sprintf("invalid payment status: %q", payment))
	}
	return s.mutate(ctx, actor, id, func(b *domain.Booking, now time.Time) ([]domain.Change, error) {
		return b.ApplyUpdate(nil, &payment, now)
	})
}

// CancelBooking is owner-only. The ownership check runs on the locked row.
func (s *BookingService) CancelBooking(ctx context.Context, actor domain.Principal, id string) (*domain.BookingDetail, error) {
	return s.mutate(ctx, actor, id, func(b *domain.Booking, now time.Time) ([]domain.Change, error) {
		if !actor.CanCancelBooking(b) {
			return nil, domain.ErrForbidden
		}
		ch, err := b.Cancel(now)
		if err != nil {
			return nil, err
		}
		return []domain.Change{ch}, nil
	})
}

// History returns the audit trail of a booking the caller may view.
func (s *BookingService) History(ctx context.Context, actor domain.Principal, id string) ([]domain.BookingEvent, error) {
	if _, err := s.GetBooking(ctx, actor, id); err != nil {
		return nil, err
	}
	events, err := s.audit.ListByBooking(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("booking history: %w", err)
	}
	return events, nil
}

func (s *BookingService) mutate(
	ctx context.Context,
	actor domain.Principal,
	id string,
	fn func(b *domain.Booking, now time.Time) ([]domain.Change, error),
) (*domain.BookingDetail, error) {
	now := s.now()
	var changes []domain.Change

	detail, err := s.repo.Mutate(ctx, id, func(b *domain.Booking) error {
		var err error
		changes, err = fn(b, now)
		return err
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidTransition) {
			metrics.BookingTransitionErrorsTotal.Inc()
		}
		return nil, err
	}

	for _, ch := range changes {
		metrics.BookingTransitionsTotal.WithLabelValues(ch.Field, ch.From, ch.To).Inc()
	}
	for _, ev := range domain.EventsForChanges(id, actor, changes, now) {
		s.events.Publish(ev)
	}

	if len(changes) > 0 {
		s.logger.Info().
			Str("booking_id", id).
			Str("actor_id", actor.UserID).
			Str("status", string(detail.Status)).
			Str("payment_status", string(detail.PaymentStatus)).
			Msg("booking updated")
	}
	return detail, nil
}
