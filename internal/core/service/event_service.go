package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Sirpyerre/hotel-booking/internal/api/metrics"
	"github.com/Sirpyerre/hotel-booking/internal/core/domain"
	"github.com/Sirpyerre/hotel-booking/internal/core/ports"
)

type eventService struct {
	eventRepo ports.EventRepository
	log       zerolog.Logger
}

// NewEventService returns the EventService that persists booking audit entries.
func NewEventService(eventRepo ports.EventRepository, log zerolog.Logger) ports.EventService {
	return &eventService{eventRepo: eventRepo, log: log}
}

// Process validates and stores a single audit entry.
func (s *eventService) Process(ctx context.Context, ev domain.BookingEvent) error {
	if ev.BookingID == "" || ev.Type == "" {
		metrics.AuditEventsErrorsTotal.WithLabelValues("invalid_event").Inc()
		return fmt.Errorf("process audit event: %w", domain.ErrInvalidRequest)
	}

	if err := s.eventRepo.InsertEvent(ctx, &ev); err != nil {
		metrics.AuditEventsErrorsTotal.WithLabelValues("insert_failed").Inc()
		return fmt.Errorf("process audit event: %w", err)
	}

	metrics.AuditEventsProcessedTotal.WithLabelValues(string(ev.Type)).Inc()
	s.log.Debug().
		Str("booking_id", ev.BookingID).
		Str("type", string(ev.Type)).
		Msg("audit event recorded")
	return nil
}
