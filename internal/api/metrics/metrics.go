// Package metrics defines and registers all custom Prometheus metrics for the
// hotel booking API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default registry on package init via promauto.
// HTTP request metrics come from the echoprometheus middleware.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "hotel"

// ── Booking metrics ───────────────────────────────────────────────────────────

// BookingsCreatedTotal counts newly created bookings.
// Label:
//   - room_type: the booked room's type (e.g. "Deluxe")
var BookingsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bookings_created_total",
		Help:      "Total number of bookings created, by room type.",
	},
	[]string{"room_type"},
)

// BookingTransitionsTotal counts effective lifecycle changes.
// Labels:
//   - field: "status" or "payment_status"
//   - from, to: the old and new values
var BookingTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "booking_transitions_total",
		Help:      "Total number of booking status and payment changes.",
	},
	[]string{"field", "from", "to"},
)

// BookingTransitionErrorsTotal counts rejected lifecycle changes.
var BookingTransitionErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "booking_transition_errors_total",
		Help:      "Total number of booking changes rejected by the state machine.",
	},
)

// ── Audit trail metrics ───────────────────────────────────────────────────────

// AuditEventsProcessedTotal counts audit entries written to the history store.
// Label:
//   - type: the event type (e.g. "created", "payment_changed")
var AuditEventsProcessedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_processed_total",
		Help:      "Total number of booking audit events persisted.",
	},
	[]string{"type"},
)

// AuditEventsErrorsTotal counts audit entries that were not persisted.
// Label:
//   - reason: "invalid_event", "insert_failed" or "queue_full"
var AuditEventsErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_errors_total",
		Help:      "Total number of booking audit events that failed or were dropped.",
	},
	[]string{"reason"},
)

// AuditQueueDepth tracks the number of events waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// AuditProcessingDuration measures how long writing one audit event takes.
var AuditProcessingDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "audit_processing_duration_seconds",
		Help:      "Duration of audit event processing from dequeue to persistence.",
		Buckets:   prometheus.DefBuckets,
	},
)

// ── Idempotency metrics ───────────────────────────────────────────────────────

// IdempotencyTotal counts idempotency key decisions.
// Label:
//   - result: "miss" (new request), "replay" (earlier booking returned) or "in_flight"
var IdempotencyTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "idempotency_checks_total",
		Help:      "Total number of idempotency key checks, labelled by result.",
	},
	[]string{"result"},
)
