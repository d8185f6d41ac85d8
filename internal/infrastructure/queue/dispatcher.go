package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Sirpyerre/hotel-booking/internal/api/metrics"
	"github.com/Sirpyerre/hotel-booking/internal/core/domain"
	"github.com/Sirpyerre/hotel-booking/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher fans audit events out to a fixed set of workers, sharding on the
// booking id so that the history of one booking is written in order.
type Dispatcher struct {
	workers []chan domain.BookingEvent
	service ports.EventService
	log     zerolog.Logger
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers shards.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.EventService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.BookingEvent, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.BookingEvent, channelBuffer)
	}
	return d
}

var _ ports.EventPublisher = (*Dispatcher)(nil)

// Start launches the workers. They drain their queue and exit once ctx is
// cancelled; Wait blocks until all of them are gone.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker has returned.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Publish never blocks the request path. When the shard is full the event is
// dropped and counted.
func (d *Dispatcher) Publish(event domain.BookingEvent) {
	idx := d.shardIndex(event.BookingID)
	select {
	case d.workers[idx] <- event:
		metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.AuditEventsErrorsTotal.WithLabelValues("queue_full").Inc()
		d.log.Warn().
			Str("booking_id", event.BookingID).
			Str("type", string(event.Type)).
			Int("worker_id", idx).
			Msg("audit queue full, event dropped")
	}
}

// shardIndex maps a booking id deterministically to a worker index.
func (d *Dispatcher) shardIndex(bookingID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(bookingID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.BookingEvent) {
	defer d.wg.Done()
	label := strconv.Itoa(id)

	for {
		select {
		case <-ctx.Done():
			d.drain(id, ch)
			return
		case event := <-ch:
			metrics.AuditQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
			d.process(ctx, id, event)
		}
	}
}

// drain flushes whatever is buffered at shutdown on a fresh context.
func (d *Dispatcher) drain(id int, ch <-chan domain.BookingEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for {
		select {
		case event := <-ch:
			d.process(ctx, id, event)
		default:
			metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(0)
			return
		}
	}
}

func (d *Dispatcher) process(ctx context.Context, id int, event domain.BookingEvent) {
	start := time.Now()
	err := d.service.Process(ctx, event)
	metrics.AuditProcessingDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		d.log.Error().Err(err).
			Str("booking_id", event.BookingID).
			Str("type", string(event.Type)).
			Int("worker_id", id).
			Msg("audit event processing failed")
	}
}
