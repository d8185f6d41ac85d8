package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Sirpyerre/hotel-booking/internal/core/domain"
	"github.com/Sirpyerre/hotel-booking/internal/core/ports"
)

const collectionBookingEvents = "booking_events"

// EventRepository stores the booking audit trail in MongoDB.
type EventRepository struct {
	col *mongo.Collection
}

func NewEventRepository(db *mongo.Database) *EventRepository {
	return &EventRepository{col: db.Collection(collectionBookingEvents)}
}

var _ ports.EventRepository = (*EventRepository)(nil)

// InsertEvent appends one entry to the audit trail.
func (r *EventRepository) InsertEvent(ctx context.Context, event *domain.BookingEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := *event
	doc.OccurredAt = doc.OccurredAt.UTC()
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert booking event: %w", err)
	}
	return nil
}

// historySort orders by occurrence. Events written in one change share a
// timestamp, so the insertion-ordered _id breaks ties.
var historySort = bson.D{
	{Key: "occurred_at", Value: 1},
	{Key: "_id", Value: 1},
}

// ListByBooking returns the trail of one booking ordered by occurrence.
func (r *EventRepository) ListByBooking(ctx context.Context, bookingID string) ([]domain.BookingEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(historySort)
	cur, err := r.col.Find(ctx, bson.M{"booking_id": bookingID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find booking events: %w", err)
	}

	events := make([]domain.BookingEvent, 0)
	if err := cur.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("decode booking events: %w", err)
	}
	return events, nil
}

// EnsureIndexes creates the indexes backing ListByBooking.
func (r *EventRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "booking_id", Value: 1}, {Key: "occurred_at", Value: 1}, {Key: "_id", Value: 1}}},
		{Keys: bson.D{{Key: "actor_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
