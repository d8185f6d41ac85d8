package ports

import (
	"context"

	"github.com/Sirpyerre/hotel-booking/internal/core/domain"
)

// RoomFilter narrows the public catalog listing. Zero values mean no filter.
type RoomFilter struct {
	Type      string
	Available *bool
	MinGuests int
}

// RoomRepository defines persistence operations for the room catalog.
type RoomRepository interface {
	Create(ctx context.Context, room *domain.Room) (*domain.Room, error)
	FindByID(ctx context.Context, id string) (*domain.Room, error)
	// List orders featured rooms first, then newest first.
	List(ctx context.Context, filter RoomFilter) ([]*domain.Room, error)
	Update(ctx context.Context, id string, patch domain.RoomPatch) (*domain.Room, error)
	// Delete fails with domain.ErrRoomInUse when bookings reference the room.
	Delete(ctx context.Context, id string) error
}
