package ports

import (
	"context"

	"github.com/Sirpyerre/hotel-booking/internal/core/domain"
)

// RoomService defines catalog use cases. Mutations require an admin principal.
type RoomService interface {
	ListRooms(ctx context.Context, filter RoomFilter) ([]*domain.Room, error)
	GetRoom(ctx context.Context, id string) (*domain.Room, error)
	CreateRoom(ctx context.Context, actor domain.Principal, room *domain.Room) (*domain.Room, error)
	UpdateRoom(ctx context.Context, actor domain.Principal, id string, patch domain.RoomPatch) (*domain.Room, error)
	DeleteRoom(ctx context.Context, actor domain.Principal, id string) error
}
