package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Sirpyerre/hotel-booking/internal/core/domain"
	"github.com/Sirpyerre/hotel-booking/internal/core/ports"
)

type RoomService struct {
	repo   ports.RoomRepository
	logger zerolog.Logger
}

func NewRoomService(repo ports.RoomRepository, logger zerolog.Logger) *RoomService {
	return &RoomService{repo: repo, logger: logger}
}

func (s *RoomService) ListRooms(ctx context.Context, filter ports.RoomFilter) ([]*domain.Room, error) {
	return s.repo.List(ctx, filter)
}

func (s *RoomService) GetRoom(ctx context.Context, id string) (*domain.Room, error) {
	return s.repo.FindByID(ctx, id)
}

// CreateRoom validates the required catalog fields and fills the optional ones
// with their defaults.
func (s *RoomService) CreateRoom(ctx context.Context, actor domain.Principal, room *domain.Room) (*domain.Room, error) {
	if !actor.CanManageRooms() {
		return nil, domain.ErrForbidden
	}
	if strings.TrimSpace(room.Name) == "" || strings.TrimSpace(room.Type) == "" {
		return nil, domain.NewValidationError("name and type are required")
	}
	if room.Price <= 0 {
		return nil, domain.NewValidationError("price must be greater than 0")
	}
	if room.Capacity <= 0 {
		return nil, domain.NewValidationError("capacity must be greater than 0")
	}

	now := time.Now().UTC()
	room.ID = uuid.NewString()
	room.CreatedAt = now
	room.UpdatedAt = now
	room.ApplyDefaults()

	created, err := s.repo.Create(ctx, room)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create room")
		return nil, err
	}

	s.logger.Info().Str("room_id", created.ID).Str("actor_id", actor.UserID).Msg("room created")
	return created, nil
}

func (s *RoomService) UpdateRoom(ctx context.Context, actor domain.Principal, id string, patch domain.RoomPatch) (*domain.Room, error) {
	if !actor.CanManageRooms() {
		return nil, domain.ErrForbidden
	}
	if patch.Empty() {
		return nil, domain.ErrNoFieldsToUpdate
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, patch)
}

func (s *RoomService) DeleteRoom(ctx context.Context, actor domain.Principal, id string) error {
	if !actor.CanManageRooms() {
		return domain.ErrForbidden
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("room_id", id).Str("actor_id", actor.UserID).Msg("room deleted")
	return nil
}
