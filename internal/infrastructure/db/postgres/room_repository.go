package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Sirpyerre/hotel-booking/internal/core/domain"
	"github.com/Sirpyerre/hotel-booking/internal/core/ports"
)

const roomColumns = `id, name, type, description, price, capacity, size, amenities, images, available, rating, featured, created_at, updated_at`

// roomRow mirrors the rooms table. List columns are JSON text and may hold
// legacy or corrupt values, decoded leniently by toDomain.
type roomRow struct {
	ID          string         `db:"id"`
	Name        string         `db:"name"`
	Type        string         `db:"type"`
	Description string         `db:"description"`
	Price       float64        `db:"price"`
	Capacity    int            `db:"capacity"`
	Size        int            `db:"size"`
	Amenities   sql.NullString `db:"amenities"`
	Images      sql.NullString `db:"images"`
	Available   bool           `db:"available"`
	Rating      float64        `db:"rating"`
	Featured    bool           `db:"featured"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

func (r roomRow) toDomain() *domain.Room {
	return &domain.Room{
		ID:          r.ID,
		Name:        r.Name,
		Type:        r.Type,
		Description: r.Description,
		Price:       r.Price,
		Capacity:    r.Capacity,
		Size:        r.Size,
		Amenities:   domain.DecodeStringList(r.Amenities.String, domain.DefaultAmenities),
		Images:      domain.DecodeStringList(r.Images.String, domain.DefaultImages),
		Available:   r.Available,
		Rating:      r.Rating,
		Featured:    r.Featured,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// RoomRepository implements ports.RoomRepository on PostgreSQL.
type RoomRepository struct {
	db *sqlx.DB
}

func NewRoomRepository(db *sqlx.DB) ports.RoomRepository {
	return &RoomRepository{db: db}
}

func (r *RoomRepository) Create(ctx context.Context, room *domain.Room) (*domain.Room, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var row roomRow
	err := r.db.GetContext(ctx, &row, `
		INSERT INTO rooms (id, name, type, description, price, capacity, size, amenities, images, available, rating, featured, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING `+roomColumns,
		room.ID, room.Name, room.Type, room.Description, room.Price, room.Capacity, room.Size,
		domain.EncodeStringList(room.Amenities), domain.EncodeStringList(room.Images),
		room.Available, room.Rating, room.Featured, room.CreatedAt, room.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert room: %w", err)
	}
	return row.toDomain(), nil
}

func (r *RoomRepository) FindByID(ctx context.Context, id string) (*domain.Room, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var row roomRow
	if err := r.db.GetContext(ctx, &row, `SELECT `+roomColumns+` FROM rooms WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidID(err) {
			return nil, domain.ErrRoomNotFound
		}
		return nil, fmt.Errorf("find room: %w", err)
	}
	return row.toDomain(), nil
}

func (r *RoomRepository) List(ctx context.Context, f ports.RoomFilter) ([]*domain.Room, error) {
	var (
		conds []string
		args  []any
	)
	if f.Type != "" {
		args = append(args, f.Type)
		conds = append(conds, fmt.Sprintf("type = $%d", len(args)))
	}
	if f.Available != nil {
		args = append(args, *f.Available)
		conds = append(conds, fmt.Sprintf("available = $%d", len(args)))
	}
	if f.MinGuests > 0 {
		args = append(args, f.MinGuests)
		conds = append(conds, fmt.Sprintf("capacity >= $%d", len(args)))
	}

	query := `SELECT ` + roomColumns + ` FROM rooms`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY featured DESC, created_at DESC`

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var rows []roomRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}

	rooms := make([]*domain.Room, 0, len(rows))
	for _, row := range rows {
		rooms = append(rooms, row.toDomain())
	}
	return rooms, nil
}

func (r *RoomRepository) Update(ctx context.Context, id string, p domain.RoomPatch) (*domain.Room, error) {
	if p.Empty() {
		return nil, domain.ErrNoFieldsToUpdate
	}

	var (
		sets []string
		args []any
	)
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if p.Name != nil {
		add("name", *p.Name)
	}
	if p.Type != nil {
		add("type", *p.Type)
	}
	if p.Description != nil {
		add("description", *p.Description)
	}
	if p.Price != nil {
		add("price", *p.Price)
	}
	if p.Capacity != nil {
		add("capacity", *p.Capacity)
	}
	if p.Size != nil {
		add("size", *p.Size)
	}
	if p.Amenities != nil {
		add("amenities", domain.EncodeStringList(*p.Amenities))
	}
	if p.Images != nil {
		add("images", domain.EncodeStringList(*p.Images))
	}
	if p.Available != nil {
		add("available", *p.Available)
	}
	if p.Rating != nil {
		add("rating", *p.Rating)
	}
	if p.Featured != nil {
		add("featured", *p.Featured)
	}
	add("updated_at", time.Now().UTC())
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE rooms SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), roomColumns)

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var row roomRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidID(err) {
			return nil, domain.ErrRoomNotFound
		}
		return nil, fmt.Errorf("update room: %w", err)
	}
	return row.toDomain(), nil
}

func (r *RoomRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM rooms WHERE id = $1`, id)
	if err != nil {
		switch {
		case isForeignKeyViolation(err):
			return domain.ErrRoomInUse
		case isInvalidID(err):
			return domain.ErrRoomNotFound
		}
		return fmt.Errorf("delete room: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete room: %w", err)
	}
	if n == 0 {
		return domain.ErrRoomNotFound
	}
	return nil
}
