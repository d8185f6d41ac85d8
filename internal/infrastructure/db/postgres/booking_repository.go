package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Sirpyerre/hotel-booking/internal/core/domain"
	"github.com/Sirpyerre/hotel-booking/internal/core/ports"
)

const bookingColumns = `id, user_id, room_id, check_in_date, check_out_date, number_of_guests, number_of_nights,
	total_price, status, payment_status, special_requests, created_at, updated_at`

// selectBookingDetail joins each booking with its room and guest summaries.
const selectBookingDetail = `
	SELECT b.id, b.user_id, b.room_id, b.check_in_date, b.check_out_date, b.number_of_guests,
	       b.number_of_nights, b.total_price, b.status, b.payment_status, b.special_requests,
	       b.created_at, b.updated_at,
	       r.name AS room_name, r.type AS room_type, r.price AS room_price, r.images AS room_images,
	       u.name AS user_name, u.email AS user_email, u.phone AS user_phone
	FROM bookings b
	JOIN rooms r ON r.id = b.room_id
	JOIN users u ON u.id = b.user_id`

type bookingRow struct {
	ID              string    `db:"id"`
	UserID          string    `db:"user_id"`
	RoomID          string    `db:"room_id"`
	CheckInDate     time.Time `db:"check_in_date"`
	CheckOutDate    time.Time `db:"check_out_date"`
	NumberOfGuests  int       `db:"number_of_guests"`
	NumberOfNights  int       `db:"number_of_nights"`
	TotalPrice      float64   `db:"total_price"`
	Status          string    `db:"status"`
	PaymentStatus   string    `db:"payment_status"`
	SpecialRequests string    `db:"special_requests"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

func (r bookingRow) toDomain() domain.Booking {
	return domain.Booking{
		ID:              r.ID,
		UserID:          r.UserID,
		RoomID:          r.RoomID,
		CheckInDate:     r.CheckInDate.UTC(),
		CheckOutDate:    r.CheckOutDate.UTC(),
		NumberOfGuests:  r.NumberOfGuests,
		NumberOfNights:  r.NumberOfNights,
		TotalPrice:      r.TotalPrice,
		Status:          domain.BookingStatus(r.Status),
		PaymentStatus:   domain.PaymentStatus(r.PaymentStatus),
		SpecialRequests: r.SpecialRequests,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

type bookingDetailRow struct {
	bookingRow
	RoomName   string         `db:"room_name"`
	RoomType   string         `db:"room_type"`
	RoomPrice  float64        `db:"room_price"`
	RoomImages sql.NullString `db:"room_images"`
	UserName   string         `db:"user_name"`
	UserEmail  string         `db:"user_email"`
	UserPhone  string         `db:"user_phone"`
}

func (r bookingDetailRow) toDomain() *domain.BookingDetail {
	return &domain.BookingDetail{
		Booking: r.bookingRow.toDomain(),
		Room: domain.BookingRoom{
			Name:   r.RoomName,
			Type:   r.RoomType,
			Price:  r.RoomPrice,
			Images: domain.DecodeStringList(r.RoomImages.String, domain.DefaultImages),
		},
		Guest: domain.BookingGuest{
			Name:  r.UserName,
			Email: r.UserEmail,
			Phone: r.UserPhone,
		},
	}
}

// BookingRepository implements ports.BookingRepository on PostgreSQL.
type BookingRepository struct {
	db *sqlx.DB
}

func NewBookingRepository(db *sqlx.DB) ports.BookingRepository {
	return &BookingRepository{db: db}
}

// Create serialises concurrent bookings of the same room on the room row lock,
// so the overlap check and the insert cannot interleave with another request.
func (r *BookingRepository) Create(ctx context.Context, roomID string, build ports.BuildBookingFunc) (*domain.BookingDetail, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin create booking: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var room roomRow
	if err := tx.GetContext(ctx, &room, `SELECT `+roomColumns+` FROM rooms WHERE id = $1 FOR UPDATE`, roomID); err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidID(err) {
			return nil, domain.ErrRoomNotFound
		}
		return nil, fmt.Errorf("lock room: %w", err)
	}

	b, err := build(room.toDomain())
	if err != nil {
		return nil, err
	}

	var overlapping int
	err = tx.GetContext(ctx, &overlapping, `
		SELECT COUNT(*) FROM bookings
		WHERE room_id = $1
		  AND status IN ('Pending', 'Confirmed')
		  AND check_in_date < $2
		  AND check_out_date > $3`,
		roomID, b.CheckOutDate, b.CheckInDate)
	if err != nil {
		return nil, fmt.Errorf("check overlap: %w", err)
	}
	if overlapping > 0 {
		return nil, domain.ErrBookingOverlap
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO bookings (`+bookingColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		b.ID, b.UserID, b.RoomID, b.CheckInDate, b.CheckOutDate, b.NumberOfGuests, b.NumberOfNights,
		b.TotalPrice, b.Status, b.PaymentStatus, b.SpecialRequests, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, fmt.Errorf("insert booking: %w", err)
	}

	detail, err := findDetail(ctx, tx, b.ID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit create booking: %w", err)
	}
	return detail, nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id string) (*domain.BookingDetail, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return findDetail(ctx, r.db, id)
}

func (r *BookingRepository) ListByUser(ctx context.Context, userID string) ([]*domain.BookingDetail, error) {
	return r.list(ctx, selectBookingDetail+` WHERE b.user_id = $1 ORDER BY b.created_at DESC`, userID)
}

func (r *BookingRepository) ListAll(ctx context.Context) ([]*domain.BookingDetail, error) {
	return r.list(ctx, selectBookingDetail+` ORDER BY b.created_at DESC`)
}

func (r *BookingRepository) list(ctx context.Context, query string, args ...any) ([]*domain.BookingDetail, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var rows []bookingDetailRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		if isInvalidID(err) {
			return []*domain.BookingDetail{}, nil
		}
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	out := make([]*domain.BookingDetail, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

// Mutate runs read-lock-modify-write on one booking. Only status, payment
// status and updated_at are persisted; references and pricing are immutable.
func (r *BookingRepository) Mutate(ctx context.Context, id string, fn ports.MutateBookingFunc) (*domain.BookingDetail, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin update booking: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var row bookingRow
	if err := tx.GetContext(ctx, &row, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1 FOR UPDATE`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidID(err) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, fmt.Errorf("lock booking: %w", err)
	}

	b := row.toDomain()
	if err := fn(&b); err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE bookings SET status = $1, payment_status = $2, updated_at = $3 WHERE id = $4`,
		b.Status, b.PaymentStatus, b.UpdatedAt, id)
	if err != nil {
		return nil, fmt.Errorf("update booking: %w", err)
	}

	detail, err := findDetail(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit update booking: %w", err)
	}
	return detail, nil
}

func findDetail(ctx context.Context, q sqlx.QueryerContext, id string) (*domain.BookingDetail, error) {
	var row bookingDetailRow
	if err := sqlx.GetContext(ctx, q, &row, selectBookingDetail+` WHERE b.id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidID(err) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, fmt.Errorf("find booking: %w", err)
	}
	return row.toDomain(), nil
}
