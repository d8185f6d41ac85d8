package ports

import (
	"context"

	"github.com/Sirpyerre/hotel-booking/internal/core/domain"
)

// UserRepository defines persistence operations for accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByEmail matches the normalized (lower-cased) address.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	UpdateProfile(ctx context.Context, id string, patch domain.ProfilePatch) (*domain.User, error)
	SetActive(ctx context.Context, id string, active bool) (*domain.User, error)
	// Delete fails with domain.ErrUserHasBookings when bookings reference the user.
	Delete(ctx context.Context, id string) error
}
