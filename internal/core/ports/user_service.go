package ports

import (
	"context"

	"github.com/Sirpyerre/hotel-booking/internal/core/domain"
)

// UpdateProfileInput is a partial profile update. Nil fields are left untouched;
// a new password is hashed before it is stored.
type UpdateProfileInput struct {
	Name     *string
	Email    *string
	Phone    *string
	Avatar   *string
	Password *string
}

type UserService interface {
	GetProfile(ctx context.Context, actor domain.Principal) (*domain.User, error)
	UpdateProfile(ctx context.Context, actor domain.Principal, input UpdateProfileInput) (*domain.User, error)
	ListUsers(ctx context.Context, actor domain.Principal) ([]*domain.User, error)
	DeleteUser(ctx context.Context, actor domain.Principal, id string) error
	SetUserActive(ctx context.Context, actor domain.Principal, id string, active bool) (*domain.User, error)
}
