package ports

import (
	"context"

	"github.com/Sirpyerre/hotel-booking/internal/core/domain"
)

// SignupInput carries the fields of a self-service registration.
type SignupInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
}

// AuthResult is returned by signup and login.
type AuthResult struct {
	Token string
	User  *domain.User
}

type AuthService interface {
	Signup(ctx context.Context, input SignupInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	// Authenticate verifies a bearer credential and re-reads the account it
	// names. Unknown, deleted or deactivated accounts are rejected.
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}
