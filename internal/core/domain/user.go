package domain

import (
	"strings"
	"time"
)

// Role is the closed set of account roles.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// IsValid reports whether r is a known role.
func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User models an account holder.
type User struct {
	ID           string    `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Phone        string    `json:"phone,omitempty" db:"phone"`
	Role         Role      `json:"role" db:"role"`
	Avatar       string    `json:"avatar,omitempty" db:"avatar"`
	IsActive     bool      `json:"isActive" db:"is_active"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// Principal returns the authorization view of the user.
func (u *User) Principal() Principal {
	return Principal{UserID: u.ID, Role: u.Role}
}

// NormalizeEmail lower-cases and trims an address so uniqueness is case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ProfilePatch is a partial update of the caller's own profile.
// Nil fields are left untouched.
type ProfilePatch struct {
	Name         *string
	Email        *string
	Phone        *string
	Avatar       *string
	PasswordHash *string
}

// Empty reports whether the patch carries no field at all.
func (p ProfilePatch) Empty() bool {
	return p.Name == nil && p.Email == nil && p.Phone == nil && p.Avatar == nil && p.PasswordHash == nil
}
