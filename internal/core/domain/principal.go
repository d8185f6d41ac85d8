package domain

// Principal is the authenticated caller, resolved fresh from the user store
// on every request.
type Principal struct {
	UserID string
	Role   Role
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// CanViewBooking is true for the booking owner and for admins.
func (p Principal) CanViewBooking(b *Booking) bool {
	return p.IsAdmin() || (b != nil && b.UserID == p.UserID)
}

// CanCancelBooking is owner-only; admins change status through the update path.
func (p Principal) CanCancelBooking(b *Booking) bool {
	return b != nil && b.UserID == p.UserID
}

func (p Principal) CanManageRooms() bool {
	return p.IsAdmin()
}

func (p Principal) CanManageUsers() bool {
	return p.IsAdmin()
}

// CanManageBookings gates the admin-wide listing and the status/payment updates.
func (p Principal) CanManageBookings() bool {
	return p.IsAdmin()
}
