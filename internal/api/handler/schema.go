package handler

import (
	"github.com/Sirpyerre/hotel-booking/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- auth ---

type signupRequest struct {
	Name     string `json:"name"     validate:"required,max=100"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone"    validate:"max=30"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

// --- rooms ---

type createRoomRequest struct {
	Name        string   `json:"name"        validate:"required"`
	Type        string   `json:"type"        validate:"required"`
	Description string   `json:"description"`
	Price       float64  `json:"price"       validate:"required,gt=0,lte=99999999.99"`
	Capacity    int      `json:"capacity"    validate:"required,gte=1"`
	Size        int      `json:"size"        validate:"gte=0"`
	Amenities   []string `json:"amenities"`
	Images      []string `json:"images"`
	Available   *bool    `json:"available"`
	Rating      float64  `json:"rating"      validate:"gte=0,lte=5"`
	Featured    bool     `json:"featured"`
}

// updateRoomRequest is partial: absent fields are nil and left untouched.
type updateRoomRequest struct {
	Name        *string   `json:"name"`
	Type        *string   `json:"type"`
	Description *string   `json:"description"`
	Price       *float64  `json:"price"     validate:"omitempty,gt=0,lte=99999999.99"`
	Capacity    *int      `json:"capacity"  validate:"omitempty,gte=1"`
	Size        *int      `json:"size"      validate:"omitempty,gte=0"`
	Amenities   *[]string `json:"amenities"`
	Images      *[]string `json:"images"`
	Available   *bool     `json:"available"`
	Rating      *float64  `json:"rating"    validate:"omitempty,gte=0,lte=5"`
	Featured    *bool     `json:"featured"`
}

// --- bookings ---

type createBookingRequest struct {
	RoomID          string `json:"roomId"          validate:"required"`
	CheckInDate     string `json:"checkInDate"     validate:"required"`
	CheckOutDate    string `json:"checkOutDate"    validate:"required"`
	NumberOfGuests  int    `json:"numberOfGuests"  validate:"required,gte=1"`
	SpecialRequests string `json:"specialRequests" validate:"max=1000"`
}

type updateBookingRequest struct {
	Status        *string `json:"status"        validate:"omitempty,oneof=Pending Confirmed Cancelled Completed"`
	PaymentStatus *string `json:"paymentStatus" validate:"omitempty,oneof=Pending Paid Refunded"`
}

type paymentRequest struct {
	PaymentStatus string `json:"paymentStatus" validate:"required,oneof=Pending Paid Refunded"`
}

// --- users ---

type updateProfileRequest struct {
	Name     *string `json:"name"     validate:"omitempty,min=1,max=100"`
	Email    *string `json:"email"    validate:"omitempty,email"`
	Phone    *string `json:"phone"    validate:"omitempty,max=30"`
	Avatar   *string `json:"avatar"`
	Password *string `json:"password" validate:"omitempty,min=6"`
}

type userStatusRequest struct {
	IsActive *bool `json:"isActive" validate:"required"`
}
