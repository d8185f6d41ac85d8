package handler

import (
	"strings"

	"github.com/Sirpyerre/hotel-booking/internal/core/domain"
	"github.com/Sirpyerre/hotel-booking/internal/core/ports"
)

// --- Request → domain / service input ---

func toRoom(r createRoomRequest) *domain.Room {
	available := true
	if r.Available != nil {
		available = *r.Available
	}
	return &domain.Room{
		Name:        strings.TrimSpace(r.Name),
		Type:        strings.TrimSpace(r.Type),
		Description: r.Description,
		Price:       r.Price,
		Capacity:    r.Capacity,
		Size:        r.Size,
		Amenities:   r.Amenities,
		Images:      r.Images,
		Available:   available,
		Rating:      r.Rating,
		Featured:    r.Featured,
	}
}

func toRoomPatch(r updateRoomRequest) domain.RoomPatch {
	return domain.RoomPatch{
		Name:        r.Name,
		Type:        r.Type,
		Description: r.Description,
		Price:       r.Price,
		Capacity:    r.Capacity,
		Size:        r.Size,
		Amenities:   r.Amenities,
		Images:      r.Images,
		Available:   r.Available,
		Rating:      r.Rating,
		Featured:    r.Featured,
	}
}

func toStayRequest(r createBookingRequest) (domain.StayRequest, error) {
	checkIn, err := domain.ParseStayDate(r.CheckInDate)
	if err != nil {
		return domain.StayRequest{}, err
	}
	checkOut, err := domain.ParseStayDate(r.CheckOutDate)
	if err != nil {
		return domain.StayRequest{}, err
	}
	return domain.StayRequest{
		RoomID:          r.RoomID,
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		NumberOfGuests:  r.NumberOfGuests,
		SpecialRequests: strings.TrimSpace(r.SpecialRequests),
	}, nil
}

func toUpdateBookingInput(r updateBookingRequest) ports.UpdateBookingInput {
	var in ports.UpdateBookingInput
	if r.Status != nil {
		s := domain.BookingStatus(*r.Status)
		in.Status = &s
	}
	if r.PaymentStatus != nil {
		p := domain.PaymentStatus(*r.PaymentStatus)
		in.PaymentStatus = &p
	}
	return in
}

func toUpdateProfileInput(r updateProfileRequest) ports.UpdateProfileInput {
	return ports.UpdateProfileInput{
		Name:     r.Name,
		Email:    r.Email,
		Phone:    r.Phone,
		Avatar:   r.Avatar,
		Password: r.Password,
	}
}

// --- Service result → HTTP response ---

func toAuthResponse(r *ports.AuthResult) authResponse {
	return authResponse{User: r.User, Token: r.Token}
}
