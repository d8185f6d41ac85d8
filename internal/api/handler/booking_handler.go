package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Sirpyerre/hotel-booking/internal/core/domain"
	"github.com/Sirpyerre/hotel-booking/internal/core/ports"
)

const headerIdempotencyKey = "Idempotency-Key"

// BookingHandler exposes the booking lifecycle.
type BookingHandler struct {
	service ports.BookingService
}

func NewBookingHandler(service ports.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

// Create handles POST /api/bookings.
//
// @Summary      Book a room
// @Description  A repeated Idempotency-Key returns the original booking with 200.
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string                false  "Idempotency key to prevent duplicate submissions"
// @Param        body             body      createBookingRequest  true   "Stay"
// @Success      201              {object}  domain.BookingDetail
// @Success      200              {object}  domain.BookingDetail
// @Failure      400              {object}  errorResponse
// @Failure      401              {object}  errorResponse
// @Failure      404              {object}  errorResponse
// @Failure      409              {object}  errorResponse
// @Router       /api/bookings [post]
func (h *BookingHandler) Create(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req createBookingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	stay, err := toStayRequest(req)
	if err != nil {
		return err
	}

	res, err := h.service.CreateBooking(c.Request().Context(), p, ports.CreateBookingInput{
		Stay:           stay,
		IdempotencyKey: strings.TrimSpace(c.Request().Header.Get(headerIdempotencyKey)),
	})
	if err != nil {
		return err
	}

	status := http.StatusCreated
	if res.AlreadyExisted {
		status = http.StatusOK
	}
	return c.JSON(status, res.Booking)
}

// ListMine handles GET /api/bookings/user.
//
// @Summary      My bookings
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.BookingDetail
// @Failure      401  {object}  errorResponse
// @Router       /api/bookings/user [get]
func (h *BookingHandler) ListMine(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	bookings, err := h.service.ListMyBookings(c.Request().Context(), p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bookings)
}

// ListAll handles GET /api/bookings/admin.
//
// @Summary      All bookings
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.BookingDetail
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/bookings/admin [get]
func (h *BookingHandler) ListAll(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	bookings, err := h.service.ListAllBookings(c.Request().Context(), p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bookings)
}

// Get handles GET /api/bookings/:id. Owners and admins only.
//
// @Summary      Get a booking
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Booking id"
// @Success      200  {object}  domain.BookingDetail
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/bookings/{id} [get]
func (h *BookingHandler) Get(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	b, err := h.service.GetBooking(c.Request().Context(), p, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, b)
}

// Update handles PUT /api/bookings/:id (admin).
//
// @Summary      Update booking status
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Booking id"
// @Param        body  body      updateBookingRequest  true  "Status and/or payment status"
// @Success      200   {object}  domain.BookingDetail
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/bookings/{id} [put]
func (h *BookingHandler) Update(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req updateBookingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	b, err := h.service.UpdateBooking(c.Request().Context(), p, c.Param("id"), toUpdateBookingInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, b)
}

// UpdatePayment handles PUT /api/bookings/:id/payment (admin).
//
// @Summary      Update payment status
// @Description  Marking a pending booking as Paid also confirms it.
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Booking id"
// @Param        body  body      paymentRequest  true  "Payment status"
// @Success      200   {object}  domain.BookingDetail
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/bookings/{id}/payment [put]
func (h *BookingHandler) UpdatePayment(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req paymentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	b, err := h.service.UpdatePayment(c.Request().Context(), p, c.Param("id"), domain.PaymentStatus(req.PaymentStatus))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, b)
}

// Cancel handles DELETE /api/bookings/:id. Only the owner may cancel.
//
// @Summary      Cancel a booking
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Booking id"
// @Success      200  {object}  domain.BookingDetail
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /api/bookings/{id} [delete]
func (h *BookingHandler) Cancel(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	b, err := h.service.CancelBooking(c.Request().Context(), p, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, b)
}

// History handles GET /api/bookings/:id/history.
//
// @Summary      Booking audit trail
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Booking id"
// @Success      200  {array}   domain.BookingEvent
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/bookings/{id}/history [get]
func (h *BookingHandler) History(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	events, err := h.service.History(c.Request().Context(), p, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, events)
}
