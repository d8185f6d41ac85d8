package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Sirpyerre/hotel-booking/internal/core/domain"
	"github.com/Sirpyerre/hotel-booking/internal/core/ports"
)

// RoomHandler serves the public catalog and its admin mutations.
type RoomHandler struct {
	service ports.RoomService
}

func NewRoomHandler(service ports.RoomService) *RoomHandler {
	return &RoomHandler{service: service}
}

// List handles GET /api/rooms.
//
// @Summary      List rooms
// @Description  Featured rooms first, then newest first.
// @Tags         rooms
// @Produce      json
// @Param        type       query     string  false  "Room type"
// @Param        available  query     bool    false  "Only rooms with this availability flag"
// @Param        guests     query     int     false  "Minimum capacity"
// @Success      200        {array}   domain.Room
// @Failure      400        {object}  errorResponse
// @Router       /api/rooms [get]
func (h *RoomHandler) List(c echo.Context) error {
	var (
		f         ports.RoomFilter
		available bool
	)
	if err := echo.QueryParamsBinder(c).
		String("type", &f.Type).
		Int("guests", &f.MinGuests).
		Bool("available", &available).
		BindError(); err != nil {
		return domain.NewValidationError("invalid query parameters")
	}
	// the binder leaves available untouched when absent, which must mean "any"
	if c.QueryParam("available") != "" {
		f.Available = &available
	}

	rooms, err := h.service.ListRooms(c.Request().Context(), f)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rooms)
}

// Get handles GET /api/rooms/:id.
//
// @Summary      Get a room
// @Tags         rooms
// @Produce      json
// @Param        id   path      string  true  "Room id"
// @Success      200  {object}  domain.Room
// @Failure      404  {object}  errorResponse
// @Router       /api/rooms/{id} [get]
func (h *RoomHandler) Get(c echo.Context) error {
	room, err := h.service.GetRoom(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, room)
}

// Create handles POST /api/rooms.
//
// @Summary      Create a room
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createRoomRequest  true  "Room"
// @Success      201   {object}  domain.Room
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/rooms [post]
func (h *RoomHandler) Create(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req createRoomRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	room, err := h.service.CreateRoom(c.Request().Context(), p, toRoom(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, room)
}

// Update handles PUT /api/rooms/:id. Only the supplied fields change.
//
// @Summary      Update a room
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Room id"
// @Param        body  body      updateRoomRequest  true  "Fields to change"
// @Success      200   {object}  domain.Room
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/rooms/{id} [put]
func (h *RoomHandler) Update(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req updateRoomRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	room, err := h.service.UpdateRoom(c.Request().Context(), p, c.Param("id"), toRoomPatch(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, room)
}

// Delete handles DELETE /api/rooms/:id.
//
// @Summary      Delete a room
// @Tags         rooms
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Room id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /api/rooms/{id} [delete]
func (h *RoomHandler) Delete(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteRoom(c.Request().Context(), p, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Room deleted successfully"})
}
