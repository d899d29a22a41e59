package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-management/internal/model"
	"github.com/iliyamo/hotel-management/internal/repository"
)

// RoomHandler serves the room inventory endpoints.  Room CRUD is
// independent of the reservation service; only the status PATCH and
// the reservation transactions ever write rooms.status.
type RoomHandler struct {
	Rooms *repository.RoomRepo
}

// NewRoomHandler constructs a RoomHandler.
func NewRoomHandler(rooms *repository.RoomRepo) *RoomHandler {
	if rooms == nil {
		panic("nil repository passed to NewRoomHandler")
	}
	return &RoomHandler{Rooms: rooms}
}

type roomReq struct {
	RoomNumber string  `json:"room_number" validate:"required"`
	Type       string  `json:"type" validate:"required"`
	Capacity   uint32  `json:"capacity" validate:"gte=1"`
	Rate       float64 `json:"rate" validate:"gte=0"`
	Status     string  `json:"status"`
}

// List handles GET /v1/rooms.
func (h *RoomHandler) List(c echo.Context) error {
	rooms, err := h.Rooms.List(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("list rooms: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch rooms"})
	}
	return c.JSON(http.StatusOK, rooms)
}

// Get handles GET /v1/rooms/:id.
func (h *RoomHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	room, err := h.Rooms.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		c.Logger().Errorf("get room %d: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch room"})
	}
	return c.JSON(http.StatusOK, room)
}

// Create handles POST /v1/rooms.
func (h *RoomHandler) Create(c echo.Context) error {
	var req roomReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if req.Status != "" && !model.ValidRoomStatus(req.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room status"})
	}
	room := model.Room{
		RoomNumber: req.RoomNumber,
		Type:       req.Type,
		Capacity:   req.Capacity,
		Rate:       req.Rate,
		Status:     req.Status,
	}
	if err := h.Rooms.Create(c.Request().Context(), &room); err != nil {
		if errors.Is(err, repository.ErrRoomNumberTaken) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "room number already exists"})
		}
		c.Logger().Errorf("create room: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create room"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": room.ID, "message": "room created"})
}

// Update handles PUT /v1/rooms/:id.
func (h *RoomHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	var req roomReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if !model.ValidRoomStatus(req.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room status"})
	}
	room := model.Room{
		RoomNumber: req.RoomNumber,
		Type:       req.Type,
		Capacity:   req.Capacity,
		Rate:       req.Rate,
		Status:     req.Status,
	}
	if err := h.Rooms.Update(c.Request().Context(), id, room); err != nil {
		switch {
		case errors.Is(err, repository.ErrRoomNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		case errors.Is(err, repository.ErrRoomNumberTaken):
			return c.JSON(http.StatusConflict, echo.Map{"error": "room number already exists"})
		}
		c.Logger().Errorf("update room %d: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update room"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "room updated"})
}

// Delete handles DELETE /v1/rooms/:id.
func (h *RoomHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	if err := h.Rooms.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		c.Logger().Errorf("delete room %d: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete room"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "room deleted"})
}

// UpdateStatus handles PATCH /v1/rooms/:id/status, the manual override
// path (e.g. putting a room into maintenance).  Only the persisted
// statuses are accepted; the UI-only "cleaning" state never reaches
// the database.
func (h *RoomHandler) UpdateStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if !model.ValidRoomStatus(req.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room status"})
	}
	if err := h.Rooms.SetStatus(c.Request().Context(), id, req.Status); err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		c.Logger().Errorf("update room status %d: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update room status"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "room status updated"})
}
