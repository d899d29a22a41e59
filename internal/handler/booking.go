package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-management/internal/model"
	"github.com/iliyamo/hotel-management/internal/queue"
	"github.com/iliyamo/hotel-management/internal/repository"
	"github.com/iliyamo/hotel-management/internal/service"
)

// BookingHandler serves the booking endpoints.  Create, cancel,
// check-in and check-out go through the reservation service so the
// room status stays consistent; the partial update and the read paths
// talk to the repository directly.
type BookingHandler struct {
	Bookings     *repository.BookingRepo
	Reservations *service.ReservationService
}

// NewBookingHandler constructs a BookingHandler.
func NewBookingHandler(bookings *repository.BookingRepo, reservations *service.ReservationService) *BookingHandler {
	if bookings == nil || reservations == nil {
		panic("nil dependency passed to NewBookingHandler")
	}
	return &BookingHandler{Bookings: bookings, Reservations: reservations}
}

type createBookingReq struct {
	GuestID      uint64 `json:"guest_id" validate:"required"`
	RoomID       uint64 `json:"room_id" validate:"required"`
	CheckInDate  string `json:"check_in_date" validate:"required"`
	CheckOutDate string `json:"check_out_date" validate:"required"`
	Status       string `json:"status"` // optional, defaults to confirmed
}

// List handles GET /v1/bookings.
func (h *BookingHandler) List(c echo.Context) error {
	bookings, err := h.Bookings.List(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("list bookings: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch bookings"})
	}
	return c.JSON(http.StatusOK, bookings)
}

// Get handles GET /v1/bookings/:id.
func (h *BookingHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	booking, err := h.Bookings.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		c.Logger().Errorf("get booking %d: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch booking"})
	}
	return c.JSON(http.StatusOK, booking)
}

// ListByDateRange handles GET /v1/bookings/date-range?startDate=&endDate=.
// Both bounds are required and inclusive; a booking matches when its
// check-in or check-out date falls inside the range.
func (h *BookingHandler) ListByDateRange(c echo.Context) error {
	start := c.QueryParam("startDate")
	end := c.QueryParam("endDate")
	if start == "" || end == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "startDate and endDate are required query parameters"})
	}
	if !validDate(start) || !validDate(end) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "dates must be formatted as YYYY-MM-DD"})
	}
	bookings, err := h.Bookings.ListByDateRange(c.Request().Context(), start, end)
	if err != nil {
		c.Logger().Errorf("list bookings by date range: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch bookings"})
	}
	return c.JSON(http.StatusOK, bookings)
}

// Create handles POST /v1/bookings.  The reservation service performs
// the availability check, the insert and the room status flip as one
// transaction; a room that is not available yields 409 and no writes.
func (h *BookingHandler) Create(c echo.Context) error {
	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	booking, err := h.Reservations.CreateBooking(c.Request().Context(),
		req.GuestID, req.RoomID, req.CheckInDate, req.CheckOutDate, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDateRange), errors.Is(err, service.ErrInvalidStatus):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		case errors.Is(err, repository.ErrRoomNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		case errors.Is(err, repository.ErrGuestNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "guest not found"})
		case errors.Is(err, repository.ErrRoomUnavailable):
			return c.JSON(http.StatusConflict, echo.Map{"error": "room is not available"})
		case errors.Is(err, repository.ErrBookingOverlap):
			return c.JSON(http.StatusConflict, echo.Map{"error": "booking dates overlap an existing booking"})
		}
		c.Logger().Errorf("create booking: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create booking"})
	}
	h.publish(c, queue.BookingCreatedQueue, booking)
	return c.JSON(http.StatusCreated, echo.Map{"id": booking.ID, "message": "booking created"})
}

// Update handles PUT /v1/bookings/:id, a partial single-row patch of
// dates and/or status.  It deliberately does not re-validate room
// availability or touch the room's status.
func (h *BookingHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	var req struct {
		CheckInDate  *string `json:"check_in_date"`
		CheckOutDate *string `json:"check_out_date"`
		Status       *string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.CheckInDate != nil && !validDate(*req.CheckInDate) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_in_date must be formatted as YYYY-MM-DD"})
	}
	if req.CheckOutDate != nil && !validDate(*req.CheckOutDate) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_out_date must be formatted as YYYY-MM-DD"})
	}
	if req.Status != nil && !model.ValidBookingStatus(*req.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking status"})
	}
	patch := repository.BookingPatch{
		CheckInDate:  req.CheckInDate,
		CheckOutDate: req.CheckOutDate,
		Status:       req.Status,
	}
	if err := h.Bookings.Update(c.Request().Context(), id, patch); err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		c.Logger().Errorf("update booking %d: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update booking"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "booking updated"})
}

// Cancel handles DELETE /v1/bookings/:id.  The booking flips to
// cancelled and the room's status is recomputed from its remaining
// active bookings, atomically.
func (h *BookingHandler) Cancel(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	booking, err := h.Reservations.CancelBooking(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		c.Logger().Errorf("cancel booking %d: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to cancel booking"})
	}
	h.publish(c, queue.BookingCancelledQueue, booking)
	return c.JSON(http.StatusOK, echo.Map{"message": "booking cancelled"})
}

// CheckIn handles POST /v1/bookings/:id/check-in.
func (h *BookingHandler) CheckIn(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	if _, err := h.Reservations.CheckIn(c.Request().Context(), id); err != nil {
		switch {
		case errors.Is(err, repository.ErrBookingNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		case errors.Is(err, repository.ErrInvalidTransition):
			return c.JSON(http.StatusConflict, echo.Map{"error": "booking is not in confirmed state"})
		}
		c.Logger().Errorf("check in booking %d: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to check in"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "guest checked in"})
}

// CheckOut handles POST /v1/bookings/:id/check-out.
func (h *BookingHandler) CheckOut(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	if _, err := h.Reservations.CheckOut(c.Request().Context(), id); err != nil {
		switch {
		case errors.Is(err, repository.ErrBookingNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		case errors.Is(err, repository.ErrInvalidTransition):
			return c.JSON(http.StatusConflict, echo.Map{"error": "booking is not in checked-in state"})
		}
		c.Logger().Errorf("check out booking %d: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to check out"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "guest checked out"})
}

// publish sends a booking event after a successful commit.  Publish
// failures are logged by the queue package and ignored here; events
// must never fail a request that already committed.
func (h *BookingHandler) publish(c echo.Context, queueName string, b model.Booking) {
	_ = queue.Publish(c.Request().Context(), queueName, queue.BookingEvent{
		BookingID:    b.ID,
		GuestID:      b.GuestID,
		RoomID:       b.RoomID,
		CheckInDate:  b.CheckInDate,
		CheckOutDate: b.CheckOutDate,
		Status:       b.Status,
		OccurredAt:   time.Now().UTC().Format(time.RFC3339),
	})
}

func validDate(s string) bool {
	_, err := time.Parse(service.DateLayout, s)
	return err == nil
}
