package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-management/internal/model"
	"github.com/iliyamo/hotel-management/internal/repository"
)

// StatsHandler serves the dashboard overview counters.
type StatsHandler struct {
	Rooms    *repository.RoomRepo
	Guests   *repository.GuestRepo
	Bookings *repository.BookingRepo
}

// NewStatsHandler constructs a StatsHandler.
func NewStatsHandler(rooms *repository.RoomRepo, guests *repository.GuestRepo, bookings *repository.BookingRepo) *StatsHandler {
	if rooms == nil || guests == nil || bookings == nil {
		panic("nil repository passed to NewStatsHandler")
	}
	return &StatsHandler{Rooms: rooms, Guests: guests, Bookings: bookings}
}

type statsResponse struct {
	TotalRooms       int `json:"total_rooms"`
	AvailableRooms   int `json:"available_rooms"`
	OccupiedRooms    int `json:"occupied_rooms"`
	MaintenanceRooms int `json:"maintenance_rooms"`
	TotalGuests      int `json:"total_guests"`
	ActiveBookings   int `json:"active_bookings"`
	ArrivalsToday    int `json:"arrivals_today"`
	DeparturesToday  int `json:"departures_today"`
}

// Overview handles GET /v1/stats.  Counters are read one after another
// without a transaction; the dashboard tolerates slightly torn numbers.
func (h *StatsHandler) Overview(c echo.Context) error {
	ctx := c.Request().Context()

	byStatus, err := h.Rooms.CountByStatus(ctx)
	if err != nil {
		c.Logger().Errorf("count rooms: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to compute statistics"})
	}
	guests, err := h.Guests.Count(ctx)
	if err != nil {
		c.Logger().Errorf("count guests: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to compute statistics"})
	}
	active, err := h.Bookings.CountActive(ctx)
	if err != nil {
		c.Logger().Errorf("count active bookings: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to compute statistics"})
	}
	arrivals, err := h.Bookings.CountArrivalsToday(ctx)
	if err != nil {
		c.Logger().Errorf("count arrivals: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to compute statistics"})
	}
	departures, err := h.Bookings.CountDeparturesToday(ctx)
	if err != nil {
		c.Logger().Errorf("count departures: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to compute statistics"})
	}

	total := 0
	for _, n := range byStatus {
		total += n
	}
	return c.JSON(http.StatusOK, statsResponse{
		TotalRooms:       total,
		AvailableRooms:   byStatus[model.RoomStatusAvailable],
		OccupiedRooms:    byStatus[model.RoomStatusOccupied],
		MaintenanceRooms: byStatus[model.RoomStatusMaintenance],
		TotalGuests:      guests,
		ActiveBookings:   active,
		ArrivalsToday:    arrivals,
		DeparturesToday:  departures,
	})
}
