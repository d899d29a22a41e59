package model

import "time"

// Room statuses persisted in the `rooms.status` enum.  The front end
// additionally shows a transient "cleaning" state, but that value is
// never written server side.
const (
	RoomStatusAvailable   = "available"
	RoomStatusOccupied    = "occupied"
	RoomStatusMaintenance = "maintenance"
)

// ValidRoomStatus reports whether s is one of the persisted room statuses.
func ValidRoomStatus(s string) bool {
	switch s {
	case RoomStatusAvailable, RoomStatusOccupied, RoomStatusMaintenance:
		return true
	}
	return false
}

// Room represents a bookable hotel room.  RoomNumber is the
// human-facing identifier and is unique across the hotel.  Status is a
// cached occupancy indicator kept in sync with active bookings by the
// reservation service; "maintenance" acts as a manual override that
// booking operations never overwrite.
type Room struct {
	ID         uint64    `json:"id"`          // rooms.id
	RoomNumber string    `json:"room_number"` // rooms.room_number
	Type       string    `json:"type"`        // rooms.type
	Capacity   uint32    `json:"capacity"`    // rooms.capacity
	Rate       float64   `json:"rate"`        // rooms.rate
	Status     string    `json:"status"`      // rooms.status
	CreatedAt  time.Time `json:"created_at"`  // rooms.created_at
	UpdatedAt  time.Time `json:"updated_at"`  // rooms.updated_at
}
