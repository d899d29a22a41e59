// Package queue defines the booking events exchanged over RabbitMQ and
// the background consumer that records them.
package queue

// Queue names for booking lifecycle events.
const (
	BookingCreatedQueue   = "booking.created"
	BookingCancelledQueue = "booking.cancelled"
)

// BookingEvent is published after a booking mutation commits.  It
// carries enough detail for downstream consumers (audit log, guest
// notifications) without another round trip to the database.
type BookingEvent struct {
	BookingID    uint64 `json:"booking_id"`
	GuestID      uint64 `json:"guest_id"`
	RoomID       uint64 `json:"room_id"`
	RoomNumber   string `json:"room_number,omitempty"`
	CheckInDate  string `json:"check_in_date"`
	CheckOutDate string `json:"check_out_date"`
	Status       string `json:"status"`
	OccurredAt   string `json:"occurred_at"`
}
