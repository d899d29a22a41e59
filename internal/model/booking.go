package model

import "time"

// Booking lifecycle statuses.  A booking is created as "confirmed",
// moves to "checked_in"/"checked_out" through the explicit check-in and
// check-out operations, or terminates as "cancelled".
const (
	BookingStatusConfirmed  = "confirmed"
	BookingStatusCheckedIn  = "checked_in"
	BookingStatusCheckedOut = "checked_out"
	BookingStatusCancelled  = "cancelled"
)

// ValidBookingStatus reports whether s is a known booking status.
func ValidBookingStatus(s string) bool {
	switch s {
	case BookingStatusConfirmed, BookingStatusCheckedIn, BookingStatusCheckedOut, BookingStatusCancelled:
		return true
	}
	return false
}

// ActiveBookingStatus reports whether s counts toward room occupancy.
func ActiveBookingStatus(s string) bool {
	return s == BookingStatusConfirmed || s == BookingStatusCheckedIn
}

// Booking links one guest to one room for a date interval.  Dates are
// DATE columns handled as "2006-01-02" strings; all interval arithmetic
// happens in SQL so no timezone conversion is involved.  The check-out
// date is exclusive for occupancy purposes: a room frees up on the
// check-out day.
type Booking struct {
	ID           uint64    `json:"id"`             // bookings.id
	GuestID      uint64    `json:"guest_id"`       // bookings.guest_id
	RoomID       uint64    `json:"room_id"`        // bookings.room_id
	CheckInDate  string    `json:"check_in_date"`  // bookings.check_in_date
	CheckOutDate string    `json:"check_out_date"` // bookings.check_out_date
	Status       string    `json:"status"`         // bookings.status
	CreatedAt    time.Time `json:"created_at"`     // bookings.created_at
	UpdatedAt    time.Time `json:"updated_at"`     // bookings.updated_at
}
