// Package repository implements data access over the MySQL schema.
// This file defines sentinel errors shared across repositories so that
// handlers can translate failure modes into HTTP responses with
// errors.Is instead of inspecting driver errors.
package repository

import "errors"

// ErrRoomNotFound is returned when a room id does not resolve.
var ErrRoomNotFound = errors.New("room not found")

// ErrGuestNotFound is returned when a guest id does not resolve.
var ErrGuestNotFound = errors.New("guest not found")

// ErrBookingNotFound is returned when a booking id does not resolve.
var ErrBookingNotFound = errors.New("booking not found")

// ErrRoomUnavailable is returned when a booking targets a room whose
// current status is not "available".  Handlers map it to HTTP 409.
var ErrRoomUnavailable = errors.New("room unavailable")

// ErrBookingOverlap is returned when the requested date range
// intersects an existing confirmed or checked-in booking for the same
// room.  Handlers map it to HTTP 409.
var ErrBookingOverlap = errors.New("booking dates overlap an existing booking")

// ErrInvalidTransition is returned when a check-in or check-out is
// attempted on a booking that is not in the required state.
var ErrInvalidTransition = errors.New("invalid booking state transition")

// ErrEmailExists is returned when registering a staff account with an
// email that is already taken.
var ErrEmailExists = errors.New("email already exists")
