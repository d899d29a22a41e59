// Package service contains the reservation manager, the single choke
// point through which every mutation that touches both a booking and
// its room's status must pass.  Each operation runs as one database
// transaction: either the booking row and the room row both change, or
// neither does.
package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/iliyamo/hotel-management/internal/model"
	"github.com/iliyamo/hotel-management/internal/repository"
)

// DateLayout is the wire format for booking dates.
const DateLayout = "2006-01-02"

// ErrInvalidDateRange is returned when a booking's dates are malformed
// or the check-out does not come after the check-in.
var ErrInvalidDateRange = errors.New("check-out date must be after check-in date")

// ErrInvalidStatus is returned when a booking is created with a status
// outside the known lifecycle.
var ErrInvalidStatus = errors.New("invalid booking status")

// ReservationService creates and cancels bookings while keeping the
// booking status and the room's cached occupancy status consistent.
//
// When overlapCheck is enabled (the default) a new booking is also
// rejected when its date range intersects an active booking for the
// same room; disabling it restores the legacy behaviour where only the
// room's current status is consulted.
type ReservationService struct {
	db           *sql.DB
	rooms        *repository.RoomRepo
	bookings     *repository.BookingRepo
	overlapCheck bool
}

// NewReservationService constructs a ReservationService.  All
// dependencies must be non-nil.
func NewReservationService(db *sql.DB, rooms *repository.RoomRepo, bookings *repository.BookingRepo, overlapCheck bool) *ReservationService {
	if db == nil || rooms == nil || bookings == nil {
		panic("nil dependency passed to NewReservationService")
	}
	return &ReservationService{db: db, rooms: rooms, bookings: bookings, overlapCheck: overlapCheck}
}

// CreateBooking books the room for the guest over [checkIn, checkOut).
// The room row is locked for the duration of the transaction, so of
// two concurrent requests against the same available room exactly one
// commits; the other observes the updated status and fails with
// repository.ErrRoomUnavailable.
//
// Status defaults to "confirmed" when empty.  The room is flipped to
// "occupied" together with the insert; on any failure the whole
// transaction rolls back and nothing is persisted.
func (s *ReservationService) CreateBooking(ctx context.Context, guestID, roomID uint64, checkIn, checkOut, status string) (model.Booking, error) {
	if err := validateDates(checkIn, checkOut); err != nil {
		return model.Booking{}, err
	}
	if status == "" {
		status = model.BookingStatusConfirmed
	}
	if !model.ValidBookingStatus(status) {
		return model.Booking{}, ErrInvalidStatus
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Booking{}, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	room, err := s.rooms.GetForUpdateTx(ctx, tx, roomID)
	if err != nil {
		return model.Booking{}, err
	}
	if room.Status != model.RoomStatusAvailable {
		return model.Booking{}, repository.ErrRoomUnavailable
	}
	if s.overlapCheck {
		overlap, err := s.bookings.HasOverlapTx(ctx, tx, roomID, checkIn, checkOut)
		if err != nil {
			return model.Booking{}, err
		}
		if overlap {
			return model.Booking{}, repository.ErrBookingOverlap
		}
	}

	b := model.Booking{
		GuestID:      guestID,
		RoomID:       roomID,
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
		Status:       status,
	}
	if err := s.bookings.CreateTx(ctx, tx, &b); err != nil {
		// 1452 = foreign key failure, i.e. the guest does not exist
		if strings.Contains(err.Error(), "1452") {
			return model.Booking{}, repository.ErrGuestNotFound
		}
		return model.Booking{}, err
	}
	if model.ActiveBookingStatus(status) {
		if err := s.rooms.SetStatusTx(ctx, tx, roomID, model.RoomStatusOccupied); err != nil {
			return model.Booking{}, err
		}
	}
	if err := tx.Commit(); err != nil {
		return model.Booking{}, err
	}
	committed = true
	return b, nil
}

// CancelBooking sets the booking to "cancelled" and recomputes the
// room's status from the bookings that remain active today.  A room in
// maintenance keeps that status; otherwise it becomes "available"
// unless some other active booking covers today.  Atomic with the
// booking update.
func (s *ReservationService) CancelBooking(ctx context.Context, bookingID uint64) (model.Booking, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Booking{}, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	b, err := s.bookings.GetTx(ctx, tx, bookingID)
	if err != nil {
		return model.Booking{}, err
	}
	room, err := s.rooms.GetForUpdateTx(ctx, tx, b.RoomID)
	if err != nil {
		return model.Booking{}, err
	}
	if err := s.bookings.SetStatusTx(ctx, tx, bookingID, model.BookingStatusCancelled); err != nil {
		return model.Booking{}, err
	}
	if err := s.syncRoomStatusTx(ctx, tx, room, bookingID); err != nil {
		return model.Booking{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.Booking{}, err
	}
	committed = true
	b.Status = model.BookingStatusCancelled
	return b, nil
}

// CheckIn moves a confirmed booking to "checked_in" and marks the room
// occupied, atomically.  Returns repository.ErrInvalidTransition when
// the booking is in any other state.
func (s *ReservationService) CheckIn(ctx context.Context, bookingID uint64) (model.Booking, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Booking{}, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	b, err := s.bookings.GetTx(ctx, tx, bookingID)
	if err != nil {
		return model.Booking{}, err
	}
	if b.Status != model.BookingStatusConfirmed {
		return model.Booking{}, repository.ErrInvalidTransition
	}
	room, err := s.rooms.GetForUpdateTx(ctx, tx, b.RoomID)
	if err != nil {
		return model.Booking{}, err
	}
	if err := s.bookings.SetStatusTx(ctx, tx, bookingID, model.BookingStatusCheckedIn); err != nil {
		return model.Booking{}, err
	}
	if room.Status != model.RoomStatusMaintenance {
		if err := s.rooms.SetStatusTx(ctx, tx, room.ID, model.RoomStatusOccupied); err != nil {
			return model.Booking{}, err
		}
	}
	if err := tx.Commit(); err != nil {
		return model.Booking{}, err
	}
	committed = true
	b.Status = model.BookingStatusCheckedIn
	return b, nil
}

// CheckOut moves a checked-in booking to "checked_out" and recomputes
// the room's status the same way CancelBooking does.
func (s *ReservationService) CheckOut(ctx context.Context, bookingID uint64) (model.Booking, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Booking{}, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	b, err := s.bookings.GetTx(ctx, tx, bookingID)
	if err != nil {
		return model.Booking{}, err
	}
	if b.Status != model.BookingStatusCheckedIn {
		return model.Booking{}, repository.ErrInvalidTransition
	}
	room, err := s.rooms.GetForUpdateTx(ctx, tx, b.RoomID)
	if err != nil {
		return model.Booking{}, err
	}
	if err := s.bookings.SetStatusTx(ctx, tx, bookingID, model.BookingStatusCheckedOut); err != nil {
		return model.Booking{}, err
	}
	if err := s.syncRoomStatusTx(ctx, tx, room, bookingID); err != nil {
		return model.Booking{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.Booking{}, err
	}
	committed = true
	b.Status = model.BookingStatusCheckedOut
	return b, nil
}

// syncRoomStatusTx derives the room's status after a booking stopped
// being active.  Occupancy is computed from the set of remaining
// active bookings covering today rather than assumed, so cancelling
// one of several overlapping bookings does not free a room that is
// still in use.  Maintenance is a manual override and is never
// cleared here.
func (s *ReservationService) syncRoomStatusTx(ctx context.Context, tx *sql.Tx, room model.Room, excludeBookingID uint64) error {
	if room.Status == model.RoomStatusMaintenance {
		return nil
	}
	n, err := s.bookings.CountActiveCoveringTodayTx(ctx, tx, room.ID, excludeBookingID)
	if err != nil {
		return err
	}
	status := model.RoomStatusAvailable
	if n > 0 {
		status = model.RoomStatusOccupied
	}
	return s.rooms.SetStatusTx(ctx, tx, room.ID, status)
}

func validateDates(checkIn, checkOut string) error {
	in, err := time.Parse(DateLayout, checkIn)
	if err != nil {
		return ErrInvalidDateRange
	}
	out, err := time.Parse(DateLayout, checkOut)
	if err != nil {
		return ErrInvalidDateRange
	}
	if !out.After(in) {
		return ErrInvalidDateRange
	}
	return nil
}
