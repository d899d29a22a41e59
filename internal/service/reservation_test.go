package service

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/hotel-management/internal/model"
	"github.com/iliyamo/hotel-management/internal/repository"
)

const (
	roomForUpdateSQL = "SELECT id, room_number, type, capacity, rate, status, created_at, updated_at FROM rooms WHERE id = ? FOR UPDATE"
	insertBookingSQL = "INSERT INTO bookings (guest_id, room_id, check_in_date, check_out_date, status) VALUES (?,?,?,?,?)"
	roomSetStatusSQL = "UPDATE rooms SET status=? WHERE id=?"
)

func newService(t *testing.T, overlapCheck bool) (*ReservationService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	svc := NewReservationService(db, repository.NewRoomRepo(db), repository.NewBookingRepo(db), overlapCheck)
	return svc, mock
}

func roomRows(id uint64, status string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{"id", "room_number", "type", "capacity", "rate", "status", "created_at", "updated_at"}).
		AddRow(id, "101", "double", 2, 120.0, status, now, now)
}

func bookingRows(id, guestID, roomID uint64, status string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{"id", "guest_id", "room_id", "check_in_date", "check_out_date", "status", "created_at", "updated_at"}).
		AddRow(id, guestID, roomID, "2026-09-10", "2026-09-12", status, now, now)
}

func TestCreateBookingCommitsBookingAndRoomTogether(t *testing.T) {
	svc, mock := newService(t, true)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(roomForUpdateSQL)).
		WithArgs(7).
		WillReturnRows(roomRows(7, model.RoomStatusAvailable))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM bookings").
		WithArgs(7, "2026-09-12", "2026-09-10").
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
	mock.ExpectExec(regexp.QuoteMeta(insertBookingSQL)).
		WithArgs(3, 7, "2026-09-10", "2026-09-12", model.BookingStatusConfirmed).
		WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectExec(regexp.QuoteMeta(roomSetStatusSQL)).
		WithArgs(model.RoomStatusOccupied, 7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	b, err := svc.CreateBooking(context.Background(), 3, 7, "2026-09-10", "2026-09-12", "")
	require.NoError(t, err)
	assert.Equal(t, uint64(42), b.ID)
	assert.Equal(t, model.BookingStatusConfirmed, b.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingRejectsOccupiedRoomWithoutWrites(t *testing.T) {
	svc, mock := newService(t, true)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(roomForUpdateSQL)).
		WithArgs(7).
		WillReturnRows(roomRows(7, model.RoomStatusOccupied))
	mock.ExpectRollback()

	_, err := svc.CreateBooking(context.Background(), 3, 7, "2026-09-10", "2026-09-12", "")
	assert.ErrorIs(t, err, repository.ErrRoomUnavailable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingRejectsOverlappingDates(t *testing.T) {
	svc, mock := newService(t, true)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(roomForUpdateSQL)).
		WithArgs(7).
		WillReturnRows(roomRows(7, model.RoomStatusAvailable))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM bookings").
		WithArgs(7, "2026-09-12", "2026-09-10").
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))
	mock.ExpectRollback()

	_, err := svc.CreateBooking(context.Background(), 3, 7, "2026-09-10", "2026-09-12", "")
	assert.ErrorIs(t, err, repository.ErrBookingOverlap)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingSkipsOverlapCheckWhenDisabled(t *testing.T) {
	svc, mock := newService(t, false)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(roomForUpdateSQL)).
		WithArgs(7).
		WillReturnRows(roomRows(7, model.RoomStatusAvailable))
	mock.ExpectExec(regexp.QuoteMeta(insertBookingSQL)).
		WithArgs(3, 7, "2026-09-10", "2026-09-12", model.BookingStatusConfirmed).
		WillReturnResult(sqlmock.NewResult(43, 1))
	mock.ExpectExec(regexp.QuoteMeta(roomSetStatusSQL)).
		WithArgs(model.RoomStatusOccupied, 7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	_, err := svc.CreateBooking(context.Background(), 3, 7, "2026-09-10", "2026-09-12", "")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingRollsBackWhenRoomUpdateFails(t *testing.T) {
	svc, mock := newService(t, false)
	boom := errors.New("connection reset")

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(roomForUpdateSQL)).
		WithArgs(7).
		WillReturnRows(roomRows(7, model.RoomStatusAvailable))
	mock.ExpectExec(regexp.QuoteMeta(insertBookingSQL)).
		WithArgs(3, 7, "2026-09-10", "2026-09-12", model.BookingStatusConfirmed).
		WillReturnResult(sqlmock.NewResult(44, 1))
	mock.ExpectExec(regexp.QuoteMeta(roomSetStatusSQL)).
		WithArgs(model.RoomStatusOccupied, 7).
		WillReturnError(boom)
	mock.ExpectRollback()

	_, err := svc.CreateBooking(context.Background(), 3, 7, "2026-09-10", "2026-09-12", "")
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingValidatesDates(t *testing.T) {
	svc, _ := newService(t, true)
	cases := []struct{ in, out string }{
		{"2026-09-12", "2026-09-10"}, // reversed
		{"2026-09-10", "2026-09-10"}, // zero nights
		{"not-a-date", "2026-09-12"},
		{"2026-09-10", "12-09-2026"},
	}
	for _, tc := range cases {
		_, err := svc.CreateBooking(context.Background(), 1, 1, tc.in, tc.out, "")
		assert.ErrorIs(t, err, ErrInvalidDateRange, "in=%s out=%s", tc.in, tc.out)
	}
}

func TestCreateBookingRejectsUnknownStatus(t *testing.T) {
	svc, _ := newService(t, true)
	_, err := svc.CreateBooking(context.Background(), 1, 1, "2026-09-10", "2026-09-12", "pending")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestCancelBookingFreesRoomWhenNoActiveBookingRemains(t *testing.T) {
	svc, mock := newService(t, true)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id, guest_id, room_id").
		WithArgs(42).
		WillReturnRows(bookingRows(42, 3, 7, model.BookingStatusConfirmed))
	mock.ExpectQuery(regexp.QuoteMeta(roomForUpdateSQL)).
		WithArgs(7).
		WillReturnRows(roomRows(7, model.RoomStatusOccupied))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings SET status=? WHERE id=?")).
		WithArgs(model.BookingStatusCancelled, 42).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM bookings").
		WithArgs(7, 42).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
	mock.ExpectExec(regexp.QuoteMeta(roomSetStatusSQL)).
		WithArgs(model.RoomStatusAvailable, 7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	b, err := svc.CancelBooking(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusCancelled, b.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelBookingKeepsRoomOccupiedWhenAnotherBookingCoversToday(t *testing.T) {
	svc, mock := newService(t, true)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id, guest_id, room_id").
		WithArgs(42).
		WillReturnRows(bookingRows(42, 3, 7, model.BookingStatusConfirmed))
	mock.ExpectQuery(regexp.QuoteMeta(roomForUpdateSQL)).
		WithArgs(7).
		WillReturnRows(roomRows(7, model.RoomStatusOccupied))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings SET status=? WHERE id=?")).
		WithArgs(model.BookingStatusCancelled, 42).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM bookings").
		WithArgs(7, 42).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))
	mock.ExpectExec(regexp.QuoteMeta(roomSetStatusSQL)).
		WithArgs(model.RoomStatusOccupied, 7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	_, err := svc.CancelBooking(context.Background(), 42)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelBookingNeverClearsMaintenance(t *testing.T) {
	svc, mock := newService(t, true)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id, guest_id, room_id").
		WithArgs(42).
		WillReturnRows(bookingRows(42, 3, 7, model.BookingStatusConfirmed))
	mock.ExpectQuery(regexp.QuoteMeta(roomForUpdateSQL)).
		WithArgs(7).
		WillReturnRows(roomRows(7, model.RoomStatusMaintenance))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings SET status=? WHERE id=?")).
		WithArgs(model.BookingStatusCancelled, 42).
		WillReturnResult(sqlmock.NewResult(0, 1))
	// no room status write expected
	mock.ExpectCommit()

	_, err := svc.CancelBooking(context.Background(), 42)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelBookingNotFound(t *testing.T) {
	svc, mock := newService(t, true)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id, guest_id, room_id").
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows([]string{"id", "guest_id", "room_id", "check_in_date", "check_out_date", "status", "created_at", "updated_at"}))
	mock.ExpectRollback()

	_, err := svc.CancelBooking(context.Background(), 99)
	assert.ErrorIs(t, err, repository.ErrBookingNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckInMovesConfirmedBookingAndOccupiesRoom(t *testing.T) {
	svc, mock := newService(t, true)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id, guest_id, room_id").
		WithArgs(42).
		WillReturnRows(bookingRows(42, 3, 7, model.BookingStatusConfirmed))
	mock.ExpectQuery(regexp.QuoteMeta(roomForUpdateSQL)).
		WithArgs(7).
		WillReturnRows(roomRows(7, model.RoomStatusAvailable))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings SET status=? WHERE id=?")).
		WithArgs(model.BookingStatusCheckedIn, 42).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(roomSetStatusSQL)).
		WithArgs(model.RoomStatusOccupied, 7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	b, err := svc.CheckIn(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusCheckedIn, b.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckInRejectsNonConfirmedBooking(t *testing.T) {
	svc, mock := newService(t, true)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id, guest_id, room_id").
		WithArgs(42).
		WillReturnRows(bookingRows(42, 3, 7, model.BookingStatusCancelled))
	mock.ExpectRollback()

	_, err := svc.CheckIn(context.Background(), 42)
	assert.ErrorIs(t, err, repository.ErrInvalidTransition)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckOutReleasesRoom(t *testing.T) {
	svc, mock := newService(t, true)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id, guest_id, room_id").
		WithArgs(42).
		WillReturnRows(bookingRows(42, 3, 7, model.BookingStatusCheckedIn))
	mock.ExpectQuery(regexp.QuoteMeta(roomForUpdateSQL)).
		WithArgs(7).
		WillReturnRows(roomRows(7, model.RoomStatusOccupied))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings SET status=? WHERE id=?")).
		WithArgs(model.BookingStatusCheckedOut, 42).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM bookings").
		WithArgs(7, 42).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
	mock.ExpectExec(regexp.QuoteMeta(roomSetStatusSQL)).
		WithArgs(model.RoomStatusAvailable, 7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	b, err := svc.CheckOut(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusCheckedOut, b.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckOutRejectsBookingNotCheckedIn(t *testing.T) {
	svc, mock := newService(t, true)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id, guest_id, room_id").
		WithArgs(42).
		WillReturnRows(bookingRows(42, 3, 7, model.BookingStatusConfirmed))
	mock.ExpectRollback()

	_, err := svc.CheckOut(context.Background(), 42)
	assert.ErrorIs(t, err, repository.ErrInvalidTransition)
	assert.NoError(t, mock.ExpectationsWereMet())
}
