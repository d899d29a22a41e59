package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/hotel-management/internal/model"
)

// BookingRepo provides read and single-row write access to the
// bookings table.  Writes that must stay consistent with the room's
// status (create, cancel, check-in, check-out) are exposed only as
// ...Tx variants so the reservation service is the single choke point
// for those mutations; nothing else updates rooms.status alongside a
// booking.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// DB exposes the underlying handle so the reservation service can open
// transactions spanning bookings and rooms.
func (r *BookingRepo) DB() *sql.DB { return r.db }

// BookingDetail is a booking row joined with guest name and room
// number for list/read responses.
type BookingDetail struct {
	ID           uint64 `json:"id"`
	GuestID      uint64 `json:"guest_id"`
	RoomID       uint64 `json:"room_id"`
	CheckInDate  string `json:"check_in_date"`
	CheckOutDate string `json:"check_out_date"`
	Status       string `json:"status"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	RoomNumber   string `json:"room_number"`
	RoomType     string `json:"room_type"`
}

const bookingDetailQuery = `SELECT b.id, b.guest_id, b.room_id,
       DATE_FORMAT(b.check_in_date, '%Y-%m-%d'), DATE_FORMAT(b.check_out_date, '%Y-%m-%d'),
       b.status, g.first_name, g.last_name, r.room_number, r.type
FROM bookings b
JOIN guests g ON g.id = b.guest_id
JOIN rooms r ON r.id = b.room_id`

func scanBookingDetail(row interface{ Scan(...any) error }) (BookingDetail, error) {
	var d BookingDetail
	err := row.Scan(&d.ID, &d.GuestID, &d.RoomID, &d.CheckInDate, &d.CheckOutDate,
		&d.Status, &d.FirstName, &d.LastName, &d.RoomNumber, &d.RoomType)
	return d, err
}

// List returns all bookings with guest and room details, newest first.
func (r *BookingRepo) List(ctx context.Context) ([]BookingDetail, error) {
	rows, err := r.db.QueryContext(ctx, bookingDetailQuery+" ORDER BY b.id DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]BookingDetail, 0)
	for rows.Next() {
		d, err := scanBookingDetail(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// GetByID fetches a single booking with guest and room details.
// Returns ErrBookingNotFound when the id does not resolve.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (BookingDetail, error) {
	d, err := scanBookingDetail(r.db.QueryRowContext(ctx, bookingDetailQuery+" WHERE b.id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return BookingDetail{}, ErrBookingNotFound
	}
	return d, err
}

// ListByDateRange returns bookings whose check-in OR check-out date
// falls within [start, end] inclusive.  Results are ordered ascending
// by check-in date, ties broken by id, so the listing is deterministic.
func (r *BookingRepo) ListByDateRange(ctx context.Context, start, end string) ([]BookingDetail, error) {
	rows, err := r.db.QueryContext(ctx,
		bookingDetailQuery+` WHERE (b.check_in_date BETWEEN ? AND ?) OR (b.check_out_date BETWEEN ? AND ?)
ORDER BY b.check_in_date, b.id`,
		start, end, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]BookingDetail, 0)
	for rows.Next() {
		d, err := scanBookingDetail(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// BookingPatch carries the optional fields of a partial booking
// update.  Nil fields are left untouched.
type BookingPatch struct {
	CheckInDate  *string
	CheckOutDate *string
	Status       *string
}

// Update applies a partial patch to a single booking row.  This is the
// documented pass-through path: it does not re-validate availability or
// touch the room's status.  Returns ErrBookingNotFound when the id does
// not resolve.
func (r *BookingRepo) Update(ctx context.Context, id uint64, p BookingPatch) error {
	set := make([]string, 0, 3)
	args := make([]any, 0, 4)
	if p.CheckInDate != nil {
		set = append(set, "check_in_date=?")
		args = append(args, *p.CheckInDate)
	}
	if p.CheckOutDate != nil {
		set = append(set, "check_out_date=?")
		args = append(args, *p.CheckOutDate)
	}
	if p.Status != nil {
		set = append(set, "status=?")
		args = append(args, *p.Status)
	}
	if err := r.exists(ctx, id); err != nil {
		return err
	}
	if len(set) == 0 {
		return nil
	}
	args = append(args, id)
	_, err := r.db.ExecContext(ctx,
		"UPDATE bookings SET "+strings.Join(set, ", ")+" WHERE id=?", args...)
	return err
}

// GetTx loads the raw booking row inside tx.  Returns
// ErrBookingNotFound when the id does not resolve.
func (r *BookingRepo) GetTx(ctx context.Context, tx *sql.Tx, id uint64) (model.Booking, error) {
	var b model.Booking
	err := tx.QueryRowContext(ctx,
		`SELECT id, guest_id, room_id,
       DATE_FORMAT(check_in_date, '%Y-%m-%d'), DATE_FORMAT(check_out_date, '%Y-%m-%d'),
       status, created_at, updated_at
FROM bookings WHERE id = ?`, id).
		Scan(&b.ID, &b.GuestID, &b.RoomID, &b.CheckInDate, &b.CheckOutDate,
			&b.Status, &b.CreatedAt, &b.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Booking{}, ErrBookingNotFound
	}
	return b, err
}

// CreateTx inserts a booking within an existing transaction and
// populates the generated id.  The caller commits or rolls back.
func (r *BookingRepo) CreateTx(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
	res, err := tx.ExecContext(ctx,
		"INSERT INTO bookings (guest_id, room_id, check_in_date, check_out_date, status) VALUES (?,?,?,?,?)",
		b.GuestID, b.RoomID, b.CheckInDate, b.CheckOutDate, b.Status)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	return nil
}

// SetStatusTx updates a booking's status within an existing
// transaction.
func (r *BookingRepo) SetStatusTx(ctx context.Context, tx *sql.Tx, id uint64, status string) error {
	_, err := tx.ExecContext(ctx, "UPDATE bookings SET status=? WHERE id=?", status, id)
	return err
}

// HasOverlapTx reports whether an active (confirmed or checked-in)
// booking for the room intersects [checkIn, checkOut).  The check-out
// day itself does not count as occupied, so back-to-back stays are
// allowed.
func (r *BookingRepo) HasOverlapTx(ctx context.Context, tx *sql.Tx, roomID uint64, checkIn, checkOut string) (bool, error) {
	var n int
	err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bookings
WHERE room_id = ? AND status IN ('confirmed','checked_in')
  AND check_in_date < ? AND check_out_date > ?`,
		roomID, checkOut, checkIn).Scan(&n)
	return n > 0, err
}

// CountActiveCoveringTodayTx returns how many active bookings other
// than excludeID occupy the room today.  The reservation service uses
// it to derive the room's status after a cancellation or check-out
// instead of blindly writing "available".
func (r *BookingRepo) CountActiveCoveringTodayTx(ctx context.Context, tx *sql.Tx, roomID, excludeID uint64) (int, error) {
	var n int
	err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bookings
WHERE room_id = ? AND id <> ? AND status IN ('confirmed','checked_in')
  AND check_in_date <= CURDATE() AND check_out_date > CURDATE()`,
		roomID, excludeID).Scan(&n)
	return n, err
}

// CountActive returns the number of confirmed or checked-in bookings.
func (r *BookingRepo) CountActive(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM bookings WHERE status IN ('confirmed','checked_in')").Scan(&n)
	return n, err
}

// CountArrivalsToday returns confirmed bookings whose stay starts
// today.
func (r *BookingRepo) CountArrivalsToday(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM bookings WHERE status = 'confirmed' AND check_in_date = CURDATE()").Scan(&n)
	return n, err
}

// CountDeparturesToday returns checked-in bookings whose stay ends
// today.
func (r *BookingRepo) CountDeparturesToday(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM bookings WHERE status = 'checked_in' AND check_out_date = CURDATE()").Scan(&n)
	return n, err
}

func (r *BookingRepo) exists(ctx context.Context, id uint64) error {
	var one int
	err := r.db.QueryRowContext(ctx, "SELECT 1 FROM bookings WHERE id=?", id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrBookingNotFound
	}
	return err
}
