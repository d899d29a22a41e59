package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/hotel-management/internal/model"
)

// GuestRepo provides CRUD over the guests table plus the
// case-insensitive substring search used by the directory view.  List
// and read results carry the guest's current booking and room number
// when one exists, mirroring what the dashboard displays next to each
// guest.
type GuestRepo struct {
	db *sql.DB
}

// NewGuestRepo returns a GuestRepo bound to the given database.
func NewGuestRepo(db *sql.DB) *GuestRepo { return &GuestRepo{db: db} }

// GuestDetail is a guest row joined with its latest booking, if any.
type GuestDetail struct {
	model.Guest
	RoomID       *uint64 `json:"room_id,omitempty"`
	RoomNumber   *string `json:"room_number,omitempty"`
	CheckInDate  *string `json:"check_in_date,omitempty"`
	CheckOutDate *string `json:"check_out_date,omitempty"`
}

const guestDetailQuery = `SELECT g.id, g.first_name, g.last_name, g.email, g.phone, g.address,
       g.id_proof_type, g.id_proof_number, g.created_at, g.updated_at,
       b.room_id, r.room_number, b.check_in_date, b.check_out_date
FROM guests g
LEFT JOIN bookings b ON b.guest_id = g.id AND b.status IN ('confirmed','checked_in')
LEFT JOIN rooms r ON r.id = b.room_id`

func scanGuestDetail(rows interface{ Scan(...any) error }) (GuestDetail, error) {
	var d GuestDetail
	var roomID sql.NullInt64
	var roomNumber, checkIn, checkOut sql.NullString
	err := rows.Scan(&d.ID, &d.FirstName, &d.LastName, &d.Email, &d.Phone, &d.Address,
		&d.IDProofType, &d.IDProofNumber, &d.CreatedAt, &d.UpdatedAt,
		&roomID, &roomNumber, &checkIn, &checkOut)
	if err != nil {
		return GuestDetail{}, err
	}
	if roomID.Valid {
		id := uint64(roomID.Int64)
		d.RoomID = &id
	}
	if roomNumber.Valid {
		v := roomNumber.String
		d.RoomNumber = &v
	}
	if checkIn.Valid {
		v := checkIn.String
		d.CheckInDate = &v
	}
	if checkOut.Valid {
		v := checkOut.String
		d.CheckOutDate = &v
	}
	return d, nil
}

// List returns all guests with their active booking details.
func (r *GuestRepo) List(ctx context.Context) ([]GuestDetail, error) {
	rows, err := r.db.QueryContext(ctx, guestDetailQuery+" ORDER BY g.last_name, g.first_name, g.id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]GuestDetail, 0)
	for rows.Next() {
		d, err := scanGuestDetail(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// GetByID fetches a single guest with booking details.  Returns
// ErrGuestNotFound when the id does not resolve.
func (r *GuestRepo) GetByID(ctx context.Context, id uint64) (GuestDetail, error) {
	d, err := scanGuestDetail(r.db.QueryRowContext(ctx, guestDetailQuery+" WHERE g.id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return GuestDetail{}, ErrGuestNotFound
	}
	return d, err
}

// Search performs an unanchored, case-insensitive substring match over
// name, email and phone.  The guests table uses a case-insensitive
// collation, so LIKE gives the required semantics directly.
func (r *GuestRepo) Search(ctx context.Context, query string) ([]GuestDetail, error) {
	like := "%" + query + "%"
	rows, err := r.db.QueryContext(ctx,
		guestDetailQuery+` WHERE g.first_name LIKE ? OR g.last_name LIKE ? OR g.email LIKE ? OR g.phone LIKE ?
ORDER BY g.last_name, g.first_name, g.id`,
		like, like, like, like)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]GuestDetail, 0)
	for rows.Next() {
		d, err := scanGuestDetail(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// Create inserts a guest and populates the generated id.
func (r *GuestRepo) Create(ctx context.Context, g *model.Guest) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO guests (first_name, last_name, email, phone, address, id_proof_type, id_proof_number)
VALUES (?,?,?,?,?,?,?)`,
		g.FirstName, g.LastName, g.Email, g.Phone, g.Address, g.IDProofType, g.IDProofNumber)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	g.ID = uint64(id)
	return nil
}

// Update replaces the mutable fields of a guest.  Returns
// ErrGuestNotFound when the id does not resolve.
func (r *GuestRepo) Update(ctx context.Context, id uint64, g model.Guest) error {
	if err := r.exists(ctx, id); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx,
		`UPDATE guests SET first_name=?, last_name=?, email=?, phone=?, address=?,
id_proof_type=?, id_proof_number=? WHERE id=?`,
		g.FirstName, g.LastName, g.Email, g.Phone, g.Address, g.IDProofType, g.IDProofNumber, id)
	return err
}

// Delete removes a guest.  Returns ErrGuestNotFound when no row
// matched.
func (r *GuestRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM guests WHERE id=?", id)
	if err != nil {
		return err
	}
	return requireRow(res, ErrGuestNotFound)
}

// Count returns the total number of guests for the stats endpoint.
func (r *GuestRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM guests").Scan(&n)
	return n, err
}

func (r *GuestRepo) exists(ctx context.Context, id uint64) error {
	var one int
	err := r.db.QueryRowContext(ctx, "SELECT 1 FROM guests WHERE id=?", id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrGuestNotFound
	}
	return err
}
