package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/hotel-management/internal/model"
)

// RoomRepo provides CRUD operations over the rooms table plus the
// transactional helpers used by the reservation service.  Status writes
// outside a reservation transaction go through SetStatus, which backs
// the explicit PATCH /rooms/:id/status override.
type RoomRepo struct {
	db *sql.DB
}

// NewRoomRepo returns a RoomRepo bound to the given database.
func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{db: db} }

const roomColumns = "id, room_number, type, capacity, rate, status, created_at, updated_at"

func scanRoom(row interface{ Scan(...any) error }, rm *model.Room) error {
	return row.Scan(&rm.ID, &rm.RoomNumber, &rm.Type, &rm.Capacity, &rm.Rate, &rm.Status,
		&rm.CreatedAt, &rm.UpdatedAt)
}

// List returns all rooms ordered by room number.
func (r *RoomRepo) List(ctx context.Context) ([]model.Room, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+roomColumns+" FROM rooms ORDER BY room_number")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Room, 0)
	for rows.Next() {
		var rm model.Room
		if err := scanRoom(rows, &rm); err != nil {
			return nil, err
		}
		out = append(out, rm)
	}
	return out, rows.Err()
}

// GetByID fetches a single room.  Returns ErrRoomNotFound when the id
// does not resolve.
func (r *RoomRepo) GetByID(ctx context.Context, id uint64) (model.Room, error) {
	var rm model.Room
	err := scanRoom(r.db.QueryRowContext(ctx,
		"SELECT "+roomColumns+" FROM rooms WHERE id = ?", id), &rm)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Room{}, ErrRoomNotFound
	}
	return rm, err
}

// Create inserts a new room and populates its generated id.  New rooms
// default to "available" unless a valid status is supplied.
func (r *RoomRepo) Create(ctx context.Context, rm *model.Room) error {
	if rm.Status == "" {
		rm.Status = model.RoomStatusAvailable
	}
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO rooms (room_number, type, capacity, rate, status) VALUES (?,?,?,?,?)",
		rm.RoomNumber, rm.Type, rm.Capacity, rm.Rate, rm.Status)
	if err != nil {
		// 1062 = duplicate key on the unique room_number index
		if strings.Contains(err.Error(), "1062") {
			return ErrRoomNumberTaken
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rm.ID = uint64(id)
	return nil
}

// ErrRoomNumberTaken is returned when creating or renaming a room with
// a room number that already exists.
var ErrRoomNumberTaken = errors.New("room number already exists")

// Update replaces the mutable fields of a room.  Returns
// ErrRoomNotFound when the id does not resolve.  MySQL reports zero
// affected rows for a no-op update, so existence is checked separately
// instead of trusting RowsAffected.
func (r *RoomRepo) Update(ctx context.Context, id uint64, rm model.Room) error {
	if err := r.exists(ctx, id); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx,
		"UPDATE rooms SET room_number=?, type=?, capacity=?, rate=?, status=? WHERE id=?",
		rm.RoomNumber, rm.Type, rm.Capacity, rm.Rate, rm.Status, id)
	if err != nil && strings.Contains(err.Error(), "1062") {
		return ErrRoomNumberTaken
	}
	return err
}

func (r *RoomRepo) exists(ctx context.Context, id uint64) error {
	var one int
	err := r.db.QueryRowContext(ctx, "SELECT 1 FROM rooms WHERE id=?", id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrRoomNotFound
	}
	return err
}

// Delete removes a room.  Returns ErrRoomNotFound when no row matched.
func (r *RoomRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM rooms WHERE id=?", id)
	if err != nil {
		return err
	}
	return requireRow(res, ErrRoomNotFound)
}

// SetStatus writes the status field directly, independent of any
// booking.  This is the manual override path (e.g. flagging a room for
// maintenance).
func (r *RoomRepo) SetStatus(ctx context.Context, id uint64, status string) error {
	if err := r.exists(ctx, id); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, "UPDATE rooms SET status=? WHERE id=?", status, id)
	return err
}

// GetForUpdateTx loads a room inside tx with a row lock so concurrent
// reservation transactions against the same room serialize on it.
func (r *RoomRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (model.Room, error) {
	var rm model.Room
	err := scanRoom(tx.QueryRowContext(ctx,
		"SELECT "+roomColumns+" FROM rooms WHERE id = ? FOR UPDATE", id), &rm)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Room{}, ErrRoomNotFound
	}
	return rm, err
}

// SetStatusTx writes the status field within an existing transaction.
// Only the reservation service calls this; the row's existence has
// already been established by GetForUpdateTx.
func (r *RoomRepo) SetStatusTx(ctx context.Context, tx *sql.Tx, id uint64, status string) error {
	_, err := tx.ExecContext(ctx, "UPDATE rooms SET status=? WHERE id=?", status, id)
	return err
}

// CountByStatus returns the number of rooms per status for the stats
// endpoint.
func (r *RoomRepo) CountByStatus(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT status, COUNT(*) FROM rooms GROUP BY status")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := map[string]int{}
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		out[status] = n
	}
	return out, rows.Err()
}

// requireRow converts a zero-affected-rows result into notFound.
func requireRow(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}
