package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var guestDetailColumns = []string{
	"id", "first_name", "last_name", "email", "phone", "address",
	"id_proof_type", "id_proof_number", "created_at", "updated_at",
	"room_id", "room_number", "check_in_date", "check_out_date",
}

func TestGuestSearchWrapsQueryInWildcards(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewGuestRepo(db)

	now := time.Now()
	mock.ExpectQuery("SELECT g.id, g.first_name").
		WithArgs("%smith%", "%smith%", "%smith%", "%smith%").
		WillReturnRows(sqlmock.NewRows(guestDetailColumns).
			AddRow(1, "Jane", "Smith", "jane@example.com", "555-0101", "",
				"passport", "AB123", now, now, 7, "101", "2026-09-10", "2026-09-12").
			AddRow(2, "John", "Smithers", "john@example.com", "", "",
				"", "", now, now, nil, nil, nil, nil))

	guests, err := repo.Search(context.Background(), "smith")
	require.NoError(t, err)
	require.Len(t, guests, 2)

	require.NotNil(t, guests[0].RoomID)
	assert.Equal(t, uint64(7), *guests[0].RoomID)
	assert.Equal(t, "101", *guests[0].RoomNumber)

	// guest without an active booking carries nil booking fields
	assert.Nil(t, guests[1].RoomID)
	assert.Nil(t, guests[1].RoomNumber)
	assert.Nil(t, guests[1].CheckInDate)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGuestListReturnsEmptySliceNotNil(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewGuestRepo(db)

	mock.ExpectQuery("SELECT g.id, g.first_name").
		WillReturnRows(sqlmock.NewRows(guestDetailColumns))

	guests, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, guests)
	assert.Empty(t, guests)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGuestGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewGuestRepo(db)

	mock.ExpectQuery("SELECT g.id, g.first_name").
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows(guestDetailColumns))

	_, err = repo.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrGuestNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
