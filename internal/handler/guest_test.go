package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/hotel-management/internal/repository"
	"github.com/iliyamo/hotel-management/internal/validation"
)

func newGuestHandler(t *testing.T) (*GuestHandler, sqlmock.Sqlmock, *echo.Echo) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	e := echo.New()
	e.Validator = validation.New()
	return NewGuestHandler(repository.NewGuestRepo(db)), mock, e
}

func TestGuestSearchRequiresQueryParam(t *testing.T) {
	h, _, e := newGuestHandler(t)

	for _, target := range []string{"/v1/guests/search", "/v1/guests/search?query=%20"} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		require.NoError(t, h.Search(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestCreateGuestValidatesBody(t *testing.T) {
	h, _, e := newGuestHandler(t)

	cases := []string{
		`{"last_name":"Smith"}`, // missing first name
		`{"first_name":"Jane"}`, // missing last name
		`{"first_name":"Jane","last_name":"Smith","email":"not-a-mail"}`, // bad email
	}
	for _, body := range cases {
		req := httptest.NewRequest(http.MethodPost, "/v1/guests", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		require.NoError(t, h.Create(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
}

func TestGetGuestRejectsNonNumericID(t *testing.T) {
	h, _, e := newGuestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/guests/abc", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("abc")

	require.NoError(t, h.Get(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteGuestUnknownIDReturnsNotFound(t *testing.T) {
	h, mock, e := newGuestHandler(t)

	mock.ExpectExec("DELETE FROM guests").
		WithArgs(99).
		WillReturnResult(sqlmock.NewResult(0, 0))

	req := httptest.NewRequest(http.MethodDelete, "/v1/guests/99", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("99")

	require.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
