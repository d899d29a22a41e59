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

	"github.com/iliyamo/hotel-management/internal/config"
	"github.com/iliyamo/hotel-management/internal/model"
	"github.com/iliyamo/hotel-management/internal/repository"
	"github.com/iliyamo/hotel-management/internal/validation"
)

func newAuthHandler(t *testing.T) (*AuthHandler, sqlmock.Sqlmock, *echo.Echo) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	e := echo.New()
	e.Validator = validation.New()
	cfg := config.Config{JWTSecret: "test-secret", AccessTTLMin: 15, RefreshTTLDays: 7, BcryptCost: 4}
	return NewAuthHandler(repository.NewUserRepo(db), repository.NewTokenRepo(db), cfg), mock, e
}

func registerRequest(e *echo.Echo, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/register", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRegisterAnonymousAdminIsForbidden(t *testing.T) {
	h, mock, e := newAuthHandler(t)

	// no role claim in the context, as on the public route
	c, rec := registerRequest(e, `{"email":"mallory@example.com","password":"longenough","role":"ADMIN"}`)
	require.NoError(t, h.Register(c))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	// no insert may have been attempted
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterStaffAdminCannotEscalate(t *testing.T) {
	h, mock, e := newAuthHandler(t)

	c, rec := registerRequest(e, `{"email":"mallory@example.com","password":"longenough","role":"ADMIN"}`)
	c.Set("role", model.RoleStaff)
	require.NoError(t, h.Register(c))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterDefaultsToStaff(t *testing.T) {
	h, mock, e := newAuthHandler(t)

	mock.ExpectExec("INSERT INTO users").
		WithArgs("jane@example.com", sqlmock.AnyArg(), model.RoleStaff).
		WillReturnResult(sqlmock.NewResult(5, 1))

	c, rec := registerRequest(e, `{"email":"jane@example.com","password":"longenough"}`)
	require.NoError(t, h.Register(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterAdminByAdminSucceeds(t *testing.T) {
	h, mock, e := newAuthHandler(t)

	mock.ExpectExec("INSERT INTO users").
		WithArgs("boss@example.com", sqlmock.AnyArg(), model.RoleAdmin).
		WillReturnResult(sqlmock.NewResult(6, 1))

	c, rec := registerRequest(e, `{"email":"boss@example.com","password":"longenough","role":"ADMIN"}`)
	c.Set("role", model.RoleAdmin)
	require.NoError(t, h.Register(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	h, mock, e := newAuthHandler(t)

	c, rec := registerRequest(e, `{"email":"jane@example.com","password":"longenough","role":"MANAGER"}`)
	require.NoError(t, h.Register(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
