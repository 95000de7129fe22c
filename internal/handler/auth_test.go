package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/lukaswerth/business-number-service/internal/config"
	"github.com/lukaswerth/business-number-service/internal/middleware"
	"github.com/lukaswerth/business-number-service/internal/repository"
	"github.com/lukaswerth/business-number-service/internal/utils"
)

func testConfig() config.Config {
	return config.Config{
		Env:           "test",
		SessionSecret: "test-secret",
		SessionTTLHrs: 24,
		BcryptCost:    bcrypt.MinCost,
	}
}

func newAuthHandler(t *testing.T) (*AuthHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewAuthHandler(testConfig(), repository.NewUserRepo(db), repository.NewSessionRepo(db)), mock
}

func doJSON(h echo.HandlerFunc, method, target, body string) (*httptest.ResponseRecorder, error) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return rec, h(e.NewContext(req, rec))
}

func TestRegisterCreated(t *testing.T) {
	h, mock := newAuthHandler(t)
	mock.ExpectExec("INSERT INTO users").
		WithArgs("alice", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	rec, err := doJSON(h.Register, http.MethodPost, "/auth/register", `{"username":"alice","password":"pw"}`)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"userId":1`)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	h, mock := newAuthHandler(t)
	mock.ExpectExec("INSERT INTO users").
		WithArgs("alice", sqlmock.AnyArg()).
		WillReturnError(sqlmockDuplicateErr())

	rec, err := doJSON(h.Register, http.MethodPost, "/auth/register", `{"username":"alice","password":"pw2"}`)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Username already exists")
}

func TestRegisterMissingFields(t *testing.T) {
	h, _ := newAuthHandler(t)
	rec, err := doJSON(h.Register, http.MethodPost, "/auth/register", `{"username":""}`)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginSetsSessionCookie(t *testing.T) {
	h, mock := newAuthHandler(t)

	hash, err := utils.HashPassword("pw", bcrypt.MinCost)
	require.NoError(t, err)
	mock.ExpectQuery("SELECT id,username,password_hash,created_at FROM users").
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash", "created_at"}).
			AddRow(1, "alice", hash, time.Now().UTC()))
	mock.ExpectExec("INSERT INTO sessions").
		WithArgs(uint64(1), "alice", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	rec, err := doJSON(h.Login, http.MethodPost, "/auth/login", `{"username":"alice","password":"pw"}`)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"redirect":"/"`)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, middleware.CookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.NotEmpty(t, cookies[0].Value)

	// The cookie must parse back with the configured secret.
	_, err = utils.ParseSessionToken("test-secret", cookies[0].Value)
	assert.NoError(t, err)
}

// Unknown username and wrong password produce byte-identical responses.
func TestLoginFailuresLookAlike(t *testing.T) {
	h, mock := newAuthHandler(t)

	hash, err := utils.HashPassword("pw", bcrypt.MinCost)
	require.NoError(t, err)
	mock.ExpectQuery("SELECT id,username,password_hash,created_at FROM users").
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash", "created_at"}))
	mock.ExpectQuery("SELECT id,username,password_hash,created_at FROM users").
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash", "created_at"}).
			AddRow(1, "alice", hash, time.Now().UTC()))

	recUnknown, err := doJSON(h.Login, http.MethodPost, "/auth/login", `{"username":"ghost","password":"pw"}`)
	require.NoError(t, err)
	recWrong, err := doJSON(h.Login, http.MethodPost, "/auth/login", `{"username":"alice","password":"wrong"}`)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, recUnknown.Code)
	assert.Equal(t, recUnknown.Code, recWrong.Code)
	assert.Equal(t, recUnknown.Body.String(), recWrong.Body.String())
}

func TestLogoutRevokesAndClearsCookie(t *testing.T) {
	h, mock := newAuthHandler(t)

	tok, err := utils.NewSessionToken("test-secret", 24)
	require.NoError(t, err)
	mock.ExpectExec("UPDATE sessions SET revoked_at=NOW").
		WithArgs(utils.HashSessionID(tok.SID)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: middleware.CookieName, Value: tok.Raw})
	rec := httptest.NewRecorder()
	require.NoError(t, h.Logout(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/auth/login", rec.Header().Get(echo.HeaderLocation))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
	assert.True(t, cookies[0].Expires.Before(time.Now()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func sqlmockDuplicateErr() error {
	return errors.New("Error 1062 (23000): Duplicate entry 'alice' for key 'uq_users_username'")
}
