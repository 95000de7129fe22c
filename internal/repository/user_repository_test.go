package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/lukaswerth/business-number-service/internal/utils"
)

func userRows(t *testing.T, username, password string) *sqlmock.Rows {
	t.Helper()
	hash, err := utils.HashPassword(password, bcrypt.MinCost)
	require.NoError(t, err)
	return sqlmock.NewRows([]string{"id", "username", "password_hash", "created_at"}).
		AddRow(1, username, hash, time.Now().UTC())
}

func TestUserRepoCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO users").
		WithArgs("alice", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(5, 1))

	repo := NewUserRepo(db)
	id, err := repo.Create(context.Background(), " alice ", "pw", bcrypt.MinCost)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepoCreateDuplicateUsername(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO users").
		WithArgs("alice", sqlmock.AnyArg()).
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry 'alice' for key 'uq_users_username'"))

	repo := NewUserRepo(db)
	_, err = repo.Create(context.Background(), "alice", "pw2", bcrypt.MinCost)
	assert.ErrorIs(t, err, ErrUsernameExists)
}

func TestUserRepoGetByUsernameNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT id,username,password_hash,created_at FROM users").
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash", "created_at"}))

	repo := NewUserRepo(db)
	_, err = repo.GetByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestVerifyPasswordCorrect(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT id,username,password_hash,created_at FROM users").
		WithArgs("alice").
		WillReturnRows(userRows(t, "alice", "pw"))

	repo := NewUserRepo(db)
	ok, u, err := repo.VerifyPassword(context.Background(), "alice", "pw")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "alice", u.Username)
}

// Unknown username and wrong password must be indistinguishable: both come
// back as (false, nil) with no user data.
func TestVerifyPasswordFailuresLookAlike(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT id,username,password_hash,created_at FROM users").
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash", "created_at"}))
	mock.ExpectQuery("SELECT id,username,password_hash,created_at FROM users").
		WithArgs("alice").
		WillReturnRows(userRows(t, "alice", "pw"))

	repo := NewUserRepo(db)

	okUnknown, uUnknown, errUnknown := repo.VerifyPassword(context.Background(), "ghost", "whatever")
	okWrong, uWrong, errWrong := repo.VerifyPassword(context.Background(), "alice", "wrong")

	assert.Equal(t, okUnknown, okWrong)
	assert.Equal(t, uUnknown, uWrong)
	assert.Equal(t, errUnknown, errWrong)
	assert.False(t, okUnknown)
	assert.NoError(t, errUnknown)
}
