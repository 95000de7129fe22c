package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lukaswerth/business-number-service/internal/sequence"
)

func TestSequenceRepoNextFirstOfYear(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO customer_sequences .*ON DUPLICATE KEY UPDATE").
		WithArgs("25").
		WillReturnResult(sqlmock.NewResult(1, 1))

	repo := NewSequenceRepo(db)
	n, err := repo.Next(context.Background(), sequence.KindCustomer, "25")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSequenceRepoNextIncrements(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// LAST_INSERT_ID(last_sequence + 1) comes back through LastInsertId.
	mock.ExpectExec("INSERT INTO order_sequences .*ON DUPLICATE KEY UPDATE").
		WithArgs("25").
		WillReturnResult(sqlmock.NewResult(42, 2))

	repo := NewSequenceRepo(db)
	n, err := repo.Next(context.Background(), sequence.KindOrder, "25")
	require.NoError(t, err)
	assert.Equal(t, uint64(42), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSequenceRepoNextPropagatesStoreFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO customer_sequences").
		WithArgs("25").
		WillReturnError(errors.New("server has gone away"))

	repo := NewSequenceRepo(db)
	_, err = repo.Next(context.Background(), sequence.KindCustomer, "25")
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSequenceRepoNextUnknownKind(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewSequenceRepo(db)
	_, err = repo.Next(context.Background(), sequence.Kind("invoice"), "25")
	assert.Error(t, err)
}

func TestSequenceRepoCurrent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT last_sequence FROM customer_sequences WHERE year=").
		WithArgs("25").
		WillReturnRows(sqlmock.NewRows([]string{"last_sequence"}).AddRow(7))

	repo := NewSequenceRepo(db)
	n, err := repo.Current(context.Background(), sequence.KindCustomer, "25")
	require.NoError(t, err)
	assert.Equal(t, uint64(7), n)
}

func TestSequenceRepoCurrentNewYearIsZero(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT last_sequence FROM order_sequences WHERE year=").
		WithArgs("26").
		WillReturnRows(sqlmock.NewRows([]string{"last_sequence"}))

	repo := NewSequenceRepo(db)
	n, err := repo.Current(context.Background(), sequence.KindOrder, "26")
	require.NoError(t, err)
	assert.Equal(t, uint64(0), n)
}
