// AngelaMos | 2026
// database_test.go

package core

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapDBError(t *testing.T) {
	assert.NoError(t, MapDBError("op", nil))
	assert.ErrorIs(t, MapDBError("op", sql.ErrNoRows), ErrNotFound)
	assert.ErrorIs(
		t,
		MapDBError("op", &pgconn.PgError{Code: "23505"}),
		ErrDuplicateKey,
	)
	assert.ErrorIs(
		t,
		MapDBError("op", &pgconn.PgError{Code: "23503"}),
		ErrInvalidInput,
	)

	other := errors.New("boom")
	err := MapDBError("create thing", other)
	assert.ErrorIs(t, err, other)
	assert.Equal(t, "create thing: boom", err.Error())
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\%\_off\\`, EscapeLike(`50%_off\`))
}

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return sqlx.NewDb(db, "pgx"), mock
}

func TestInTx_CommitsOnSuccess(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE site_configs").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := InTx(t.Context(), db, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(t.Context(), "UPDATE site_configs SET value = 'x'")
		return err
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInTx_RollsBackOnError(t *testing.T) {
	db, mock := newMockDB(t)
	failure := errors.New("second write failed")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := InTx(t.Context(), db, func(_ *sqlx.Tx) error {
		return failure
	})
	assert.ErrorIs(t, err, failure)
	assert.NoError(t, mock.ExpectationsWereMet())
}
