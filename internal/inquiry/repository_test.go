// AngelaMos | 2026
// repository_test.go

package inquiry

import (
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andgroupco/andoffer/internal/core"
)

func newMockRepo(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})

	return NewRepository(sqlx.NewDb(db, "pgx")), mock
}

var listingColumns = []string{
	"id", "name", "email", "phone", "message", "status",
	"product_id", "user_id", "created_at", "updated_at",
	"product_name", "product_slug", "user_name", "user_email",
}

func TestRepository_ListWithStatus(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM inquiries i WHERE i.status = $1")).
		WithArgs("NEW").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(21))
	mock.ExpectQuery(regexp.QuoteMeta("LIMIT $2 OFFSET $3")).
		WithArgs("NEW", 20, 20).
		WillReturnRows(sqlmock.NewRows(listingColumns).
			AddRow("i1", "Mai", "mai@example.com", nil, "hi", "NEW",
				"p1", nil, now, now, "Wok", "wok", nil, nil))

	items, total, err := repo.List(t.Context(), ListParams{
		PageParams: core.PageParams{Page: 2, PageSize: 20},
		Status:     StatusNew,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(21), total)
	require.Len(t, items, 1)
	assert.Equal(t, "Wok", *items[0].ProductName)
	assert.Nil(t, items[0].UserName)
}

func TestRepository_ListUnfiltered(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM inquiries i")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(regexp.QuoteMeta("LIMIT $1 OFFSET $2")).
		WithArgs(core.DefaultPageSize, 0).
		WillReturnRows(sqlmock.NewRows(listingColumns))

	items, total, err := repo.List(t.Context(), ListParams{})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, items)
}

func TestRepository_CreateUnknownProduct(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO inquiries")).
		WillReturnError(&pgconn.PgError{Code: "23503"})

	err := repo.Create(t.Context(), &Inquiry{ID: "i1", Name: "a", Message: "b", Status: StatusNew})
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestRepository_UpdateStatusMissing(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE inquiries")).
		WithArgs("i1", "CLOSED").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(t.Context(), "i1", StatusClosed)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestRepository_CountByStatus(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("GROUP BY status")).
		WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).
			AddRow("NEW", 4).
			AddRow("CLOSED", 1))

	counts, err := repo.CountByStatus(t.Context())
	require.NoError(t, err)
	assert.Equal(t, int64(4), counts[StatusNew])
	assert.Equal(t, int64(1), counts[StatusClosed])
	assert.Contains(t, counts, StatusInProgress)
}
