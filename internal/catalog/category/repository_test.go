// AngelaMos | 2026
// repository_test.go

package category

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

func TestRepository_ListWithCounts(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY c.sort_order ASC, c.name ASC")).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "slug", "description", "sort_order", "parent_id",
			"created_at", "updated_at", "product_count", "child_count",
		}).
			AddRow("c1", "Kitchen", "kitchen", nil, 0, nil, now, now, 12, 2).
			AddRow("c2", "Pans", "pans", "Steel pans", 1, "c1", now, now, 3, 0))

	items, err := repo.List(t.Context())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, int64(12), items[0].ProductCount)
	assert.Equal(t, int64(2), items[0].ChildCount)
	assert.Equal(t, "c1", *items[1].ParentID)
}

func TestRepository_IsDescendant(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("WITH RECURSIVE subtree")).
		WithArgs("root", "leaf").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	found, err := repo.IsDescendant(t.Context(), "root", "leaf")
	require.NoError(t, err)
	assert.True(t, found)
}

func TestRepository_UpdateMapsErrors(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE categories")).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE categories")).
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}))

	err := repo.Update(t.Context(), &Category{ID: "c1", Name: "x", Slug: "x"})
	assert.ErrorIs(t, err, core.ErrDuplicateKey)

	err = repo.Update(t.Context(), &Category{ID: "c2", Name: "y", Slug: "y"})
	assert.ErrorIs(t, err, core.ErrNotFound)
}
