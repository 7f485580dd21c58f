// AngelaMos | 2026
// repository.go

package siteconfig

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/andgroupco/andoffer/internal/core"
)

type Repository interface {
	GetAll(ctx context.Context) ([]Entry, error)
	Get(ctx context.Context, key string) (*Entry, error)
	GetMany(ctx context.Context, keys []string) ([]Entry, error)
	Upsert(ctx context.Context, e *Entry) error
	BatchUpsert(ctx context.Context, entries []Entry) error
}

// The label is only written when the key is first created.
const upsertQuery = `
		INSERT INTO site_configs (key, value, label)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = NOW()
		RETURNING label, updated_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetAll(ctx context.Context) ([]Entry, error) {
	query := `SELECT key, value, label, updated_at FROM site_configs ORDER BY key ASC`

	entries := []Entry{}
	if err := r.db.SelectContext(ctx, &entries, query); err != nil {
		return nil, fmt.Errorf("list site config: %w", err)
	}

	return entries, nil
}

func (r *repository) Get(ctx context.Context, key string) (*Entry, error) {
	query := `SELECT key, value, label, updated_at FROM site_configs WHERE key = $1`

	var e Entry
	if err := r.db.GetContext(ctx, &e, query, key); err != nil {
		return nil, core.MapDBError("get site config", err)
	}

	return &e, nil
}

func (r *repository) GetMany(ctx context.Context, keys []string) ([]Entry, error) {
	if len(keys) == 0 {
		return []Entry{}, nil
	}

	query, args, err := sqlx.In(
		`SELECT key, value, label, updated_at FROM site_configs WHERE key IN (?)`,
		keys,
	)
	if err != nil {
		return nil, fmt.Errorf("build site config query: %w", err)
	}

	entries := []Entry{}
	if err := r.db.SelectContext(ctx, &entries, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("get site config: %w", err)
	}

	return entries, nil
}

func (r *repository) Upsert(ctx context.Context, e *Entry) error {
	return upsert(ctx, r.db, e)
}

// BatchUpsert writes every entry or none of them.
func (r *repository) BatchUpsert(ctx context.Context, entries []Entry) error {
	return core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		for i := range entries {
			if err := upsert(ctx, tx, &entries[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

func upsert(ctx context.Context, db core.DBTX, e *Entry) error {
	err := db.QueryRowxContext(ctx, upsertQuery, e.Key, e.Value, e.Label).
		Scan(&e.Label, &e.UpdatedAt)

	return core.MapDBError("upsert site config "+e.Key, err)
}
