// AngelaMos | 2026
// repository.go

package asset

import (
	"context"
	"fmt"

	"github.com/andgroupco/andoffer/internal/core"
)

type Repository interface {
	Create(ctx context.Context, asset *Asset) error
	GetByID(ctx context.Context, id string) (*Asset, error)
	List(ctx context.Context, params core.PageParams) ([]Asset, int64, error)
	Delete(ctx context.Context, id string) error
}

const assetColumns = `id, type, storage_id, url, file_name, mime_type,
		       size_bytes, alt, created_at`

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, asset *Asset) error {
	query := `
		INSERT INTO assets (
			id, type, storage_id, url, file_name, mime_type, size_bytes, alt
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at`

	err := r.db.QueryRowxContext(ctx, query,
		asset.ID,
		asset.Type,
		asset.StorageID,
		asset.URL,
		asset.FileName,
		asset.MimeType,
		asset.SizeBytes,
		asset.Alt,
	).Scan(&asset.CreatedAt)

	return core.MapDBError("create asset", err)
}

func (r *repository) GetByID(ctx context.Context, id string) (*Asset, error) {
	query := `SELECT ` + assetColumns + ` FROM assets WHERE id = $1`

	var asset Asset
	if err := r.db.GetContext(ctx, &asset, query, id); err != nil {
		return nil, core.MapDBError("get asset", err)
	}

	return &asset, nil
}

func (r *repository) List(
	ctx context.Context,
	params core.PageParams,
) ([]Asset, int64, error) {
	params.Normalize()

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM assets`); err != nil {
		return nil, 0, fmt.Errorf("count assets: %w", err)
	}

	query := `
		SELECT ` + assetColumns + `
		FROM assets
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	var assets []Asset
	if err := r.db.SelectContext(ctx, &assets, query, params.PageSize, params.Offset()); err != nil {
		return nil, 0, fmt.Errorf("list assets: %w", err)
	}

	return assets, total, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM assets WHERE id = $1`, id)
	if err != nil {
		return core.MapDBError("delete asset", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete asset: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete asset: %w", core.ErrNotFound)
	}

	return nil
}
