// AngelaMos | 2026
// repository.go

package product

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/andgroupco/andoffer/internal/core"
)

type Repository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id string) (*Product, error)
	GetListing(ctx context.Context, id string) (*Listing, error)
	List(ctx context.Context, params ListParams) ([]Listing, int64, error)
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id string) error
	Images(ctx context.Context, productID string) ([]Image, error)
	ReplaceImages(ctx context.Context, productID string, assetIDs []string) error
}

const productColumns = `p.id, p.name, p.slug, p.sku, p.status, p.summary,
		       p.description, p.price, p.currency, p.src_country, p.featured,
		       p.category_id, p.supplier_id, p.created_at, p.updated_at`

const listingSelect = `
		SELECT ` + productColumns + `,
		       c.name AS category_name, c.slug AS category_slug,
		       s.name AS supplier_name,
		       (SELECT a.url
		          FROM product_assets pa
		          JOIN assets a ON a.id = pa.asset_id
		         WHERE pa.product_id = p.id
		         ORDER BY pa.sort_order ASC
		         LIMIT 1) AS cover_url
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		LEFT JOIN suppliers s ON s.id = p.supplier_id`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, p *Product) error {
	query := `
		INSERT INTO products (
			id, name, slug, sku, status, summary, description, price,
			currency, src_country, featured, category_id, supplier_id
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		p.ID,
		p.Name,
		p.Slug,
		p.SKU,
		p.Status,
		p.Summary,
		p.Description,
		p.Price,
		p.Currency,
		p.SrcCountry,
		p.Featured,
		p.CategoryID,
		p.SupplierID,
	).Scan(&p.CreatedAt, &p.UpdatedAt)

	return core.MapDBError("create product", err)
}

func (r *repository) GetByID(ctx context.Context, id string) (*Product, error) {
	query := `SELECT ` + productColumns + ` FROM products p WHERE p.id = $1`

	var p Product
	if err := r.db.GetContext(ctx, &p, query, id); err != nil {
		return nil, core.MapDBError("get product", err)
	}

	return &p, nil
}

func (r *repository) GetListing(ctx context.Context, id string) (*Listing, error) {
	query := listingSelect + ` WHERE p.id = $1`

	var l Listing
	if err := r.db.GetContext(ctx, &l, query, id); err != nil {
		return nil, core.MapDBError("get product", err)
	}

	return &l, nil
}

func (r *repository) List(
	ctx context.Context,
	params ListParams,
) ([]Listing, int64, error) {
	params.Normalize()

	var conditions []string
	var args []any
	argIdx := 1

	if params.Status != "" {
		conditions = append(conditions, fmt.Sprintf("p.status = $%d", argIdx))
		args = append(args, params.Status)
		argIdx++
	}

	if params.Featured != nil {
		conditions = append(conditions, fmt.Sprintf("p.featured = $%d", argIdx))
		args = append(args, *params.Featured)
		argIdx++
	}

	if params.CategoryID != "" {
		conditions = append(conditions, fmt.Sprintf("p.category_id = $%d", argIdx))
		args = append(args, params.CategoryID)
		argIdx++
	}

	if params.SupplierID != "" {
		conditions = append(conditions, fmt.Sprintf("p.supplier_id = $%d", argIdx))
		args = append(args, params.SupplierID)
		argIdx++
	}

	if params.Query != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(p.name ILIKE $%d OR p.sku ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+core.EscapeLike(params.Query)+"%")
		argIdx++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	countQuery := "SELECT COUNT(*) FROM products p" + whereClause
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	query := fmt.Sprintf(`%s%s
		ORDER BY p.created_at DESC
		LIMIT $%d OFFSET $%d`,
		listingSelect, whereClause, argIdx, argIdx+1)

	args = append(args, params.PageSize, params.Offset())

	var items []Listing
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}

	return items, total, nil
}

func (r *repository) Update(ctx context.Context, p *Product) error {
	query := `
		UPDATE products
		SET name = $2, slug = $3, sku = $4, status = $5, summary = $6,
		    description = $7, price = $8, currency = $9, src_country = $10,
		    featured = $11, category_id = $12, supplier_id = $13,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &p.UpdatedAt, query,
		p.ID,
		p.Name,
		p.Slug,
		p.SKU,
		p.Status,
		p.Summary,
		p.Description,
		p.Price,
		p.Currency,
		p.SrcCountry,
		p.Featured,
		p.CategoryID,
		p.SupplierID,
	)

	return core.MapDBError("update product", err)
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return core.MapDBError("delete product", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete product: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) Images(ctx context.Context, productID string) ([]Image, error) {
	query := `
		SELECT a.id AS asset_id, a.url, a.file_name, a.mime_type, a.alt,
		       pa.sort_order
		FROM product_assets pa
		JOIN assets a ON a.id = pa.asset_id
		WHERE pa.product_id = $1
		ORDER BY pa.sort_order ASC`

	images := []Image{}
	if err := r.db.SelectContext(ctx, &images, query, productID); err != nil {
		return nil, fmt.Errorf("list product images: %w", err)
	}

	return images, nil
}

// ReplaceImages swaps the whole ordered image list in one transaction. The
// product row is locked so concurrent replacements serialize.
func (r *repository) ReplaceImages(
	ctx context.Context,
	productID string,
	assetIDs []string,
) error {
	return core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var id string
		err := tx.GetContext(ctx, &id,
			`SELECT id FROM products WHERE id = $1 FOR UPDATE`, productID)
		if err != nil {
			return core.MapDBError("lock product", err)
		}

		if _, err := tx.ExecContext(ctx,
			`DELETE FROM product_assets WHERE product_id = $1`, productID); err != nil {
			return fmt.Errorf("clear product images: %w", err)
		}

		for i, assetID := range assetIDs {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO product_assets (product_id, asset_id, sort_order)
				VALUES ($1, $2, $3)`,
				productID, assetID, i)
			if err != nil {
				return core.MapDBError("attach product image", err)
			}
		}

		return nil
	})
}
