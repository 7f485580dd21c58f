// AngelaMos | 2026
// repository.go

package supplier

import (
	"context"
	"fmt"

	"github.com/andgroupco/andoffer/internal/core"
)

const RecentProductLimit = 10

type Repository interface {
	Create(ctx context.Context, s *Supplier) error
	GetByID(ctx context.Context, id string) (*Supplier, error)
	GetCounted(ctx context.Context, id string) (*Counted, error)
	List(ctx context.Context, activeOnly bool) ([]Counted, error)
	RecentProducts(ctx context.Context, supplierID string, limit int) ([]ProductRef, error)
	Update(ctx context.Context, s *Supplier) error
	Delete(ctx context.Context, id string) error
}

const countedSelect = `
		SELECT s.id, s.name, s.country, s.email, s.phone, s.active,
		       s.created_at, s.updated_at,
		       (SELECT COUNT(*) FROM products p WHERE p.supplier_id = s.id)
		           AS product_count
		FROM suppliers s`

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, s *Supplier) error {
	query := `
		INSERT INTO suppliers (id, name, country, email, phone, active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		s.ID,
		s.Name,
		s.Country,
		s.Email,
		s.Phone,
		s.Active,
	).Scan(&s.CreatedAt, &s.UpdatedAt)

	return core.MapDBError("create supplier", err)
}

func (r *repository) GetByID(ctx context.Context, id string) (*Supplier, error) {
	query := `
		SELECT id, name, country, email, phone, active, created_at, updated_at
		FROM suppliers
		WHERE id = $1`

	var s Supplier
	if err := r.db.GetContext(ctx, &s, query, id); err != nil {
		return nil, core.MapDBError("get supplier", err)
	}

	return &s, nil
}

func (r *repository) GetCounted(ctx context.Context, id string) (*Counted, error) {
	var c Counted
	if err := r.db.GetContext(ctx, &c, countedSelect+` WHERE s.id = $1`, id); err != nil {
		return nil, core.MapDBError("get supplier", err)
	}

	return &c, nil
}

func (r *repository) List(ctx context.Context, activeOnly bool) ([]Counted, error) {
	query := countedSelect
	if activeOnly {
		query += ` WHERE s.active = TRUE`
	}
	query += ` ORDER BY s.name ASC`

	items := []Counted{}
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}

	return items, nil
}

func (r *repository) RecentProducts(
	ctx context.Context,
	supplierID string,
	limit int,
) ([]ProductRef, error) {
	query := `
		SELECT id, name, slug, status
		FROM products
		WHERE supplier_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	refs := []ProductRef{}
	if err := r.db.SelectContext(ctx, &refs, query, supplierID, limit); err != nil {
		return nil, fmt.Errorf("list supplier products: %w", err)
	}

	return refs, nil
}

func (r *repository) Update(ctx context.Context, s *Supplier) error {
	query := `
		UPDATE suppliers
		SET name = $2, country = $3, email = $4, phone = $5, active = $6,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &s.UpdatedAt, query,
		s.ID,
		s.Name,
		s.Country,
		s.Email,
		s.Phone,
		s.Active,
	)

	return core.MapDBError("update supplier", err)
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM suppliers WHERE id = $1`, id)
	if err != nil {
		return core.MapDBError("delete supplier", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete supplier: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete supplier: %w", core.ErrNotFound)
	}

	return nil
}
