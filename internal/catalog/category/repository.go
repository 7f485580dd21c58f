// AngelaMos | 2026
// repository.go

package category

import (
	"context"
	"fmt"

	"github.com/andgroupco/andoffer/internal/core"
)

type Repository interface {
	Create(ctx context.Context, c *Category) error
	GetByID(ctx context.Context, id string) (*Category, error)
	GetCounted(ctx context.Context, id string) (*Counted, error)
	List(ctx context.Context) ([]Counted, error)
	Children(ctx context.Context, parentID string) ([]Child, error)
	IsDescendant(ctx context.Context, ancestorID, id string) (bool, error)
	Update(ctx context.Context, c *Category) error
	Delete(ctx context.Context, id string) error
}

const countedSelect = `
		SELECT c.id, c.name, c.slug, c.description, c.sort_order, c.parent_id,
		       c.created_at, c.updated_at,
		       (SELECT COUNT(*) FROM products p WHERE p.category_id = c.id)
		           AS product_count,
		       (SELECT COUNT(*) FROM categories ch WHERE ch.parent_id = c.id)
		           AS child_count
		FROM categories c`

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, c *Category) error {
	query := `
		INSERT INTO categories (id, name, slug, description, sort_order, parent_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		c.ID,
		c.Name,
		c.Slug,
		c.Description,
		c.SortOrder,
		c.ParentID,
	).Scan(&c.CreatedAt, &c.UpdatedAt)

	return core.MapDBError("create category", err)
}

func (r *repository) GetByID(ctx context.Context, id string) (*Category, error) {
	query := `
		SELECT id, name, slug, description, sort_order, parent_id,
		       created_at, updated_at
		FROM categories
		WHERE id = $1`

	var c Category
	if err := r.db.GetContext(ctx, &c, query, id); err != nil {
		return nil, core.MapDBError("get category", err)
	}

	return &c, nil
}

func (r *repository) GetCounted(ctx context.Context, id string) (*Counted, error) {
	var c Counted
	if err := r.db.GetContext(ctx, &c, countedSelect+` WHERE c.id = $1`, id); err != nil {
		return nil, core.MapDBError("get category", err)
	}

	return &c, nil
}

func (r *repository) List(ctx context.Context) ([]Counted, error) {
	query := countedSelect + ` ORDER BY c.sort_order ASC, c.name ASC`

	items := []Counted{}
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	return items, nil
}

func (r *repository) Children(ctx context.Context, parentID string) ([]Child, error) {
	query := `
		SELECT id, name, slug
		FROM categories
		WHERE parent_id = $1
		ORDER BY sort_order ASC, name ASC`

	children := []Child{}
	if err := r.db.SelectContext(ctx, &children, query, parentID); err != nil {
		return nil, fmt.Errorf("list child categories: %w", err)
	}

	return children, nil
}

// IsDescendant reports whether id sits somewhere below ancestorID.
func (r *repository) IsDescendant(
	ctx context.Context,
	ancestorID, id string,
) (bool, error) {
	query := `
		WITH RECURSIVE subtree AS (
			SELECT id FROM categories WHERE parent_id = $1
			UNION
			SELECT c.id FROM categories c JOIN subtree s ON c.parent_id = s.id
		)
		SELECT EXISTS(SELECT 1 FROM subtree WHERE id = $2)`

	var found bool
	if err := r.db.GetContext(ctx, &found, query, ancestorID, id); err != nil {
		return false, fmt.Errorf("check category ancestry: %w", err)
	}

	return found, nil
}

func (r *repository) Update(ctx context.Context, c *Category) error {
	query := `
		UPDATE categories
		SET name = $2, slug = $3, description = $4, sort_order = $5,
		    parent_id = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &c.UpdatedAt, query,
		c.ID,
		c.Name,
		c.Slug,
		c.Description,
		c.SortOrder,
		c.ParentID,
	)

	return core.MapDBError("update category", err)
}

// Delete removes the category. Products and child categories keep existing
// with their reference cleared by the foreign key.
func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return core.MapDBError("delete category", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete category: %w", core.ErrNotFound)
	}

	return nil
}
