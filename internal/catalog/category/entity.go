// AngelaMos | 2026
// entity.go

package category

import (
	"time"
)

type Category struct {
	ID          string    `db:"id"`
	Name        string    `db:"name"`
	Slug        string    `db:"slug"`
	Description *string   `db:"description"`
	SortOrder   int       `db:"sort_order"`
	ParentID    *string   `db:"parent_id"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// Counted is a category with the number of products and direct children
// that reference it.
type Counted struct {
	Category
	ProductCount int64 `db:"product_count"`
	ChildCount   int64 `db:"child_count"`
}

type Child struct {
	ID   string `db:"id"`
	Name string `db:"name"`
	Slug string `db:"slug"`
}

type Detail struct {
	Counted
	ParentName *string
	Children   []Child
}
