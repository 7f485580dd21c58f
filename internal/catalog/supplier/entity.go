// AngelaMos | 2026
// entity.go

package supplier

import (
	"time"
)

type Supplier struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Country   string    `db:"country"`
	Email     *string   `db:"email"`
	Phone     *string   `db:"phone"`
	Active    bool      `db:"active"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type Counted struct {
	Supplier
	ProductCount int64 `db:"product_count"`
}

type ProductRef struct {
	ID     string `db:"id"`
	Name   string `db:"name"`
	Slug   string `db:"slug"`
	Status string `db:"status"`
}

type Detail struct {
	Counted
	RecentProducts []ProductRef
}
