// AngelaMos | 2026
// entity.go

package product

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusPublished Status = "PUBLISHED"
	StatusArchived  Status = "ARCHIVED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusArchived:
		return true
	default:
		return false
	}
}

type Product struct {
	ID          string              `db:"id"`
	Name        string              `db:"name"`
	Slug        string              `db:"slug"`
	SKU         *string             `db:"sku"`
	Status      Status              `db:"status"`
	Summary     *string             `db:"summary"`
	Description *string             `db:"description"`
	Price       decimal.NullDecimal `db:"price"`
	Currency    string              `db:"currency"`
	SrcCountry  string              `db:"src_country"`
	Featured    bool                `db:"featured"`
	CategoryID  *string             `db:"category_id"`
	SupplierID  *string             `db:"supplier_id"`
	CreatedAt   time.Time           `db:"created_at"`
	UpdatedAt   time.Time           `db:"updated_at"`
}

// Listing is a product joined with the names of its relations and the URL
// of its first image.
type Listing struct {
	Product
	CategoryName *string `db:"category_name"`
	CategorySlug *string `db:"category_slug"`
	SupplierName *string `db:"supplier_name"`
	CoverURL     *string `db:"cover_url"`
}

type Image struct {
	AssetID   string  `db:"asset_id"`
	URL       string  `db:"url"`
	FileName  string  `db:"file_name"`
	MimeType  string  `db:"mime_type"`
	Alt       *string `db:"alt"`
	SortOrder int     `db:"sort_order"`
}
