// AngelaMos | 2026
// dto.go

package product

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/andgroupco/andoffer/internal/core"
)

type CreateProductRequest struct {
	Name        string           `json:"name"        validate:"required,min=1,max=200"`
	Slug        string           `json:"slug"        validate:"omitempty,max=100,slug"`
	SKU         *string          `json:"sku"         validate:"omitempty,max=50"`
	Status      string           `json:"status"      validate:"omitempty,oneof=DRAFT PUBLISHED ARCHIVED"`
	Summary     *string          `json:"summary"     validate:"omitempty,max=500"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Currency    string           `json:"currency"    validate:"omitempty,len=3,alpha"`
	SrcCountry  string           `json:"src_country" validate:"omitempty,len=2,alpha"`
	Featured    bool             `json:"featured"`
	CategoryID  *string          `json:"category_id" validate:"omitempty,max=36"`
	SupplierID  *string          `json:"supplier_id" validate:"omitempty,max=36"`
}

// UpdateProductRequest is a partial update. A blank category_id or
// supplier_id detaches the relation.
type UpdateProductRequest struct {
	Name        *string          `json:"name"        validate:"omitempty,min=1,max=200"`
	Slug        *string          `json:"slug"        validate:"omitempty,max=100,slug"`
	SKU         *string          `json:"sku"         validate:"omitempty,max=50"`
	Status      *string          `json:"status"      validate:"omitempty,oneof=DRAFT PUBLISHED ARCHIVED"`
	Summary     *string          `json:"summary"     validate:"omitempty,max=500"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Currency    *string          `json:"currency"    validate:"omitempty,len=3,alpha"`
	SrcCountry  *string          `json:"src_country" validate:"omitempty,len=2,alpha"`
	Featured    *bool            `json:"featured"`
	CategoryID  *string          `json:"category_id" validate:"omitempty,max=36"`
	SupplierID  *string          `json:"supplier_id" validate:"omitempty,max=36"`
}

type SetAssetsRequest struct {
	AssetIDs []string `json:"asset_ids" validate:"max=50,unique,dive,uuid"`
}

type ListParams struct {
	core.PageParams
	Status     Status
	Featured   *bool
	CategoryID string
	SupplierID string
	Query      string
}

type CategorySummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type SupplierSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ImageResponse struct {
	AssetID   string  `json:"asset_id"`
	URL       string  `json:"url"`
	Name      string  `json:"name"`
	MimeType  string  `json:"mime_type"`
	Alt       *string `json:"alt,omitempty"`
	SortOrder int     `json:"sort_order"`
}

type ProductResponse struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Slug        string           `json:"slug"`
	SKU         *string          `json:"sku"`
	Status      Status           `json:"status"`
	Summary     *string          `json:"summary"`
	Description *string          `json:"description,omitempty"`
	Price       *string          `json:"price"`
	Currency    string           `json:"currency"`
	SrcCountry  string           `json:"src_country"`
	Featured    bool             `json:"featured"`
	CategoryID  *string          `json:"category_id"`
	SupplierID  *string          `json:"supplier_id"`
	Category    *CategorySummary `json:"category"`
	Supplier    *SupplierSummary `json:"supplier"`
	CoverURL    *string          `json:"cover_url"`
	Images      []ImageResponse  `json:"images,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// Detail is a single product with its ordered images.
type Detail struct {
	Listing
	Images []Image
}

func FormatPrice(p decimal.NullDecimal) *string {
	if !p.Valid {
		return nil
	}
	s := p.Decimal.StringFixed(2)
	return &s
}

func ToProductResponse(l *Listing) ProductResponse {
	resp := ProductResponse{
		ID:          l.ID,
		Name:        l.Name,
		Slug:        l.Slug,
		SKU:         l.SKU,
		Status:      l.Status,
		Summary:     l.Summary,
		Description: l.Description,
		Price:       FormatPrice(l.Price),
		Currency:    l.Currency,
		SrcCountry:  l.SrcCountry,
		Featured:    l.Featured,
		CategoryID:  l.CategoryID,
		SupplierID:  l.SupplierID,
		CoverURL:    l.CoverURL,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}

	if l.CategoryID != nil && l.CategoryName != nil {
		resp.Category = &CategorySummary{
			ID:   *l.CategoryID,
			Name: *l.CategoryName,
			Slug: deref(l.CategorySlug),
		}
	}

	if l.SupplierID != nil && l.SupplierName != nil {
		resp.Supplier = &SupplierSummary{
			ID:   *l.SupplierID,
			Name: *l.SupplierName,
		}
	}

	return resp
}

// ToListResponse omits descriptions to keep list payloads small.
func ToListResponse(items []Listing) []ProductResponse {
	out := make([]ProductResponse, 0, len(items))
	for i := range items {
		resp := ToProductResponse(&items[i])
		resp.Description = nil
		out = append(out, resp)
	}
	return out
}

func ToDetailResponse(d *Detail) ProductResponse {
	resp := ToProductResponse(&d.Listing)
	resp.Images = make([]ImageResponse, 0, len(d.Images))
	for _, img := range d.Images {
		resp.Images = append(resp.Images, ImageResponse{
			AssetID:   img.AssetID,
			URL:       img.URL,
			Name:      img.FileName,
			MimeType:  img.MimeType,
			Alt:       img.Alt,
			SortOrder: img.SortOrder,
		})
	}
	return resp
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
