// AngelaMos | 2026
// dto.go

package supplier

import (
	"time"
)

type CreateSupplierRequest struct {
	Name    string  `json:"name"    validate:"required,min=1,max=200"`
	Country string  `json:"country" validate:"omitempty,len=2,alpha"`
	Email   *string `json:"email"   validate:"omitempty,email,max=255"`
	Phone   *string `json:"phone"   validate:"omitempty,max=30"`
	Active  *bool   `json:"active"`
}

type UpdateSupplierRequest struct {
	Name    *string `json:"name"    validate:"omitempty,min=1,max=200"`
	Country *string `json:"country" validate:"omitempty,len=2,alpha"`
	Email   *string `json:"email"   validate:"omitempty,email,max=255"`
	Phone   *string `json:"phone"   validate:"omitempty,max=30"`
	Active  *bool   `json:"active"`
}

type ProductSummary struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Slug   string `json:"slug"`
	Status string `json:"status"`
}

type SupplierResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Country      string    `json:"country"`
	Email        *string   `json:"email"`
	Phone        *string   `json:"phone"`
	Active       bool      `json:"active"`
	ProductCount int64     `json:"product_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SupplierDetailResponse always carries recent_products, empty or not.
type SupplierDetailResponse struct {
	SupplierResponse
	RecentProducts []ProductSummary `json:"recent_products"`
}

func ToSupplierResponse(c *Counted) SupplierResponse {
	return SupplierResponse{
		ID:           c.ID,
		Name:         c.Name,
		Country:      c.Country,
		Email:        c.Email,
		Phone:        c.Phone,
		Active:       c.Active,
		ProductCount: c.ProductCount,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func ToSupplierResponseList(items []Counted) []SupplierResponse {
	out := make([]SupplierResponse, 0, len(items))
	for i := range items {
		out = append(out, ToSupplierResponse(&items[i]))
	}
	return out
}

func ToDetailResponse(d *Detail) SupplierDetailResponse {
	resp := SupplierDetailResponse{
		SupplierResponse: ToSupplierResponse(&d.Counted),
		RecentProducts:   make([]ProductSummary, 0, len(d.RecentProducts)),
	}
	for _, p := range d.RecentProducts {
		resp.RecentProducts = append(resp.RecentProducts, ProductSummary(p))
	}
	return resp
}
