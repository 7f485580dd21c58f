// AngelaMos | 2026
// dto.go

package inquiry

import (
	"time"

	"github.com/andgroupco/andoffer/internal/core"
)

type CreateInquiryRequest struct {
	Name      string  `json:"name"       validate:"required,min=1,max=100"`
	Email     *string `json:"email"      validate:"omitempty,email,max=255"`
	Phone     *string `json:"phone"      validate:"omitempty,max=30"`
	Message   string  `json:"message"    validate:"required,min=1,max=2000"`
	ProductID *string `json:"product_id" validate:"omitempty,uuid"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=NEW IN_PROGRESS RESOLVED CLOSED"`
}

type ListParams struct {
	core.PageParams
	Status Status
}

type ProductSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type InquiryResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Email     *string         `json:"email"`
	Phone     *string         `json:"phone"`
	Message   string          `json:"message"`
	Status    Status          `json:"status"`
	Product   *ProductSummary `json:"product"`
	User      *UserSummary    `json:"user,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func ToInquiryResponse(l *Listing) InquiryResponse {
	resp := InquiryResponse{
		ID:        l.ID,
		Name:      l.Name,
		Email:     l.Email,
		Phone:     l.Phone,
		Message:   l.Message,
		Status:    l.Status,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}

	if l.ProductID != nil && l.ProductName != nil {
		resp.Product = &ProductSummary{ID: *l.ProductID, Name: *l.ProductName}
		if l.ProductSlug != nil {
			resp.Product.Slug = *l.ProductSlug
		}
	}

	if l.UserID != nil && l.UserName != nil {
		resp.User = &UserSummary{ID: *l.UserID, Name: *l.UserName}
		if l.UserEmail != nil {
			resp.User.Email = *l.UserEmail
		}
	}

	return resp
}

// ToListResponse drops the account summary, which only the detail view shows.
func ToListResponse(items []Listing) []InquiryResponse {
	out := make([]InquiryResponse, 0, len(items))
	for i := range items {
		resp := ToInquiryResponse(&items[i])
		resp.User = nil
		out = append(out, resp)
	}
	return out
}
