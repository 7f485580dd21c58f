// AngelaMos | 2026
// dto.go

package category

import (
	"time"
)

type CreateCategoryRequest struct {
	Name        string  `json:"name"        validate:"required,min=1,max=100"`
	Slug        string  `json:"slug"        validate:"omitempty,max=100,slug"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	SortOrder   int     `json:"sort_order"`
	ParentID    *string `json:"parent_id"   validate:"omitempty,max=36"`
}

// UpdateCategoryRequest is a partial update. A blank parent_id makes the
// category a root.
type UpdateCategoryRequest struct {
	Name        *string `json:"name"        validate:"omitempty,min=1,max=100"`
	Slug        *string `json:"slug"        validate:"omitempty,max=100,slug"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	SortOrder   *int    `json:"sort_order"`
	ParentID    *string `json:"parent_id"   validate:"omitempty,max=36"`
}

type ParentSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ChildSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type CategoryResponse struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Slug         string         `json:"slug"`
	Description  *string        `json:"description"`
	SortOrder    int            `json:"sort_order"`
	ParentID     *string        `json:"parent_id"`
	ProductCount int64          `json:"product_count"`
	ChildCount   int64          `json:"child_count"`
	Parent       *ParentSummary `json:"parent,omitempty"`
	Children     []ChildSummary `json:"children,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

func ToCategoryResponse(c *Counted) CategoryResponse {
	return CategoryResponse{
		ID:           c.ID,
		Name:         c.Name,
		Slug:         c.Slug,
		Description:  c.Description,
		SortOrder:    c.SortOrder,
		ParentID:     c.ParentID,
		ProductCount: c.ProductCount,
		ChildCount:   c.ChildCount,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func ToCategoryResponseList(items []Counted) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(items))
	for i := range items {
		out = append(out, ToCategoryResponse(&items[i]))
	}
	return out
}

func ToDetailResponse(d *Detail) CategoryResponse {
	resp := ToCategoryResponse(&d.Counted)

	if d.ParentID != nil && d.ParentName != nil {
		resp.Parent = &ParentSummary{ID: *d.ParentID, Name: *d.ParentName}
	}

	resp.Children = make([]ChildSummary, 0, len(d.Children))
	for _, c := range d.Children {
		resp.Children = append(resp.Children, ChildSummary(c))
	}

	return resp
}
