// AngelaMos | 2026
// service.go

package product

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/andgroupco/andoffer/internal/catalog"
	"github.com/andgroupco/andoffer/internal/core"
)

const (
	defaultCurrency   = "USD"
	defaultSrcCountry = "CN"
)

var (
	ErrSlugTaken    = errors.New("slug already in use")
	ErrInvalidPrice = errors.New("price must be greater than zero")
	ErrUnknownRef   = errors.New("unknown category, supplier or asset")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns a page of products. Callers without catalog access only see
// published products regardless of the requested status.
func (s *Service) List(
	ctx context.Context,
	params ListParams,
	includeUnpublished bool,
) ([]Listing, int64, error) {
	if !includeUnpublished {
		params.Status = StatusPublished
	}

	return s.repo.List(ctx, params)
}

func (s *Service) Get(
	ctx context.Context,
	id string,
	includeUnpublished bool,
) (*Detail, error) {
	listing, err := s.repo.GetListing(ctx, id)
	if err != nil {
		return nil, err
	}

	if !includeUnpublished && listing.Status != StatusPublished {
		return nil, fmt.Errorf("get product: %w", core.ErrNotFound)
	}

	images, err := s.repo.Images(ctx, id)
	if err != nil {
		return nil, err
	}

	return &Detail{Listing: *listing, Images: images}, nil
}

func (s *Service) Create(
	ctx context.Context,
	req CreateProductRequest,
) (*Detail, error) {
	slug, err := catalog.ResolveSlug(req.Slug, req.Name)
	if err != nil {
		return nil, err
	}

	price, err := validPrice(req.Price)
	if err != nil {
		return nil, err
	}

	categoryID, err := catalog.NormalizeRef(req.CategoryID)
	if err != nil {
		return nil, err
	}

	supplierID, err := catalog.NormalizeRef(req.SupplierID)
	if err != nil {
		return nil, err
	}

	p := &Product{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(req.Name),
		Slug:        slug,
		SKU:         catalog.Clean(req.SKU),
		Status:      StatusDraft,
		Summary:     catalog.Clean(req.Summary),
		Description: catalog.Clean(req.Description),
		Price:       price,
		Currency:    orDefault(req.Currency, defaultCurrency),
		SrcCountry:  orDefault(req.SrcCountry, defaultSrcCountry),
		Featured:    req.Featured,
		CategoryID:  categoryID,
		SupplierID:  supplierID,
	}
	if req.Status != "" {
		p.Status = Status(req.Status)
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, mapWriteError(err)
	}

	return s.Get(ctx, p.ID, true)
}

func (s *Service) Update(
	ctx context.Context,
	id string,
	req UpdateProductRequest,
) (*Detail, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		p.Name = strings.TrimSpace(*req.Name)
	}
	if req.Slug != nil {
		slug, slugErr := catalog.ResolveSlug(*req.Slug, p.Name)
		if slugErr != nil {
			return nil, slugErr
		}
		p.Slug = slug
	}
	if req.SKU != nil {
		p.SKU = catalog.Clean(req.SKU)
	}
	if req.Status != nil {
		p.Status = Status(*req.Status)
	}
	if req.Summary != nil {
		p.Summary = catalog.Clean(req.Summary)
	}
	if req.Description != nil {
		p.Description = catalog.Clean(req.Description)
	}
	if req.Price != nil {
		price, priceErr := validPrice(req.Price)
		if priceErr != nil {
			return nil, priceErr
		}
		p.Price = price
	}
	if req.Currency != nil {
		p.Currency = strings.ToUpper(*req.Currency)
	}
	if req.SrcCountry != nil {
		p.SrcCountry = strings.ToUpper(*req.SrcCountry)
	}
	if req.Featured != nil {
		p.Featured = *req.Featured
	}
	if req.CategoryID != nil {
		if p.CategoryID, err = catalog.NormalizeRef(req.CategoryID); err != nil {
			return nil, err
		}
	}
	if req.SupplierID != nil {
		if p.SupplierID, err = catalog.NormalizeRef(req.SupplierID); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, mapWriteError(err)
	}

	return s.Get(ctx, id, true)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// SetImages replaces the product's ordered image list. Order in assetIDs
// becomes the display order; the first image is the cover.
func (s *Service) SetImages(
	ctx context.Context,
	id string,
	assetIDs []string,
) (*Detail, error) {
	if err := s.repo.ReplaceImages(ctx, id, assetIDs); err != nil {
		return nil, mapWriteError(err)
	}

	return s.Get(ctx, id, true)
}

func validPrice(p *decimal.Decimal) (decimal.NullDecimal, error) {
	if p == nil {
		return decimal.NullDecimal{}, nil
	}
	if !p.IsPositive() {
		return decimal.NullDecimal{}, ErrInvalidPrice
	}
	return decimal.NewNullDecimal(p.Round(2)), nil
}

func mapWriteError(err error) error {
	switch {
	case errors.Is(err, core.ErrDuplicateKey):
		return fmt.Errorf("%w: %w", ErrSlugTaken, err)
	case errors.Is(err, core.ErrInvalidInput):
		return fmt.Errorf("%w: %w", ErrUnknownRef, err)
	default:
		return err
	}
}

func orDefault(v, def string) string {
	v = strings.ToUpper(strings.TrimSpace(v))
	if v == "" {
		return def
	}
	return v
}
