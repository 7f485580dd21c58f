// AngelaMos | 2026
// fakes_test.go

package product

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/andgroupco/andoffer/internal/core"
)

type memRepo struct {
	products   map[string]*Product
	images     map[string][]Image
	categories map[string]string
	assets     map[string]string
	lastList   ListParams
}

func newMemRepo() *memRepo {
	return &memRepo{
		products:   map[string]*Product{},
		images:     map[string][]Image{},
		categories: map[string]string{},
		assets:     map[string]string{},
	}
}

func (m *memRepo) checkRefs(p *Product) error {
	for _, other := range m.products {
		if other.ID != p.ID && other.Slug == p.Slug {
			return fmt.Errorf("create product: %w", core.ErrDuplicateKey)
		}
	}
	if p.CategoryID != nil {
		if _, ok := m.categories[*p.CategoryID]; !ok {
			return fmt.Errorf("create product: %w", core.ErrInvalidInput)
		}
	}
	return nil
}

func (m *memRepo) Create(_ context.Context, p *Product) error {
	if err := m.checkRefs(p); err != nil {
		return err
	}
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	cp := *p
	m.products[p.ID] = &cp
	return nil
}

func (m *memRepo) GetByID(_ context.Context, id string) (*Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, fmt.Errorf("get product: %w", core.ErrNotFound)
	}
	cp := *p
	return &cp, nil
}

func (m *memRepo) listing(p *Product) Listing {
	l := Listing{Product: *p}
	if p.CategoryID != nil {
		name := m.categories[*p.CategoryID]
		l.CategoryName = &name
	}
	if imgs := m.images[p.ID]; len(imgs) > 0 {
		url := imgs[0].URL
		l.CoverURL = &url
	}
	return l
}

func (m *memRepo) GetListing(ctx context.Context, id string) (*Listing, error) {
	p, err := m.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	l := m.listing(p)
	return &l, nil
}

func (m *memRepo) List(_ context.Context, params ListParams) ([]Listing, int64, error) {
	m.lastList = params
	var out []Listing
	for _, p := range m.products {
		if params.Status != "" && p.Status != params.Status {
			continue
		}
		out = append(out, m.listing(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, int64(len(out)), nil
}

func (m *memRepo) Update(_ context.Context, p *Product) error {
	if _, ok := m.products[p.ID]; !ok {
		return fmt.Errorf("update product: %w", core.ErrNotFound)
	}
	if err := m.checkRefs(p); err != nil {
		return err
	}
	p.UpdatedAt = time.Now()
	cp := *p
	m.products[p.ID] = &cp
	return nil
}

func (m *memRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.products[id]; !ok {
		return fmt.Errorf("delete product: %w", core.ErrNotFound)
	}
	delete(m.products, id)
	delete(m.images, id)
	return nil
}

func (m *memRepo) Images(_ context.Context, productID string) ([]Image, error) {
	return append([]Image{}, m.images[productID]...), nil
}

func (m *memRepo) ReplaceImages(_ context.Context, productID string, assetIDs []string) error {
	if _, ok := m.products[productID]; !ok {
		return fmt.Errorf("lock product: %w", core.ErrNotFound)
	}

	imgs := make([]Image, 0, len(assetIDs))
	for i, id := range assetIDs {
		url, ok := m.assets[id]
		if !ok {
			return fmt.Errorf("attach product image: %w", core.ErrInvalidInput)
		}
		imgs = append(imgs, Image{AssetID: id, URL: url, SortOrder: i})
	}
	m.images[productID] = imgs
	return nil
}
