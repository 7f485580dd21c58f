// AngelaMos | 2026
// service.go

package supplier

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/andgroupco/andoffer/internal/catalog"
)

const defaultCountry = "CN"

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, activeOnly bool) ([]Counted, error) {
	return s.repo.List(ctx, activeOnly)
}

// Get returns the supplier with its most recently added products.
func (s *Service) Get(ctx context.Context, id string) (*Detail, error) {
	counted, err := s.repo.GetCounted(ctx, id)
	if err != nil {
		return nil, err
	}

	recent, err := s.repo.RecentProducts(ctx, id, RecentProductLimit)
	if err != nil {
		return nil, err
	}

	return &Detail{Counted: *counted, RecentProducts: recent}, nil
}

func (s *Service) Create(
	ctx context.Context,
	req CreateSupplierRequest,
) (*Detail, error) {
	sup := &Supplier{
		ID:      uuid.New().String(),
		Name:    strings.TrimSpace(req.Name),
		Country: defaultCountry,
		Email:   normalizeEmail(req.Email),
		Phone:   catalog.Clean(req.Phone),
		Active:  true,
	}
	if req.Country != "" {
		sup.Country = strings.ToUpper(req.Country)
	}
	if req.Active != nil {
		sup.Active = *req.Active
	}

	if err := s.repo.Create(ctx, sup); err != nil {
		return nil, err
	}

	return s.Get(ctx, sup.ID)
}

func (s *Service) Update(
	ctx context.Context,
	id string,
	req UpdateSupplierRequest,
) (*Detail, error) {
	sup, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		sup.Name = strings.TrimSpace(*req.Name)
	}
	if req.Country != nil {
		sup.Country = strings.ToUpper(*req.Country)
	}
	if req.Email != nil {
		sup.Email = normalizeEmail(req.Email)
	}
	if req.Phone != nil {
		sup.Phone = catalog.Clean(req.Phone)
	}
	if req.Active != nil {
		sup.Active = *req.Active
	}

	if err := s.repo.Update(ctx, sup); err != nil {
		return nil, err
	}

	return s.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func normalizeEmail(email *string) *string {
	e := catalog.Clean(email)
	if e == nil {
		return nil
	}
	lower := strings.ToLower(*e)
	return &lower
}
