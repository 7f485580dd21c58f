// AngelaMos | 2026
// service.go

package category

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/andgroupco/andoffer/internal/catalog"
	"github.com/andgroupco/andoffer/internal/core"
)

var (
	ErrSlugTaken     = errors.New("slug already in use")
	ErrSelfParent    = errors.New("category cannot be its own parent")
	ErrParentCycle   = errors.New("parent is a descendant of the category")
	ErrUnknownParent = errors.New("unknown parent category")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]Counted, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*Detail, error) {
	counted, err := s.repo.GetCounted(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &Detail{Counted: *counted}

	if counted.ParentID != nil {
		parent, parentErr := s.repo.GetByID(ctx, *counted.ParentID)
		switch {
		case parentErr == nil:
			detail.ParentName = &parent.Name
		case !errors.Is(parentErr, core.ErrNotFound):
			return nil, parentErr
		}
	}

	if detail.Children, err = s.repo.Children(ctx, id); err != nil {
		return nil, err
	}

	return detail, nil
}

func (s *Service) Create(
	ctx context.Context,
	req CreateCategoryRequest,
) (*Detail, error) {
	slug, err := catalog.ResolveSlug(req.Slug, req.Name)
	if err != nil {
		return nil, err
	}

	parentID, err := catalog.NormalizeRef(req.ParentID)
	if err != nil {
		return nil, err
	}

	c := &Category{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(req.Name),
		Slug:        slug,
		Description: catalog.Clean(req.Description),
		SortOrder:   req.SortOrder,
		ParentID:    parentID,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, mapWriteError(err)
	}

	return s.Get(ctx, c.ID)
}

func (s *Service) Update(
	ctx context.Context,
	id string,
	req UpdateCategoryRequest,
) (*Detail, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		c.Name = strings.TrimSpace(*req.Name)
	}
	if req.Slug != nil {
		if c.Slug, err = catalog.ResolveSlug(*req.Slug, c.Name); err != nil {
			return nil, err
		}
	}
	if req.Description != nil {
		c.Description = catalog.Clean(req.Description)
	}
	if req.SortOrder != nil {
		c.SortOrder = *req.SortOrder
	}
	if req.ParentID != nil {
		parentID, refErr := catalog.NormalizeRef(req.ParentID)
		if refErr != nil {
			return nil, refErr
		}
		if err := s.checkParent(ctx, id, parentID); err != nil {
			return nil, err
		}
		c.ParentID = parentID
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, mapWriteError(err)
	}

	return s.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// checkParent keeps the category tree acyclic.
func (s *Service) checkParent(ctx context.Context, id string, parentID *string) error {
	if parentID == nil {
		return nil
	}

	if *parentID == id {
		return ErrSelfParent
	}

	below, err := s.repo.IsDescendant(ctx, id, *parentID)
	if err != nil {
		return err
	}
	if below {
		return ErrParentCycle
	}

	return nil
}

func mapWriteError(err error) error {
	switch {
	case errors.Is(err, core.ErrDuplicateKey):
		return fmt.Errorf("%w: %w", ErrSlugTaken, err)
	case errors.Is(err, core.ErrInvalidInput):
		return fmt.Errorf("%w: %w", ErrUnknownParent, err)
	default:
		return err
	}
}
