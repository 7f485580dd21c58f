// AngelaMos | 2026
// service.go

package inquiry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/andgroupco/andoffer/internal/catalog"
	"github.com/andgroupco/andoffer/internal/core"
)

const DashboardLatest = 5

var (
	ErrUnknownProduct = errors.New("referenced product does not exist")
	ErrInvalidStatus  = errors.New("invalid inquiry status")
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

// Create records a customer inquiry. userID is empty for anonymous visitors.
func (s *Service) Create(
	ctx context.Context,
	req CreateInquiryRequest,
	userID string,
) (*Listing, error) {
	productID, err := catalog.NormalizeRef(req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnknownProduct, err)
	}

	inq := &Inquiry{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(req.Name),
		Email:     catalog.Clean(req.Email),
		Phone:     catalog.Clean(req.Phone),
		Message:   strings.TrimSpace(req.Message),
		Status:    StatusNew,
		ProductID: productID,
	}
	if userID != "" {
		inq.UserID = &userID
	}

	if err := s.repo.Create(ctx, inq); err != nil {
		if errors.Is(err, core.ErrInvalidInput) {
			return nil, fmt.Errorf("%w: %w", ErrUnknownProduct, err)
		}
		return nil, err
	}

	s.logger.InfoContext(ctx, "inquiry received",
		"inquiry_id", inq.ID,
		"product_id", productID,
		"authenticated", userID != "",
	)

	return s.repo.Get(ctx, inq.ID)
}

func (s *Service) List(
	ctx context.Context,
	params ListParams,
) ([]Listing, int64, error) {
	if params.Status != "" && !params.Status.Valid() {
		return nil, 0, ErrInvalidStatus
	}
	return s.repo.List(ctx, params)
}

func (s *Service) Latest(ctx context.Context) ([]Listing, error) {
	return s.repo.Latest(ctx, DashboardLatest)
}

func (s *Service) CountByStatus(ctx context.Context) (map[Status]int64, error) {
	return s.repo.CountByStatus(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*Listing, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) UpdateStatus(
	ctx context.Context,
	id string,
	status Status,
) (*Listing, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	return s.repo.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
