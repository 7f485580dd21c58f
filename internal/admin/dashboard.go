// AngelaMos | 2026
// dashboard.go

package admin

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/andgroupco/andoffer/internal/core"
	"github.com/andgroupco/andoffer/internal/inquiry"
)

// CountsRepository aggregates row counts across the catalog and accounts.
type CountsRepository interface {
	ProductsByStatus(ctx context.Context) (map[string]int64, error)
	UsersByRole(ctx context.Context) (map[string]int64, error)
	Count(ctx context.Context, table string) (int64, error)
}

type InquirySource interface {
	CountByStatus(ctx context.Context) (map[inquiry.Status]int64, error)
	Latest(ctx context.Context) ([]inquiry.Listing, error)
}

const (
	tableCategories = "categories"
	tableSuppliers  = "suppliers"
)

type countsRepository struct {
	db core.DBTX
}

func NewCountsRepository(db core.DBTX) CountsRepository {
	return &countsRepository{db: db}
}

func (r *countsRepository) ProductsByStatus(ctx context.Context) (map[string]int64, error) {
	counts := map[string]int64{"DRAFT": 0, "PUBLISHED": 0, "ARCHIVED": 0}
	query := `SELECT status AS label, COUNT(*) AS count FROM products GROUP BY status`
	if err := r.grouped(ctx, query, counts); err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}
	return counts, nil
}

func (r *countsRepository) UsersByRole(ctx context.Context) (map[string]int64, error) {
	counts := map[string]int64{"BUYER": 0, "STAFF": 0, "ADMIN": 0, "SUPER_ADMIN": 0}
	query := `SELECT role AS label, COUNT(*) AS count FROM users GROUP BY role`
	if err := r.grouped(ctx, query, counts); err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	return counts, nil
}

// Count only accepts the fixed table names declared in this package.
func (r *countsRepository) Count(ctx context.Context, table string) (int64, error) {
	switch table {
	case tableCategories, tableSuppliers:
	default:
		return 0, fmt.Errorf("count %q: %w", table, core.ErrInvalidInput)
	}

	var n int64
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM `+table); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}

func (r *countsRepository) grouped(
	ctx context.Context,
	query string,
	into map[string]int64,
) error {
	var rows []struct {
		Label string `db:"label"`
		Count int64  `db:"count"`
	}
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return err
	}
	for _, row := range rows {
		into[row.Label] = row.Count
	}
	return nil
}

type DashboardResponse struct {
	Products        map[string]int64          `json:"products"`
	Categories      int64                     `json:"categories"`
	Suppliers       int64                     `json:"suppliers"`
	Inquiries       map[inquiry.Status]int64  `json:"inquiries"`
	Users           map[string]int64          `json:"users"`
	LatestInquiries []inquiry.InquiryResponse `json:"latest_inquiries"`
}

// Dashboard gathers every summary concurrently and fails if any query fails.
func Dashboard(
	ctx context.Context,
	counts CountsRepository,
	inquiries InquirySource,
) (*DashboardResponse, error) {
	var resp DashboardResponse
	var latest []inquiry.Listing

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		resp.Products, err = counts.ProductsByStatus(ctx)
		return err
	})
	g.Go(func() (err error) {
		resp.Users, err = counts.UsersByRole(ctx)
		return err
	})
	g.Go(func() (err error) {
		resp.Categories, err = counts.Count(ctx, tableCategories)
		return err
	})
	g.Go(func() (err error) {
		resp.Suppliers, err = counts.Count(ctx, tableSuppliers)
		return err
	})
	g.Go(func() (err error) {
		resp.Inquiries, err = inquiries.CountByStatus(ctx)
		return err
	})
	g.Go(func() (err error) {
		latest, err = inquiries.Latest(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	resp.LatestInquiries = inquiry.ToListResponse(latest)
	return &resp, nil
}
