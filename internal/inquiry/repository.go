// AngelaMos | 2026
// repository.go

package inquiry

import (
	"context"
	"fmt"

	"github.com/andgroupco/andoffer/internal/core"
)

type Repository interface {
	Create(ctx context.Context, inq *Inquiry) error
	Get(ctx context.Context, id string) (*Listing, error)
	List(ctx context.Context, params ListParams) ([]Listing, int64, error)
	Latest(ctx context.Context, limit int) ([]Listing, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
	Delete(ctx context.Context, id string) error
	CountByStatus(ctx context.Context) (map[Status]int64, error)
}

const listingSelect = `
		SELECT i.id, i.name, i.email, i.phone, i.message, i.status,
		       i.product_id, i.user_id, i.created_at, i.updated_at,
		       p.name AS product_name, p.slug AS product_slug,
		       u.name AS user_name, u.email AS user_email
		FROM inquiries i
		LEFT JOIN products p ON p.id = i.product_id
		LEFT JOIN users u ON u.id = i.user_id`

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, inq *Inquiry) error {
	query := `
		INSERT INTO inquiries (
			id, name, email, phone, message, status, product_id, user_id
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		inq.ID,
		inq.Name,
		inq.Email,
		inq.Phone,
		inq.Message,
		inq.Status,
		inq.ProductID,
		inq.UserID,
	).Scan(&inq.CreatedAt, &inq.UpdatedAt)

	return core.MapDBError("create inquiry", err)
}

func (r *repository) Get(ctx context.Context, id string) (*Listing, error) {
	var l Listing
	if err := r.db.GetContext(ctx, &l, listingSelect+` WHERE i.id = $1`, id); err != nil {
		return nil, core.MapDBError("get inquiry", err)
	}

	return &l, nil
}

func (r *repository) List(
	ctx context.Context,
	params ListParams,
) ([]Listing, int64, error) {
	params.Normalize()

	whereClause := ""
	var args []any
	if params.Status != "" {
		whereClause = " WHERE i.status = $1"
		args = append(args, params.Status)
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM inquiries i` + whereClause
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count inquiries: %w", err)
	}

	query := fmt.Sprintf(`%s%s
		ORDER BY i.created_at DESC
		LIMIT $%d OFFSET $%d`,
		listingSelect, whereClause, len(args)+1, len(args)+2)
	args = append(args, params.PageSize, params.Offset())

	items := []Listing{}
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list inquiries: %w", err)
	}

	return items, total, nil
}

func (r *repository) Latest(ctx context.Context, limit int) ([]Listing, error) {
	query := listingSelect + `
		ORDER BY i.created_at DESC
		LIMIT $1`

	items := []Listing{}
	if err := r.db.SelectContext(ctx, &items, query, limit); err != nil {
		return nil, fmt.Errorf("latest inquiries: %w", err)
	}

	return items, nil
}

func (r *repository) UpdateStatus(
	ctx context.Context,
	id string,
	status Status,
) error {
	query := `
		UPDATE inquiries
		SET status = $2, updated_at = NOW()
		WHERE id = $1`

	return r.execOne(ctx, "update inquiry status", query, id, status)
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.execOne(ctx, "delete inquiry", `DELETE FROM inquiries WHERE id = $1`, id)
}

func (r *repository) CountByStatus(ctx context.Context) (map[Status]int64, error) {
	var rows []struct {
		Status Status `db:"status"`
		Count  int64  `db:"count"`
	}

	query := `SELECT status, COUNT(*) AS count FROM inquiries GROUP BY status`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("count inquiries by status: %w", err)
	}

	counts := map[Status]int64{
		StatusNew:        0,
		StatusInProgress: 0,
		StatusResolved:   0,
		StatusClosed:     0,
	}
	for _, row := range rows {
		counts[row.Status] = row.Count
	}

	return counts, nil
}

func (r *repository) execOne(
	ctx context.Context,
	op, query string,
	args ...any,
) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return core.MapDBError(op, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if rows == 0 {
		return fmt.Errorf("%s: %w", op, core.ErrNotFound)
	}

	return nil
}
