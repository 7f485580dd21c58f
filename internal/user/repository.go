// AngelaMos | 2026
// repository.go

package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/andgroupco/andoffer/internal/core"
)

type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, user *User) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	IncrementTokenVersion(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, params ListUsersParams) ([]User, int64, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	RefreshPendingSignup(
		ctx context.Context,
		id, name, passwordHash, code string,
		expiry time.Time,
	) error
	ReissueVerification(
		ctx context.Context,
		id, code string,
		expiry time.Time,
	) error
	MarkVerified(
		ctx context.Context,
		id, code string,
		now time.Time,
	) (*User, error)
	DeletePending(ctx context.Context, id string) error
	Activate(ctx context.Context, id string, now time.Time) error
}

const userColumns = `id, email, password_hash, name, role, is_active,
		       email_verified, verification_code, verification_expiry,
		       token_version, created_at, updated_at`

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, user *User) error {
	query := `
		INSERT INTO users (
			id, email, password_hash, name, role, is_active,
			email_verified, verification_code, verification_expiry
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at, token_version`

	err := r.db.QueryRowxContext(ctx, query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.Name,
		user.Role,
		user.IsActive,
		user.EmailVerified,
		user.VerificationCode,
		user.VerificationExpiry,
	).Scan(&user.CreatedAt, &user.UpdatedAt, &user.TokenVersion)

	return core.MapDBError("create user", err)
}

func (r *repository) GetByID(ctx context.Context, id string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	var user User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		return nil, core.MapDBError("get user", err)
	}

	return &user, nil
}

func (r *repository) GetByEmail(
	ctx context.Context,
	email string,
) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	var user User
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		return nil, core.MapDBError("get user by email", err)
	}

	return &user, nil
}

func (r *repository) Update(ctx context.Context, user *User) error {
	query := `
		UPDATE users
		SET name = $2, email = $3, role = $4, password_hash = $5,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &user.UpdatedAt, query,
		user.ID,
		user.Name,
		user.Email,
		user.Role,
		user.PasswordHash,
	)

	return core.MapDBError("update user", err)
}

func (r *repository) UpdatePassword(
	ctx context.Context,
	id, passwordHash string,
) error {
	query := `
		UPDATE users
		SET password_hash = $2, updated_at = NOW()
		WHERE id = $1`

	return r.execOne(ctx, "update password", query, id, passwordHash)
}

func (r *repository) IncrementTokenVersion(
	ctx context.Context,
	id string,
) error {
	query := `
		UPDATE users
		SET token_version = token_version + 1, updated_at = NOW()
		WHERE id = $1`

	return r.execOne(ctx, "increment token version", query, id)
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.execOne(ctx, "delete user", `DELETE FROM users WHERE id = $1`, id)
}

func (r *repository) List(
	ctx context.Context,
	params ListUsersParams,
) ([]User, int64, error) {
	params.Normalize()

	var conditions []string
	var args []any
	argIdx := 1

	if params.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(email ILIKE $%d OR name ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+core.EscapeLike(params.Search)+"%")
		argIdx++
	}

	if params.Role != "" {
		conditions = append(conditions, fmt.Sprintf("role = $%d", argIdx))
		args = append(args, params.Role)
		argIdx++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT COUNT(*) FROM users " + whereClause
	var total int64
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM users
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`,
		userColumns, whereClause, argIdx, argIdx+1)

	args = append(args, params.PageSize, params.Offset())

	var users []User
	if err := r.db.SelectContext(ctx, &users, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}

	return users, total, nil
}

func (r *repository) ExistsByEmail(
	ctx context.Context,
	email string,
) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, email); err != nil {
		return false, fmt.Errorf("check email exists: %w", err)
	}

	return exists, nil
}

// RefreshPendingSignup overwrites credentials and challenge of an account that
// has not confirmed its email yet. ErrConflict means it was verified meanwhile.
func (r *repository) RefreshPendingSignup(
	ctx context.Context,
	id, name, passwordHash, code string,
	expiry time.Time,
) error {
	query := `
		UPDATE users
		SET name = $2, password_hash = $3,
		    verification_code = $4, verification_expiry = $5,
		    updated_at = NOW()
		WHERE id = $1 AND email_verified IS NULL`

	return r.execPending(ctx, "refresh pending signup", query,
		id, name, passwordHash, code, expiry)
}

func (r *repository) ReissueVerification(
	ctx context.Context,
	id, code string,
	expiry time.Time,
) error {
	query := `
		UPDATE users
		SET verification_code = $2, verification_expiry = $3,
		    updated_at = NOW()
		WHERE id = $1 AND email_verified IS NULL`

	return r.execPending(ctx, "reissue verification", query, id, code, expiry)
}

// MarkVerified consumes the challenge in a single statement. The guard on the
// stored code and expiry makes a concurrent or replayed attempt match no row.
func (r *repository) MarkVerified(
	ctx context.Context,
	id, code string,
	now time.Time,
) (*User, error) {
	query := `
		UPDATE users
		SET email_verified = $3, is_active = TRUE,
		    verification_code = NULL, verification_expiry = NULL,
		    updated_at = NOW()
		WHERE id = $1
		  AND email_verified IS NULL
		  AND verification_code = $2
		  AND verification_expiry >= $3
		RETURNING ` + userColumns

	var user User
	err := r.db.GetContext(ctx, &user, query, id, code, now)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("mark verified: %w", core.ErrConflict)
	}
	if err != nil {
		return nil, core.MapDBError("mark verified", err)
	}

	return &user, nil
}

func (r *repository) DeletePending(ctx context.Context, id string) error {
	query := `DELETE FROM users WHERE id = $1 AND email_verified IS NULL`
	return r.execOne(ctx, "delete pending user", query, id)
}

// Activate marks an account verified and active, used for bootstrap accounts.
func (r *repository) Activate(
	ctx context.Context,
	id string,
	now time.Time,
) error {
	query := `
		UPDATE users
		SET email_verified = COALESCE(email_verified, $2), is_active = TRUE,
		    verification_code = NULL, verification_expiry = NULL,
		    updated_at = NOW()
		WHERE id = $1`

	return r.execOne(ctx, "activate user", query, id, now)
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

func (r *repository) execPending(
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
		return fmt.Errorf("%s: %w", op, core.ErrConflict)
	}

	return nil
}
