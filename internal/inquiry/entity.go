// AngelaMos | 2026
// entity.go

package inquiry

import (
	"time"
)

type Status string

const (
	StatusNew        Status = "NEW"
	StatusInProgress Status = "IN_PROGRESS"
	StatusResolved   Status = "RESOLVED"
	StatusClosed     Status = "CLOSED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusInProgress, StatusResolved, StatusClosed:
		return true
	}
	return false
}

type Inquiry struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Email     *string   `db:"email"`
	Phone     *string   `db:"phone"`
	Message   string    `db:"message"`
	Status    Status    `db:"status"`
	ProductID *string   `db:"product_id"`
	UserID    *string   `db:"user_id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Listing is an inquiry joined with the product and account it references.
type Listing struct {
	Inquiry
	ProductName *string `db:"product_name"`
	ProductSlug *string `db:"product_slug"`
	UserName    *string `db:"user_name"`
	UserEmail   *string `db:"user_email"`
}
