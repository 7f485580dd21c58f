// AngelaMos | 2026
// entity.go

package user

import (
	"time"
)

type User struct {
	ID                 string     `db:"id"`
	Email              string     `db:"email"`
	PasswordHash       *string    `db:"password_hash"`
	Name               string     `db:"name"`
	Role               Role       `db:"role"`
	IsActive           bool       `db:"is_active"`
	EmailVerified      *time.Time `db:"email_verified"`
	VerificationCode   *string    `db:"verification_code"`
	VerificationExpiry *time.Time `db:"verification_expiry"`
	TokenVersion       int        `db:"token_version"`
	CreatedAt          time.Time  `db:"created_at"`
	UpdatedAt          time.Time  `db:"updated_at"`
}

// IsVerified reports whether the email address has been confirmed.
func (u *User) IsVerified() bool {
	return u.EmailVerified != nil
}

func (u *User) IsPending() bool {
	return u.EmailVerified == nil
}

// CanSignIn requires both a confirmed email and an active account.
func (u *User) CanSignIn() bool {
	return u.IsActive && u.EmailVerified != nil
}

func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}

func (u *User) Actor() Actor {
	return Actor{ID: u.ID, Role: u.Role}
}
