// AngelaMos | 2026
// entity.go

package auth

import (
	"time"
)

type RefreshToken struct {
	ID           string     `db:"id"`
	UserID       string     `db:"user_id"`
	TokenHash    string     `db:"token_hash"`
	FamilyID     string     `db:"family_id"`
	ExpiresAt    time.Time  `db:"expires_at"`
	CreatedAt    time.Time  `db:"created_at"`
	IsUsed       bool       `db:"is_used"`
	UsedAt       *time.Time `db:"used_at"`
	RevokedAt    *time.Time `db:"revoked_at"`
	ReplacedByID *string    `db:"replaced_by_id"`
	UserAgent    string     `db:"user_agent"`
	IPAddress    string     `db:"ip_address"`
}

func (t *RefreshToken) IsExpiredAt(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

func (t *RefreshToken) IsRevoked() bool {
	return t.RevokedAt != nil
}

// IsUsableAt reports whether the token can still be exchanged at now.
func (t *RefreshToken) IsUsableAt(now time.Time) bool {
	return !t.IsExpiredAt(now) && !t.IsRevoked() && !t.IsUsed
}

func (t *RefreshToken) ToSessionInfo() SessionInfo {
	return SessionInfo{
		ID:        t.ID,
		UserAgent: t.UserAgent,
		IPAddress: t.IPAddress,
		CreatedAt: t.CreatedAt,
		ExpiresAt: t.ExpiresAt,
	}
}

// UserInfo is the view of an account the auth flows need. It is filled in
// by the user package through UserProvider.
type UserInfo struct {
	ID                 string
	Email              string
	Name               string
	PasswordHash       *string
	Role               string
	IsActive           bool
	EmailVerified      *time.Time
	VerificationCode   *string
	VerificationExpiry *time.Time
	TokenVersion       int
	CreatedAt          time.Time
}

func (u *UserInfo) IsVerified() bool {
	return u.EmailVerified != nil
}

func (u *UserInfo) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}
