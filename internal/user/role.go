// AngelaMos | 2026
// role.go

package user

import (
	"fmt"
	"strings"

	"github.com/andgroupco/andoffer/internal/core"
)

type Role string

const (
	RoleSuperAdmin Role = "SUPER_ADMIN"
	RoleAdmin      Role = "ADMIN"
	RoleStaff      Role = "STAFF"
	RoleBuyer      Role = "BUYER"
)

var allRoles = []Role{RoleSuperAdmin, RoleAdmin, RoleStaff, RoleBuyer}

// Rank orders roles by privilege. Unknown roles rank below BUYER.
func (r Role) Rank() int {
	switch r {
	case RoleSuperAdmin:
		return 3
	case RoleAdmin:
		return 2
	case RoleStaff:
		return 1
	case RoleBuyer:
		return 0
	default:
		return -1
	}
}

func (r Role) Valid() bool {
	return r.Rank() >= 0
}

func (r Role) String() string {
	return string(r)
}

// IsManager reports whether the role may manage other user accounts.
func (r Role) IsManager() bool {
	return r == RoleSuperAdmin || r == RoleAdmin
}

func (r Role) AtLeast(minRole Role) bool {
	return r.Valid() && r.Rank() >= minRole.Rank()
}

// ErrUnknownRole is an ErrInvalidInput raised only for unrecognised role names.
var ErrUnknownRole = fmt.Errorf("unknown role: %w", core.ErrInvalidInput)

func ParseRole(s string) (Role, error) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("parse role %q: %w", s, ErrUnknownRole)
	}
	return r, nil
}

// RolesAtLeast lists the role names ranked at or above minRole, for use with
// middleware.RequireRole.
func RolesAtLeast(minRole Role) []string {
	out := make([]string, 0, len(allRoles))
	for _, r := range allRoles {
		if r.AtLeast(minRole) {
			out = append(out, string(r))
		}
	}
	return out
}
