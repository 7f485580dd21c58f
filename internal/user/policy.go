// AngelaMos | 2026
// policy.go

package user

import (
	"errors"
	"fmt"

	"github.com/andgroupco/andoffer/internal/core"
)

var ErrCannotDeleteSelf = errors.New("cannot delete your own account")

// Actor is the authenticated caller a policy decision is made for.
type Actor struct {
	ID   string
	Role Role
}

func CanViewUsers(actor Actor) bool {
	return actor.Role.IsManager()
}

// CanEdit: SUPER_ADMIN edits anyone, ADMIN only STAFF and BUYER accounts.
func CanEdit(actor Actor, target *User) bool {
	switch actor.Role {
	case RoleSuperAdmin:
		return true
	case RoleAdmin:
		return target.Role != RoleSuperAdmin && target.Role != RoleAdmin
	default:
		return false
	}
}

func CanAssignRole(actor Actor, role Role) bool {
	switch actor.Role {
	case RoleSuperAdmin:
		return role.Valid()
	case RoleAdmin:
		return role == RoleStaff || role == RoleBuyer
	default:
		return false
	}
}

func CanDelete(actor Actor, target *User) bool {
	return actor.Role == RoleSuperAdmin && actor.ID != target.ID
}

// AuthorizeUpdate applies the edit rules plus the role assignment rule when
// the request changes the role. Errors carry no detail about the target.
func AuthorizeUpdate(actor Actor, target *User, newRole *Role) error {
	if !CanEdit(actor, target) {
		return fmt.Errorf("update user: %w", core.ErrForbidden)
	}

	if newRole != nil && *newRole != target.Role && !CanAssignRole(actor, *newRole) {
		return fmt.Errorf("update user role: %w", core.ErrForbidden)
	}

	return nil
}

func AuthorizeDelete(actor Actor, target *User) error {
	if actor.ID == target.ID {
		return ErrCannotDeleteSelf
	}

	if !CanDelete(actor, target) {
		return fmt.Errorf("delete user: %w", core.ErrForbidden)
	}

	return nil
}
