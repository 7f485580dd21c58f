// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/andgroupco/andoffer/internal/auth"
	"github.com/andgroupco/andoffer/internal/core"
)

var ErrEmailTaken = errors.New("email already in use")

// SessionStore revokes refresh tokens when credentials or role change.
type SessionStore interface {
	RevokeAllForUser(ctx context.Context, userID string) error
}

type Service struct {
	repo     Repository
	sessions SessionStore
	now      func() time.Time
}

func NewService(repo Repository, sessions SessionStore) *Service {
	return &Service{
		repo:     repo,
		sessions: sessions,
		now:      time.Now,
	}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *Service) GetByID(
	ctx context.Context,
	id string,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) GetByEmail(
	ctx context.Context,
	email string,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

// CreatePending inserts a BUYER account awaiting email confirmation.
func (s *Service) CreatePending(
	ctx context.Context,
	email, passwordHash, name, code string,
	expiry time.Time,
) (*auth.UserInfo, error) {
	user := &User{
		ID:                 uuid.New().String(),
		Email:              NormalizeEmail(email),
		PasswordHash:       &passwordHash,
		Name:               name,
		Role:               RoleBuyer,
		IsActive:           false,
		VerificationCode:   &code,
		VerificationExpiry: &expiry,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) RefreshPendingSignup(
	ctx context.Context,
	id, name, passwordHash, code string,
	expiry time.Time,
) error {
	return s.repo.RefreshPendingSignup(ctx, id, name, passwordHash, code, expiry)
}

func (s *Service) ReissueVerification(
	ctx context.Context,
	id, code string,
	expiry time.Time,
) error {
	return s.repo.ReissueVerification(ctx, id, code, expiry)
}

func (s *Service) MarkVerified(
	ctx context.Context,
	id, code string,
	now time.Time,
) (*auth.UserInfo, error) {
	user, err := s.repo.MarkVerified(ctx, id, code, now)
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) DeletePending(ctx context.Context, id string) error {
	return s.repo.DeletePending(ctx, id)
}

func (s *Service) IncrementTokenVersion(
	ctx context.Context,
	userID string,
) error {
	return s.repo.IncrementTokenVersion(ctx, userID)
}

func (s *Service) UpdatePassword(
	ctx context.Context,
	userID, passwordHash string,
) error {
	return s.repo.UpdatePassword(ctx, userID, passwordHash)
}

func (s *Service) ListUsers(
	ctx context.Context,
	actor Actor,
	params ListUsersParams,
) ([]User, int64, error) {
	if !CanViewUsers(actor) {
		return nil, 0, fmt.Errorf("list users: %w", core.ErrForbidden)
	}

	return s.repo.List(ctx, params)
}

func (s *Service) GetUser(
	ctx context.Context,
	actor Actor,
	id string,
) (*User, error) {
	if !CanViewUsers(actor) {
		return nil, fmt.Errorf("get user: %w", core.ErrForbidden)
	}

	return s.repo.GetByID(ctx, id)
}

// UpdateUser applies an admin edit. Role and password changes invalidate the
// target's existing sessions.
func (s *Service) UpdateUser(
	ctx context.Context,
	actor Actor,
	id string,
	req UpdateUserRequest,
) (*User, error) {
	target, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var newRole *Role
	if req.Role != nil {
		role, parseErr := ParseRole(*req.Role)
		if parseErr != nil {
			return nil, parseErr
		}
		newRole = &role
	}

	if err := AuthorizeUpdate(actor, target, newRole); err != nil {
		return nil, err
	}

	credentialsChanged := false

	if req.Email != nil {
		email := NormalizeEmail(*req.Email)
		if email != target.Email {
			exists, existsErr := s.repo.ExistsByEmail(ctx, email)
			if existsErr != nil {
				return nil, existsErr
			}
			if exists {
				return nil, ErrEmailTaken
			}
			target.Email = email
		}
	}

	if req.Name != nil {
		target.Name = *req.Name
	}

	if newRole != nil && *newRole != target.Role {
		target.Role = *newRole
		credentialsChanged = true
	}

	if req.Password != nil {
		hash, hashErr := core.HashPassword(*req.Password)
		if hashErr != nil {
			return nil, fmt.Errorf("hash password: %w", hashErr)
		}
		target.PasswordHash = &hash
		credentialsChanged = true
	}

	if err := s.repo.Update(ctx, target); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	if credentialsChanged {
		if err := s.invalidateSessions(ctx, target.ID); err != nil {
			return nil, err
		}
		target.TokenVersion++
	}

	return target, nil
}

func (s *Service) DeleteUser(ctx context.Context, actor Actor, id string) error {
	if actor.ID == id {
		return ErrCannotDeleteSelf
	}

	target, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := AuthorizeDelete(actor, target); err != nil {
		return err
	}

	return s.repo.Delete(ctx, id)
}

func (s *Service) GetMe(ctx context.Context, userID string) (*User, error) {
	if userID == "" {
		return nil, fmt.Errorf("get me: %w", core.ErrUnauthorized)
	}

	return s.repo.GetByID(ctx, userID)
}

func (s *Service) UpdateMe(
	ctx context.Context,
	userID string,
	req UpdateMeRequest,
) (*User, error) {
	if userID == "" {
		return nil, fmt.Errorf("update me: %w", core.ErrUnauthorized)
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// EnsureSuperAdmin creates a verified SUPER_ADMIN account, or promotes and
// activates an existing one with the same email. The password is only set
// for newly created accounts.
func (s *Service) EnsureSuperAdmin(
	ctx context.Context,
	email, password, name string,
) (*User, bool, error) {
	email = NormalizeEmail(email)

	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, core.ErrNotFound) {
		return nil, false, err
	}

	if existing != nil {
		if existing.Role != RoleSuperAdmin {
			existing.Role = RoleSuperAdmin
			if err := s.repo.Update(ctx, existing); err != nil {
				return nil, false, err
			}
		}
		if err := s.repo.Activate(ctx, existing.ID, s.now()); err != nil {
			return nil, false, err
		}
		return existing, false, nil
	}

	hash, err := core.HashPassword(password)
	if err != nil {
		return nil, false, fmt.Errorf("hash password: %w", err)
	}

	now := s.now()
	user := &User{
		ID:            uuid.New().String(),
		Email:         email,
		PasswordHash:  &hash,
		Name:          name,
		Role:          RoleSuperAdmin,
		IsActive:      true,
		EmailVerified: &now,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, false, err
	}

	return user, true, nil
}

func (s *Service) invalidateSessions(ctx context.Context, userID string) error {
	if s.sessions != nil {
		if err := s.sessions.RevokeAllForUser(ctx, userID); err != nil {
			return fmt.Errorf("revoke sessions: %w", err)
		}
	}

	if err := s.repo.IncrementTokenVersion(ctx, userID); err != nil {
		return fmt.Errorf("increment token version: %w", err)
	}

	return nil
}

func toUserInfo(u *User) *auth.UserInfo {
	return &auth.UserInfo{
		ID:                 u.ID,
		Email:              u.Email,
		Name:               u.Name,
		PasswordHash:       u.PasswordHash,
		Role:               string(u.Role),
		IsActive:           u.IsActive,
		EmailVerified:      u.EmailVerified,
		VerificationCode:   u.VerificationCode,
		VerificationExpiry: u.VerificationExpiry,
		TokenVersion:       u.TokenVersion,
		CreatedAt:          u.CreatedAt,
	}
}

var _ auth.UserProvider = (*Service)(nil)
