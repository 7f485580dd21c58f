// AngelaMos | 2026
// fakes_test.go

package auth

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/andgroupco/andoffer/internal/config"
	"github.com/andgroupco/andoffer/internal/core"
)

type fakeUsers struct {
	mu      sync.Mutex
	byEmail map[string]*UserInfo
	deleted []string
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byEmail: map[string]*UserInfo{}}
}

func (f *fakeUsers) find(id string) *UserInfo {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u
		}
	}
	return nil
}

func clone(u *UserInfo) *UserInfo {
	c := *u
	return &c
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*UserInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.byEmail[email]
	if !ok {
		return nil, fmt.Errorf("get user by email: %w", core.ErrNotFound)
	}
	return clone(u), nil
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*UserInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if u := f.find(id); u != nil {
		return clone(u), nil
	}
	return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
}

func (f *fakeUsers) CreatePending(
	_ context.Context,
	email, passwordHash, name, code string,
	expiry time.Time,
) (*UserInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.byEmail[email]; ok {
		return nil, fmt.Errorf("create user: %w", core.ErrDuplicateKey)
	}

	u := &UserInfo{
		ID:                 uuid.New().String(),
		Email:              email,
		Name:               name,
		PasswordHash:       &passwordHash,
		Role:               "BUYER",
		VerificationCode:   &code,
		VerificationExpiry: &expiry,
	}
	f.byEmail[email] = u
	return clone(u), nil
}

func (f *fakeUsers) RefreshPendingSignup(
	_ context.Context,
	id, name, passwordHash, code string,
	expiry time.Time,
) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	u := f.find(id)
	if u == nil || u.EmailVerified != nil {
		return fmt.Errorf("refresh pending signup: %w", core.ErrConflict)
	}
	u.Name = name
	u.PasswordHash = &passwordHash
	u.VerificationCode = &code
	u.VerificationExpiry = &expiry
	return nil
}

func (f *fakeUsers) ReissueVerification(
	_ context.Context,
	id, code string,
	expiry time.Time,
) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	u := f.find(id)
	if u == nil || u.EmailVerified != nil {
		return fmt.Errorf("reissue verification: %w", core.ErrConflict)
	}
	u.VerificationCode = &code
	u.VerificationExpiry = &expiry
	return nil
}

func (f *fakeUsers) MarkVerified(
	_ context.Context,
	id, code string,
	now time.Time,
) (*UserInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	u := f.find(id)
	if u == nil || u.EmailVerified != nil ||
		u.VerificationCode == nil || *u.VerificationCode != code ||
		u.VerificationExpiry == nil || now.After(*u.VerificationExpiry) {
		return nil, fmt.Errorf("mark verified: %w", core.ErrConflict)
	}

	u.EmailVerified = &now
	u.IsActive = true
	u.VerificationCode = nil
	u.VerificationExpiry = nil
	return clone(u), nil
}

func (f *fakeUsers) DeletePending(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for email, u := range f.byEmail {
		if u.ID == id && u.EmailVerified == nil {
			delete(f.byEmail, email)
			f.deleted = append(f.deleted, id)
			return nil
		}
	}
	return fmt.Errorf("delete pending user: %w", core.ErrNotFound)
}

func (f *fakeUsers) IncrementTokenVersion(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	u := f.find(id)
	if u == nil {
		return fmt.Errorf("increment token version: %w", core.ErrNotFound)
	}
	u.TokenVersion++
	return nil
}

func (f *fakeUsers) UpdatePassword(_ context.Context, id, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	u := f.find(id)
	if u == nil {
		return fmt.Errorf("update password: %w", core.ErrNotFound)
	}
	u.PasswordHash = &hash
	return nil
}

// seedVerified stores an active, verified account with the given password.
func (f *fakeUsers) seedVerified(t *testing.T, email, password string) *UserInfo {
	t.Helper()

	hash, err := core.HashPassword(password)
	require.NoError(t, err)

	now := time.Now()
	u := &UserInfo{
		ID:            uuid.New().String(),
		Email:         email,
		Name:          "Verified User",
		PasswordHash:  &hash,
		Role:          "BUYER",
		IsActive:      true,
		EmailVerified: &now,
	}

	f.mu.Lock()
	f.byEmail[email] = u
	f.mu.Unlock()

	return clone(u)
}

type sentCode struct {
	To   string
	Name string
	Code string
}

type fakeNotifier struct {
	mu         sync.Mutex
	codes      []sentCode
	welcomes   []string
	verifyErr  error
	welcomeErr error
}

func (n *fakeNotifier) SendVerification(
	_ context.Context,
	to, name, code string,
	_ time.Duration,
) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.codes = append(n.codes, sentCode{To: to, Name: name, Code: code})
	return n.verifyErr
}

func (n *fakeNotifier) SendWelcome(_ context.Context, to, _ string) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.welcomes = append(n.welcomes, to)
	return n.welcomeErr
}

func (n *fakeNotifier) lastCode(t *testing.T) string {
	t.Helper()

	n.mu.Lock()
	defer n.mu.Unlock()

	require.NotEmpty(t, n.codes, "no verification email sent")
	return n.codes[len(n.codes)-1].Code
}

type fakeTokens struct {
	mu     sync.Mutex
	byID   map[string]*RefreshToken
	pruned time.Time
}

func newFakeTokens() *fakeTokens {
	return &fakeTokens{byID: map[string]*RefreshToken{}}
}

func (r *fakeTokens) Create(_ context.Context, token *RefreshToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	token.CreatedAt = time.Now()
	c := *token
	r.byID[token.ID] = &c
	return nil
}

func (r *fakeTokens) FindByHash(_ context.Context, hash string) (*RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, t := range r.byID {
		if t.TokenHash == hash {
			c := *t
			return &c, nil
		}
	}
	return nil, fmt.Errorf("find refresh token: %w", core.ErrNotFound)
}

func (r *fakeTokens) FindByID(_ context.Context, id string) (*RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if t, ok := r.byID[id]; ok {
		c := *t
		return &c, nil
	}
	return nil, fmt.Errorf("find refresh token: %w", core.ErrNotFound)
}

func (r *fakeTokens) MarkAsUsed(_ context.Context, id, replacedByID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.byID[id]
	if !ok || t.IsUsed {
		return fmt.Errorf("mark refresh token as used: %w", core.ErrNotFound)
	}
	now := time.Now()
	t.IsUsed = true
	t.UsedAt = &now
	t.ReplacedByID = &replacedByID
	return nil
}

func (r *fakeTokens) revoke(match func(*RefreshToken) bool) {
	now := time.Now()
	for _, t := range r.byID {
		if match(t) && t.RevokedAt == nil {
			t.RevokedAt = &now
		}
	}
}

func (r *fakeTokens) RevokeByID(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.revoke(func(t *RefreshToken) bool { return t.ID == id })
	return nil
}

func (r *fakeTokens) RevokeByFamilyID(_ context.Context, familyID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.revoke(func(t *RefreshToken) bool { return t.FamilyID == familyID })
	return nil
}

func (r *fakeTokens) RevokeAllForUser(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.revoke(func(t *RefreshToken) bool { return t.UserID == userID })
	return nil
}

func (r *fakeTokens) GetActiveSessionsForUser(
	_ context.Context,
	userID string,
) ([]RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []RefreshToken
	for _, t := range r.byID {
		if t.UserID == userID && t.IsUsableAt(time.Now()) {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *fakeTokens) DeleteExpired(_ context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.pruned = cutoff
	var n int64
	for id, t := range r.byID {
		if t.ExpiresAt.Before(cutoff) {
			delete(r.byID, id)
			n++
		}
	}
	return n, nil
}

type testEnv struct {
	svc      *Service
	jwt      *JWTManager
	users    *fakeUsers
	notifier *fakeNotifier
	tokens   *fakeTokens
	redis    *miniredis.Miniredis
	now      time.Time
}

func (e *testEnv) advance(d time.Duration) {
	e.now = e.now.Add(d)
}

func newTestJWTManager(t *testing.T) *JWTManager {
	t.Helper()

	dir := t.TempDir()
	priv := filepath.Join(dir, "private.pem")
	pub := filepath.Join(dir, "public.pem")
	require.NoError(t, GenerateKeyPair(priv, pub))

	m, err := NewJWTManager(config.JWTConfig{
		PrivateKeyPath:     priv,
		PublicKeyPath:      pub,
		AccessTokenExpire:  15 * time.Minute,
		RefreshTokenExpire: 7 * 24 * time.Hour,
		Issuer:             "andoffer-test",
		Audience:           "andoffer-test-api",
	})
	require.NoError(t, err)
	return m
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	env := &testEnv{
		jwt:      newTestJWTManager(t),
		users:    newFakeUsers(),
		notifier: &fakeNotifier{},
		tokens:   newFakeTokens(),
		redis:    mr,
		now:      time.Now(),
	}

	env.svc = NewService(
		env.tokens,
		env.jwt,
		env.users,
		rdb,
		env.notifier,
		15*time.Minute,
	)
	env.svc.now = func() time.Time { return env.now }

	return env
}
