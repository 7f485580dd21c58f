// AngelaMos | 2026
// service_test.go

package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andgroupco/andoffer/internal/core"
)

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	env.users.seedVerified(t, "buyer@example.com", "correct-horse-1")

	require.NoError(t, env.svc.SignUp(t.Context(), SignUpRequest{
		Email:    "pending@example.com",
		Password: "pending-pass-1",
		Name:     "Pending",
	}))

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"unknown email", "nobody@example.com", "correct-horse-1", ErrInvalidCredentials},
		{"wrong password", "buyer@example.com", "wrong-password", ErrInvalidCredentials},
		{"unverified with wrong password", "pending@example.com", "nope-nope-1", ErrInvalidCredentials},
		{"unverified with right password", "pending@example.com", "pending-pass-1", ErrEmailNotVerified},
		{"success", "BUYER@example.com", "correct-horse-1", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := env.svc.Login(t.Context(), LoginRequest{
				Email:    tt.email,
				Password: tt.password,
			}, "test-agent", "127.0.0.1")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, resp)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "Bearer", resp.Tokens.TokenType)
			assert.Equal(t, int((15 * time.Minute).Seconds()), resp.Tokens.ExpiresIn)
			assert.NotEmpty(t, resp.Tokens.AccessToken)
			assert.NotEmpty(t, resp.Tokens.RefreshToken)
			assert.Equal(t, "buyer@example.com", resp.User.Email)
		})
	}
}

func TestLogin_InactiveAccount(t *testing.T) {
	env := newTestEnv(t)
	u := env.users.seedVerified(t, "off@example.com", "correct-horse-1")

	env.users.mu.Lock()
	env.users.find(u.ID).IsActive = false
	env.users.mu.Unlock()

	_, err := env.svc.Login(t.Context(), LoginRequest{
		Email:    "off@example.com",
		Password: "correct-horse-1",
	}, "", "")
	assert.ErrorIs(t, err, ErrAccountInactive)
}

func TestLogin_AccountWithoutPassword(t *testing.T) {
	env := newTestEnv(t)
	u := env.users.seedVerified(t, "sso@example.com", "unused-pass")

	env.users.mu.Lock()
	env.users.find(u.ID).PasswordHash = nil
	env.users.mu.Unlock()

	_, err := env.svc.Login(t.Context(), LoginRequest{
		Email:    "sso@example.com",
		Password: "anything-at-all",
	}, "", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefresh_RotationAndReuse(t *testing.T) {
	env := newTestEnv(t)
	env.users.seedVerified(t, "buyer@example.com", "correct-horse-1")

	login, err := env.svc.Login(t.Context(), LoginRequest{
		Email:    "buyer@example.com",
		Password: "correct-horse-1",
	}, "", "")
	require.NoError(t, err)

	rotated, err := env.svc.Refresh(t.Context(), login.Tokens.RefreshToken, "", "")
	require.NoError(t, err)
	assert.NotEqual(t, login.Tokens.RefreshToken, rotated.Tokens.RefreshToken)

	_, err = env.svc.Refresh(t.Context(), login.Tokens.RefreshToken, "", "")
	assert.ErrorIs(t, err, ErrTokenReuse)

	_, err = env.svc.Refresh(t.Context(), rotated.Tokens.RefreshToken, "", "")
	assert.ErrorIs(t, err, core.ErrTokenRevoked, "reuse revokes the whole family")

	_, err = env.svc.Refresh(t.Context(), "not-a-token", "", "")
	assert.ErrorIs(t, err, core.ErrTokenInvalid)
}

func TestRefresh_Expired(t *testing.T) {
	env := newTestEnv(t)
	env.users.seedVerified(t, "buyer@example.com", "correct-horse-1")

	login, err := env.svc.Login(t.Context(), LoginRequest{
		Email:    "buyer@example.com",
		Password: "correct-horse-1",
	}, "", "")
	require.NoError(t, err)

	env.advance(8 * 24 * time.Hour)

	_, err = env.svc.Refresh(t.Context(), login.Tokens.RefreshToken, "", "")
	assert.ErrorIs(t, err, core.ErrTokenExpired)
}

func TestTokenGuard(t *testing.T) {
	env := newTestEnv(t)
	u := env.users.seedVerified(t, "buyer@example.com", "correct-horse-1")
	guard := NewTokenGuard(env.jwt, env.svc)

	login, err := env.svc.Login(t.Context(), LoginRequest{
		Email:    "buyer@example.com",
		Password: "correct-horse-1",
	}, "", "")
	require.NoError(t, err)

	claims, err := guard.VerifyAccessToken(t.Context(), login.Tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, "BUYER", claims.Role)
	assert.NotEmpty(t, claims.JTI)

	require.NoError(t, env.svc.Logout(
		t.Context(),
		login.Tokens.RefreshToken,
		u.ID,
		claims.JTI,
		claims.ExpiresAt,
	))
	assert.True(t, env.redis.Exists(blacklistPrefix+claims.JTI))

	_, err = guard.VerifyAccessToken(t.Context(), login.Tokens.AccessToken)
	assert.ErrorIs(t, err, core.ErrTokenRevoked)

	_, err = env.svc.Refresh(t.Context(), login.Tokens.RefreshToken, "", "")
	assert.ErrorIs(t, err, core.ErrTokenRevoked)
}

func TestTokenGuard_TokenVersionBump(t *testing.T) {
	env := newTestEnv(t)
	u := env.users.seedVerified(t, "buyer@example.com", "correct-horse-1")
	guard := NewTokenGuard(env.jwt, env.svc)

	login, err := env.svc.Login(t.Context(), LoginRequest{
		Email:    "buyer@example.com",
		Password: "correct-horse-1",
	}, "", "")
	require.NoError(t, err)

	require.NoError(t, env.svc.LogoutAll(t.Context(), u.ID))

	_, err = guard.VerifyAccessToken(t.Context(), login.Tokens.AccessToken)
	assert.ErrorIs(t, err, core.ErrTokenRevoked)
}

func TestTokenGuard_FailsOpenWithoutRedis(t *testing.T) {
	env := newTestEnv(t)
	env.users.seedVerified(t, "buyer@example.com", "correct-horse-1")
	guard := NewTokenGuard(env.jwt, env.svc)

	login, err := env.svc.Login(t.Context(), LoginRequest{
		Email:    "buyer@example.com",
		Password: "correct-horse-1",
	}, "", "")
	require.NoError(t, err)

	env.redis.Close()

	_, err = guard.VerifyAccessToken(t.Context(), login.Tokens.AccessToken)
	assert.NoError(t, err)
}

func TestChangePassword(t *testing.T) {
	env := newTestEnv(t)
	u := env.users.seedVerified(t, "buyer@example.com", "correct-horse-1")

	err := env.svc.ChangePassword(t.Context(), u.ID, "wrong", "new-password-1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	require.NoError(t, env.svc.ChangePassword(t.Context(), u.ID, "correct-horse-1", "new-password-1"))

	stored, err := env.users.GetByID(t.Context(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.TokenVersion+1, stored.TokenVersion)

	_, err = env.svc.Login(t.Context(), LoginRequest{
		Email:    "buyer@example.com",
		Password: "new-password-1",
	}, "", "")
	assert.NoError(t, err)
}

func TestSessions(t *testing.T) {
	env := newTestEnv(t)
	u := env.users.seedVerified(t, "buyer@example.com", "correct-horse-1")
	other := env.users.seedVerified(t, "other@example.com", "correct-horse-1")

	for range 2 {
		_, err := env.svc.Login(t.Context(), LoginRequest{
			Email:    "buyer@example.com",
			Password: "correct-horse-1",
		}, "agent", "10.0.0.1")
		require.NoError(t, err)
	}

	sessions, err := env.svc.GetActiveSessions(t.Context(), u.ID)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "agent", sessions[0].UserAgent)

	err = env.svc.RevokeSession(t.Context(), other.ID, sessions[0].ID)
	assert.ErrorIs(t, err, core.ErrForbidden)

	require.NoError(t, env.svc.RevokeSession(t.Context(), u.ID, sessions[0].ID))

	sessions, err = env.svc.GetActiveSessions(t.Context(), u.ID)
	require.NoError(t, err)
	assert.Len(t, sessions, 1)
}

func TestPruneExpiredSessions(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.PruneExpiredSessions(t.Context())
	require.NoError(t, err)
	assert.Equal(t, env.now.Add(-24*time.Hour), env.tokens.pruned)
}
