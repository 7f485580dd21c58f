// AngelaMos | 2026
// verification_test.go

package auth

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andgroupco/andoffer/internal/core"
)

var sixDigits = regexp.MustCompile(`^[1-9][0-9]{5}$`)

func signUpReq(email string) SignUpRequest {
	return SignUpRequest{
		Email:    email,
		Password: "correct-horse-1",
		Name:     "Ana Buyer",
	}
}

func TestSignUp_NewEmailCreatesPendingAccount(t *testing.T) {
	env := newTestEnv(t)

	err := env.svc.SignUp(t.Context(), signUpReq("Ana@Example.com"))
	require.NoError(t, err)

	user, err := env.users.GetByEmail(t.Context(), "ana@example.com")
	require.NoError(t, err)

	assert.False(t, user.IsActive)
	assert.Nil(t, user.EmailVerified)
	assert.Equal(t, "BUYER", user.Role)
	require.NotNil(t, user.VerificationCode)
	require.NotNil(t, user.VerificationExpiry)
	assert.Regexp(t, sixDigits, *user.VerificationCode)
	assert.Equal(t, env.now.Add(15*time.Minute), *user.VerificationExpiry)

	code := env.notifier.lastCode(t)
	assert.Equal(t, *user.VerificationCode, code)
	assert.Equal(t, "ana@example.com", env.notifier.codes[0].To)
}

func TestSignUp_DeliveryFailureRollsBack(t *testing.T) {
	env := newTestEnv(t)
	env.notifier.verifyErr = errors.New("smtp down")

	err := env.svc.SignUp(t.Context(), signUpReq("ana@example.com"))
	require.ErrorIs(t, err, ErrEmailDelivery)

	_, err = env.users.GetByEmail(t.Context(), "ana@example.com")
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.Len(t, env.users.deleted, 1)

	env.notifier.verifyErr = nil
	require.NoError(t, env.svc.SignUp(t.Context(), signUpReq("ana@example.com")))

	_, err = env.users.GetByEmail(t.Context(), "ana@example.com")
	assert.NoError(t, err)
}

func TestSignUp_PendingEmailIsReissued(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.svc.SignUp(t.Context(), signUpReq("ana@example.com")))
	first, err := env.users.GetByEmail(t.Context(), "ana@example.com")
	require.NoError(t, err)

	env.advance(5 * time.Minute)

	retry := signUpReq("ana@example.com")
	retry.Password = "another-pass-2"
	retry.Name = "Ana Renamed"
	require.NoError(t, env.svc.SignUp(t.Context(), retry))

	second, err := env.users.GetByEmail(t.Context(), "ana@example.com")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Ana Renamed", second.Name)
	assert.NotEqual(t, *first.PasswordHash, *second.PasswordHash)
	assert.Equal(t, env.now.Add(15*time.Minute), *second.VerificationExpiry)
	assert.Len(t, env.notifier.codes, 2)
	assert.Equal(t, *second.VerificationCode, env.notifier.lastCode(t))

	ok, err := core.VerifyPassword("another-pass-2", *second.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSignUp_VerifiedEmailConflicts(t *testing.T) {
	env := newTestEnv(t)
	env.users.seedVerified(t, "ana@example.com", "whatever-pass")

	err := env.svc.SignUp(t.Context(), signUpReq("ANA@example.com"))
	assert.ErrorIs(t, err, ErrAccountExists)
	assert.Empty(t, env.notifier.codes)
}

func TestVerify(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.svc.SignUp(t.Context(), signUpReq("ana@example.com")))
	code := env.notifier.lastCode(t)

	wrong := "100000"
	if code == wrong {
		wrong = "100001"
	}

	_, err := env.svc.Verify(t.Context(), VerifyRequest{Email: "ana@example.com", Code: wrong})
	assert.ErrorIs(t, err, ErrInvalidCode)

	user, err := env.svc.Verify(t.Context(), VerifyRequest{Email: "ana@example.com", Code: code})
	require.NoError(t, err)

	assert.True(t, user.IsActive)
	require.NotNil(t, user.EmailVerified)
	assert.Equal(t, env.now, *user.EmailVerified)
	assert.Nil(t, user.VerificationCode)
	assert.Nil(t, user.VerificationExpiry)
	assert.Equal(t, []string{"ana@example.com"}, env.notifier.welcomes)

	_, err = env.svc.Verify(t.Context(), VerifyRequest{Email: "ana@example.com", Code: code})
	assert.ErrorIs(t, err, ErrAlreadyVerified)
}

func TestSignUpVerifyLoginRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	req := signUpReq("Ana@Example.com")

	require.NoError(t, env.svc.SignUp(t.Context(), req))

	_, err := env.svc.Login(t.Context(), LoginRequest{
		Email:    "ana@example.com",
		Password: req.Password,
	}, "test-agent", "127.0.0.1")
	require.ErrorIs(t, err, ErrEmailNotVerified)

	_, err = env.svc.Verify(t.Context(), VerifyRequest{
		Email: "ana@example.com",
		Code:  env.notifier.lastCode(t),
	})
	require.NoError(t, err)

	resp, err := env.svc.Login(t.Context(), LoginRequest{
		Email:    "ANA@example.com",
		Password: req.Password,
	}, "test-agent", "127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", resp.User.Email)
	assert.Equal(t, "BUYER", resp.User.Role)
	assert.True(t, resp.User.IsActive)
	assert.NotEmpty(t, resp.Tokens.AccessToken)

	err = env.svc.SignUp(t.Context(), req)
	assert.ErrorIs(t, err, ErrAccountExists)
	assert.Len(t, env.notifier.codes, 1)
}

func TestVerify_ExpiredCode(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.svc.SignUp(t.Context(), signUpReq("ana@example.com")))
	code := env.notifier.lastCode(t)

	env.advance(15 * time.Minute)
	env.advance(time.Second)

	_, err := env.svc.Verify(t.Context(), VerifyRequest{Email: "ana@example.com", Code: code})
	assert.ErrorIs(t, err, ErrInvalidCode)

	user, err := env.users.GetByEmail(t.Context(), "ana@example.com")
	require.NoError(t, err)
	assert.False(t, user.IsVerified())
}

func TestVerify_AtExactExpirySucceeds(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.svc.SignUp(t.Context(), signUpReq("ana@example.com")))
	code := env.notifier.lastCode(t)

	env.advance(15 * time.Minute)

	_, err := env.svc.Verify(t.Context(), VerifyRequest{Email: "ana@example.com", Code: code})
	assert.NoError(t, err)
}

func TestVerify_WelcomeFailureKeepsVerification(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.svc.SignUp(t.Context(), signUpReq("ana@example.com")))
	env.notifier.welcomeErr = errors.New("mail api down")

	user, err := env.svc.Verify(t.Context(), VerifyRequest{
		Email: "ana@example.com",
		Code:  env.notifier.lastCode(t),
	})
	require.NoError(t, err)
	assert.True(t, user.IsVerified())

	stored, err := env.users.GetByEmail(t.Context(), "ana@example.com")
	require.NoError(t, err)
	assert.True(t, stored.IsVerified())
}

func TestVerify_UnknownEmail(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Verify(t.Context(), VerifyRequest{Email: "nobody@example.com", Code: "123456"})
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestResend(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.svc.SignUp(t.Context(), signUpReq("ana@example.com")))
	oldCode := env.notifier.lastCode(t)

	env.advance(20 * time.Minute)

	require.NoError(t, env.svc.Resend(t.Context(), ResendRequest{Email: "ana@example.com"}))
	newCode := env.notifier.lastCode(t)

	user, err := env.users.GetByEmail(t.Context(), "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, newCode, *user.VerificationCode)
	assert.Equal(t, env.now.Add(15*time.Minute), *user.VerificationExpiry)

	if oldCode != newCode {
		_, err = env.svc.Verify(t.Context(), VerifyRequest{Email: "ana@example.com", Code: oldCode})
		assert.ErrorIs(t, err, ErrInvalidCode)
	}

	_, err = env.svc.Verify(t.Context(), VerifyRequest{Email: "ana@example.com", Code: newCode})
	assert.NoError(t, err)
}

func TestResend_Errors(t *testing.T) {
	env := newTestEnv(t)

	err := env.svc.Resend(t.Context(), ResendRequest{Email: "nobody@example.com"})
	assert.ErrorIs(t, err, core.ErrNotFound)

	env.users.seedVerified(t, "done@example.com", "whatever-pass")
	err = env.svc.Resend(t.Context(), ResendRequest{Email: "done@example.com"})
	assert.ErrorIs(t, err, ErrAlreadyVerified)

	require.NoError(t, env.svc.SignUp(t.Context(), signUpReq("ana@example.com")))
	env.notifier.verifyErr = errors.New("mail api down")

	err = env.svc.Resend(t.Context(), ResendRequest{Email: "ana@example.com"})
	assert.ErrorIs(t, err, ErrEmailDelivery)

	_, err = env.users.GetByEmail(t.Context(), "ana@example.com")
	assert.NoError(t, err, "resend failure must not delete the pending account")
}
