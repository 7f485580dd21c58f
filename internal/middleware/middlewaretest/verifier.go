// AngelaMos | 2026
// verifier.go

// Package middlewaretest provides token verifiers for handler tests.
package middlewaretest

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/andgroupco/andoffer/internal/core"
	"github.com/andgroupco/andoffer/internal/middleware"
)

// Verifier accepts tokens of the form "<user id>:<ROLE>" and rejects
// everything else as invalid.
type Verifier struct{}

func (Verifier) VerifyAccessToken(
	_ context.Context,
	token string,
) (*middleware.AccessTokenClaims, error) {
	userID, role, ok := strings.Cut(token, ":")
	if !ok || userID == "" || role == "" {
		return nil, core.ErrTokenInvalid
	}

	return &middleware.AccessTokenClaims{
		UserID:    userID,
		Role:      role,
		JTI:       "jti-" + userID,
		ExpiresAt: time.Now().Add(15 * time.Minute),
	}, nil
}

func Authenticator() func(http.Handler) http.Handler {
	return middleware.Authenticator(Verifier{})
}

func OptionalAuth() func(http.Handler) http.Handler {
	return middleware.OptionalAuth(Verifier{})
}

// Token builds a bearer token accepted by Verifier.
func Token(userID, role string) string {
	return userID + ":" + role
}
