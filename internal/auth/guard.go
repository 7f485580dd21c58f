// AngelaMos | 2026
// guard.go

package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/andgroupco/andoffer/internal/core"
	"github.com/andgroupco/andoffer/internal/middleware"
)

// TokenGuard verifies access tokens for the Authenticator middleware. On top
// of the signature check it rejects blacklisted tokens and tokens issued
// before the account's last credential change.
type TokenGuard struct {
	jwt     *JWTManager
	service *Service
}

func NewTokenGuard(jwt *JWTManager, service *Service) *TokenGuard {
	return &TokenGuard{jwt: jwt, service: service}
}

func (g *TokenGuard) VerifyAccessToken(
	ctx context.Context,
	token string,
) (*middleware.AccessTokenClaims, error) {
	claims, err := g.jwt.VerifyAccessToken(ctx, token)
	if err != nil {
		return nil, err
	}

	revoked, err := g.service.IsAccessTokenBlacklisted(ctx, claims.JTI)
	if err != nil {
		slog.WarnContext(ctx, "token blacklist unavailable, failing open",
			"error", err,
		)
	} else if revoked {
		return nil, fmt.Errorf("verify token: %w", core.ErrTokenRevoked)
	}

	if err := g.service.ValidateTokenVersion(
		ctx,
		claims.UserID,
		claims.TokenVersion,
	); err != nil {
		return nil, err
	}

	return claims, nil
}

var _ middleware.TokenVerifier = (*TokenGuard)(nil)
