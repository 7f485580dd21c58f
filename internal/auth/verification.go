// AngelaMos | 2026
// verification.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"github.com/andgroupco/andoffer/internal/core"
	"github.com/andgroupco/andoffer/internal/otp"
)

// SignUp registers an account pending email verification and sends it a
// code. A pending account with the same email is overwritten and re-sent
// a code. A verified account with the same email is a conflict.
//
// A brand new account is removed again when the code cannot be delivered,
// so the address stays free for another attempt.
func (s *Service) SignUp(ctx context.Context, req SignUpRequest) error {
	ctx, span := tracer.Start(ctx, "auth.SignUp")
	defer span.End()

	email := normalizeEmail(req.Email)

	passwordHash, err := core.HashPassword(req.Password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	challenge, err := otp.NewChallenge(s.now(), s.otpTTL)
	if err != nil {
		return fmt.Errorf("generate code: %w", err)
	}

	existing, err := s.userProvider.GetByEmail(ctx, email)
	switch {
	case err == nil:
		span.SetAttributes(attribute.Bool("signup.existing", true))
		return s.retryPendingSignUp(ctx, existing, req.Name, passwordHash, challenge)
	case !errors.Is(err, core.ErrNotFound):
		return fmt.Errorf("get user: %w", err)
	}

	user, err := s.userProvider.CreatePending(
		ctx,
		email,
		passwordHash,
		req.Name,
		challenge.Code,
		challenge.Expiry,
	)
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return ErrAccountExists
		}
		return fmt.Errorf("create pending user: %w", err)
	}

	sendErr := s.notifier.SendVerification(
		ctx,
		user.Email,
		user.Name,
		challenge.Code,
		s.otpTTL,
	)
	if sendErr == nil {
		return nil
	}

	if delErr := s.userProvider.DeletePending(
		context.WithoutCancel(ctx),
		user.ID,
	); delErr != nil {
		slog.ErrorContext(ctx, "signup rollback failed",
			"user_id", user.ID,
			"error", delErr,
		)
	}

	return fmt.Errorf("%w: %w", ErrEmailDelivery, sendErr)
}

func (s *Service) retryPendingSignUp(
	ctx context.Context,
	user *UserInfo,
	name, passwordHash string,
	challenge otp.Challenge,
) error {
	if user.IsVerified() {
		return ErrAccountExists
	}

	err := s.userProvider.RefreshPendingSignup(
		ctx,
		user.ID,
		name,
		passwordHash,
		challenge.Code,
		challenge.Expiry,
	)
	if err != nil {
		if errors.Is(err, core.ErrConflict) {
			return ErrAccountExists
		}
		return fmt.Errorf("refresh pending signup: %w", err)
	}

	if err := s.notifier.SendVerification(
		ctx,
		user.Email,
		name,
		challenge.Code,
		s.otpTTL,
	); err != nil {
		return fmt.Errorf("%w: %w", ErrEmailDelivery, err)
	}

	return nil
}

// Verify consumes a verification code and activates the account. The
// welcome email is best effort and never undoes the verification.
func (s *Service) Verify(
	ctx context.Context,
	req VerifyRequest,
) (*UserInfo, error) {
	ctx, span := tracer.Start(ctx, "auth.Verify")
	defer span.End()

	user, err := s.userProvider.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		return nil, err
	}

	if user.IsVerified() {
		return nil, ErrAlreadyVerified
	}

	now := s.now()
	if !otp.IsValid(req.Code, user.VerificationCode, user.VerificationExpiry, now) {
		return nil, ErrInvalidCode
	}

	verified, err := s.userProvider.MarkVerified(ctx, user.ID, req.Code, now)
	if err != nil {
		if errors.Is(err, core.ErrConflict) {
			return nil, ErrInvalidCode
		}
		return nil, fmt.Errorf("mark verified: %w", err)
	}

	if err := s.notifier.SendWelcome(ctx, verified.Email, verified.Name); err != nil {
		slog.WarnContext(ctx, "welcome email failed",
			"user_id", verified.ID,
			"error", err,
		)
	}

	return verified, nil
}

// Resend issues a fresh code for a pending account. Delivery failures are
// returned to the caller.
func (s *Service) Resend(ctx context.Context, req ResendRequest) error {
	ctx, span := tracer.Start(ctx, "auth.Resend")
	defer span.End()

	user, err := s.userProvider.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		return err
	}

	if user.IsVerified() {
		return ErrAlreadyVerified
	}

	challenge, err := otp.NewChallenge(s.now(), s.otpTTL)
	if err != nil {
		return fmt.Errorf("generate code: %w", err)
	}

	if err := s.userProvider.ReissueVerification(
		ctx,
		user.ID,
		challenge.Code,
		challenge.Expiry,
	); err != nil {
		if errors.Is(err, core.ErrConflict) {
			return ErrAlreadyVerified
		}
		return fmt.Errorf("reissue verification: %w", err)
	}

	if err := s.notifier.SendVerification(
		ctx,
		user.Email,
		user.Name,
		challenge.Code,
		s.otpTTL,
	); err != nil {
		return fmt.Errorf("%w: %w", ErrEmailDelivery, err)
	}

	return nil
}
