// AngelaMos | 2026
// otp.go

// Package otp issues and checks the six digit one-time codes used to
// confirm ownership of an email address.
package otp

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
	"strconv"
	"time"
)

const (
	CodeLength = 6
	DefaultTTL = 15 * time.Minute

	minCode = 100000
	maxCode = 999999
)

var codeSpan = big.NewInt(maxCode - minCode + 1)

// Challenge is a code and the absolute instant after which it stops
// being accepted.
type Challenge struct {
	Code   string
	Expiry time.Time
}

// GenerateCode returns a uniformly random code in [100000, 999999].
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, codeSpan)
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return strconv.FormatInt(n.Int64()+minCode, 10), nil
}

func GenerateExpiry(now time.Time) time.Time {
	return ExpiryFrom(now, DefaultTTL)
}

func ExpiryFrom(now time.Time, ttl time.Duration) time.Time {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return now.Add(ttl)
}

// IsExpired reports whether now is strictly after expiry.
func IsExpired(expiry, now time.Time) bool {
	return now.After(expiry)
}

// IsValid is a pure check. It never clears the stored code; callers do that
// once the challenge has been consumed.
func IsValid(
	candidate string,
	storedCode *string,
	storedExpiry *time.Time,
	now time.Time,
) bool {
	if storedCode == nil || storedExpiry == nil {
		return false
	}

	if IsExpired(*storedExpiry, now) {
		return false
	}

	return subtle.ConstantTimeCompare([]byte(candidate), []byte(*storedCode)) == 1
}

func NewChallenge(now time.Time, ttl time.Duration) (Challenge, error) {
	code, err := GenerateCode()
	if err != nil {
		return Challenge{}, err
	}

	return Challenge{
		Code:   code,
		Expiry: ExpiryFrom(now, ttl),
	}, nil
}
