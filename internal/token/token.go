// Package token mints and verifies the signed session tokens the API hands
// out at login. Tokens are HS256 JWTs carrying only the user ID as subject;
// they are immutable once minted and opaque to the client.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	ReasonBadSignature = "bad-signature"
	ReasonExpired      = "expired"
)

// VerificationError distinguishes a tampered token from a merely expired
// one. Handlers collapse both to 401, but the reason feeds logs and metrics.
type VerificationError struct {
	Reason string
}

func (e *VerificationError) Error() string {
	return "token verification failed: " + e.Reason
}

// Codec signs with a process-wide secret loaded from configuration. The
// secret and algorithm are stable across restarts so outstanding tokens
// stay valid until natural expiry.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

func NewCodec(secret []byte, ttl time.Duration) *Codec {
	return &Codec{secret: secret, ttl: ttl}
}

// TTL is the lifetime applied to minted tokens. The cookie the transport
// sets must expire in lockstep with it.
func (c *Codec) TTL() time.Duration {
	return c.ttl
}

// Mint issues a signed token bound to subjectID, expiring TTL from now.
func (c *Codec) Mint(subjectID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subjectID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature first, then expiry against wall-clock time
// (no skew compensation), and returns the bound subject ID.
func (c *Codec) Verify(raw string) (string, error) {
	claims := &jwt.RegisteredClaims{}

	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return c.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", &VerificationError{Reason: ReasonExpired}
		}
		return "", &VerificationError{Reason: ReasonBadSignature}
	}

	if !tok.Valid || claims.Subject == "" {
		return "", &VerificationError{Reason: ReasonBadSignature}
	}
	return claims.Subject, nil
}
