package token_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/altynbekov/streamflix/internal/token"
	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "token-test-secret-at-least-32-ch!"

func TestMintVerify_RoundTrip(t *testing.T) {
	c := token.NewCodec([]byte(testSecret), time.Hour)

	raw, err := c.Mint("user-1")
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if raw == "" {
		t.Fatal("minted token is empty")
	}

	sub, err := c.Verify(raw)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if sub != "user-1" {
		t.Errorf("subject = %q, want user-1", sub)
	}
}

func TestVerify_ExpiredToken_ReturnsExpiredReason(t *testing.T) {
	// A negative TTL mints a token that is already past its expiry.
	c := token.NewCodec([]byte(testSecret), -time.Minute)

	raw, err := c.Mint("user-1")
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	_, err = c.Verify(raw)
	var verr *token.VerificationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want VerificationError", err)
	}
	if verr.Reason != token.ReasonExpired {
		t.Errorf("reason = %q, want %q", verr.Reason, token.ReasonExpired)
	}
}

func TestVerify_WrongSecret_ReturnsBadSignature(t *testing.T) {
	minter := token.NewCodec([]byte(testSecret), time.Hour)
	verifier := token.NewCodec([]byte("a-completely-different-32-char-ky"), time.Hour)

	raw, err := minter.Mint("user-1")
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	_, err = verifier.Verify(raw)
	var verr *token.VerificationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want VerificationError", err)
	}
	if verr.Reason != token.ReasonBadSignature {
		t.Errorf("reason = %q, want %q", verr.Reason, token.ReasonBadSignature)
	}
}

func TestVerify_TamperedPayload_ReturnsBadSignature(t *testing.T) {
	c := token.NewCodec([]byte(testSecret), time.Hour)

	raw, err := c.Mint("user-1")
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		t.Fatalf("token has %d parts, want 3", len(parts))
	}
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]

	_, err = c.Verify(tampered)
	var verr *token.VerificationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want VerificationError", err)
	}
	if verr.Reason != token.ReasonBadSignature {
		t.Errorf("reason = %q, want %q", verr.Reason, token.ReasonBadSignature)
	}
}

func TestVerify_GarbageInput_ReturnsBadSignature(t *testing.T) {
	c := token.NewCodec([]byte(testSecret), time.Hour)

	_, err := c.Verify("not.a.jwt")
	var verr *token.VerificationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want VerificationError", err)
	}
	if verr.Reason != token.ReasonBadSignature {
		t.Errorf("reason = %q, want %q", verr.Reason, token.ReasonBadSignature)
	}
}

func TestVerify_MissingSubject_Rejected(t *testing.T) {
	c := token.NewCodec([]byte(testSecret), time.Hour)

	// A structurally valid, well-signed token without a subject claim.
	claims := jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := c.Verify(raw); err == nil {
		t.Error("token without subject verified")
	}
}

func TestVerify_NoneAlgorithm_Rejected(t *testing.T) {
	c := token.NewCodec([]byte(testSecret), time.Hour)

	claims := jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := c.Verify(raw); err == nil {
		t.Error("unsigned token verified")
	}
}
