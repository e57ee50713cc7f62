package password_test

import (
	"strings"
	"testing"

	"github.com/altynbekov/streamflix/internal/password"
)

// Cost 4 (bcrypt minimum) keeps the tests fast; the production default is
// exercised via NewHasher fallback below.
func newFastHasher() *password.Hasher {
	return password.NewHasher(4)
}

func TestHash_VerifiesAgainstOriginal(t *testing.T) {
	h := newFastHasher()

	hash, err := h.Hash("secret123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !h.Verify("secret123", hash) {
		t.Error("hash does not verify against original plaintext")
	}
}

func TestVerify_WrongPassword_ReturnsFalse(t *testing.T) {
	h := newFastHasher()

	hash, err := h.Hash("secret123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if h.Verify("wrong", hash) {
		t.Error("wrong password verified")
	}
}

func TestVerify_MalformedHash_ReturnsFalse(t *testing.T) {
	h := newFastHasher()

	if h.Verify("secret123", "not-a-bcrypt-hash") {
		t.Error("malformed hash verified")
	}
}

func TestHash_IsSalted(t *testing.T) {
	h := newFastHasher()

	a, err := h.Hash("secret123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	b, err := h.Hash("secret123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if a == b {
		t.Error("two hashes of the same plaintext are identical; salt missing")
	}
}

func TestHash_NeverContainsPlaintext(t *testing.T) {
	h := newFastHasher()

	hash, err := h.Hash("secret123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if strings.Contains(hash, "secret123") {
		t.Error("hash contains the plaintext password")
	}
}

func TestNewHasher_OutOfRangeCost_FallsBackToDefault(t *testing.T) {
	h := password.NewHasher(99)

	hash, err := h.Hash("pw")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	// bcrypt encodes the cost as the second $-separated field.
	if !strings.HasPrefix(hash, "$2a$10$") {
		t.Errorf("hash = %q, want cost 10 prefix", hash[:7])
	}
}
