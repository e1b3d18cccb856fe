package password

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHasher_HashIsSaltedAndNotPlaintext(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	a, err := h.Hash("Pwd12345")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	b, err := h.Hash("Pwd12345")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if a == "Pwd12345" {
		t.Fatalf("hash equals plaintext")
	}
	if a == b {
		t.Fatalf("expected distinct hashes for the same plaintext")
	}
}

func TestHasher_Verify(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)
	hash, err := h.Hash("correct horse")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	if !h.Verify("correct horse", hash) {
		t.Fatalf("expected match")
	}
	if h.Verify("wrong horse", hash) {
		t.Fatalf("expected mismatch")
	}
}

func TestHasher_VerifyMalformedHash(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)
	if h.Verify("anything", "not-a-bcrypt-hash") {
		t.Fatalf("malformed hash must not verify")
	}
	if h.Verify("anything", "") {
		t.Fatalf("empty hash must not verify")
	}
}

func TestHasher_EmptyPassword(t *testing.T) {
	if _, err := NewHasher(bcrypt.MinCost).Hash(""); err != ErrEmpty {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
}

func TestNewHasher_CostFallback(t *testing.T) {
	if h := NewHasher(0); h.cost != DefaultCost {
		t.Fatalf("expected default cost, got %d", h.cost)
	}
	if h := NewHasher(bcrypt.MaxCost + 1); h.cost != DefaultCost {
		t.Fatalf("expected default cost, got %d", h.cost)
	}
}
