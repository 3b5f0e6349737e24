package auth

import "testing"

func TestHashAndVerify(t *testing.T) {
	h := NewHasher(4) // minimum bcrypt cost keeps tests fast

	digest, err := h.Hash("hunter2")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	if !h.Verify("hunter2", digest) {
		t.Fatalf("expected matching password to verify")
	}
	if h.Verify("hunter3", digest) {
		t.Fatalf("expected mismatched password to fail")
	}
}

func TestHashIsSalted(t *testing.T) {
	h := NewHasher(4)

	a, err := h.Hash("same-input")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	b, err := h.Hash("same-input")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if a == b {
		t.Fatalf("expected distinct digests for identical input")
	}
}

func TestVerifyMalformedDigest(t *testing.T) {
	h := NewHasher(4)
	if h.Verify("anything", "not-a-bcrypt-digest") {
		t.Fatalf("expected malformed digest to fail verification")
	}
}

func TestNewHasherClampsCost(t *testing.T) {
	h := NewHasher(-1)
	if h.cost != 10 {
		t.Fatalf("expected default cost 10, got %d", h.cost)
	}
	h = NewHasher(99)
	if h.cost != 10 {
		t.Fatalf("expected default cost 10, got %d", h.cost)
	}
}
