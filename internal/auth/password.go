package auth

import "golang.org/x/crypto/bcrypt"

// Hasher performs one-way password hashing with a tunable work factor.
// bcrypt salts every digest, so hashing the same plaintext twice yields
// distinct digests.
type Hasher struct {
	cost int
}

// NewHasher clamps out-of-range costs to the service default of 10.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = 10
	}
	return &Hasher{cost: cost}
}

func (h *Hasher) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether plaintext matches the stored digest. A malformed
// digest is a plain mismatch, never an error.
func (h *Hasher) Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
