// Package password hashes, verifies and generates account passwords.
package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost matches bcrypt salt rounds used for stored user passwords.
const DefaultCost = 10

var ErrEmpty = errors.New("password must not be empty")

// Hasher is a bcrypt-backed password hasher.
type Hasher struct {
	cost int
}

// NewHasher returns a Hasher with the given work factor. Out-of-range costs
// fall back to DefaultCost.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash returns a salted bcrypt hash of plaintext.
func (h *Hasher) Hash(plaintext string) (string, error) {
	if plaintext == "" {
		return "", ErrEmpty
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify reports whether plaintext matches hash. A malformed hash is treated
// as a mismatch.
func (h *Hasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
