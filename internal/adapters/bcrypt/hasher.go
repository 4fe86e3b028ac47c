// Package bcrypt implements the password hashing port.
package bcrypt

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/plantflix/marketplace/internal/ports"
)

// Hasher hashes passwords with bcrypt.
type Hasher struct {
	cost int
}

var _ ports.PasswordHasher = (*Hasher)(nil)

// NewHasher creates a Hasher. Costs below bcrypt's minimum fall back to the
// library default.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash returns the bcrypt hash of password.
func (h *Hasher) Hash(password string) (string, error) {
	if password == "" {
		return "", errors.New("password cannot be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Compare reports whether password matches hash. A mismatch returns an error.
func (h *Hasher) Compare(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
