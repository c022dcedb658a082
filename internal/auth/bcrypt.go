package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost keeps hashing deliberately slow in production. Tests
// construct hashers with bcrypt.MinCost instead.
const DefaultBcryptCost = 14

// BcryptHasher implements PasswordAuthenticator on top of bcrypt with a
// configurable work factor.
type BcryptHasher struct {
	cost int
}

var _ PasswordAuthenticator = (*BcryptHasher)(nil)

// NewBcryptHasher creates a hasher with the given cost. Costs outside the
// range bcrypt supports fall back to DefaultBcryptCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return &BcryptHasher{cost: cost}
}

// HashPassword will generate a salted password hash. Hashing the same
// plaintext twice yields different digests; both verify.
func (h *BcryptHasher) HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrNoEmptyString
	}

	out, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	return string(out), err
}

// ComparePasswordAndHash will validate the given cleartext password matches
// the hashed password. Mismatches and malformed digests both return
// ErrMismatchedHashAndPassword; neither is treated as a system fault.
func (h *BcryptHasher) ComparePasswordAndHash(password, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrMismatchedHashAndPassword
	}
	return nil
}
