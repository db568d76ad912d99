package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultHashCost is the bcrypt work factor used unless configured otherwise.
const DefaultHashCost = 12

// MaxPasswordBytes is the longest secret bcrypt accepts.
const MaxPasswordBytes = 72

var ErrPasswordTooLong = errors.New("password is longer than 72 bytes")

// PasswordHasher hashes and verifies plaintext passwords.
type PasswordHasher interface {
	Hash(secret string) (string, error)
	Verify(secret, hashed string) bool
}

// BcryptHasher is a PasswordHasher backed by bcrypt. Each hash embeds its
// own random salt and cost.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns an error for a cost bcrypt does not accept.
func NewBcryptHasher(cost int) (*BcryptHasher, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt cost %d out of range [%d,%d]", cost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	return &BcryptHasher{cost: cost}, nil
}

func (h *BcryptHasher) Hash(secret string) (string, error) {
	if len(secret) > MaxPasswordBytes {
		return "", ErrPasswordTooLong
	}
	b, err := bcrypt.GenerateFromPassword([]byte(secret), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}

// Verify reports whether secret matches hashed. A malformed hash is a
// mismatch.
func (h *BcryptHasher) Verify(secret, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(secret)) == nil
}
