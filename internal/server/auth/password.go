package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/investkeeper/internal/common"
)

// DefaultBcryptCost is the work factor used for new password hashes.
const DefaultBcryptCost = 10

// PasswordHasher hashes and checks passwords with bcrypt.
type PasswordHasher struct {
	cost int

	// dummy is compared against when the user does not exist, so that
	// unknown and known usernames take the same time to reject.
	dummy []byte
}

// NewPasswordHasher uses cost, or DefaultBcryptCost if cost is outside
// bcrypt's accepted range.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	dummy, _ := bcrypt.GenerateFromPassword([]byte("investkeeper-dummy-password"), cost)
	return &PasswordHasher{cost: cost, dummy: dummy}
}

// Cost returns the bcrypt work factor in use.
func (h *PasswordHasher) Cost() int { return h.cost }

// Hash returns the salted bcrypt hash of password.
func (h *PasswordHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", fmt.Errorf("%w: password longer than 72 bytes", common.ErrInvalidInput)
		}
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Check compares password with hash and returns common.ErrInvalidCredentials
// on any mismatch, including a malformed hash.
func (h *PasswordHasher) Check(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return common.ErrInvalidCredentials
	}
	return nil
}

// CheckMissing burns the same time as Check and always fails. It is used
// when the username is unknown.
func (h *PasswordHasher) CheckMissing(password string) error {
	_ = bcrypt.CompareHashAndPassword(h.dummy, []byte(password))
	return common.ErrInvalidCredentials
}
