// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"unicode"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"campus/config"
	"campus/internal/domain/service"
)

// Fallback policy bounds used when no PasswordStrength section is configured.
const (
	defaultMinPasswordLength = 8
	defaultMaxPasswordLength = 128
)

// bcryptHasher is a concrete implementation of the PasswordHasher interface using bcrypt.
type bcryptHasher struct {
	cost   int
	policy *config.PasswordStrengthConfig
}

// NewBcryptHasher is the constructor for bcryptHasher.
// It returns the implementation as a service.PasswordHasher interface.
func NewBcryptHasher(cfg *config.Config) service.PasswordHasher {
	return &bcryptHasher{
		cost:   cfg.BcryptCostOrDefault(),
		policy: cfg.PasswordStrength,
	}
}

// Hash generates a salted hash from a plaintext password using bcrypt.
// bcrypt automatically handles salt generation.
func (h *bcryptHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)

	return string(bytes), err
}

// Check compares a plaintext password with a bcrypt hash. bcrypt's
// comparison is constant-time with respect to the hash.
func (h *bcryptHasher) Check(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	// err is nil if the password and hash match.
	return err == nil
}

// ValidatePasswordStrength checks a candidate password against the
// configured policy: length bounds plus required character classes.
func (h *bcryptHasher) ValidatePasswordStrength(password string) error {
	minLength, maxLength := defaultMinPasswordLength, defaultMaxPasswordLength
	requireUpper, requireLower, requireNumbers, requireSpecial := true, true, true, true

	if h.policy != nil {
		if h.policy.MinLength > 0 {
			minLength = h.policy.MinLength
		}
		if h.policy.MaxLength > 0 {
			maxLength = h.policy.MaxLength
		}
		requireUpper = h.policy.RequireUppercase
		requireLower = h.policy.RequireLowercase
		requireNumbers = h.policy.RequireNumbers
		requireSpecial = h.policy.RequireSpecial
	}

	if len(password) < minLength {
		return errors.Errorf("password must be at least %d characters", minLength)
	}
	if len(password) > maxLength {
		return errors.Errorf("password must be at most %d characters", maxLength)
	}

	var hasUpper, hasLower, hasNumber, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasNumber = true
		default:
			hasSpecial = true
		}
	}

	if requireUpper && !hasUpper {
		return errors.New("password must contain an uppercase letter")
	}
	if requireLower && !hasLower {
		return errors.New("password must contain a lowercase letter")
	}
	if requireNumbers && !hasNumber {
		return errors.New("password must contain a number")
	}
	if requireSpecial && !hasSpecial {
		return errors.New("password must contain a special character")
	}

	return nil
}
