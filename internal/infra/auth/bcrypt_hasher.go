// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"passport/config"
	domainerrors "passport/internal/domain/errors"
	"passport/internal/domain/service"
)

const (
	defaultMinPasswordLength = 8
	defaultMaxPasswordLength = 72 // bcrypt truncates beyond 72 bytes
)

// forbiddenWords are substrings that make a password trivially guessable
// regardless of its character classes.
var forbiddenWords = []string{"password", "admin", "qwerty", "123456", "letmein"}

// bcryptHasher is a concrete implementation of the PasswordHasher interface using bcrypt.
type bcryptHasher struct {
	cost     int
	strength *config.PasswordStrengthConfig
}

// NewBcryptHasher is the constructor for bcryptHasher.
// It returns the implementation as a service.PasswordHasher interface.
func NewBcryptHasher(cfg *config.Config) service.PasswordHasher {
	cost := bcrypt.DefaultCost
	if cfg.Auth != nil && cfg.Auth.BcryptCost != 0 {
		cost = cfg.Auth.BcryptCost
	}

	return &bcryptHasher{
		cost:     cost,
		strength: cfg.PasswordStrength,
	}
}

// NewBcryptHasherWithCost creates a hasher with an explicit cost factor.
// Lower costs keep test suites fast.
func NewBcryptHasherWithCost(cost int) service.PasswordHasher {
	return &bcryptHasher{cost: cost}
}

// Hash generates a salted hash from a plaintext password using bcrypt.
// bcrypt automatically handles salt generation.
func (h *bcryptHasher) Hash(password string) (string, error) {
	if err := h.ValidatePasswordStrength(password); err != nil {
		return "", err
	}

	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", domainerrors.ErrPasswordHashFailed.WrapMessage(err.Error())
	}

	return string(bytes), nil
}

// Check compares a plaintext password with a bcrypt hash.
// A mismatch or malformed hash is a false result, never an error.
func (h *bcryptHasher) Check(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	// err is nil if the password and hash match.
	return err == nil
}

// ValidatePasswordStrength verifies the password against the configured
// strength requirements before hashing.
func (h *bcryptHasher) ValidatePasswordStrength(password string) error {
	minLength := defaultMinPasswordLength
	maxLength := defaultMaxPasswordLength
	requireUpper, requireLower, requireNumbers, requireSpecial := true, true, true, true

	if h.strength != nil {
		if h.strength.MinLength > 0 {
			minLength = h.strength.MinLength
		}
		if h.strength.MaxLength > 0 {
			maxLength = h.strength.MaxLength
		}
		requireUpper = h.strength.RequireUppercase
		requireLower = h.strength.RequireLowercase
		requireNumbers = h.strength.RequireNumbers
		requireSpecial = h.strength.RequireSpecial
	}

	if len(password) < minLength {
		return domainerrors.ErrPasswordStrength.WrapMessage("password must be at least " + strconv.Itoa(minLength) + " characters long")
	}
	if len(password) > maxLength {
		return domainerrors.ErrPasswordStrength.WrapMessage("password must be at most " + strconv.Itoa(maxLength) + " characters long")
	}
	if requireUpper && !hasUppercase(password) {
		return domainerrors.ErrPasswordStrength.WrapMessage("password must contain at least one uppercase letter")
	}
	if requireLower && !hasLowercase(password) {
		return domainerrors.ErrPasswordStrength.WrapMessage("password must contain at least one lowercase letter")
	}
	if requireNumbers && !hasNumbers(password) {
		return domainerrors.ErrPasswordStrength.WrapMessage("password must contain at least one number")
	}
	if requireSpecial && !hasSpecialChars(password) {
		return domainerrors.ErrPasswordStrength.WrapMessage("password must contain at least one special character")
	}
	if containsForbiddenWords(password, forbiddenWords) {
		return domainerrors.ErrPasswordForbiddenWords.WrapMessage("password contains forbidden words")
	}

	return nil
}

func hasUppercase(s string) bool {
	return strings.ContainsFunc(s, unicode.IsUpper)
}

func hasLowercase(s string) bool {
	return strings.ContainsFunc(s, unicode.IsLower)
}

func hasNumbers(s string) bool {
	return strings.ContainsFunc(s, unicode.IsDigit)
}

func hasSpecialChars(s string) bool {
	return strings.ContainsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func containsForbiddenWords(password string, words []string) bool {
	lowered := strings.ToLower(password)
	for _, word := range words {
		if strings.Contains(lowered, word) {
			return true
		}
	}

	return false
}
