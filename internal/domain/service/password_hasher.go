// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

// PasswordHasher defines the interface for password hashing and verification.
// This abstracts the underlying hashing algorithm (e.g., bcrypt), keeping the domain pure.
type PasswordHasher interface {
	// Hash generates a salted hash from a plaintext password.
	Hash(password string) (string, error)

	// Check compares a plaintext password with a hash to see if they match.
	// A mismatch or a malformed hash is a false result, never an error.
	Check(password, hash string) bool

	// ValidatePasswordStrength verifies the password meets the configured
	// strength requirements before it is ever hashed.
	ValidatePasswordStrength(password string) error
}
