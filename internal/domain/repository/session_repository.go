// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Domain-specific errors for session persistence.
var (
	// ErrSessionNotFound is returned when no session record exists for the user.
	// An absent session is a normal outcome (logged out or expired), not a failure.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionMismatch is returned by Replace when the stored refresh token
	// is not the one the caller presented, i.e. it was already rotated or revoked.
	ErrSessionMismatch = errors.New("session token mismatch")
)

// SessionRepository manages the single currently-valid refresh token per user.
// Storing a new token implicitly invalidates the previous one; the cache is
// the sole source of truth for session liveness.
type SessionRepository interface {
	// Store writes the user's refresh token with the given TTL, overwriting
	// any existing session record.
	Store(ctx context.Context, userID uuid.UUID, refreshToken string, ttl time.Duration) error

	// Find returns the currently stored refresh token for the user.
	// Returns ErrSessionNotFound when no session record exists.
	Find(ctx context.Context, userID uuid.UUID) (string, error)

	// Replace atomically swaps oldToken for newToken with a fresh TTL.
	// Returns ErrSessionNotFound when no record exists and ErrSessionMismatch
	// when the stored token differs from oldToken. The compare-and-swap keeps
	// concurrent refresh calls from double-issuing tokens.
	Replace(ctx context.Context, userID uuid.UUID, oldToken, newToken string, ttl time.Duration) error

	// Delete removes the user's session record. Deleting an absent record is
	// not an error.
	Delete(ctx context.Context, userID uuid.UUID) error
}
