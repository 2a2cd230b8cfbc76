// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core entity in the system, representing a single authenticated
// principal. Identity fields are immutable after creation; Role and
// PasswordHash are only mutated by administrative flows.
type User struct {
	ID           uuid.UUID // The unique identifier for the user.
	Email        string    // The user's email, unique across the system and used as the login identifier.
	Role         Role      // The user's role, granted at registration and changed only by admins.
	PasswordHash string    // The bcrypt hash of the user's password. Never exposed outside the domain.
	CreatedAt    time.Time // Timestamp of when this user account was created.
	UpdatedAt    time.Time // Timestamp of the last modification to this user's data.
}

// PublicUser is the projection of a User that is safe to return to clients.
type PublicUser struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Role  Role      `json:"role"`
}

// Public returns the client-safe projection of the user.
func (u *User) Public() *PublicUser {
	return &PublicUser{
		ID:    u.ID,
		Email: u.Email,
		Role:  u.Role,
	}
}
