// Package entity contains the core business objects of the project.
package entity

// Role represents the type of role a user can have in the system.
type Role string

const (
	// RoleUser indicates a regular user role. Every account starts as this.
	RoleUser Role = "USER"
	// RoleAdmin indicates an administrator role.
	RoleAdmin Role = "ADMIN"
	// RoleModerator indicates a moderator role.
	RoleModerator Role = "MODERATOR"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleModerator:
		return true
	default:
		return false
	}
}

// RoleFromString converts a claim string back to a Role, falling back to
// RoleUser for anything unrecognized so stale tokens never escalate.
func RoleFromString(s string) Role {
	role := Role(s)
	if role.IsValid() {
		return role
	}

	return RoleUser
}
