// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"passport/internal/domain/entity"
)

// Cookie names shared between the use cases and the HTTP delivery.
const (
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"
)

// CookieDirective instructs the transport layer how to set a cookie. The use
// cases never touch transport objects; they only describe the cookies.
// MaxAgeSeconds of zero means clear the cookie.
type CookieDirective struct {
	Name          string
	Value         string
	HTTPOnly      bool
	MaxAgeSeconds int
}

// --- Input DTOs ---

// RegisterInput defines the data required to register a new user.
type RegisterInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// --- Output DTOs ---

// RegisterOutput returns the newly created user's public projection.
type RegisterOutput struct {
	User *entity.PublicUser
}

// LoginOutput returns the generated tokens after a successful login, plus the
// cookie directives the transport should apply.
type LoginOutput struct {
	User         *entity.PublicUser
	AccessToken  string
	RefreshToken string
	Cookies      []CookieDirective
}

// RefreshOutput returns the rotated token pair. Cookie handling is left to
// the caller.
type RefreshOutput struct {
	AccessToken  string
	RefreshToken string
}

// LogoutOutput returns the cookie-clearing directives. Logout always
// succeeds for bad tokens; only infrastructure failures surface as errors.
type LogoutOutput struct {
	Cookies []CookieDirective
}

// AuthUsecase defines the interface for authentication and session-lifecycle
// operations. This is the contract that the delivery layer depends on.
type AuthUsecase interface {
	// Register creates a new user with role USER.
	Register(ctx context.Context, input *RegisterInput) (*RegisterOutput, error)

	// Login verifies credentials and opens a session, issuing an
	// access/refresh token pair.
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)

	// Refresh rotates the refresh token and mints a new access token.
	// The presented token must byte-for-byte match the stored session.
	Refresh(ctx context.Context, oldRefreshToken string) (*RefreshOutput, error)

	// Logout revokes the session. Idempotent: invalid or expired tokens
	// still produce a successful result with clearing cookies.
	Logout(ctx context.Context, refreshToken string) (*LogoutOutput, error)
}
