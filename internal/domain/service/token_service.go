package service

import (
	"time"

	"passport/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token type claim values. Each token carries its class so a refresh token
// can never be accepted where an access token is required, even if the two
// secrets were ever misconfigured to the same value.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Claims defines the custom claims embedded in the JWT tokens.
type Claims struct {
	UserID uuid.UUID
	Role   entity.Role
	Type   string
	jwt.RegisteredClaims
}

// TokenService defines the interface for generating and validating JWTs.
// Access and refresh tokens are signed with distinct secrets and lifetimes;
// validating one class with the other's material must fail.
type TokenService interface {
	// GenerateAccessToken creates a short-lived access token for a user.
	GenerateAccessToken(userID uuid.UUID, role entity.Role) (string, error)

	// GenerateRefreshToken creates a long-lived refresh token for a user.
	GenerateRefreshToken(userID uuid.UUID) (string, error)

	// ValidateAccessToken checks a token string against the access secret.
	ValidateAccessToken(tokenString string) (*Claims, error)

	// ValidateRefreshToken checks a token string against the refresh secret.
	ValidateRefreshToken(tokenString string) (*Claims, error)

	// AccessTokenDuration returns the configured lifetime for access tokens.
	AccessTokenDuration() time.Duration

	// RefreshTokenDuration returns the configured lifetime for refresh tokens.
	RefreshTokenDuration() time.Duration
}
