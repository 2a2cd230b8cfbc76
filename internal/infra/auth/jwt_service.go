// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"passport/config"
	"passport/internal/domain/entity"
	domainerrors "passport/internal/domain/errors"
	"passport/internal/domain/service"
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
// Access and refresh tokens are signed with separate secrets so one class can
// never be verified with the other's material.
type jwtService struct {
	accessSecret  string
	refreshSecret string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewJWTService is the constructor for jwtService.
// Missing secret material is a startup error, never a silent fallback.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Access == "" || cfg.SecretKey.Refresh == "" {
		return nil, errors.New("jwt secrets must be provided")
	}

	accessTTL := config.DefaultAccessTokenTTL
	refreshTTL := config.DefaultRefreshTokenTTL
	if cfg.Auth != nil {
		if cfg.Auth.AccessTokenTTL != 0 {
			accessTTL = cfg.Auth.AccessTokenTTL
		}
		if cfg.Auth.RefreshTokenTTL != 0 {
			refreshTTL = cfg.Auth.RefreshTokenTTL
		}
	}

	return &jwtService{
		accessSecret:  cfg.SecretKey.Access,
		refreshSecret: cfg.SecretKey.Refresh,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}, nil
}

// GenerateAccessToken creates a short-lived access token carrying the user's role.
func (s *jwtService) GenerateAccessToken(userID uuid.UUID, role entity.Role) (string, error) {
	return s.generateToken(userID, role.String(), s.accessTTL, s.accessSecret, service.TokenTypeAccess)
}

// GenerateRefreshToken creates a long-lived refresh token. Refresh tokens do
// not carry a role; authorization data is resolved when the session refreshes.
func (s *jwtService) GenerateRefreshToken(userID uuid.UUID) (string, error) {
	return s.generateToken(userID, "", s.refreshTTL, s.refreshSecret, service.TokenTypeRefresh)
}

// ValidateAccessToken checks a token string against the access secret.
func (s *jwtService) ValidateAccessToken(tokenString string) (*service.Claims, error) {
	return s.validateToken(tokenString, s.accessSecret, service.TokenTypeAccess)
}

// ValidateRefreshToken checks a token string against the refresh secret.
func (s *jwtService) ValidateRefreshToken(tokenString string) (*service.Claims, error) {
	return s.validateToken(tokenString, s.refreshSecret, service.TokenTypeRefresh)
}

// AccessTokenDuration returns the configured lifetime for access tokens.
func (s *jwtService) AccessTokenDuration() time.Duration {
	return s.accessTTL
}

// RefreshTokenDuration returns the configured lifetime for refresh tokens.
func (s *jwtService) RefreshTokenDuration() time.Duration {
	return s.refreshTTL
}

// generateToken is a private helper to create a JWT with specific claims.
func (s *jwtService) generateToken(userID uuid.UUID, role string, ttl time.Duration, secret, tokenType string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  userID.String(),          // Subject (who the token is for)
		"jti":  uuid.NewString(),         // Unique token ID so every mint is distinct
		"iat":  now.Unix(),               // Issued At
		"exp":  now.Add(ttl).Unix(),      // Expiration Time
		"type": tokenType,                // Type of token (access or refresh)
	}
	// Only access tokens carry a role for stateless authorization.
	if role != "" {
		claims["role"] = role
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}

	return signed, nil
}

// validateToken parses and verifies a token string, collapsing every failure
// mode (bad signature, malformed structure, expiry, wrong class) into
// ErrTokenInvalid. Callers treat them all as re-authentication required.
func (s *jwtService) validateToken(tokenString, secret, wantType string) (*service.Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, domainerrors.ErrTokenInvalid.WrapMessage("failed to parse token structure")
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domainerrors.ErrTokenInvalid.WrapMessage("unexpected claims shape")
	}

	// The type claim guards against token-class confusion even if the two
	// secrets are ever configured to the same value.
	tokenType, _ := mapClaims["type"].(string)
	if tokenType != wantType {
		return nil, domainerrors.ErrTokenInvalid.WrapMessage("unexpected token type")
	}

	sub, _ := mapClaims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, domainerrors.ErrTokenInvalid.WrapMessage("invalid subject claim")
	}

	claims := &service.Claims{
		UserID: userID,
		Type:   tokenType,
	}
	if roleStr, ok := mapClaims["role"].(string); ok {
		claims.Role = entity.RoleFromString(roleStr)
	}
	if exp, err := mapClaims.GetExpirationTime(); err == nil && exp != nil {
		claims.ExpiresAt = exp
	}
	if iat, err := mapClaims.GetIssuedAt(); err == nil && iat != nil {
		claims.IssuedAt = iat
	}

	return claims, nil
}
