package auth

import (
	"testing"
	"time"

	"passport/config"
	"passport/internal/domain/entity"
	domainerrors "passport/internal/domain/errors"
	"passport/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJWTServiceForTest(t *testing.T, accessSecret, refreshSecret string) service.TokenService {
	t.Helper()

	cfg := &config.Config{}
	cfg.SecretKey.Access = accessSecret
	cfg.SecretKey.Refresh = refreshSecret

	svc, err := NewJWTService(cfg)
	require.NoError(t, err)

	return svc
}

func TestJWTService_MissingSecrets(t *testing.T) {
	cfg := &config.Config{}
	cfg.SecretKey.Access = "access-secret"

	_, err := NewJWTService(cfg)
	assert.Error(t, err)

	cfg = &config.Config{}
	cfg.SecretKey.Refresh = "refresh-secret"

	_, err = NewJWTService(cfg)
	assert.Error(t, err)
}

func TestJWTService_AccessTokenRoundTrip(t *testing.T) {
	svc := newJWTServiceForTest(t, "access-secret", "refresh-secret")
	userID := uuid.New()

	token, err := svc.GenerateAccessToken(userID, entity.RoleAdmin)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, entity.RoleAdmin, claims.Role)
	assert.Equal(t, service.TokenTypeAccess, claims.Type)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(config.DefaultAccessTokenTTL), claims.ExpiresAt.Time, time.Minute)
}

func TestJWTService_RefreshTokenRoundTrip(t *testing.T) {
	svc := newJWTServiceForTest(t, "access-secret", "refresh-secret")
	userID := uuid.New()

	token, err := svc.GenerateRefreshToken(userID)
	require.NoError(t, err)

	claims, err := svc.ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, service.TokenTypeRefresh, claims.Type)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(config.DefaultRefreshTokenTTL), claims.ExpiresAt.Time, time.Minute)
}

func TestJWTService_TokensMintedSameSecondDiffer(t *testing.T) {
	svc := newJWTServiceForTest(t, "access-secret", "refresh-secret")
	userID := uuid.New()

	// Rotation relies on every mint producing a distinct token string, even
	// when two tokens for the same user are issued within one second.
	first, err := svc.GenerateRefreshToken(userID)
	require.NoError(t, err)
	second, err := svc.GenerateRefreshToken(userID)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	firstAccess, err := svc.GenerateAccessToken(userID, entity.RoleUser)
	require.NoError(t, err)
	secondAccess, err := svc.GenerateAccessToken(userID, entity.RoleUser)
	require.NoError(t, err)
	assert.NotEqual(t, firstAccess, secondAccess)
}

func TestJWTService_CrossClassRejected(t *testing.T) {
	svc := newJWTServiceForTest(t, "access-secret", "refresh-secret")
	userID := uuid.New()

	accessToken, err := svc.GenerateAccessToken(userID, entity.RoleUser)
	require.NoError(t, err)
	refreshToken, err := svc.GenerateRefreshToken(userID)
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(refreshToken)
	assert.ErrorIs(t, err, domainerrors.ErrTokenInvalid)

	_, err = svc.ValidateRefreshToken(accessToken)
	assert.ErrorIs(t, err, domainerrors.ErrTokenInvalid)
}

func TestJWTService_CrossClassRejectedWithIdenticalSecrets(t *testing.T) {
	// Even with both secrets misconfigured to the same value, the type claim
	// keeps one token class from standing in for the other.
	svc := newJWTServiceForTest(t, "same-secret", "same-secret")
	userID := uuid.New()

	refreshToken, err := svc.GenerateRefreshToken(userID)
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(refreshToken)
	assert.ErrorIs(t, err, domainerrors.ErrTokenInvalid)
}

func TestJWTService_WrongSecretRejected(t *testing.T) {
	svc := newJWTServiceForTest(t, "access-secret", "refresh-secret")
	other := newJWTServiceForTest(t, "different-access", "different-refresh")
	userID := uuid.New()

	token, err := svc.GenerateAccessToken(userID, entity.RoleUser)
	require.NoError(t, err)

	_, err = other.ValidateAccessToken(token)
	assert.ErrorIs(t, err, domainerrors.ErrTokenInvalid)
}

func TestJWTService_TamperedTokenRejected(t *testing.T) {
	svc := newJWTServiceForTest(t, "access-secret", "refresh-secret")

	token, err := svc.GenerateAccessToken(uuid.New(), entity.RoleUser)
	require.NoError(t, err)

	tampered := token + "x"
	_, err = svc.ValidateAccessToken(tampered)
	assert.ErrorIs(t, err, domainerrors.ErrTokenInvalid)
}

func TestJWTService_MalformedTokenRejected(t *testing.T) {
	svc := newJWTServiceForTest(t, "access-secret", "refresh-secret")

	for _, token := range []string{"", "garbage", "a.b.c"} {
		_, err := svc.ValidateAccessToken(token)
		assert.ErrorIs(t, err, domainerrors.ErrTokenInvalid)
	}
}

func TestJWTService_ExpiredTokenRejected(t *testing.T) {
	cfg := &config.Config{}
	cfg.SecretKey.Access = "access-secret"
	cfg.SecretKey.Refresh = "refresh-secret"
	cfg.Auth = &config.AuthConfig{
		AccessTokenTTL:  -time.Minute,
		RefreshTokenTTL: -time.Minute,
	}

	svc, err := NewJWTService(cfg)
	require.NoError(t, err)

	token, err := svc.GenerateAccessToken(uuid.New(), entity.RoleUser)
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(token)
	assert.ErrorIs(t, err, domainerrors.ErrTokenInvalid)
}

func TestJWTService_AlgorithmConfusionRejected(t *testing.T) {
	svc := newJWTServiceForTest(t, "access-secret", "refresh-secret")
	userID := uuid.New()

	// A token signed with "none" must never pass HMAC verification.
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub":  userID.String(),
		"exp":  time.Now().Add(time.Hour).Unix(),
		"type": service.TokenTypeAccess,
	})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(token)
	assert.ErrorIs(t, err, domainerrors.ErrTokenInvalid)
}

func TestJWTService_UnknownRoleFallsBackToUser(t *testing.T) {
	svc := newJWTServiceForTest(t, "access-secret", "refresh-secret")
	userID := uuid.New()

	claims := jwt.MapClaims{
		"sub":  userID.String(),
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(time.Hour).Unix(),
		"type": service.TokenTypeAccess,
		"role": "SUPERUSER",
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("access-secret"))
	require.NoError(t, err)

	parsed, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleUser, parsed.Role)
}

func TestJWTService_Durations(t *testing.T) {
	cfg := &config.Config{}
	cfg.SecretKey.Access = "access-secret"
	cfg.SecretKey.Refresh = "refresh-secret"
	cfg.Auth = &config.AuthConfig{
		AccessTokenTTL:  5 * time.Minute,
		RefreshTokenTTL: 48 * time.Hour,
	}

	svc, err := NewJWTService(cfg)
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, svc.AccessTokenDuration())
	assert.Equal(t, 48*time.Hour, svc.RefreshTokenDuration())

	defaulted := newJWTServiceForTest(t, "access-secret", "refresh-secret")
	assert.Equal(t, config.DefaultAccessTokenTTL, defaulted.AccessTokenDuration())
	assert.Equal(t, config.DefaultRefreshTokenTTL, defaulted.RefreshTokenDuration())
}
