package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"passport/config"
	"passport/internal/domain/entity"
	domainerrors "passport/internal/domain/errors"
	"passport/internal/domain/repository"
	"passport/internal/domain/service"
	"passport/internal/infra/auth"
	mockRepo "passport/internal/mocks/repository"
	mockSvc "passport/internal/mocks/service"
	"passport/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newAuthMiddlewareForTest(t *testing.T) (*AuthMiddleware, *mockSvc.MockTokenService, *mockRepo.MockUserRepository) {
	t.Helper()

	tokenSvc := mockSvc.NewMockTokenService(t)
	userRepo := mockRepo.NewMockUserRepository(t)

	return NewAuthMiddleware(tokenSvc, userRepo), tokenSvc, userRepo
}

func runAuthenticate(t *testing.T, m *AuthMiddleware, req *http.Request) (*httptest.ResponseRecorder, *entity.User) {
	t.Helper()

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seenUser *entity.User
	handler := m.Authenticate(func(c echo.Context) error {
		seenUser, _ = c.Get(ContextKeyUser).(*entity.User)

		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))

	return rec, seenUser
}

func decodeErrorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var body struct {
		Success bool `json:"success"`
		Error   *struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	require.NotNil(t, body.Error)

	return body.Error.Code
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	m, _, _ := newAuthMiddlewareForTest(t)

	req := httptest.NewRequest(http.MethodGet, "/user/profile", nil)
	rec, _ := runAuthenticate(t, m, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, domainerrors.ErrTokenMissing.ErrorCode(), decodeErrorCode(t, rec))
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	m, tokenSvc, _ := newAuthMiddlewareForTest(t)

	tokenSvc.EXPECT().ValidateAccessToken("garbage").
		Return(nil, domainerrors.ErrTokenInvalid.WrapMessage("failed to parse token structure"))

	req := httptest.NewRequest(http.MethodGet, "/user/profile", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec, _ := runAuthenticate(t, m, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, domainerrors.ErrTokenInvalid.ErrorCode(), decodeErrorCode(t, rec))
}

func TestAuthMiddleware_BearerHeaderSuccess(t *testing.T) {
	m, tokenSvc, userRepo := newAuthMiddlewareForTest(t)

	user := &entity.User{ID: uuid.New(), Email: "user@example.com", Role: entity.RoleUser}
	claims := &service.Claims{UserID: user.ID, Role: user.Role, Type: service.TokenTypeAccess}
	tokenSvc.EXPECT().ValidateAccessToken("valid-access").Return(claims, nil)
	userRepo.EXPECT().FindByID(mock.Anything, user.ID).Return(user, nil)

	req := httptest.NewRequest(http.MethodGet, "/user/profile", nil)
	req.Header.Set("Authorization", "Bearer valid-access")
	rec, seenUser := runAuthenticate(t, m, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seenUser)
	assert.Equal(t, user.ID, seenUser.ID)
}

func TestAuthMiddleware_CookieFallback(t *testing.T) {
	m, tokenSvc, userRepo := newAuthMiddlewareForTest(t)

	user := &entity.User{ID: uuid.New(), Email: "user@example.com", Role: entity.RoleUser}
	claims := &service.Claims{UserID: user.ID, Role: user.Role, Type: service.TokenTypeAccess}
	tokenSvc.EXPECT().ValidateAccessToken("cookie-access").Return(claims, nil)
	userRepo.EXPECT().FindByID(mock.Anything, user.ID).Return(user, nil)

	req := httptest.NewRequest(http.MethodGet, "/user/profile", nil)
	req.AddCookie(&http.Cookie{Name: usecase.AccessTokenCookie, Value: "cookie-access"})
	rec, seenUser := runAuthenticate(t, m, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seenUser)
}

func TestAuthMiddleware_HeaderWinsOverCookie(t *testing.T) {
	m, tokenSvc, userRepo := newAuthMiddlewareForTest(t)

	user := &entity.User{ID: uuid.New(), Email: "user@example.com", Role: entity.RoleUser}
	claims := &service.Claims{UserID: user.ID, Role: user.Role, Type: service.TokenTypeAccess}
	tokenSvc.EXPECT().ValidateAccessToken("header-access").Return(claims, nil)
	userRepo.EXPECT().FindByID(mock.Anything, user.ID).Return(user, nil)

	req := httptest.NewRequest(http.MethodGet, "/user/profile", nil)
	req.Header.Set("Authorization", "Bearer header-access")
	req.AddCookie(&http.Cookie{Name: usecase.AccessTokenCookie, Value: "cookie-access"})
	rec, _ := runAuthenticate(t, m, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthMiddleware_RefreshTokenRejectedAsAccess(t *testing.T) {
	cfg := &config.Config{}
	cfg.SecretKey.Access = "access-secret"
	cfg.SecretKey.Refresh = "refresh-secret"
	tokenSvc, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	m := NewAuthMiddleware(tokenSvc, mockRepo.NewMockUserRepository(t))

	refreshToken, err := tokenSvc.GenerateRefreshToken(uuid.New())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/user/profile", nil)
	req.Header.Set("Authorization", "Bearer "+refreshToken)
	rec, _ := runAuthenticate(t, m, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, domainerrors.ErrTokenInvalid.ErrorCode(), decodeErrorCode(t, rec))
}

func TestAuthMiddleware_DeletedUserRejected(t *testing.T) {
	m, tokenSvc, userRepo := newAuthMiddlewareForTest(t)

	userID := uuid.New()
	claims := &service.Claims{UserID: userID, Role: entity.RoleUser, Type: service.TokenTypeAccess}
	tokenSvc.EXPECT().ValidateAccessToken("orphan-access").Return(claims, nil)
	userRepo.EXPECT().FindByID(mock.Anything, userID).Return(nil, repository.ErrUserNotFound)

	req := httptest.NewRequest(http.MethodGet, "/user/profile", nil)
	req.Header.Set("Authorization", "Bearer orphan-access")
	rec, _ := runAuthenticate(t, m, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, domainerrors.ErrUserNotFound.ErrorCode(), decodeErrorCode(t, rec))
}

func TestAuthMiddleware_RepositoryFailurePropagates(t *testing.T) {
	m, tokenSvc, userRepo := newAuthMiddlewareForTest(t)

	userID := uuid.New()
	claims := &service.Claims{UserID: userID, Role: entity.RoleUser, Type: service.TokenTypeAccess}
	tokenSvc.EXPECT().ValidateAccessToken("valid-access").Return(claims, nil)
	userRepo.EXPECT().FindByID(mock.Anything, userID).Return(nil, errors.New("mongo down"))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/user/profile", nil)
	req.Header.Set("Authorization", "Bearer valid-access")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := m.Authenticate(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	// Infra failures bubble up to the error middleware instead of being
	// disguised as auth failures.
	assert.Error(t, handler(c))
}

func TestAuthMiddleware_RequireRole(t *testing.T) {
	m, _, _ := newAuthMiddlewareForTest(t)

	e := echo.New()
	next := func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}

	admin := &entity.User{ID: uuid.New(), Role: entity.RoleAdmin}
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(ContextKeyUser, admin)
	require.NoError(t, m.RequireRole(entity.RoleAdmin)(next)(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	regular := &entity.User{ID: uuid.New(), Role: entity.RoleUser}
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	c.Set(ContextKeyUser, regular)
	require.NoError(t, m.RequireRole(entity.RoleAdmin)(next)(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// No authenticated principal at all.
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	require.NoError(t, m.RequireRole(entity.RoleAdmin)(next)(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
