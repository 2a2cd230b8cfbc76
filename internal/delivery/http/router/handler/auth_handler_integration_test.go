package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"passport/config"
	"passport/internal/delivery/http/middleware"
	"passport/internal/delivery/http/validator"
	"passport/internal/domain/entity"
	"passport/internal/domain/repository"
	"passport/internal/infra/auth"
	infraredis "passport/internal/infra/persistence/redis"
	"passport/internal/usecase"
	"passport/internal/usecase/impl"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// memoryUserRepo is an in-memory stand-in for the MongoDB repository.
type memoryUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (r *memoryUserRepo) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email == user.Email {
			return repository.ErrEmailTaken
		}
	}
	user.ID = uuid.New()
	r.users[user.ID] = user

	return nil
}

func (r *memoryUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *memoryUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user, ok := r.users[id]; ok {
		return user, nil
	}

	return nil, repository.ErrUserNotFound
}

func newAuthAPIForTest(t *testing.T) *echo.Echo {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg := &config.Config{}
	cfg.SecretKey.Access = "test-access-secret"
	cfg.SecretKey.Refresh = "test-refresh-secret"

	tokenSvc, err := auth.NewJWTService(cfg)
	require.NoError(t, err)
	hasher := auth.NewBcryptHasherWithCost(bcrypt.MinCost)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	sessionRepo := infraredis.NewSessionRepository(infraredis.SessionRepoParams{Client: client, Logger: logger})

	uc := impl.NewAuthService(impl.AuthServiceParams{
		UserRepo:     newMemoryUserRepo(),
		SessionRepo:  sessionRepo,
		Hasher:       hasher,
		TokenService: tokenSvc,
		Logger:       logger,
	})
	h := NewAuthHandler(uc, tokenSvc, logger)

	e := echo.New()
	e.Validator = validator.New()
	e.HTTPErrorHandler = middleware.NewErrorMiddleware(logger).HandleHTTPError
	e.POST("/auth/register", h.Register)
	e.POST("/auth/login", h.Login)
	e.POST("/auth/refresh", h.Refresh)
	e.POST("/auth/logout", h.Logout)

	return e
}

func postJSON(e *echo.Echo, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body
}

func cookieByName(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()

	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	t.Fatalf("cookie %q not set", name)

	return nil
}

func TestAuthAPI_RegisterValidation(t *testing.T) {
	e := newAuthAPIForTest(t)

	rec := postJSON(e, "/auth/register", `{"email":"not-an-email","password":"Str0ng!Pass"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postJSON(e, "/auth/register", `{"email":"user@example.com","password":"weak"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthAPI_RegisterAndDuplicate(t *testing.T) {
	e := newAuthAPIForTest(t)

	rec := postJSON(e, "/auth/register", `{"email":"user@example.com","password":"Str0ng!Secret"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	body := decodeResponse(t, rec)
	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "user@example.com", data["email"])
	assert.Equal(t, "USER", data["role"])
	assert.NotContains(t, rec.Body.String(), "$2a$")

	rec = postJSON(e, "/auth/register", `{"email":"user@example.com","password":"An0ther!Secret"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAuthAPI_LoginFlow(t *testing.T) {
	e := newAuthAPIForTest(t)

	rec := postJSON(e, "/auth/register", `{"email":"user@example.com","password":"Str0ng!Secret"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = postJSON(e, "/auth/login", `{"email":"user@example.com","password":"Wrong!Secret1"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = postJSON(e, "/auth/login", `{"email":"ghost@example.com","password":"Str0ng!Secret"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = postJSON(e, "/auth/login", `{"email":"user@example.com","password":"Str0ng!Secret"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeResponse(t, rec)
	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.NotEmpty(t, data["accessToken"])
	assert.NotEmpty(t, data["refreshToken"])

	accessCookie := cookieByName(t, rec, usecase.AccessTokenCookie)
	assert.True(t, accessCookie.HttpOnly)
	assert.Equal(t, int(config.DefaultAccessTokenTTL.Seconds()), accessCookie.MaxAge)
	refreshCookie := cookieByName(t, rec, usecase.RefreshTokenCookie)
	assert.True(t, refreshCookie.HttpOnly)
	assert.Equal(t, int(config.DefaultRefreshTokenTTL.Seconds()), refreshCookie.MaxAge)
}

func TestAuthAPI_RefreshRotationAndReplay(t *testing.T) {
	e := newAuthAPIForTest(t)

	require.Equal(t, http.StatusCreated,
		postJSON(e, "/auth/register", `{"email":"user@example.com","password":"Str0ng!Secret"}`).Code)
	loginRec := postJSON(e, "/auth/login", `{"email":"user@example.com","password":"Str0ng!Secret"}`)
	require.Equal(t, http.StatusOK, loginRec.Code)

	loginData := decodeResponse(t, loginRec)["data"].(map[string]any)
	firstRefresh := loginData["refreshToken"].(string)

	rec := postJSON(e, "/auth/refresh", `{"refreshToken":"`+firstRefresh+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	refreshData := decodeResponse(t, rec)["data"].(map[string]any)
	secondRefresh := refreshData["refreshToken"].(string)
	assert.NotEqual(t, firstRefresh, secondRefresh)
	assert.NotEmpty(t, refreshData["accessToken"])

	// Replaying the superseded token must fail without killing the session.
	rec = postJSON(e, "/auth/refresh", `{"refreshToken":"`+firstRefresh+`"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = postJSON(e, "/auth/refresh", `{"refreshToken":"`+secondRefresh+`"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthAPI_RefreshWithoutToken(t *testing.T) {
	e := newAuthAPIForTest(t)

	rec := postJSON(e, "/auth/refresh", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// An empty refresh cookie counts as no token at all.
	req := httptest.NewRequest(http.MethodPost, "/auth/refresh", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.AddCookie(&http.Cookie{Name: usecase.RefreshTokenCookie, Value: ""})
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthAPI_LogoutFlow(t *testing.T) {
	e := newAuthAPIForTest(t)

	require.Equal(t, http.StatusCreated,
		postJSON(e, "/auth/register", `{"email":"user@example.com","password":"Str0ng!Secret"}`).Code)
	loginRec := postJSON(e, "/auth/login", `{"email":"user@example.com","password":"Str0ng!Secret"}`)
	require.Equal(t, http.StatusOK, loginRec.Code)
	refreshToken := decodeResponse(t, loginRec)["data"].(map[string]any)["refreshToken"].(string)

	rec := postJSON(e, "/auth/logout", `{"refreshToken":"`+refreshToken+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	accessCookie := cookieByName(t, rec, usecase.AccessTokenCookie)
	assert.Empty(t, accessCookie.Value)
	assert.Equal(t, -1, accessCookie.MaxAge)
	refreshCookie := cookieByName(t, rec, usecase.RefreshTokenCookie)
	assert.Empty(t, refreshCookie.Value)
	assert.Equal(t, -1, refreshCookie.MaxAge)

	// The session is gone; the token no longer refreshes.
	rec = postJSON(e, "/auth/refresh", `{"refreshToken":"`+refreshToken+`"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Logout is idempotent, and even garbage succeeds.
	rec = postJSON(e, "/auth/logout", `{"refreshToken":"`+refreshToken+`"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = postJSON(e, "/auth/logout", `{"refreshToken":"garbage"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}
