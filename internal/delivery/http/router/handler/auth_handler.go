// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"passport/internal/delivery/http/middleware"
	"passport/internal/delivery/http/response"
	"passport/internal/domain/entity"
	"passport/internal/domain/service"
	"passport/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthHandler holds dependencies for authentication-related handlers.
type AuthHandler struct {
	uc       usecase.AuthUsecase
	tokenSvc service.TokenService
	logger   *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.AuthUsecase, tokenSvc service.TokenService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		uc:       uc,
		tokenSvc: tokenSvc,
		logger:   logger,
	}
}

// tokenRequest binds refresh/logout bodies that carry the token explicitly.
type tokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// Register handles the user registration request.
func (h *AuthHandler) Register(c echo.Context) error {
	var input *usecase.RegisterInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Register(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	// Only the public projection leaves the service; the hash never does.
	return response.Success(c, http.StatusCreated, output.User, "User registered successfully")
}

// Login handles the user login request and applies the session cookies.
func (h *AuthHandler) Login(c echo.Context) error {
	var input *usecase.LoginInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Login(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	applyCookieDirectives(c, output.Cookies)

	return response.Success(c, http.StatusOK, echo.Map{
		"user":         output.User,
		"accessToken":  output.AccessToken,
		"refreshToken": output.RefreshToken,
	}, "Login successful")
}

// Refresh handles the token rotation request. The old refresh token may come
// from the request body, the bearer header, or the refresh cookie.
func (h *AuthHandler) Refresh(c echo.Context) error {
	oldToken := h.refreshTokenFrom(c)
	if oldToken == "" {
		return response.BadRequest(c, "INVALID_INPUT", "No refresh token provided")
	}

	output, err := h.uc.Refresh(c.Request().Context(), oldToken)
	if err != nil {
		return errors.WithStack(err)
	}

	// The use case decides tokens; the transport decides cookies.
	applyCookieDirectives(c, []usecase.CookieDirective{
		{
			Name:          usecase.AccessTokenCookie,
			Value:         output.AccessToken,
			HTTPOnly:      true,
			MaxAgeSeconds: int(h.tokenSvc.AccessTokenDuration().Seconds()),
		},
		{
			Name:          usecase.RefreshTokenCookie,
			Value:         output.RefreshToken,
			HTTPOnly:      true,
			MaxAgeSeconds: int(h.tokenSvc.RefreshTokenDuration().Seconds()),
		},
	})

	return response.Success(c, http.StatusOK, echo.Map{
		"accessToken":  output.AccessToken,
		"refreshToken": output.RefreshToken,
	}, "Token refreshed successfully")
}

// Logout handles the logout request. It never fails for a bad token; the
// clearing cookies are always applied.
func (h *AuthHandler) Logout(c echo.Context) error {
	output, err := h.uc.Logout(c.Request().Context(), h.refreshTokenFrom(c))
	if err != nil {
		return errors.WithStack(err)
	}

	applyCookieDirectives(c, output.Cookies)

	return response.Success(c, http.StatusOK, echo.Map{"message": "Successfully logged out"}, "Logout successful")
}

// GetProfile returns the authenticated user's public projection.
func (h *AuthHandler) GetProfile(c echo.Context) error {
	user, ok := c.Get(middleware.ContextKeyUser).(*entity.User)
	if !ok {
		return response.Unauthorized(c, "TOKEN_INVALID", "Missing authenticated user")
	}

	return response.Success(c, http.StatusOK, user.Public(), "Profile retrieved successfully")
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, echo.Map{"status": "ok"}, "Service is healthy")
}

// refreshTokenFrom extracts the refresh token from the body, the bearer
// header, or the refresh cookie, in that order.
func (h *AuthHandler) refreshTokenFrom(c echo.Context) string {
	var body tokenRequest
	if err := c.Bind(&body); err == nil && body.RefreshToken != "" {
		return body.RefreshToken
	}

	authHeader := c.Request().Header.Get("Authorization")
	if authHeader != "" {
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString != authHeader {
			return tokenString
		}
	}

	if cookie, err := c.Cookie(usecase.RefreshTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	return ""
}

// applyCookieDirectives maps the use-case cookie directives onto the HTTP
// response. A zero max age clears the cookie.
func applyCookieDirectives(c echo.Context, directives []usecase.CookieDirective) {
	for _, directive := range directives {
		cookie := &http.Cookie{
			Name:     directive.Name,
			Value:    directive.Value,
			HttpOnly: directive.HTTPOnly,
			Path:     "/",
			MaxAge:   directive.MaxAgeSeconds,
		}
		if directive.MaxAgeSeconds == 0 {
			cookie.MaxAge = -1
		}
		c.SetCookie(cookie)
	}
}
