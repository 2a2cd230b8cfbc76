package middleware

import (
	"strings"

	deliverycontext "passport/internal/delivery/context"
	"passport/internal/delivery/http/response"
	"passport/internal/domain/entity"
	domainerrors "passport/internal/domain/errors"
	"passport/internal/domain/repository"
	"passport/internal/domain/service"
	"passport/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ContextKeyUser is the echo context key carrying the authenticated user.
const ContextKeyUser = "user"

// AuthMiddleware provides middleware for JWT authentication and authorization.
// The guard only ever accepts access tokens; a refresh token presented here
// fails validation because the two classes use separate secret material and
// carry distinct type claims.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	userRepo repository.UserRepository
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, userRepo repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, userRepo: userRepo}
}

// Authenticate is the core middleware function that validates the JWT access
// token and loads the principal behind it. The bearer header wins over the
// cookie when both are present.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenString := extractAccessToken(c)
		if tokenString == "" {
			return response.Unauthorized(c, domainerrors.ErrTokenMissing.ErrorCode(), domainerrors.ErrTokenMissing.Message())
		}

		claims, err := m.tokenSvc.ValidateAccessToken(tokenString)
		if err != nil {
			return response.Unauthorized(c, domainerrors.ErrTokenInvalid.ErrorCode(), domainerrors.ErrTokenInvalid.Message())
		}

		// A syntactically valid token can outlive its account; deleted users
		// must not pass the guard.
		user, err := m.userRepo.FindByID(c.Request().Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return response.Unauthorized(c, domainerrors.ErrUserNotFound.ErrorCode(), domainerrors.ErrUserNotFound.Message())
			}

			return errors.Wrap(err, "failed to load user for request")
		}

		// Expose the principal to handlers via both echo and request context.
		c.Set(ContextKeyUser, user)
		ctx := deliverycontext.WithUser(c.Request().Context(), user)
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}

// RequireRole is a middleware factory that checks if the user has a specific role.
// It must be used AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequireRole(requiredRole entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := c.Get(ContextKeyUser).(*entity.User)
			if !ok {
				return response.Forbidden(c, domainerrors.ErrForbidden.ErrorCode(), "role information missing")
			}

			if user.Role != requiredRole {
				return response.Forbidden(c, domainerrors.ErrForbidden.ErrorCode(), "require '"+requiredRole.String()+"' role")
			}

			return next(c)
		}
	}
}

// extractAccessToken pulls the bearer token from the Authorization header,
// falling back to the access-token cookie.
func extractAccessToken(c echo.Context) string {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader != "" {
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString != authHeader {
			return tokenString
		}
	}

	if cookie, err := c.Cookie(usecase.AccessTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	return ""
}
