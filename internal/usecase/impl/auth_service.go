// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "passport/internal/delivery/context"
	"passport/internal/domain/entity"
	domainerrors "passport/internal/domain/errors"
	"passport/internal/domain/repository"
	"passport/internal/domain/service"
	"passport/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface. A user has at most one
// live refresh token at any time; issuing a new one overwrites the old, which
// makes revocation O(1) and replay detection an equality check.
type authService struct {
	userRepo     repository.UserRepository
	sessionRepo  repository.SessionRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	UserRepo     repository.UserRepository
	SessionRepo  repository.SessionRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		userRepo:     params.UserRepo,
		sessionRepo:  params.SessionRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates a new user account with role USER.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	srv.log(ctx).Info("Starting registration", slog.String("email", input.Email))

	_, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if err == nil {
		srv.log(ctx).Warn("Registration with taken email", slog.String("email", input.Email))

		return nil, errors.Wrap(domainerrors.ErrEmailTaken, "registration failed")
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(err, "failed to check existing user")
	}

	if err := srv.hasher.ValidatePasswordStrength(input.Password); err != nil {
		srv.log(ctx).Warn("Password validation failed during registration", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "password does not meet security requirements")
	}

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to hash password during registration")
	}

	newUser := &entity.User{
		Email:        input.Email,
		Role:         entity.RoleUser,
		PasswordHash: hashedPassword,
	}

	if err := srv.userRepo.Create(ctx, newUser); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			// Lost the race against a concurrent registration of the same email.
			return nil, errors.Wrap(domainerrors.ErrEmailTaken, "registration failed")
		}

		return nil, errors.Wrap(err, "failed to create user during registration")
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("userID", newUser.ID))

	return &usecase.RegisterOutput{User: newUser.Public()}, nil
}

// Login verifies credentials and opens a session. Unknown email and wrong
// password produce the same error so responses cannot be used to enumerate
// registered addresses.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	srv.log(ctx).Debug("Starting user login", slog.String("email", input.Email))

	user, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Warn("Login failed", slog.String("email", input.Email))

			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	// bcrypt comparison is CPU-bound; nothing else is held while it runs.
	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("email", input.Email))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}

	accessToken, refreshToken, err := srv.generateTokenPair(user)
	if err != nil {
		return nil, err
	}

	// Overwrites any previous session: a second login invalidates the first
	// device's refresh token.
	if err := srv.sessionRepo.Store(ctx, user.ID, refreshToken, srv.tokenService.RefreshTokenDuration()); err != nil {
		return nil, errors.Wrap(err, "failed to store session during login")
	}

	srv.log(ctx).Debug("User logged in successfully", slog.Any("userID", user.ID))

	return &usecase.LoginOutput{
		User:         user.Public(),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Cookies:      srv.sessionCookies(accessToken, refreshToken),
	}, nil
}

// Refresh rotates the refresh token. The presented token must byte-for-byte
// equal the stored session record; anything else means it was superseded by a
// later rotation, revoked by logout, or evicted by TTL expiry.
func (srv *authService) Refresh(ctx context.Context, oldRefreshToken string) (*usecase.RefreshOutput, error) {
	srv.log(ctx).Info("Attempting to refresh tokens")

	claims, err := srv.tokenService.ValidateRefreshToken(oldRefreshToken)
	if err != nil {
		return nil, errors.Wrap(err, "invalid refresh token")
	}

	stored, err := srv.sessionRepo.Find(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			srv.log(ctx).Warn("Refresh with revoked session", slog.Any("userID", claims.UserID))

			return nil, errors.Wrap(domainerrors.ErrRefreshTokenRevoked, "refresh failed")
		}

		return nil, errors.Wrap(err, "failed to load session record")
	}
	if stored != oldRefreshToken {
		// A superseded token was replayed. The live session stays valid; only
		// the stale token is rejected.
		srv.log(ctx).Warn("Refresh token replay detected", slog.Any("userID", claims.UserID))

		return nil, errors.Wrap(domainerrors.ErrRefreshTokenRevoked, "refresh failed")
	}

	user, err := srv.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "refresh failed")
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	accessToken, refreshToken, err := srv.generateTokenPair(user)
	if err != nil {
		return nil, err
	}

	// Atomic compare-and-swap: if a concurrent refresh already rotated the
	// session, this call loses deterministically instead of double-issuing.
	if err := srv.sessionRepo.Replace(ctx, user.ID, oldRefreshToken, refreshToken, srv.tokenService.RefreshTokenDuration()); err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) || errors.Is(err, repository.ErrSessionMismatch) {
			return nil, errors.Wrap(domainerrors.ErrRefreshTokenRevoked, "refresh failed")
		}

		return nil, errors.Wrap(err, "failed to rotate session record")
	}

	srv.log(ctx).Debug("Tokens refreshed", slog.Any("userID", user.ID))

	return &usecase.RefreshOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Logout revokes the session. By contract it swallows verification failures
// and reports success, so clients can always clear their cookies; only an
// unreachable cache surfaces as an error.
func (srv *authService) Logout(ctx context.Context, refreshToken string) (*usecase.LogoutOutput, error) {
	srv.log(ctx).Info("Attempting to log out")

	output := &usecase.LogoutOutput{Cookies: srv.clearingCookies()}

	claims, err := srv.tokenService.ValidateRefreshToken(refreshToken)
	if err != nil {
		srv.log(ctx).Warn("Logout with invalid token", slog.Any("error", err))

		return output, nil
	}

	if err := srv.sessionRepo.Delete(ctx, claims.UserID); err != nil {
		srv.log(ctx).Error("Failed to delete session record", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to delete session record")
	}

	srv.log(ctx).Info("Successfully logged out", slog.Any("userID", claims.UserID))

	return output, nil
}

func (srv *authService) generateTokenPair(user *entity.User) (accessToken, refreshToken string, err error) {
	accessToken, err = srv.tokenService.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		return "", "", errors.Wrap(err, "failed to generate access token")
	}

	refreshToken, err = srv.tokenService.GenerateRefreshToken(user.ID)
	if err != nil {
		return "", "", errors.Wrap(err, "failed to generate refresh token")
	}

	return accessToken, refreshToken, nil
}

func (srv *authService) sessionCookies(accessToken, refreshToken string) []usecase.CookieDirective {
	return []usecase.CookieDirective{
		{
			Name:          usecase.AccessTokenCookie,
			Value:         accessToken,
			HTTPOnly:      true,
			MaxAgeSeconds: int(srv.tokenService.AccessTokenDuration().Seconds()),
		},
		{
			Name:          usecase.RefreshTokenCookie,
			Value:         refreshToken,
			HTTPOnly:      true,
			MaxAgeSeconds: int(srv.tokenService.RefreshTokenDuration().Seconds()),
		},
	}
}

func (srv *authService) clearingCookies() []usecase.CookieDirective {
	return []usecase.CookieDirective{
		{Name: usecase.AccessTokenCookie, Value: "", HTTPOnly: true, MaxAgeSeconds: 0},
		{Name: usecase.RefreshTokenCookie, Value: "", HTTPOnly: true, MaxAgeSeconds: 0},
	}
}
