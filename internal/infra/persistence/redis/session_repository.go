package redis

import (
	"context"
	"log/slog"
	"time"

	"passport/internal/domain/repository"
	"passport/internal/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

// sessionKeyPrefix namespaces the refresh-token records. Nothing else in the
// system writes these keys; the repository is the sole owner of the relation.
const sessionKeyPrefix = "refresh:"

// replaceScript atomically compares the stored refresh token against the one
// the caller presented and swaps in the new token with a fresh TTL. Running
// the check and the write as one script closes the window where two
// concurrent refresh calls could both pass the equality check.
const replaceScript = `
local stored = redis.call("GET", KEYS[1])
if stored == false then
  return 0
end
if stored ~= ARGV[1] then
  return 1
end
redis.call("SET", KEYS[1], ARGV[2], "EX", ARGV[3])
return 2
`

const (
	replaceStatusNotFound int64 = 0
	replaceStatusMismatch int64 = 1
	replaceStatusReplaced int64 = 2
)

var replaceLua = redis.NewScript(replaceScript)

// SessionRepoParams defines the dependencies for the session repository.
type SessionRepoParams struct {
	fx.In

	Client *redis.Client
	Logger *slog.Logger
}

type sessionRepository struct {
	client *redis.Client
	logger *slog.Logger
}

// NewSessionRepository is the constructor for the Redis-backed SessionRepository.
func NewSessionRepository(params SessionRepoParams) repository.SessionRepository {
	return &sessionRepository{
		client: params.Client,
		logger: params.Logger,
	}
}

// Store writes the user's refresh token, overwriting any previous session.
func (r *sessionRepository) Store(ctx context.Context, userID uuid.UUID, refreshToken string, ttl time.Duration) error {
	if err := r.client.Set(ctx, sessionKey(userID), refreshToken, ttl).Err(); err != nil {
		return errors.Wrap(err, "failed to store session record")
	}

	return nil
}

// Find returns the currently stored refresh token for the user.
func (r *sessionRepository) Find(ctx context.Context, userID uuid.UUID) (string, error) {
	token, err := r.client.Get(ctx, sessionKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", errors.Wrap(repository.ErrSessionNotFound, "find session record")
		}

		return "", errors.Wrap(err, "failed to read session record")
	}

	return token, nil
}

// Replace atomically swaps oldToken for newToken with a fresh TTL.
func (r *sessionRepository) Replace(ctx context.Context, userID uuid.UUID, oldToken, newToken string, ttl time.Duration) error {
	seconds := int64(ttl / time.Second)
	if seconds < 1 {
		seconds = 1
	}

	status, err := replaceLua.Run(ctx, r.client, []string{sessionKey(userID)}, oldToken, newToken, seconds).Int64()
	if err != nil {
		return errors.Wrap(err, "failed to replace session record")
	}

	switch status {
	case replaceStatusNotFound:
		return errors.Wrap(repository.ErrSessionNotFound, "replace session record")
	case replaceStatusMismatch:
		return errors.Wrap(repository.ErrSessionMismatch, "replace session record")
	case replaceStatusReplaced:
		return nil
	default:
		return errors.Errorf("unexpected replace status %d", status)
	}
}

// Delete removes the user's session record. Absent records are not an error.
func (r *sessionRepository) Delete(ctx context.Context, userID uuid.UUID) error {
	if err := r.client.Del(ctx, sessionKey(userID)).Err(); err != nil {
		return errors.Wrap(err, "failed to delete session record")
	}

	return nil
}

func sessionKey(userID uuid.UUID) string {
	return sessionKeyPrefix + userID.String()
}
