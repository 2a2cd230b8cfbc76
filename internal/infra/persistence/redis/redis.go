// Package redis provides the Redis client and the session repository backed by it.
package redis

import (
	"context"
	"log/slog"
	"net"
	"strconv"

	"passport/config"
	"passport/internal/domain/lifecycle"
	"passport/internal/errors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New creates the Redis client with lifecycle management.
func New(params Params) (*redis.Client, error) {
	if params.Config.Redis == nil || params.Config.Redis.Host == "" {
		return nil, errors.New("redis configuration must be provided")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(params.Config.Redis.Host, strconv.Itoa(params.Config.Redis.Port)),
		Password: params.Config.Redis.Password,
		DB:       params.Config.Redis.DB,
	})

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := client.Ping(ctx).Err(); err != nil {
				return errors.Wrap(err, "failed to ping Redis")
			}
			params.Logger.Info("Connected to Redis", slog.String("addr", client.Options().Addr))

			return nil
		},
		OnStop: func(_ context.Context) error {
			return errors.WithStack(client.Close())
		},
	})

	return client, nil
}
