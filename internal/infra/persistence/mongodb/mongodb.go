// Package mongodb provides the MongoDB client and repositories backed by it.
package mongodb

import (
	"context"
	"log/slog"

	"passport/config"
	"passport/internal/domain/lifecycle"
	"passport/internal/errors"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/fx"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New creates the MongoDB database handle with lifecycle management.
func New(params Params) (*mongo.Database, error) {
	if params.Config.Mongo == nil || params.Config.Mongo.URI == "" {
		return nil, errors.New("mongo configuration must be provided")
	}

	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(params.Config.Mongo.URI))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create MongoDB client")
	}

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := client.Ping(ctx, nil); err != nil {
				return errors.Wrap(err, "failed to ping MongoDB")
			}
			params.Logger.Info("Connected to MongoDB", slog.String("database", params.Config.Mongo.Database))

			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			ctx, cancel := context.WithTimeout(stopCtx, lifecycle.DefaultTimeout)
			defer cancel()

			return errors.WithStack(client.Disconnect(ctx))
		},
	})

	return client.Database(params.Config.Mongo.Database), nil
}
