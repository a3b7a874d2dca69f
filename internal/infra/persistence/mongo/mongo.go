// Package mongo implements the directory repositories on MongoDB.
package mongo

import (
	"context"
	"log/slog"

	"bizdir/config"
	"bizdir/internal/errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/fx"
)

const (
	businessesCollection = "businesses"
	adminsCollection     = "admins"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New connects to MongoDB when storage.driver is "mongo".
// With any other driver it returns a nil *mongo.Database and registers no hooks.
func New(params Params) (*mongo.Database, error) {
	cfg := params.Config
	if cfg.Storage == nil || cfg.Storage.Driver != config.StorageDriverMongo {
		return nil, nil
	}

	opts := options.Client().
		ApplyURI(cfg.Mongo.URI).
		SetTimeout(cfg.Mongo.Timeout)

	client, err := mongo.Connect(context.Background(), opts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create MongoDB client")
	}

	db := client.Database(cfg.Mongo.Database)

	params.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ctx, cancel := context.WithTimeout(ctx, cfg.Mongo.Timeout)
			defer cancel()

			if err := client.Ping(ctx, readpref.Primary()); err != nil {
				return errors.Wrap(err, "failed to ping MongoDB")
			}

			if err := EnsureIndexes(ctx, db); err != nil {
				return err
			}

			params.Logger.Info("MongoDB connected", slog.String("database", cfg.Mongo.Database))

			return nil
		},
		OnStop: func(ctx context.Context) error {
			return client.Disconnect(ctx)
		},
	})

	return db, nil
}

// EnsureIndexes creates the indexes every query relies on. It is idempotent.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	businessIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("idx_businesses_email").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "location.coordinates", Value: "2dsphere"}},
			Options: options.Index().SetName("idx_businesses_location").SetSparse(true),
		},
		{
			Keys:    bson.D{{Key: "category", Value: 1}, {Key: "verified", Value: 1}},
			Options: options.Index().SetName("idx_businesses_category_verified"),
		},
		{
			Keys:    bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}},
			Options: options.Index().SetName("idx_businesses_created_at"),
		},
	}
	if _, err := db.Collection(businessesCollection).Indexes().CreateMany(ctx, businessIndexes); err != nil {
		return errors.Wrap(err, "failed to create business indexes")
	}

	adminIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("idx_admins_email").SetUnique(true),
		},
	}
	if _, err := db.Collection(adminsCollection).Indexes().CreateMany(ctx, adminIndexes); err != nil {
		return errors.Wrap(err, "failed to create admin indexes")
	}

	return nil
}
