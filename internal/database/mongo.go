// Package database manages the MongoDB connection lifecycle.
package database

import (
	"context"
	"fmt"
	"time"

	"inkwell/internal/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Connect establishes the MongoDB connection and returns the database
// handle plus a disconnect function for shutdown. The handle is passed
// explicitly to repositories; there is no package-level client.
func Connect(ctx context.Context, cfg *config.Config) (*mongo.Database, func(context.Context) error, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	return client.Database(cfg.MongoDB), client.Disconnect, nil
}
