package database

import (
	"context"
	"fmt"

	"budgie-shop/internal/config"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ClientOptions builds the MongoDB client options from the configuration.
func ClientOptions(cfg config.DatabaseConfig) *options.ClientOptions {
	return options.Client().
		ApplyURI(cfg.URL).
		SetConnectTimeout(cfg.Timeout()).
		SetServerSelectionTimeout(cfg.Timeout()).
		SetMaxPoolSize(uint64(cfg.MaxPoolSize)).
		SetMinPoolSize(uint64(cfg.MinPoolSize))
}

// Connect opens a MongoDB client and verifies it with a ping.
// The returned database handle shares the client; disconnect it via db.Client().
func Connect(ctx context.Context, cfg config.DatabaseConfig, logger zerolog.Logger) (*mongo.Database, error) {
	logger.Info().
		Str("database", cfg.Name).
		Int("max_pool_size", cfg.MaxPoolSize).
		Int("min_pool_size", cfg.MinPoolSize).
		Dur("connect_timeout", cfg.Timeout()).
		Msg("connecting to MongoDB")

	client, err := mongo.Connect(ctx, ClientOptions(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.Timeout())
	defer cancel()

	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	logger.Info().Str("database", cfg.Name).Msg("MongoDB connection established")

	return client.Database(cfg.Name), nil
}
