package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"books-api/internal/config"
	"books-api/internal/logger"
)

const (
	defaultMaxAttempts     = 10
	defaultDelayBetweenTry = 2 * time.Second
	pingTimeout            = 5 * time.Second
)

// ConnectWithRetry dials MongoDB and verifies it answers a ping before
// returning. Containerized stores often come up after the service does, so
// the first attempts are expected to fail.
func ConnectWithRetry(ctx context.Context, cfg *config.Config, log logger.Logger) (*mongo.Client, error) {
	var err error

	for attempt := 1; attempt <= defaultMaxAttempts; attempt++ {
		var client *mongo.Client
		client, err = mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err == nil {
			pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
			pingErr := client.Ping(pingCtx, readpref.Primary())
			cancel()
			if pingErr == nil {
				return client, nil
			}
			err = pingErr
			_ = client.Disconnect(ctx)
		}

		log.Warnf("mongo not ready (attempt %d/%d): %v", attempt, defaultMaxAttempts, err)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(defaultDelayBetweenTry):
		}
	}

	return nil, fmt.Errorf("could not connect to mongo after %d attempts: %w", defaultMaxAttempts, err)
}
