package persistence

import (
	"context"
	"fmt"
	"time"

	"linkedin-autoposter/infrastructure/configuration"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// NewMongoDb connects to the media database and pings it.
func NewMongoDb(ctx context.Context, cfg configuration.Db) (*mongo.Database, error) {
	uri := fmt.Sprintf("mongodb://%s:%s", cfg.Host, cfg.Port)
	opts := options.Client().ApplyURI(uri).SetConnectTimeout(10 * time.Second)
	if cfg.User != "" {
		opts.SetAuth(options.Credential{Username: cfg.User, Password: cfg.Password})
	}
	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, err
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return client.Database(cfg.Name), nil
}
