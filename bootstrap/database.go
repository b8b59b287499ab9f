package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/amitshekhariitbhu/go-auth-admin/mongo"
	"go.uber.org/zap"
)

func NewMongoDatabase(env *Env, log *zap.Logger) (mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.NewClient(env.MongoURI)
	if err != nil {
		return nil, fmt.Errorf("failed to create mongo client: %w", err)
	}
	if err := client.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	log.Info("Connected to MongoDB", zap.String("database", env.DBName))
	mongo.CreateIndexes(client.Database(env.DBName), log)
	return client, nil
}

func CloseMongoDBConnection(client mongo.Client, log *zap.Logger) {
	if client == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Disconnect(ctx); err != nil {
		log.Error("Failed to disconnect MongoDB", zap.Error(err))
		return
	}
	log.Info("Connection to MongoDB closed")
}
