package bootstrap

import (
	"context"
	"fmt"

	"github.com/amitshekhariitbhu/go-auth-admin/internal/mailer"
	"github.com/amitshekhariitbhu/go-auth-admin/internal/storage"
	"github.com/amitshekhariitbhu/go-auth-admin/mongo"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Application holds the process-wide connections.
type Application struct {
	Env     *Env
	Logger  *zap.Logger
	Mongo   mongo.Client
	Redis   *redis.Client
	Storage *storage.Client
	Mailer  *mailer.Mailer
}

func App(ctx context.Context, configFile string) (*Application, error) {
	env, err := NewEnv(configFile)
	if err != nil {
		return nil, err
	}

	logger, err := NewLogger(env.LogLevel, env.LogEncoding)
	if err != nil {
		return nil, err
	}
	if !env.IsProduction() {
		logger.Info("The App is running in development env")
	}

	app := &Application{Env: env, Logger: logger}

	app.Mongo, err = NewMongoDatabase(env, logger)
	if err != nil {
		return nil, err
	}

	app.Redis, err = NewRedisClient(ctx, env, logger)
	if err != nil {
		app.Close()
		return nil, err
	}

	app.Storage, err = storage.NewClient(storage.Config{
		Endpoint:        env.StorageEndpoint,
		AccessKeyID:     env.StorageAccessKey,
		SecretAccessKey: env.StorageSecretKey,
		Bucket:          env.StorageBucket,
		Region:          env.StorageRegion,
		UseSSL:          env.StorageUseSSL,
	}, logger)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	if app.Storage.Enabled() {
		if err := app.Storage.EnsureBucket(ctx); err != nil {
			logger.Warn("Storage bucket not verified", zap.String("bucket", env.StorageBucket), zap.Error(err))
		}
	}

	app.Mailer, err = mailer.New(mailer.Config{
		Host:     env.SMTPHost,
		Port:     env.SMTPPort,
		Username: env.SMTPUsername,
		Password: env.SMTPPassword,
		From:     env.MailFrom,
	}, logger)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to create mailer: %w", err)
	}

	return app, nil
}

func (app *Application) Database() mongo.Database {
	return app.Mongo.Database(app.Env.DBName)
}

// Close releases connections. Safe on a partially built Application.
func (app *Application) Close() {
	if app.Redis != nil {
		if err := app.Redis.Close(); err != nil {
			app.Logger.Error("Failed to close Redis", zap.Error(err))
		}
	}
	CloseMongoDBConnection(app.Mongo, app.Logger)
	_ = app.Logger.Sync()
}
