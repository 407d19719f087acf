// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/hibiken/asynq"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"github.com/dalemusser/luctportal/internal/app/store/intents"
	"github.com/dalemusser/luctportal/internal/app/system/indexes"
	"github.com/dalemusser/luctportal/internal/app/system/storeclient"
	"github.com/dalemusser/luctportal/internal/app/system/submission"
	"github.com/dalemusser/luctportal/internal/app/system/tasks"
	"github.com/dalemusser/luctportal/internal/app/system/timeouts"
	"github.com/dalemusser/luctportal/internal/app/system/validators"
)

// ConnectStoreDB connects luctstore to MongoDB and verifies the primary is
// reachable.
func ConnectStoreDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	opts := options.Client().
		ApplyURI(appCfg.MongoURI).
		SetMaxPoolSize(appCfg.MongoMaxPoolSize).
		SetMinPoolSize(appCfg.MongoMinPoolSize)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return DBDeps{}, errors.Wrap(err, "connect to MongoDB")
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeouts.Ping())
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return DBDeps{}, errors.Wrap(err, "ping MongoDB")
	}

	logger.Info("connected to MongoDB",
		zap.String("database", appCfg.MongoDatabase),
		zap.Uint64("max_pool", appCfg.MongoMaxPoolSize))

	return DBDeps{
		MongoClient:   client,
		MongoDatabase: client.Database(appCfg.MongoDatabase),
		background:    &background{},
	}, nil
}

// EnsureStoreSchema creates the collections with their validators, then the
// indexes luctstore relies on, including the unique enrollment pair.
func EnsureStoreSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if err := validators.EnsureAll(ctx, deps.MongoDatabase); err != nil {
		logger.Error("collection validator setup failed", zap.Error(err))
		return err
	}
	if err := indexes.EnsureAll(ctx, deps.MongoDatabase); err != nil {
		logger.Error("index setup failed", zap.Error(err))
		return err
	}
	return nil
}

// ConnectPortalDB builds the collection API client and, when redis_addr is
// set, the Redis-backed intent store and resume queue. The store is not
// required to be up: the portal starts and reports it through /health.
func ConnectPortalDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	client, err := storeclient.New(appCfg.StoreBaseURL, &http.Client{Timeout: appCfg.StoreTimeout}, logger)
	if err != nil {
		return DBDeps{}, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeouts.Ping())
	defer cancel()
	if err := client.Ping(pingCtx); err != nil {
		logger.Warn("collection store not reachable at startup",
			zap.String("url", appCfg.StoreBaseURL), zap.Error(err))
	}

	deps := DBDeps{Store: client, background: &background{}}

	if appCfg.RedisAddr == "" {
		logger.Info("redis not configured; submission intents kept in memory")
		deps.Intents = intents.NewMemory()
		deps.Workflow = submission.New(client, deps.Intents, nil, logger)
		return deps, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     appCfg.RedisAddr,
		Password: appCfg.RedisPassword,
		DB:       appCfg.RedisDB,
	})
	if _, err := rdb.Ping(pingCtx).Result(); err != nil {
		_ = rdb.Close()
		return DBDeps{}, errors.Wrap(err, "ping Redis")
	}
	logger.Info("connected to Redis", zap.String("addr", appCfg.RedisAddr), zap.Int("db", appCfg.RedisDB))

	deps.Redis = rdb
	deps.Intents = intents.NewRedis(rdb)
	deps.Queue = tasks.NewQueue(redisConnOpt(appCfg), appCfg.ReconcileMaxRetry, appCfg.ReconcileDelay, logger)
	deps.Workflow = submission.New(client, deps.Intents, deps.Queue, logger)
	return deps, nil
}

func redisConnOpt(appCfg AppConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     appCfg.RedisAddr,
		Password: appCfg.RedisPassword,
		DB:       appCfg.RedisDB,
	}
}

// EnsurePortalSchema is a no-op: the portal owns no schema.
func EnsurePortalSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	return nil
}
