// internal/app/bootstrap/shutdown.go
package bootstrap

import (
	"context"
	"time"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// shutdownGrace bounds how long Shutdown waits on background workers.
const shutdownGrace = 10 * time.Second

// Shutdown stops background workers first, then closes the queue, Redis
// and MongoDB in that order. It is shared by both binaries; fields a
// binary never set are skipped.
func Shutdown(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if bg := deps.background; bg != nil {
		stopWithin(shutdownGrace, logger, func() {
			if bg.resume != nil {
				bg.resume.Stop()
			}
			if bg.sweep != nil {
				bg.sweep.Stop()
			}
		})
	}

	if deps.Queue != nil {
		if err := deps.Queue.Close(); err != nil {
			logger.Warn("resume queue close failed", zap.Error(err))
		}
	}
	if deps.Redis != nil {
		logger.Info("closing Redis client")
		if err := deps.Redis.Close(); err != nil {
			logger.Warn("Redis close failed", zap.Error(err))
		}
	}
	if deps.MongoClient != nil {
		logger.Info("disconnecting MongoDB client")
		if err := deps.MongoClient.Disconnect(ctx); err != nil {
			logger.Error("MongoDB disconnect failed", zap.Error(err))
			return err
		}
	}
	return nil
}

func stopWithin(d time.Duration, logger *zap.Logger, stop func()) {
	done := make(chan struct{})
	go func() {
		stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(d):
		logger.Warn("background workers did not stop in time", zap.Duration("grace", d))
	}
}
