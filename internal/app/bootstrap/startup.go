// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"

	"github.com/dalemusser/luctportal/internal/app/system/tasks"
	"github.com/dalemusser/luctportal/internal/app/system/timeouts"
	"github.com/dalemusser/luctportal/internal/app/system/workers"
)

// StoreStartup applies timeout overrides for luctstore.
func StoreStartup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	logTimeouts(logger)
	return nil
}

// PortalStartup applies timeout overrides and starts partial-submission
// recovery: an asynq worker when Redis is configured, otherwise a periodic
// sweep over the in-memory intents.
func PortalStartup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	logTimeouts(logger)

	if deps.Redis != nil {
		srv := workers.NewResumeServer(redisConnOpt(appCfg), appCfg.ReconcileConcurrency, deps.Workflow, logger)
		if err := srv.Start(); err != nil {
			logger.Error("resume worker failed to start", zap.Error(err))
			return err
		}
		deps.background.resume = srv
		return nil
	}

	job := tasks.IntentSweepJob(deps.Workflow, logger, appCfg.ReconcileInterval, appCfg.ReconcileDelay)
	runner := workers.NewRunner(job, logger, timeouts.Workflow())
	runner.Start()
	deps.background.sweep = runner
	return nil
}

func logTimeouts(logger *zap.Logger) {
	n := timeouts.ConfigureFromEnv()
	cur := timeouts.Current()
	logger.Info("timeouts configured",
		zap.Int("overrides", n),
		zap.Duration("ping", cur.Ping),
		zap.Duration("read", cur.Read),
		zap.Duration("list", cur.List),
		zap.Duration("write", cur.Write),
		zap.Duration("workflow", cur.Workflow),
		zap.Duration("export", cur.Export))
}
