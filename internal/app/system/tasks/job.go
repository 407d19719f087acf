// internal/app/system/tasks/job.go
package tasks

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/dalemusser/luctportal/internal/app/store/intents"
	"github.com/dalemusser/luctportal/internal/app/system/submission"
	"github.com/dalemusser/luctportal/internal/domain/models"
)

// Job is a unit of periodic background work.
type Job struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context) error
}

// Resumer finishes saved partial submissions. *submission.Workflow
// satisfies it.
type Resumer interface {
	Pending(ctx context.Context) ([]intents.Intent, error)
	Resume(ctx context.Context, intentID string) (models.Report, error)
}

// IntentSweepJob retries every saved intent that has been idle for at
// least minAge. It is the fallback when no task queue is configured.
func IntentSweepJob(r Resumer, logger *zap.Logger, interval, minAge time.Duration) Job {
	return Job{
		Name:     "intent-sweep",
		Interval: interval,
		Run: func(ctx context.Context) error {
			pending, err := r.Pending(ctx)
			if err != nil {
				return err
			}
			var resumed, failed int
			for _, in := range pending {
				if time.Since(in.UpdatedAt) < minAge {
					continue
				}
				if _, err := r.Resume(ctx, in.ID); err != nil {
					failed++
					if !errors.Is(err, submission.ErrIntentNotFound) {
						logger.Debug("intent still pending",
							zap.String("intent_id", in.ID),
							zap.Error(err))
					}
					continue
				}
				resumed++
			}
			if resumed > 0 || failed > 0 {
				logger.Info("intent sweep",
					zap.Int("resumed", resumed),
					zap.Int("still_pending", failed))
			}
			return nil
		},
	}
}
