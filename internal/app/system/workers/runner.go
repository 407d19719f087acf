// internal/app/system/workers/runner.go
package workers

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/dalemusser/luctportal/internal/app/system/tasks"
)

// Runner runs a tasks.Job on its interval until stopped.
type Runner struct {
	job     tasks.Job
	log     *zap.Logger
	timeout time.Duration
	stopCh  chan struct{}
	wg      sync.WaitGroup
	once    sync.Once
}

// NewRunner creates a runner. Each run gets timeout (or the job interval
// when timeout is zero).
func NewRunner(job tasks.Job, logger *zap.Logger, timeout time.Duration) *Runner {
	if timeout <= 0 {
		timeout = job.Interval
	}
	return &Runner{
		job:     job,
		log:     logger,
		timeout: timeout,
		stopCh:  make(chan struct{}),
	}
}

// Start begins the background loop.
func (w *Runner) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("worker started",
		zap.String("job", w.job.Name),
		zap.Duration("interval", w.job.Interval))
}

// Stop signals the loop to stop and waits for the current run to finish.
// It is safe to call more than once.
func (w *Runner) Stop() {
	w.once.Do(func() {
		close(w.stopCh)
		w.wg.Wait()
		w.log.Info("worker stopped", zap.String("job", w.job.Name))
	})
}

func (w *Runner) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.job.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.tick()
		}
	}
}

func (w *Runner) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()

	if err := w.job.Run(ctx); err != nil {
		w.log.Error("job failed", zap.String("job", w.job.Name), zap.Error(err))
	}
}
