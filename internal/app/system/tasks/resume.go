// internal/app/system/tasks/resume.go
package tasks

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/dalemusser/luctportal/internal/app/system/submission"
)

// TypeSubmissionResume resumes a partial report submission.
const TypeSubmissionResume = "submission:resume"

// ResumePayload names the intent to resume.
type ResumePayload struct {
	IntentID string `json:"intent_id"`
}

// NewResumeTask builds the task for an intent.
func NewResumeTask(intentID string) (*asynq.Task, error) {
	b, err := json.Marshal(ResumePayload{IntentID: intentID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeSubmissionResume, b), nil
}

// ParseResumePayload decodes a resume task's payload.
func ParseResumePayload(t *asynq.Task) (ResumePayload, error) {
	var p ResumePayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return p, errors.Wrap(err, "decode resume payload")
	}
	if p.IntentID == "" {
		return p, errors.New("resume payload has no intent_id")
	}
	return p, nil
}

// ResumeHandler runs Resume for each task. An intent that no longer exists
// (finished by hand, or expired) is not an error. Any other failure is
// returned so asynq retries with backoff.
func ResumeHandler(r Resumer, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		p, err := ParseResumePayload(t)
		if err != nil {
			logger.Error("bad resume task", zap.Error(err))
			return errors.Wrap(asynq.SkipRetry, err.Error())
		}
		report, err := r.Resume(ctx, p.IntentID)
		if errors.Is(err, submission.ErrIntentNotFound) {
			logger.Info("intent already gone, skipping", zap.String("intent_id", p.IntentID))
			return nil
		}
		if err != nil {
			return err
		}
		logger.Info("resumed submission",
			zap.String("intent_id", p.IntentID),
			zap.String("report_id", report.ID.String()))
		return nil
	}
}

// Queue enqueues resume tasks. It satisfies submission.Enqueuer.
type Queue struct {
	client    *asynq.Client
	inspector *asynq.Inspector
	maxRetry  int
	delay     time.Duration
	log       *zap.Logger
}

// NewQueue connects a queue to Redis. delay postpones the first attempt so
// a flapping store gets a moment to recover.
func NewQueue(opt asynq.RedisConnOpt, maxRetry int, delay time.Duration, logger *zap.Logger) *Queue {
	return &Queue{
		client:    asynq.NewClient(opt),
		inspector: asynq.NewInspector(opt),
		maxRetry:  maxRetry,
		delay:     delay,
		log:       logger,
	}
}

// EnqueueResume schedules one resume per intent. The intent id is the task
// id, so a second enqueue while the first is still queued is a no-op. A
// previous task archived after exhausting its retries is removed first.
func (q *Queue) EnqueueResume(ctx context.Context, intentID string) error {
	task, err := NewResumeTask(intentID)
	if err != nil {
		return err
	}
	if err := q.inspector.DeleteTask("default", intentID); err != nil &&
		!errors.Is(err, asynq.ErrTaskNotFound) && !errors.Is(err, asynq.ErrQueueNotFound) {
		q.log.Debug("could not clear previous resume task", zap.String("intent_id", intentID), zap.Error(err))
	}
	_, err = q.client.EnqueueContext(ctx, task,
		asynq.TaskID(intentID),
		asynq.MaxRetry(q.maxRetry),
		asynq.ProcessIn(q.delay),
	)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		return nil
	}
	return err
}

// Close releases the Redis connections.
func (q *Queue) Close() error {
	ierr := q.inspector.Close()
	if err := q.client.Close(); err != nil {
		return err
	}
	return ierr
}

var _ submission.Enqueuer = (*Queue)(nil)
