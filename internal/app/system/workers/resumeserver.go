// internal/app/system/workers/resumeserver.go
package workers

import (
	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/dalemusser/luctportal/internal/app/system/tasks"
)

// ResumeServer consumes submission:resume tasks from Redis.
type ResumeServer struct {
	srv *asynq.Server
	mux *asynq.ServeMux
	log *zap.Logger
}

// NewResumeServer builds a server that dispatches resume tasks to r.
func NewResumeServer(opt asynq.RedisConnOpt, concurrency int, r tasks.Resumer, logger *zap.Logger) *ResumeServer {
	if concurrency <= 0 {
		concurrency = 2
	}
	srv := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Logger:      logger.Named("asynq").Sugar(),
		LogLevel:    asynq.WarnLevel,
	})
	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSubmissionResume, tasks.ResumeHandler(r, logger))
	return &ResumeServer{srv: srv, mux: mux, log: logger}
}

// Start begins processing in the background.
func (s *ResumeServer) Start() error {
	if err := s.srv.Start(s.mux); err != nil {
		return err
	}
	s.log.Info("resume worker started")
	return nil
}

// Stop waits for in-flight tasks and shuts the server down.
func (s *ResumeServer) Stop() {
	s.srv.Shutdown()
	s.log.Info("resume worker stopped")
}
