// Package timeouts holds the timeout budgets for outbound store calls and
// handler work.
//
// Every request the portal makes to the collection API runs under one of
// these budgets, so a stalled store cannot pin a handler goroutine and a
// request is abandoned when the client that caused it goes away.
//
// Budgets:
//   - Ping: health checks against the store or Mongo
//   - Read: one record by id, the credential check
//   - List: one full collection fetch
//   - Write: one create or patch
//   - Workflow: a multi-step write (report + attendance rows)
//   - Export: building and streaming a workbook from fresh reads
package timeouts

import (
	"context"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultPing     = 2 * time.Second
	DefaultRead     = 5 * time.Second
	DefaultList     = 10 * time.Second
	DefaultWrite    = 10 * time.Second
	DefaultWorkflow = 60 * time.Second
	DefaultExport   = 30 * time.Second
)

var mu sync.RWMutex

var (
	ping     = DefaultPing
	read     = DefaultRead
	list     = DefaultList
	write    = DefaultWrite
	workflow = DefaultWorkflow
	export   = DefaultExport
)

func get(d *time.Duration) time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return *d
}

// Ping returns the budget for connectivity checks.
func Ping() time.Duration { return get(&ping) }

// Read returns the budget for a single-record read.
func Read() time.Duration { return get(&read) }

// List returns the budget for fetching one whole collection.
func List() time.Duration { return get(&list) }

// Write returns the budget for one create or patch.
func Write() time.Duration { return get(&write) }

// Workflow returns the budget for a whole report submission, including
// every attendance write.
func Workflow() time.Duration { return get(&workflow) }

// Export returns the budget for an export request.
func Export() time.Duration { return get(&export) }

// Config holds timeout overrides. Zero values keep the current value.
type Config struct {
	Ping     time.Duration
	Read     time.Duration
	List     time.Duration
	Write    time.Duration
	Workflow time.Duration
	Export   time.Duration
}

// Configure applies non-zero overrides. Call it at startup before any
// handler runs.
func Configure(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	set := func(dst *time.Duration, v time.Duration) {
		if v > 0 {
			*dst = v
		}
	}
	set(&ping, cfg.Ping)
	set(&read, cfg.Read)
	set(&list, cfg.List)
	set(&write, cfg.Write)
	set(&workflow, cfg.Workflow)
	set(&export, cfg.Export)
}

// Reset restores the defaults. Useful for testing.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	ping, read, list, write, workflow, export =
		DefaultPing, DefaultRead, DefaultList, DefaultWrite, DefaultWorkflow, DefaultExport
}

// ConfigureFromEnv reads TIMEOUT_PING, TIMEOUT_READ, TIMEOUT_LIST,
// TIMEOUT_WRITE, TIMEOUT_WORKFLOW and TIMEOUT_EXPORT (Go durations, e.g.
// "5s"). Invalid or non-positive values are ignored. It returns how many
// values were applied.
func ConfigureFromEnv() int {
	var cfg Config
	n := 0
	parse := func(key string, dst *time.Duration) {
		v := os.Getenv(key)
		if v == "" {
			return
		}
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			*dst = d
			n++
		}
	}
	parse("TIMEOUT_PING", &cfg.Ping)
	parse("TIMEOUT_READ", &cfg.Read)
	parse("TIMEOUT_LIST", &cfg.List)
	parse("TIMEOUT_WRITE", &cfg.Write)
	parse("TIMEOUT_WORKFLOW", &cfg.Workflow)
	parse("TIMEOUT_EXPORT", &cfg.Export)
	Configure(cfg)
	return n
}

// Current returns the active budgets, for startup logging.
func Current() Config {
	mu.RLock()
	defer mu.RUnlock()
	return Config{Ping: ping, Read: read, List: list, Write: write, Workflow: workflow, Export: export}
}

// WithTimeout derives a context with the given budget. The returned cancel
// logs a warning when the budget, not the caller, ended the operation.
//
//	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Workflow(), h.Log, "submit report")
//	defer cancel()
func WithTimeout(parent context.Context, timeout time.Duration, log *zap.Logger, operation string) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parent, timeout)
	return ctx, func() {
		if ctx.Err() == context.DeadlineExceeded && parent.Err() == nil && log != nil {
			log.Warn("operation timed out",
				zap.String("operation", operation),
				zap.Duration("timeout", timeout),
			)
		}
		cancel()
	}
}
