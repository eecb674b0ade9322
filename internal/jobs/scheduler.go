// Package jobs corre los barridos periódicos (invitaciones vencidas,
// recordatorios de turnos, limpieza del rate limiter).
package jobs

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"petcare-hub/internal/platform/logger"
	"petcare-hub/internal/platform/metrics"
)

const defaultTimeout = 2 * time.Minute

// Func devuelve cuántas filas/elementos procesó.
type Func func(ctx context.Context) (int, error)

type job struct {
	name     string
	schedule string
	run      Func
}

type Scheduler struct {
	cron    *cron.Cron
	log     logger.Logger
	metrics *metrics.Metrics
	timeout time.Duration

	mu     sync.Mutex
	jobs   map[string]job
	ctx    context.Context
	cancel context.CancelFunc
}

type Option func(*Scheduler)

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Scheduler) { s.metrics = m }
}

func WithTimeout(d time.Duration) Option {
	return func(s *Scheduler) {
		if d > 0 {
			s.timeout = d
		}
	}
}

func New(log logger.Logger, opts ...Option) *Scheduler {
	if log == nil {
		log = logger.Nop()
	}
	s := &Scheduler{
		log:     log.With(map[string]any{"component": "jobs"}),
		timeout: defaultTimeout,
		jobs:    make(map[string]job),
	}
	for _, o := range opts {
		o(s)
	}
	cl := cronLogger{log: s.log}
	s.cron = cron.New(cron.WithLogger(cl), cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)))
	s.ctx, s.cancel = context.WithCancel(context.Background())
	return s
}

// Add registra un job. schedule vacío lo deja deshabilitado (solo RunNow).
func (s *Scheduler) Add(name, schedule string, fn Func) error {
	name = strings.TrimSpace(name)
	schedule = strings.TrimSpace(schedule)
	if name == "" || fn == nil {
		return fmt.Errorf("jobs: name and func are required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.jobs[name]; exists {
		return fmt.Errorf("jobs: %q already registered", name)
	}
	j := job{name: name, schedule: schedule, run: fn}
	if schedule != "" {
		if _, err := s.cron.AddFunc(schedule, func() { _ = s.runJob(j) }); err != nil {
			return fmt.Errorf("jobs: schedule %q for %s: %w", schedule, name, err)
		}
	} else {
		s.log.Info("job disabled", map[string]any{"job": name})
	}
	s.jobs[name] = j
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("jobs started", map[string]any{"entries": len(s.cron.Entries())})
}

// Stop cancela las corridas en curso y espera a que terminen (o a ctx).
func (s *Scheduler) Stop(ctx context.Context) error {
	s.cancel()
	done := s.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RunNow corre un job fuera de agenda.
func (s *Scheduler) RunNow(name string) error {
	s.mu.Lock()
	j, ok := s.jobs[name]
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("jobs: unknown job %q", name)
	}
	return s.runJob(j)
}

func (s *Scheduler) runJob(j job) error {
	ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()

	start := time.Now()
	n, err := j.run(ctx)
	s.metrics.ObserveJob(j.name, err)

	fields := map[string]any{
		"job":         j.name,
		"processed":   n,
		"duration_ms": time.Since(start).Milliseconds(),
	}
	if err != nil {
		fields["error"] = err
		s.log.Error("job failed", fields)
		return err
	}
	if n > 0 {
		s.log.Info("job done", fields)
	} else {
		s.log.Debug("job done", fields)
	}
	return nil
}

// cronLogger adapta logger.Logger a cron.Logger.
type cronLogger struct {
	log logger.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug("cron: "+msg, kv(keysAndValues))
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	fields := kv(keysAndValues)
	fields["error"] = err
	l.log.Error("cron: "+msg, fields)
}

func kv(keysAndValues []interface{}) map[string]any {
	out := make(map[string]any, len(keysAndValues)/2+1)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		if k, ok := keysAndValues[i].(string); ok {
			out[k] = keysAndValues[i+1]
		}
	}
	return out
}
