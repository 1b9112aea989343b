package cron

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Job represents a scheduled job
type Job struct {
	Name    string
	Spec    string
	Timeout time.Duration
	Fn      func(ctx context.Context) error
}

// Scheduler runs jobs on standard five-field cron specs. A job that is still
// running when its next tick arrives is skipped.
type Scheduler struct {
	cron   *cron.Cron
	loc    *time.Location
	jobs   []Job
	ctx    context.Context
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewScheduler creates a new cron scheduler evaluated in loc (UTC when nil)
func NewScheduler(loc *time.Location) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithChain(cron.Recover(cron.DefaultLogger), cron.SkipIfStillRunning(cron.DefaultLogger)),
		),
		loc:    loc,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Location is the zone job specs are evaluated in.
func (s *Scheduler) Location() *time.Location {
	return s.loc
}

// AddJob registers fn under spec. An invalid spec is returned as an error.
func (s *Scheduler) AddJob(job Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.cron.AddFunc(job.Spec, func() { s.executeJob(job) }); err != nil {
		return fmt.Errorf("cron job %s: invalid spec %q: %w", job.Name, job.Spec, err)
	}
	s.jobs = append(s.jobs, job)
	slog.Info("Cron job registered", "name", job.Name, "spec", job.Spec)
	return nil
}

// Start begins running all scheduled jobs
func (s *Scheduler) Start() {
	s.cron.Start()
	slog.Info("Cron scheduler started", "job_count", len(s.Jobs()))
}

// Stop cancels running jobs and waits for them to return
func (s *Scheduler) Stop() {
	slog.Info("Stopping cron scheduler...")
	s.cancel()
	<-s.cron.Stop().Done()
	slog.Info("Cron scheduler stopped")
}

// Jobs returns the registered jobs
func (s *Scheduler) Jobs() []Job {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Job, len(s.jobs))
	copy(out, s.jobs)
	return out
}

// executeJob executes a job and logs results
func (s *Scheduler) executeJob(job Job) {
	ctx := s.ctx
	if job.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, job.Timeout)
		defer cancel()
	}

	start := time.Now()
	slog.Debug("Cron job starting", "name", job.Name)

	if err := job.Fn(ctx); err != nil {
		slog.Error("Cron job failed", "name", job.Name, "error", err, "duration", time.Since(start))
	} else {
		slog.Debug("Cron job completed", "name", job.Name, "duration", time.Since(start))
	}
}

// RunOnce runs all jobs once (useful for testing)
func (s *Scheduler) RunOnce(ctx context.Context) {
	for _, job := range s.Jobs() {
		if err := job.Fn(ctx); err != nil {
			slog.Error("Cron job failed", "name", job.Name, "error", err)
		}
	}
}
