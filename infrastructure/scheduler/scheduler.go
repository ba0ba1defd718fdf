package scheduler

import (
	"context"
	"fmt"
	"time"

	"linkedin-autoposter/infrastructure/logger"

	"github.com/robfig/cron/v3"
)

// Job is a scheduled callback.
type Job func(ctx context.Context)

// Scheduler runs jobs on cron specs in a fixed location.
type Scheduler struct {
	cron    *cron.Cron
	timeout time.Duration
}

func NewScheduler(loc *time.Location, timeout time.Duration) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	return &Scheduler{cron: cron.New(cron.WithLocation(loc)), timeout: timeout}
}

// Add registers job under spec, e.g. "@daily" or "0 5 * * *".
func (s *Scheduler) Add(ctx context.Context, name, spec string, job Job) error {
	_, err := s.cron.AddFunc(spec, func() {
		runCtx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()
		logger.GetLogger().WithField("job", name).Info("scheduled job started")
		job(runCtx)
	})
	if err != nil {
		return fmt.Errorf("schedule %s (%q): %w", name, spec, err)
	}
	return nil
}

// Run starts the scheduler and blocks until ctx is done.
func (s *Scheduler) Run(ctx context.Context) error {
	s.cron.Start()
	<-ctx.Done()
	stopped := s.cron.Stop()
	<-stopped.Done()
	return nil
}

func (s *Scheduler) Entries() int { return len(s.cron.Entries()) }
