// Package report runs scheduled jobs over the login-attempt ledger
package report

import (
	"context"
	"errors"
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// ErrJobNotFound is returned by RunNow for an unregistered job
var ErrJobNotFound = errors.New("job not found")

// Job is a unit of scheduled work
type Job interface {
	// Name returns the unique name of the job
	Name() string
	// Run executes the job once
	Run(ctx context.Context) error
}

// Scheduler runs registered jobs on cron schedules
type Scheduler struct {
	jobs map[string]Job
	cron *cron.Cron
	log  *zap.Logger
}

// NewScheduler creates a scheduler using standard five-field cron expressions
func NewScheduler(log *zap.Logger) *Scheduler {
	c := cron.New(cron.WithParser(cron.NewParser(
		cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
	)))

	return &Scheduler{
		jobs: make(map[string]Job),
		cron: c,
		log:  log,
	}
}

// Register schedules job. ctx is passed to every run.
func (s *Scheduler) Register(ctx context.Context, schedule string, job Job) error {
	if schedule == "" {
		return fmt.Errorf("job %s has no schedule configured", job.Name())
	}
	if _, exists := s.jobs[job.Name()]; exists {
		return fmt.Errorf("job %s already registered", job.Name())
	}

	_, err := s.cron.AddFunc(schedule, func() {
		s.log.Info("running scheduled job", zap.String("job", job.Name()))
		if err := job.Run(ctx); err != nil {
			s.log.Error("scheduled job failed", zap.String("job", job.Name()), zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule job %s: %w", job.Name(), err)
	}

	s.jobs[job.Name()] = job
	s.log.Info("scheduled job", zap.String("job", job.Name()), zap.String("schedule", schedule))
	return nil
}

// RunNow executes a registered job immediately
func (s *Scheduler) RunNow(ctx context.Context, name string) error {
	job, ok := s.jobs[name]
	if !ok {
		return ErrJobNotFound
	}
	return job.Run(ctx)
}

// Start runs the scheduler until ctx is cancelled
func (s *Scheduler) Start(ctx context.Context) {
	s.cron.Start()
	s.log.Info("report scheduler started", zap.Int("jobs", len(s.jobs)))

	<-ctx.Done()
	s.log.Info("stopping report scheduler")
	<-s.cron.Stop().Done()
}
