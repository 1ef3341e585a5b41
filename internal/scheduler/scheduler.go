package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"

	"docintake-backend/internal/jobs"
	"docintake-backend/internal/logger"
)

// Scheduler manages cron job scheduling. It is constructed by the process
// entry point and passed to whatever needs to trigger or inspect it; there is
// no ambient global registry.
type Scheduler struct {
	cron     *cron.Cron
	jobs     *jobs.JobRunner
	location *time.Location

	sweepEntry    cron.EntryID
	dispatchEntry cron.EntryID
}

// JobDescription is the operational view of one scheduled job.
type JobDescription struct {
	Name       string    `json:"name"`
	Expression string    `json:"expression"`
	Timezone   string    `json:"timezone"`
	NextRun    time.Time `json:"next_run"`
}

// NewScheduler creates a new scheduler with the provided job runner
func NewScheduler(jobRunner *jobs.JobRunner) (*Scheduler, error) {
	cfg := jobRunner.Config().Scheduler

	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, err
	}

	c := cron.New(
		cron.WithLocation(location),
		cron.WithSeconds(),
	)

	s := &Scheduler{
		cron:     c,
		jobs:     jobRunner,
		location: location,
	}

	if err := s.registerJobs(); err != nil {
		return nil, err
	}
	return s, nil
}

// registerJobs registers all scheduled jobs with the cron scheduler
func (s *Scheduler) registerJobs() error {
	cfg := s.jobs.Config().Scheduler

	id, err := s.cron.AddFunc(cfg.ExpireStaleRequests, s.jobs.ExpireStaleRequests)
	if err != nil {
		logger.Error("Failed to register ExpireStaleRequests job", "error", err)
		return err
	}
	s.sweepEntry = id

	id, err = s.cron.AddFunc(cfg.DispatchPendingEvents, s.jobs.DispatchPendingEvents)
	if err != nil {
		logger.Error("Failed to register DispatchPendingEvents job", "error", err)
		return err
	}
	s.dispatchEntry = id

	logger.Info("All cron jobs registered successfully", "timezone", cfg.Timezone)
	return nil
}

// RunSweepNow triggers the expiry sweep outside its schedule and runs it to
// completion before returning.
func (s *Scheduler) RunSweepNow() {
	logger.Info("Manual expiry sweep triggered")
	s.jobs.ExpireStaleRequests()
}

// Describe returns the current schedule configuration for operational tooling.
func (s *Scheduler) Describe() []JobDescription {
	cfg := s.jobs.Config().Scheduler
	return []JobDescription{
		{
			Name:       "expire-stale-requests",
			Expression: cfg.ExpireStaleRequests,
			Timezone:   cfg.Timezone,
			NextRun:    s.cron.Entry(s.sweepEntry).Next,
		},
		{
			Name:       "dispatch-pending-events",
			Expression: cfg.DispatchPendingEvents,
			Timezone:   cfg.Timezone,
			NextRun:    s.cron.Entry(s.dispatchEntry).Next,
		},
	}
}

// Start begins the cron scheduler
func (s *Scheduler) Start() {
	logger.Info("Starting cron scheduler...")
	s.cron.Start()
	logger.Info("Cron scheduler started successfully")
}

// Stop gracefully stops the cron scheduler
func (s *Scheduler) Stop() {
	logger.Info("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Cron scheduler stopped")
}
