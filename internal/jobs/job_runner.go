package jobs

import (
	"docintake-backend/internal/config"
	"docintake-backend/internal/logger"
	"docintake-backend/internal/repository/postgres"
	"docintake-backend/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	store  *postgres.Store
	events service.EventPublisher
	config *config.Config
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(store *postgres.Store, events service.EventPublisher, cfg *config.Config) *JobRunner {
	return &JobRunner{
		store:  store,
		events: events,
		config: cfg,
	}
}

// Config exposes the runner's configuration for schedule registration
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery. A failed run is
// logged and isolated; the job stays scheduled.
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}
