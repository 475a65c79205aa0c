package jobs

import (
	"database/sql"

	"cashdesk-backend/internal/config"
	"cashdesk-backend/internal/logger"
	"cashdesk-backend/internal/repository/postgres"
	"cashdesk-backend/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	db       *sql.DB
	store    *postgres.Store
	services *Services
	config   *config.Config
}

// Services holds all service dependencies needed by jobs
type Services struct {
	Reset  service.ResetService
	Report service.ReportService
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(db *sql.DB, store *postgres.Store, services *Services, cfg *config.Config) *JobRunner {
	return &JobRunner{
		db:       db,
		store:    store,
		services: services,
		config:   cfg,
	}
}

// Config exposes the runner's configuration to the scheduler.
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
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

// RunAllDailyJobs runs all daily jobs (for manual execution)
func (jr *JobRunner) RunAllDailyJobs() {
	jr.ResetDailyLimits()
	jr.ReconcileSystemBalance()
	jr.SummarizeDay()
}

// RunAllMonthlyJobs runs all monthly jobs (for manual execution)
func (jr *JobRunner) RunAllMonthlyJobs() {
	jr.ResetMonthlyLimits()
}
