package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"

	"cashdesk-backend/internal/jobs"
	"cashdesk-backend/internal/logger"
)

// Scheduler manages cron job scheduling
type Scheduler struct {
	cron *cron.Cron
	jobs *jobs.JobRunner
}

// NewScheduler creates a new scheduler with the provided job runner. The
// cron runs in the business time zone so "midnight" means the desk's
// midnight, with seconds precision.
func NewScheduler(jobRunner *jobs.JobRunner, loc *time.Location) *Scheduler {
	c := cron.New(
		cron.WithLocation(loc),
		cron.WithSeconds(),
	)

	s := &Scheduler{
		cron: c,
		jobs: jobRunner,
	}

	s.registerJobs()
	return s
}

// registerJobs registers all scheduled jobs with the cron scheduler
func (s *Scheduler) registerJobs() {
	cfg := s.jobs.Config().Scheduler

	_, err := s.cron.AddFunc(cfg.DailyReset, s.jobs.ResetDailyLimits)
	if err != nil {
		logger.Error("Failed to register ResetDailyLimits job", "error", err)
	}

	_, err = s.cron.AddFunc(cfg.MonthlyReset, s.jobs.ResetMonthlyLimits)
	if err != nil {
		logger.Error("Failed to register ResetMonthlyLimits job", "error", err)
	}

	_, err = s.cron.AddFunc(cfg.DailyReset, s.jobs.ReconcileSystemBalance)
	if err != nil {
		logger.Error("Failed to register ReconcileSystemBalance job", "error", err)
	}

	_, err = s.cron.AddFunc(cfg.DailyReset, s.jobs.SummarizeDay)
	if err != nil {
		logger.Error("Failed to register SummarizeDay job", "error", err)
	}

	logger.Info("All cron jobs registered successfully")
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

// IsRunning returns true if the scheduler is running
func (s *Scheduler) IsRunning() bool {
	return len(s.cron.Entries()) > 0
}
