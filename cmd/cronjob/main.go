package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"

	"cashdesk-backend/internal/config"
	"cashdesk-backend/internal/jobs"
	"cashdesk-backend/internal/logger"
	"cashdesk-backend/internal/repository/postgres"
	"cashdesk-backend/internal/scheduler"
	"cashdesk-backend/internal/service"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'daily-reset', 'monthly-reset', 'all-daily', 'all-monthly')")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting cashdesk cronjob runner...", "log_level", cfg.Log.Level, "timezone", cfg.Business.Timezone)

	logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port)
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	store := postgres.NewStore(db)
	loc := cfg.BusinessLocation()

	jobServices := &jobs.Services{
		Reset:  service.NewResetService(store.CashLineRepository, loc),
		Report: service.NewReportService(store.SystemBalanceRepository, store.DailyProfitRepository, nil, loc),
	}

	jobRunner := jobs.NewJobRunner(db, store, jobServices, cfg)

	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		runJobOnce(jobRunner, *runOnce)
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	cronScheduler := scheduler.NewScheduler(jobRunner, loc)

	cronScheduler.Start()
	logger.Info("Cronjob scheduler is running. Press Ctrl+C to stop.")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down cronjob scheduler...")
	cronScheduler.Stop()
	logger.Info("Cronjob scheduler stopped. Goodbye!")
}

// runJobOnce runs a specific job once and exits
func runJobOnce(jobRunner *jobs.JobRunner, jobName string) {
	switch jobName {
	case "daily-reset":
		jobRunner.ResetDailyLimits()
	case "monthly-reset":
		jobRunner.ResetMonthlyLimits()
	case "reconcile-balance":
		jobRunner.ReconcileSystemBalance()
	case "summarize-day":
		jobRunner.SummarizeDay()
	case "all-daily":
		jobRunner.RunAllDailyJobs()
	case "all-monthly":
		jobRunner.RunAllMonthlyJobs()
	default:
		logger.Error("Unknown job name", "job", jobName)
		fmt.Printf("Available jobs:\n")
		fmt.Printf("  - daily-reset\n")
		fmt.Printf("  - monthly-reset\n")
		fmt.Printf("  - reconcile-balance\n")
		fmt.Printf("  - summarize-day\n")
		fmt.Printf("  - all-daily\n")
		fmt.Printf("  - all-monthly\n")
		os.Exit(1)
	}
}
