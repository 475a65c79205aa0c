package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"

	httpapi "cashdesk-backend/internal/api/http"
	"cashdesk-backend/internal/config"
	"cashdesk-backend/internal/logger"
	"cashdesk-backend/internal/repository/postgres"
	"cashdesk-backend/internal/security"
	"cashdesk-backend/internal/service"
	"cashdesk-backend/pkg/metrics"

	_ "github.com/lib/pq"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting cashdesk backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress(), "timezone", cfg.Business.Timezone)
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

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
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)
	collector := metrics.NewCollector()
	loc := cfg.BusinessLocation()

	cashLineSvc := service.NewCashLineService(store.CashLineRepository, store.SystemBalanceRepository, collector, loc)
	instaPaySvc := service.NewInstaPayService(store.InstaPayRepository, store.SystemBalanceRepository, collector, loc)
	physicalSvc := service.NewPhysicalCashService(store.PhysicalCashRepository, store.SystemBalanceRepository, collector)
	supplierSvc := service.NewSupplierService(store.SupplierRepository)
	fawrySvc := service.NewFawryService(store.FawryRepository, store.SystemBalanceRepository, collector, loc)
	reportSvc := service.NewReportService(store.SystemBalanceRepository, store.DailyProfitRepository, collector, loc)
	auditSvc := service.NewAuditService(store.AuditRepository)

	server := httpapi.NewServer(cashLineSvc, instaPaySvc, physicalSvc, supplierSvc, fawrySvc, reportSvc, auditSvc)
	router := server.Router(tokenManager, collector)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
