package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"cashdesk-backend/internal/security"
	"cashdesk-backend/internal/service"
	"cashdesk-backend/pkg/metrics"
)

// Server bundles the API handlers over the service layer.
type Server struct {
	cashLines    service.CashLineService
	instaPay     service.InstaPayService
	physicalCash service.PhysicalCashService
	suppliers    service.SupplierService
	fawry        service.FawryService
	reports      service.ReportService
	audit        service.AuditService
}

func NewServer(
	cashLines service.CashLineService,
	instaPay service.InstaPayService,
	physicalCash service.PhysicalCashService,
	suppliers service.SupplierService,
	fawry service.FawryService,
	reports service.ReportService,
	audit service.AuditService,
) *Server {
	return &Server{
		cashLines:    cashLines,
		instaPay:     instaPay,
		physicalCash: physicalCash,
		suppliers:    suppliers,
		fawry:        fawry,
		reports:      reports,
		audit:        audit,
	}
}

// Router assembles the API surface. Everything under /api/v1 requires a
// valid operator token; /metrics and /healthz are open.
func (s *Server) Router(tokens security.TokenManager, collector *metrics.Collector) *mux.Router {
	root := mux.NewRouter()
	root.Handle("/metrics", collector.Handler()).Methods("GET")
	root.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	api := root.PathPrefix("/api/v1").Subrouter()
	api.Use(observeMiddleware(collector))
	api.Use(authMiddleware(tokens))

	// Cash lines
	api.HandleFunc("/cash-lines", s.handleCreateCashLine).Methods("POST")
	api.HandleFunc("/cash-lines", s.handleListCashLines).Methods("GET")
	api.HandleFunc("/cash-lines/dashboard", s.handleCashDashboard).Methods("GET")
	api.HandleFunc("/cash-lines/{id:[0-9]+}", s.handleGetCashLine).Methods("GET")
	api.HandleFunc("/cash-lines/{id:[0-9]+}", s.handleUpdateCashLine).Methods("PUT")
	api.HandleFunc("/cash-lines/{id:[0-9]+}", s.handleDeleteCashLine).Methods("DELETE")
	api.HandleFunc("/cash-lines/{id:[0-9]+}/freeze", s.handleFreezeCashLine).Methods("POST")
	api.HandleFunc("/cash-lines/{id:[0-9]+}/unfreeze", s.handleUnfreezeCashLine).Methods("POST")
	api.HandleFunc("/cash-lines/{id:[0-9]+}/withdraw", s.handleCashWithdraw).Methods("POST")
	api.HandleFunc("/cash-lines/{id:[0-9]+}/deposit", s.handleCashDeposit).Methods("POST")
	api.HandleFunc("/cash-transactions", s.handleListCashTransactions).Methods("GET")
	api.HandleFunc("/cash-transactions/{id:[0-9]+}", s.handleGetCashTransaction).Methods("GET")

	// InstaPay
	api.HandleFunc("/instapay/accounts", s.handleCreateInstaPayAccount).Methods("POST")
	api.HandleFunc("/instapay/accounts", s.handleListInstaPayAccounts).Methods("GET")
	api.HandleFunc("/instapay/accounts/{id:[0-9]+}", s.handleGetInstaPayAccount).Methods("GET")
	api.HandleFunc("/instapay/accounts/{id:[0-9]+}", s.handleUpdateInstaPayAccount).Methods("PUT")
	api.HandleFunc("/instapay/accounts/{id:[0-9]+}/withdraw", s.handleInstaPayWithdraw).Methods("POST")
	api.HandleFunc("/instapay/accounts/{id:[0-9]+}/deposit", s.handleInstaPayDeposit).Methods("POST")
	api.HandleFunc("/instapay/transactions", s.handleListInstaPayTransactions).Methods("GET")

	// Physical cash drawer
	api.HandleFunc("/physical-cash/deposit", s.handlePhysicalDeposit).Methods("POST")
	api.HandleFunc("/physical-cash/withdraw", s.handlePhysicalWithdraw).Methods("POST")
	api.HandleFunc("/physical-cash/transactions", s.handleListPhysicalTransactions).Methods("GET")
	api.HandleFunc("/physical-cash/transactions/{id:[0-9]+}", s.handleGetPhysicalTransaction).Methods("GET")

	// Suppliers
	api.HandleFunc("/suppliers", s.handleCreateSupplier).Methods("POST")
	api.HandleFunc("/suppliers", s.handleListSuppliers).Methods("GET")
	api.HandleFunc("/suppliers/totals", s.handleSupplierTotals).Methods("GET")
	api.HandleFunc("/suppliers/{id:[0-9]+}", s.handleGetSupplier).Methods("GET")
	api.HandleFunc("/suppliers/{id:[0-9]+}", s.handleUpdateSupplier).Methods("PUT")
	api.HandleFunc("/suppliers/{id:[0-9]+}/transactions", s.handleRecordSupplierEntry).Methods("POST")
	api.HandleFunc("/suppliers/{id:[0-9]+}/transactions", s.handleListSupplierEntries).Methods("GET")
	api.HandleFunc("/suppliers/{id:[0-9]+}/transactions/{txID:[0-9]+}", s.handleEditSupplierEntry).Methods("PUT")

	// Fawry
	api.HandleFunc("/fawry/regular", s.handleFawryRegular).Methods("POST")
	api.HandleFunc("/fawry/purchases", s.handleFawryPurchases).Methods("POST")
	api.HandleFunc("/fawry/transactions", s.handleListFawryTransactions).Methods("GET")
	api.HandleFunc("/fawry/summary", s.handleFawrySummaries).Methods("GET")

	// Reports
	api.HandleFunc("/reports/system-balance", s.handleSystemBalance).Methods("GET")
	api.HandleFunc("/reports/daily-profit", s.handleDailyProfit).Methods("GET")
	api.HandleFunc("/reports/profit-range", s.handleProfitRange).Methods("GET")
	api.HandleFunc("/audit-logs", s.handleListAuditLogs).Methods("GET")

	return root
}
