package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"cashdesk-backend/internal/domain"
)

type CashLineService interface {
	CreateLine(ctx context.Context, line *domain.CashLine, actorID string) error
	UpdateLine(ctx context.Context, line *domain.CashLine, actorID string) error
	DeleteLine(ctx context.Context, id int32, actorID string) error
	FreezeLine(ctx context.Context, id int32, actorID string) error
	UnfreezeLine(ctx context.Context, id int32, actorID string) error
	GetLine(ctx context.Context, id int32) (*domain.CashLine, error)
	ListLines(ctx context.Context) ([]domain.CashLine, error)

	Withdraw(ctx context.Context, op domain.CashOperation) (*domain.CashTransaction, error)
	Deposit(ctx context.Context, op domain.CashOperation) (*domain.CashTransaction, error)
	GetTransaction(ctx context.Context, id int32) (*domain.CashTransaction, error)
	ListTransactions(ctx context.Context, filter domain.CashTransactionFilter, page, pageSize int32) ([]domain.CashTransaction, int32, error)
	Dashboard(ctx context.Context) (*domain.CashDashboard, error)
}

type InstaPayService interface {
	CreateAccount(ctx context.Context, acct *domain.InstaPayAccount, actorID string) error
	UpdateAccount(ctx context.Context, acct *domain.InstaPayAccount, actorID string) error
	GetAccount(ctx context.Context, id int32) (*domain.InstaPayAccount, error)
	ListAccounts(ctx context.Context, activeOnly bool) ([]domain.InstaPayAccount, error)

	Withdraw(ctx context.Context, op domain.InstaPayOperation) (*domain.InstaPayTransaction, error)
	Deposit(ctx context.Context, op domain.InstaPayOperation) (*domain.InstaPayTransaction, error)
	ListTransactions(ctx context.Context, accountID *int32, page, pageSize int32) ([]domain.InstaPayTransaction, int32, error)
}

type PhysicalCashService interface {
	Deposit(ctx context.Context, amount decimal.Decimal, description, actorID string) (*domain.PhysicalCashTransaction, error)
	Withdraw(ctx context.Context, amount decimal.Decimal, description, actorID string) (*domain.PhysicalCashTransaction, error)
	GetTransaction(ctx context.Context, id int32) (*domain.PhysicalCashTransaction, error)
	ListTransactions(ctx context.Context, txType *domain.TransactionType, from, to *time.Time, page, pageSize int32) ([]domain.PhysicalCashTransaction, int32, error)
}

type SupplierService interface {
	CreateSupplier(ctx context.Context, s *domain.Supplier, actorID string) error
	UpdateSupplier(ctx context.Context, s *domain.Supplier, actorID string) error
	GetSupplier(ctx context.Context, id int32) (*domain.Supplier, error)
	ListSuppliers(ctx context.Context) ([]domain.Supplier, error)
	Totals(ctx context.Context) (*domain.SupplierTotals, error)

	RecordEntry(ctx context.Context, entry *domain.SupplierTransaction) (*domain.SupplierTransaction, error)
	EditEntry(ctx context.Context, entry *domain.SupplierTransaction, actorID string) error
	ListEntries(ctx context.Context, supplierID int32, entryType *domain.EntryType, from, to *time.Time) ([]domain.SupplierTransaction, error)
}

type FawryService interface {
	RecordRegular(ctx context.Context, op domain.FawryOperation) (*domain.FawryTransaction, error)
	RecordPurchases(ctx context.Context, op domain.FawryOperation) (*domain.FawryTransaction, error)
	ListTransactions(ctx context.Context, serviceType *domain.FawryServiceType, page, pageSize int32) ([]domain.FawryTransaction, int32, error)
	ChannelSummaries(ctx context.Context) ([]domain.FawryChannelSummary, error)
}

type ReportService interface {
	SystemBalance(ctx context.Context) (*domain.SystemBalance, error)
	DailyProfit(ctx context.Context, date string) (*domain.DailyProfit, error)
	ProfitRange(ctx context.Context, from, to string) ([]domain.DailyProfit, error)
}

type ResetService interface {
	// ResetDailyLimits zeroes daily counters for lines whose last reset fell
	// on an earlier local day. Idempotent within a day.
	ResetDailyLimits(ctx context.Context) (int64, error)
	// ResetMonthlyLimits zeroes monthly counters and unfreezes limit-frozen
	// lines. No-op unless the local day of month is 1.
	ResetMonthlyLimits(ctx context.Context) (int64, error)
}

type AuditService interface {
	List(ctx context.Context, filter domain.AuditFilter, page, pageSize int32) ([]domain.AuditEntry, int32, error)
}
