package repository

import (
	"context"
	"time"

	"cashdesk-backend/internal/domain"

	"github.com/shopspring/decimal"
)

// CashLineMutation is everything one cash line operation commits atomically:
// the updated line row, the transaction record, the physical-cash delta on
// the aggregate, the fee added to the day's profit, and the audit entry.
// CashDelta and ProfitFee are zero for frozen outcomes.
type CashLineMutation struct {
	Line          *domain.CashLine
	PrevUpdatedAt time.Time // optimistic concurrency token for the line row
	Transaction   *domain.CashTransaction
	CashDelta     decimal.Decimal
	ProfitFee     decimal.Decimal
	ProfitDate    string
	Audit         *domain.AuditEntry
}

// InstaPayMutation mirrors CashLineMutation for the InstaPay channel. The
// InstaPay aggregate column is recomputed from active account balances
// inside the same transaction rather than adjusted incrementally.
type InstaPayMutation struct {
	Account       *domain.InstaPayAccount
	PrevUpdatedAt time.Time
	Transaction   *domain.InstaPayTransaction
	CashDelta     decimal.Decimal
	ProfitFee     decimal.Decimal
	ProfitDate    string
	Audit         *domain.AuditEntry
}

// PhysicalCashMutation commits one drawer movement with its aggregate delta.
type PhysicalCashMutation struct {
	Transaction *domain.PhysicalCashTransaction
	CashDelta   decimal.Decimal
	Audit       *domain.AuditEntry
}

// FawryMutation commits one Fawry movement with its aggregate delta and fee.
type FawryMutation struct {
	Transaction *domain.FawryTransaction
	CashDelta   decimal.Decimal
	ProfitFee   decimal.Decimal
	ProfitDate  string
	Audit       *domain.AuditEntry
}

// SupplierMutation commits one supplier ledger entry and its balance delta.
type SupplierMutation struct {
	Supplier    *domain.Supplier
	Transaction *domain.SupplierTransaction
	Audit       *domain.AuditEntry
}

type CashLineRepository interface {
	Create(ctx context.Context, line *domain.CashLine, audit *domain.AuditEntry) error
	GetByID(ctx context.Context, id int32) (*domain.CashLine, error)
	Update(ctx context.Context, line *domain.CashLine, balanceDelta decimal.Decimal, audit *domain.AuditEntry) error
	SetStatus(ctx context.Context, id int32, status domain.AccountStatus, audit *domain.AuditEntry) error
	Delete(ctx context.Context, id int32, audit *domain.AuditEntry) error
	List(ctx context.Context, includeDeleted bool) ([]domain.CashLine, error)
	PhoneExists(ctx context.Context, phone string, excludeID int32) (bool, error)
	NationalIDExists(ctx context.Context, nationalID string, excludeID int32) (bool, error)

	ApplyTransaction(ctx context.Context, mut *CashLineMutation) error
	GetTransaction(ctx context.Context, id int32) (*domain.CashTransaction, error)
	ListTransactions(ctx context.Context, filter domain.CashTransactionFilter, page, pageSize int32) ([]domain.CashTransaction, int32, error)
	// DailyActivity sums completed transactions in [from, to) for the
	// dashboard. Only the activity totals of the result are populated.
	DailyActivity(ctx context.Context, from, to time.Time) (*domain.CashDashboard, error)

	ResetDailyCounters(ctx context.Context, ids []int32, resetAt time.Time) (int64, error)
	ResetMonthlyCounters(ctx context.Context, resetAt time.Time) (int64, error)
}

type InstaPayRepository interface {
	Create(ctx context.Context, acct *domain.InstaPayAccount, audit *domain.AuditEntry) error
	GetByID(ctx context.Context, id int32) (*domain.InstaPayAccount, error)
	Update(ctx context.Context, acct *domain.InstaPayAccount, audit *domain.AuditEntry) error
	List(ctx context.Context, activeOnly bool) ([]domain.InstaPayAccount, error)
	IdentifierExists(ctx context.Context, phone, bankAccount string, excludeID int32) (bool, error)

	ApplyTransaction(ctx context.Context, mut *InstaPayMutation) error
	ListTransactions(ctx context.Context, accountID *int32, page, pageSize int32) ([]domain.InstaPayTransaction, int32, error)
}

type PhysicalCashRepository interface {
	ApplyTransaction(ctx context.Context, mut *PhysicalCashMutation) error
	GetTransaction(ctx context.Context, id int32) (*domain.PhysicalCashTransaction, error)
	ListTransactions(ctx context.Context, txType *domain.TransactionType, from, to *time.Time, page, pageSize int32) ([]domain.PhysicalCashTransaction, int32, error)
}

type SupplierRepository interface {
	Create(ctx context.Context, s *domain.Supplier, audit *domain.AuditEntry) error
	GetByID(ctx context.Context, id int32) (*domain.Supplier, error)
	Update(ctx context.Context, s *domain.Supplier, audit *domain.AuditEntry) error
	List(ctx context.Context) ([]domain.Supplier, error)
	Totals(ctx context.Context) (*domain.SupplierTotals, error)

	ApplyEntry(ctx context.Context, mut *SupplierMutation) error
	ReplaceEntry(ctx context.Context, old, updated *domain.SupplierTransaction, audit *domain.AuditEntry) error
	GetEntry(ctx context.Context, id int32) (*domain.SupplierTransaction, error)
	ListEntries(ctx context.Context, supplierID int32, entryType *domain.EntryType, from, to *time.Time) ([]domain.SupplierTransaction, error)
}

type FawryRepository interface {
	ApplyTransaction(ctx context.Context, mut *FawryMutation) error
	ListTransactions(ctx context.Context, serviceType *domain.FawryServiceType, page, pageSize int32) ([]domain.FawryTransaction, int32, error)
	ChannelSummary(ctx context.Context, serviceType domain.FawryServiceType, dayStart, dayEnd time.Time) (*domain.FawryChannelSummary, error)
}

type SystemBalanceRepository interface {
	// Get returns the singleton aggregate row, creating it lazily.
	Get(ctx context.Context) (*domain.SystemBalance, error)
}

type DailyProfitRepository interface {
	GetByDate(ctx context.Context, date string) (*domain.DailyProfit, error)
	ListRange(ctx context.Context, from, to string) ([]domain.DailyProfit, error)
}

// AuditRepository only reads; entries are inserted by the repositories that
// commit the audited change, inside the same transaction.
type AuditRepository interface {
	List(ctx context.Context, filter domain.AuditFilter, page, pageSize int32) ([]domain.AuditEntry, int32, error)
}
