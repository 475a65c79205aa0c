package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"cashdesk-backend/internal/domain"
	"cashdesk-backend/internal/repository"
)

type MockCashLineRepo struct {
	mock.Mock
}

func (m *MockCashLineRepo) Create(ctx context.Context, line *domain.CashLine, audit *domain.AuditEntry) error {
	return m.Called(ctx, line, audit).Error(0)
}

func (m *MockCashLineRepo) GetByID(ctx context.Context, id int32) (*domain.CashLine, error) {
	args := m.Called(ctx, id)
	if line := args.Get(0); line != nil {
		return line.(*domain.CashLine), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCashLineRepo) Update(ctx context.Context, line *domain.CashLine, balanceDelta decimal.Decimal, audit *domain.AuditEntry) error {
	return m.Called(ctx, line, balanceDelta, audit).Error(0)
}

func (m *MockCashLineRepo) SetStatus(ctx context.Context, id int32, status domain.AccountStatus, audit *domain.AuditEntry) error {
	return m.Called(ctx, id, status, audit).Error(0)
}

func (m *MockCashLineRepo) Delete(ctx context.Context, id int32, audit *domain.AuditEntry) error {
	return m.Called(ctx, id, audit).Error(0)
}

func (m *MockCashLineRepo) List(ctx context.Context, includeDeleted bool) ([]domain.CashLine, error) {
	args := m.Called(ctx, includeDeleted)
	if lines := args.Get(0); lines != nil {
		return lines.([]domain.CashLine), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCashLineRepo) PhoneExists(ctx context.Context, phone string, excludeID int32) (bool, error) {
	args := m.Called(ctx, phone, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCashLineRepo) NationalIDExists(ctx context.Context, nationalID string, excludeID int32) (bool, error) {
	args := m.Called(ctx, nationalID, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCashLineRepo) ApplyTransaction(ctx context.Context, mut *repository.CashLineMutation) error {
	return m.Called(ctx, mut).Error(0)
}

func (m *MockCashLineRepo) GetTransaction(ctx context.Context, id int32) (*domain.CashTransaction, error) {
	args := m.Called(ctx, id)
	if t := args.Get(0); t != nil {
		return t.(*domain.CashTransaction), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCashLineRepo) ListTransactions(ctx context.Context, filter domain.CashTransactionFilter, page, pageSize int32) ([]domain.CashTransaction, int32, error) {
	args := m.Called(ctx, filter, page, pageSize)
	if txs := args.Get(0); txs != nil {
		return txs.([]domain.CashTransaction), args.Get(1).(int32), args.Error(2)
	}
	return nil, args.Get(1).(int32), args.Error(2)
}

func (m *MockCashLineRepo) DailyActivity(ctx context.Context, from, to time.Time) (*domain.CashDashboard, error) {
	args := m.Called(ctx, from, to)
	if d := args.Get(0); d != nil {
		return d.(*domain.CashDashboard), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCashLineRepo) ResetDailyCounters(ctx context.Context, ids []int32, resetAt time.Time) (int64, error) {
	args := m.Called(ctx, ids, resetAt)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCashLineRepo) ResetMonthlyCounters(ctx context.Context, resetAt time.Time) (int64, error) {
	args := m.Called(ctx, resetAt)
	return args.Get(0).(int64), args.Error(1)
}

type MockInstaPayRepo struct {
	mock.Mock
}

func (m *MockInstaPayRepo) Create(ctx context.Context, acct *domain.InstaPayAccount, audit *domain.AuditEntry) error {
	return m.Called(ctx, acct, audit).Error(0)
}

func (m *MockInstaPayRepo) GetByID(ctx context.Context, id int32) (*domain.InstaPayAccount, error) {
	args := m.Called(ctx, id)
	if acct := args.Get(0); acct != nil {
		return acct.(*domain.InstaPayAccount), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockInstaPayRepo) Update(ctx context.Context, acct *domain.InstaPayAccount, audit *domain.AuditEntry) error {
	return m.Called(ctx, acct, audit).Error(0)
}

func (m *MockInstaPayRepo) List(ctx context.Context, activeOnly bool) ([]domain.InstaPayAccount, error) {
	args := m.Called(ctx, activeOnly)
	if accts := args.Get(0); accts != nil {
		return accts.([]domain.InstaPayAccount), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockInstaPayRepo) IdentifierExists(ctx context.Context, phone, bankAccount string, excludeID int32) (bool, error) {
	args := m.Called(ctx, phone, bankAccount, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockInstaPayRepo) ApplyTransaction(ctx context.Context, mut *repository.InstaPayMutation) error {
	return m.Called(ctx, mut).Error(0)
}

func (m *MockInstaPayRepo) ListTransactions(ctx context.Context, accountID *int32, page, pageSize int32) ([]domain.InstaPayTransaction, int32, error) {
	args := m.Called(ctx, accountID, page, pageSize)
	if txs := args.Get(0); txs != nil {
		return txs.([]domain.InstaPayTransaction), args.Get(1).(int32), args.Error(2)
	}
	return nil, args.Get(1).(int32), args.Error(2)
}

type MockPhysicalCashRepo struct {
	mock.Mock
}

func (m *MockPhysicalCashRepo) ApplyTransaction(ctx context.Context, mut *repository.PhysicalCashMutation) error {
	return m.Called(ctx, mut).Error(0)
}

func (m *MockPhysicalCashRepo) GetTransaction(ctx context.Context, id int32) (*domain.PhysicalCashTransaction, error) {
	args := m.Called(ctx, id)
	if t := args.Get(0); t != nil {
		return t.(*domain.PhysicalCashTransaction), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPhysicalCashRepo) ListTransactions(ctx context.Context, txType *domain.TransactionType, from, to *time.Time, page, pageSize int32) ([]domain.PhysicalCashTransaction, int32, error) {
	args := m.Called(ctx, txType, from, to, page, pageSize)
	if txs := args.Get(0); txs != nil {
		return txs.([]domain.PhysicalCashTransaction), args.Get(1).(int32), args.Error(2)
	}
	return nil, args.Get(1).(int32), args.Error(2)
}

type MockSupplierRepo struct {
	mock.Mock
}

func (m *MockSupplierRepo) Create(ctx context.Context, s *domain.Supplier, audit *domain.AuditEntry) error {
	return m.Called(ctx, s, audit).Error(0)
}

func (m *MockSupplierRepo) GetByID(ctx context.Context, id int32) (*domain.Supplier, error) {
	args := m.Called(ctx, id)
	if s := args.Get(0); s != nil {
		return s.(*domain.Supplier), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSupplierRepo) Update(ctx context.Context, s *domain.Supplier, audit *domain.AuditEntry) error {
	return m.Called(ctx, s, audit).Error(0)
}

func (m *MockSupplierRepo) List(ctx context.Context) ([]domain.Supplier, error) {
	args := m.Called(ctx)
	if sups := args.Get(0); sups != nil {
		return sups.([]domain.Supplier), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSupplierRepo) Totals(ctx context.Context) (*domain.SupplierTotals, error) {
	args := m.Called(ctx)
	if t := args.Get(0); t != nil {
		return t.(*domain.SupplierTotals), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSupplierRepo) ApplyEntry(ctx context.Context, mut *repository.SupplierMutation) error {
	return m.Called(ctx, mut).Error(0)
}

func (m *MockSupplierRepo) ReplaceEntry(ctx context.Context, old, updated *domain.SupplierTransaction, audit *domain.AuditEntry) error {
	return m.Called(ctx, old, updated, audit).Error(0)
}

func (m *MockSupplierRepo) GetEntry(ctx context.Context, id int32) (*domain.SupplierTransaction, error) {
	args := m.Called(ctx, id)
	if e := args.Get(0); e != nil {
		return e.(*domain.SupplierTransaction), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSupplierRepo) ListEntries(ctx context.Context, supplierID int32, entryType *domain.EntryType, from, to *time.Time) ([]domain.SupplierTransaction, error) {
	args := m.Called(ctx, supplierID, entryType, from, to)
	if entries := args.Get(0); entries != nil {
		return entries.([]domain.SupplierTransaction), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockFawryRepo struct {
	mock.Mock
}

func (m *MockFawryRepo) ApplyTransaction(ctx context.Context, mut *repository.FawryMutation) error {
	return m.Called(ctx, mut).Error(0)
}

func (m *MockFawryRepo) ListTransactions(ctx context.Context, serviceType *domain.FawryServiceType, page, pageSize int32) ([]domain.FawryTransaction, int32, error) {
	args := m.Called(ctx, serviceType, page, pageSize)
	if txs := args.Get(0); txs != nil {
		return txs.([]domain.FawryTransaction), args.Get(1).(int32), args.Error(2)
	}
	return nil, args.Get(1).(int32), args.Error(2)
}

func (m *MockFawryRepo) ChannelSummary(ctx context.Context, serviceType domain.FawryServiceType, dayStart, dayEnd time.Time) (*domain.FawryChannelSummary, error) {
	args := m.Called(ctx, serviceType, dayStart, dayEnd)
	if s := args.Get(0); s != nil {
		return s.(*domain.FawryChannelSummary), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockSystemBalanceRepo struct {
	mock.Mock
}

func (m *MockSystemBalanceRepo) Get(ctx context.Context) (*domain.SystemBalance, error) {
	args := m.Called(ctx)
	if sb := args.Get(0); sb != nil {
		return sb.(*domain.SystemBalance), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockDailyProfitRepo struct {
	mock.Mock
}

func (m *MockDailyProfitRepo) GetByDate(ctx context.Context, date string) (*domain.DailyProfit, error) {
	args := m.Called(ctx, date)
	if p := args.Get(0); p != nil {
		return p.(*domain.DailyProfit), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDailyProfitRepo) ListRange(ctx context.Context, from, to string) ([]domain.DailyProfit, error) {
	args := m.Called(ctx, from, to)
	if profits := args.Get(0); profits != nil {
		return profits.([]domain.DailyProfit), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockAuditRepo struct {
	mock.Mock
}

func (m *MockAuditRepo) List(ctx context.Context, filter domain.AuditFilter, page, pageSize int32) ([]domain.AuditEntry, int32, error) {
	args := m.Called(ctx, filter, page, pageSize)
	if entries := args.Get(0); entries != nil {
		return entries.([]domain.AuditEntry), args.Get(1).(int32), args.Error(2)
	}
	return nil, args.Get(1).(int32), args.Error(2)
}
