package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"cashdesk-backend/internal/domain"
	"cashdesk-backend/internal/repository"
	"cashdesk-backend/pkg/metrics"
)

type physicalCashService struct {
	cashRepo repository.PhysicalCashRepository
	sysRepo  repository.SystemBalanceRepository
	metrics  *metrics.Collector
	now      func() time.Time
}

func NewPhysicalCashService(
	cashRepo repository.PhysicalCashRepository,
	sysRepo repository.SystemBalanceRepository,
	collector *metrics.Collector,
) PhysicalCashService {
	return &physicalCashService{
		cashRepo: cashRepo,
		sysRepo:  sysRepo,
		metrics:  collector,
		now:      time.Now,
	}
}

func (s *physicalCashService) Deposit(ctx context.Context, amount decimal.Decimal, description, actorID string) (*domain.PhysicalCashTransaction, error) {
	return s.apply(ctx, domain.TransactionTypeDeposit, amount, description, actorID)
}

// Withdraw records an expense out of the drawer. The drawer must hold enough
// cash; the aggregate moves symmetrically with deposits.
func (s *physicalCashService) Withdraw(ctx context.Context, amount decimal.Decimal, description, actorID string) (*domain.PhysicalCashTransaction, error) {
	return s.apply(ctx, domain.TransactionTypeWithdraw, amount, description, actorID)
}

func (s *physicalCashService) apply(ctx context.Context, txType domain.TransactionType, amount decimal.Decimal, description, actorID string) (*domain.PhysicalCashTransaction, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%s amount %s: %w", txType, amount, domain.ErrInvalidAmount)
	}

	delta := amount
	if txType == domain.TransactionTypeWithdraw {
		sys, err := s.sysRepo.Get(ctx)
		if err != nil {
			return nil, err
		}
		if sys.TotalPhysicalCash.LessThan(amount) {
			return nil, fmt.Errorf("drawer holds %s, need %s: %w", sys.TotalPhysicalCash, amount, domain.ErrInsufficientFunds)
		}
		delta = amount.Neg()
	}

	now := s.now().UTC()
	t := &domain.PhysicalCashTransaction{
		Amount:      amount,
		Type:        txType,
		Description: description,
		UserID:      actorID,
		CreatedAt:   now,
	}
	mut := &repository.PhysicalCashMutation{
		Transaction: t,
		CashDelta:   delta,
		Audit: &domain.AuditEntry{
			UserID:     actorID,
			ActionType: auditAction(txType),
			EntityType: "PhysicalCash",
			Details:    fmt.Sprintf("Drawer %s %s: %s", txType, amount, description),
			CreatedAt:  now,
		},
	}
	if err := s.cashRepo.ApplyTransaction(ctx, mut); err != nil {
		return nil, err
	}
	s.metrics.RecordTransaction("physical_cash", string(domain.TransactionStatusCompleted))
	return t, nil
}

func auditAction(t domain.TransactionType) string {
	if t == domain.TransactionTypeWithdraw {
		return "Withdraw"
	}
	return "Deposit"
}

func (s *physicalCashService) GetTransaction(ctx context.Context, id int32) (*domain.PhysicalCashTransaction, error) {
	return s.cashRepo.GetTransaction(ctx, id)
}

func (s *physicalCashService) ListTransactions(ctx context.Context, txType *domain.TransactionType, from, to *time.Time, page, pageSize int32) ([]domain.PhysicalCashTransaction, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 200 {
		pageSize = 50
	}
	return s.cashRepo.ListTransactions(ctx, txType, from, to, page, pageSize)
}
