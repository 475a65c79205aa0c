package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"cashdesk-backend/internal/domain"
	"cashdesk-backend/internal/logger"
	"cashdesk-backend/internal/repository"
	"cashdesk-backend/pkg/metrics"
)

type instaPayService struct {
	acctRepo repository.InstaPayRepository
	sysRepo  repository.SystemBalanceRepository
	metrics  *metrics.Collector
	loc      *time.Location
	now      func() time.Time
}

func NewInstaPayService(
	acctRepo repository.InstaPayRepository,
	sysRepo repository.SystemBalanceRepository,
	collector *metrics.Collector,
	loc *time.Location,
) InstaPayService {
	return &instaPayService{
		acctRepo: acctRepo,
		sysRepo:  sysRepo,
		metrics:  collector,
		loc:      loc,
		now:      time.Now,
	}
}

func (s *instaPayService) CreateAccount(ctx context.Context, acct *domain.InstaPayAccount, actorID string) error {
	if acct.CurrentBalance.IsNegative() {
		return fmt.Errorf("opening balance: %w", domain.ErrInvalidAmount)
	}
	taken, err := s.acctRepo.IdentifierExists(ctx, acct.PhoneNumber, acct.BankAccountNumber, 0)
	if err != nil {
		return err
	}
	if taken {
		return fmt.Errorf("phone or bank account already registered: %w", domain.ErrDuplicateIdentifier)
	}

	now := s.now().UTC()
	acct.Status = domain.AccountStatusActive
	acct.CreatedAt = now
	acct.UpdatedAt = now

	audit := &domain.AuditEntry{
		UserID:     actorID,
		ActionType: "Add",
		EntityType: "InstaPay",
		Details:    fmt.Sprintf("Added InstaPay account %s at %s", acct.PhoneNumber, acct.BankName),
		CreatedAt:  now,
	}
	if err := s.acctRepo.Create(ctx, acct, audit); err != nil {
		return err
	}
	logger.Info("instapay account created", "id", acct.ID, "bank", acct.BankName)
	return nil
}

// UpdateAccount edits contact and bank details. The balance is owned by the
// transaction log and carries over from the stored row.
func (s *instaPayService) UpdateAccount(ctx context.Context, acct *domain.InstaPayAccount, actorID string) error {
	existing, err := s.acctRepo.GetByID(ctx, acct.ID)
	if err != nil {
		return err
	}
	if acct.PhoneNumber != existing.PhoneNumber || acct.BankAccountNumber != existing.BankAccountNumber {
		taken, err := s.acctRepo.IdentifierExists(ctx, acct.PhoneNumber, acct.BankAccountNumber, acct.ID)
		if err != nil {
			return err
		}
		if taken {
			return fmt.Errorf("phone or bank account already registered: %w", domain.ErrDuplicateIdentifier)
		}
	}

	acct.CurrentBalance = existing.CurrentBalance
	acct.Status = existing.Status
	acct.UpdatedAt = s.now().UTC()

	audit := &domain.AuditEntry{
		UserID:     actorID,
		ActionType: "Update",
		EntityType: "InstaPay",
		EntityID:   &acct.ID,
		Details:    fmt.Sprintf("Updated InstaPay account %s at %s", acct.PhoneNumber, acct.BankName),
		CreatedAt:  acct.UpdatedAt,
	}
	return s.acctRepo.Update(ctx, acct, audit)
}

func (s *instaPayService) GetAccount(ctx context.Context, id int32) (*domain.InstaPayAccount, error) {
	return s.acctRepo.GetByID(ctx, id)
}

func (s *instaPayService) ListAccounts(ctx context.Context, activeOnly bool) ([]domain.InstaPayAccount, error) {
	return s.acctRepo.List(ctx, activeOnly)
}

// validFeeRate bounds the transfer fee percentage. The desk's standard
// tariffs are 1% and 2% but the rate is not pinned to them here.
func validFeeRate(rate decimal.Decimal) bool {
	return rate.IsPositive() && rate.LessThanOrEqual(decimal.NewFromInt(hundred))
}

// transferFee resolves the fee for an operation. A positive flat fee amount
// wins over the percentage rate; small transfers are quoted flat.
func transferFee(op domain.InstaPayOperation) (decimal.Decimal, error) {
	if op.FeeAmount.IsNegative() {
		return decimal.Zero, fmt.Errorf("fee amount %s: %w", op.FeeAmount, domain.ErrInvalidAmount)
	}
	if op.FeeAmount.IsPositive() {
		return op.FeeAmount, nil
	}
	if !validFeeRate(op.FeeRate) {
		return decimal.Zero, fmt.Errorf("fee rate %s: %w", op.FeeRate, domain.ErrInvalidAmount)
	}
	return op.Amount.Mul(op.FeeRate).Div(decimal.NewFromInt(hundred)), nil
}

// Withdraw sends money out of the bank account on a customer's behalf. The
// customer hands over amount plus the fee in cash, so the drawer gains the
// gross while the account loses it.
func (s *instaPayService) Withdraw(ctx context.Context, op domain.InstaPayOperation) (*domain.InstaPayTransaction, error) {
	if !op.Amount.IsPositive() {
		return nil, fmt.Errorf("withdraw amount %s: %w", op.Amount, domain.ErrInvalidAmount)
	}
	fees, err := transferFee(op)
	if err != nil {
		return nil, err
	}

	acct, err := s.acctRepo.GetByID(ctx, op.AccountID)
	if err != nil {
		return nil, err
	}
	if acct.Status != domain.AccountStatusActive {
		return nil, fmt.Errorf("instapay account %s is %s: %w", acct.PhoneNumber, acct.Status, domain.ErrInactiveAccount)
	}

	net := op.Amount.Add(fees)
	if acct.CurrentBalance.LessThan(net) {
		return nil, fmt.Errorf("account balance %s below %s: %w", acct.CurrentBalance, net, domain.ErrInsufficientFunds)
	}

	now := s.now().UTC()
	prev := acct.UpdatedAt
	acct.CurrentBalance = acct.CurrentBalance.Sub(net)
	acct.UpdatedAt = now

	t := &domain.InstaPayTransaction{
		InstaPayID:  acct.ID,
		Amount:      op.Amount,
		FeeRate:     op.FeeRate,
		Fees:        fees,
		NetAmount:   net,
		Type:        domain.TransactionTypeWithdraw,
		Description: op.Description,
		Status:      domain.TransactionStatusCompleted,
		UserID:      op.ActorID,
		CreatedAt:   now,
	}

	mut := &repository.InstaPayMutation{
		Account:       acct,
		PrevUpdatedAt: prev,
		Transaction:   t,
		CashDelta:     net,
		ProfitFee:     fees,
		ProfitDate:    now.In(s.loc).Format("2006-01-02"),
		Audit: &domain.AuditEntry{
			UserID:     op.ActorID,
			ActionType: "Withdraw",
			EntityType: "InstaPay",
			Details:    fmt.Sprintf("InstaPay withdraw %s from %s, fees %s", op.Amount, acct.PhoneNumber, fees),
			CreatedAt:  now,
		},
	}
	if err := s.acctRepo.ApplyTransaction(ctx, mut); err != nil {
		return nil, err
	}
	s.metrics.RecordTransaction("instapay", string(t.Status))
	return t, nil
}

// Deposit receives money into the bank account and pays the customer cash
// net of the fee from the drawer.
func (s *instaPayService) Deposit(ctx context.Context, op domain.InstaPayOperation) (*domain.InstaPayTransaction, error) {
	if !op.Amount.IsPositive() {
		return nil, fmt.Errorf("deposit amount %s: %w", op.Amount, domain.ErrInvalidAmount)
	}
	fees, err := transferFee(op)
	if err != nil {
		return nil, err
	}

	acct, err := s.acctRepo.GetByID(ctx, op.AccountID)
	if err != nil {
		return nil, err
	}
	if acct.Status != domain.AccountStatusActive {
		return nil, fmt.Errorf("instapay account %s is %s: %w", acct.PhoneNumber, acct.Status, domain.ErrInactiveAccount)
	}

	// A flat fee can exceed the principal; the customer would owe cash on a
	// deposit, which the desk does not do.
	net := op.Amount.Sub(fees)
	if net.IsNegative() {
		return nil, fmt.Errorf("fees %s exceed amount %s: %w", fees, op.Amount, domain.ErrInvalidAmount)
	}

	sys, err := s.sysRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if sys.TotalPhysicalCash.LessThan(net) {
		return nil, fmt.Errorf("drawer holds %s, need %s: %w", sys.TotalPhysicalCash, net, domain.ErrInsufficientFunds)
	}

	now := s.now().UTC()
	prev := acct.UpdatedAt
	acct.CurrentBalance = acct.CurrentBalance.Add(net)
	acct.UpdatedAt = now

	t := &domain.InstaPayTransaction{
		InstaPayID:  acct.ID,
		Amount:      op.Amount,
		FeeRate:     op.FeeRate,
		Fees:        fees,
		NetAmount:   net,
		Type:        domain.TransactionTypeDeposit,
		Description: op.Description,
		Status:      domain.TransactionStatusCompleted,
		UserID:      op.ActorID,
		CreatedAt:   now,
	}

	mut := &repository.InstaPayMutation{
		Account:       acct,
		PrevUpdatedAt: prev,
		Transaction:   t,
		CashDelta:     net.Neg(),
		ProfitFee:     fees,
		ProfitDate:    now.In(s.loc).Format("2006-01-02"),
		Audit: &domain.AuditEntry{
			UserID:     op.ActorID,
			ActionType: "Deposit",
			EntityType: "InstaPay",
			Details:    fmt.Sprintf("InstaPay deposit %s to %s, fees %s, paid out %s", op.Amount, acct.PhoneNumber, fees, net),
			CreatedAt:  now,
		},
	}
	if err := s.acctRepo.ApplyTransaction(ctx, mut); err != nil {
		return nil, err
	}
	s.metrics.RecordTransaction("instapay", string(t.Status))
	return t, nil
}

func (s *instaPayService) ListTransactions(ctx context.Context, accountID *int32, page, pageSize int32) ([]domain.InstaPayTransaction, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 200 {
		pageSize = 50
	}
	return s.acctRepo.ListTransactions(ctx, accountID, page, pageSize)
}
