package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"cashdesk-backend/internal/domain"
	"cashdesk-backend/internal/logger"
	"cashdesk-backend/internal/repository"
	"cashdesk-backend/pkg/metrics"
)

const hundred = 100

type cashLineService struct {
	lineRepo repository.CashLineRepository
	sysRepo  repository.SystemBalanceRepository
	metrics  *metrics.Collector
	loc      *time.Location
	now      func() time.Time
}

func NewCashLineService(
	lineRepo repository.CashLineRepository,
	sysRepo repository.SystemBalanceRepository,
	collector *metrics.Collector,
	loc *time.Location,
) CashLineService {
	return &cashLineService{
		lineRepo: lineRepo,
		sysRepo:  sysRepo,
		metrics:  collector,
		loc:      loc,
		now:      time.Now,
	}
}

// localDate renders t as a calendar day in the business time zone. Profit
// rows and reset windows are keyed on this, not on UTC days.
func (s *cashLineService) localDate(t time.Time) string {
	return t.In(s.loc).Format("2006-01-02")
}

func (s *cashLineService) CreateLine(ctx context.Context, line *domain.CashLine, actorID string) error {
	if line.CurrentBalance.IsNegative() {
		return fmt.Errorf("opening balance: %w", domain.ErrInvalidAmount)
	}
	if line.MonthlyWithdrawLimit.LessThan(line.DailyWithdrawLimit) ||
		line.MonthlyDepositLimit.LessThan(line.DailyDepositLimit) {
		return fmt.Errorf("monthly limit below daily limit: %w", domain.ErrInvalidAmount)
	}

	if taken, err := s.lineRepo.PhoneExists(ctx, line.PhoneNumber, 0); err != nil {
		return err
	} else if taken {
		return fmt.Errorf("phone number %s: %w", line.PhoneNumber, domain.ErrDuplicateIdentifier)
	}
	if taken, err := s.lineRepo.NationalIDExists(ctx, line.NationalID, 0); err != nil {
		return err
	} else if taken {
		return fmt.Errorf("national id: %w", domain.ErrDuplicateIdentifier)
	}

	now := s.now().UTC()
	line.Status = domain.AccountStatusActive
	line.CreatedAt = now
	line.UpdatedAt = now

	audit := &domain.AuditEntry{
		UserID:     actorID,
		ActionType: "Add",
		EntityType: "CashLine",
		Details:    fmt.Sprintf("Added cash line %s (%s), opening balance %s", line.PhoneNumber, line.NetworkType, line.CurrentBalance),
		CreatedAt:  now,
	}
	if err := s.lineRepo.Create(ctx, line, audit); err != nil {
		return err
	}
	logger.Info("cash line created", "id", line.ID, "phone", line.PhoneNumber)
	return nil
}

func (s *cashLineService) UpdateLine(ctx context.Context, line *domain.CashLine, actorID string) error {
	existing, err := s.lineRepo.GetByID(ctx, line.ID)
	if err != nil {
		return err
	}
	if existing.Status == domain.AccountStatusDeleted {
		return domain.ErrNotFound
	}
	if line.MonthlyWithdrawLimit.LessThan(line.DailyWithdrawLimit) ||
		line.MonthlyDepositLimit.LessThan(line.DailyDepositLimit) {
		return fmt.Errorf("monthly limit below daily limit: %w", domain.ErrInvalidAmount)
	}

	if line.PhoneNumber != existing.PhoneNumber {
		if taken, err := s.lineRepo.PhoneExists(ctx, line.PhoneNumber, line.ID); err != nil {
			return err
		} else if taken {
			return fmt.Errorf("phone number %s: %w", line.PhoneNumber, domain.ErrDuplicateIdentifier)
		}
	}
	if line.NationalID != existing.NationalID {
		if taken, err := s.lineRepo.NationalIDExists(ctx, line.NationalID, line.ID); err != nil {
			return err
		} else if taken {
			return fmt.Errorf("national id: %w", domain.ErrDuplicateIdentifier)
		}
	}

	balanceDelta := line.CurrentBalance.Sub(existing.CurrentBalance)
	line.Status = existing.Status
	line.UpdatedAt = s.now().UTC()

	audit := &domain.AuditEntry{
		UserID:     actorID,
		ActionType: "Update",
		EntityType: "CashLine",
		EntityID:   &line.ID,
		Details:    fmt.Sprintf("Updated cash line %s, balance delta %s", line.PhoneNumber, balanceDelta),
		CreatedAt:  line.UpdatedAt,
	}
	return s.lineRepo.Update(ctx, line, balanceDelta, audit)
}

func (s *cashLineService) DeleteLine(ctx context.Context, id int32, actorID string) error {
	now := s.now().UTC()
	audit := &domain.AuditEntry{
		UserID:     actorID,
		ActionType: "Delete",
		EntityType: "CashLine",
		EntityID:   &id,
		Details:    fmt.Sprintf("Deleted cash line %d", id),
		CreatedAt:  now,
	}
	return s.lineRepo.Delete(ctx, id, audit)
}

func (s *cashLineService) FreezeLine(ctx context.Context, id int32, actorID string) error {
	return s.setStatus(ctx, id, domain.AccountStatusFrozen, "Freeze", actorID)
}

func (s *cashLineService) UnfreezeLine(ctx context.Context, id int32, actorID string) error {
	return s.setStatus(ctx, id, domain.AccountStatusActive, "Unfreeze", actorID)
}

func (s *cashLineService) setStatus(ctx context.Context, id int32, status domain.AccountStatus, action, actorID string) error {
	line, err := s.lineRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if line.Status == domain.AccountStatusDeleted {
		return domain.ErrNotFound
	}
	audit := &domain.AuditEntry{
		UserID:     actorID,
		ActionType: action,
		EntityType: "CashLine",
		EntityID:   &id,
		Details:    fmt.Sprintf("%s cash line %s", action, line.PhoneNumber),
		CreatedAt:  s.now().UTC(),
	}
	return s.lineRepo.SetStatus(ctx, id, status, audit)
}

func (s *cashLineService) GetLine(ctx context.Context, id int32) (*domain.CashLine, error) {
	line, err := s.lineRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if line.Status == domain.AccountStatusDeleted {
		return nil, domain.ErrNotFound
	}
	return line, nil
}

func (s *cashLineService) ListLines(ctx context.Context) ([]domain.CashLine, error) {
	return s.lineRepo.List(ctx, false)
}

// Withdraw moves amount off the line and hands the same amount of cash out
// of the drawer; the commission is profit booked against the local day.
// Exceeding either allowance freezes the line and records the attempt
// without moving money.
func (s *cashLineService) Withdraw(ctx context.Context, op domain.CashOperation) (*domain.CashTransaction, error) {
	if !op.Amount.IsPositive() {
		return nil, fmt.Errorf("withdraw amount %s: %w", op.Amount, domain.ErrInvalidAmount)
	}
	if op.CommissionRate.IsNegative() || op.CommissionRate.GreaterThan(decimal.NewFromInt(hundred)) {
		return nil, fmt.Errorf("commission rate %s: %w", op.CommissionRate, domain.ErrInvalidAmount)
	}

	line, err := s.lineRepo.GetByID(ctx, op.CashLineID)
	if err != nil {
		return nil, err
	}
	if line.Status == domain.AccountStatusDeleted {
		return nil, domain.ErrNotFound
	}
	if line.Status != domain.AccountStatusActive {
		return nil, fmt.Errorf("cash line %s is %s: %w", line.PhoneNumber, line.Status, domain.ErrInactiveAccount)
	}
	if line.CurrentBalance.LessThan(op.Amount) {
		return nil, fmt.Errorf("balance %s below %s: %w", line.CurrentBalance, op.Amount, domain.ErrInsufficientFunds)
	}

	exceeds := line.ExceedsLimits(domain.TransactionTypeWithdraw, op.Amount)
	if !exceeds {
		// The customer is paid from the drawer. Frozen attempts move no
		// cash, so they skip the check.
		sys, err := s.sysRepo.Get(ctx)
		if err != nil {
			return nil, err
		}
		if sys.TotalPhysicalCash.LessThan(op.Amount) {
			return nil, fmt.Errorf("drawer holds %s, need %s: %w", sys.TotalPhysicalCash, op.Amount, domain.ErrInsufficientFunds)
		}
	}

	now := s.now().UTC()
	fees := op.Amount.Mul(op.CommissionRate).Div(decimal.NewFromInt(hundred))
	t := &domain.CashTransaction{
		CashLineID:      line.ID,
		Amount:          op.Amount,
		Fees:            fees,
		NetAmount:       op.Amount.Sub(fees),
		CommissionRate:  op.CommissionRate,
		Type:            domain.TransactionTypeWithdraw,
		RecipientNumber: op.RecipientNumber,
		Description:     op.Description,
		UserID:          op.ActorID,
		Reference:       uuid.NewString(),
		CreatedAt:       now,
	}

	mut := &repository.CashLineMutation{
		Line:          line,
		PrevUpdatedAt: line.UpdatedAt,
		Transaction:   t,
		ProfitDate:    s.localDate(now),
	}

	if exceeds {
		// The attempt is recorded but no balances move. The line stays
		// frozen until the monthly reset or a manual unfreeze.
		t.Status = domain.TransactionStatusFrozen
		until := s.nextMonthStart(now)
		t.FrozenUntil = &until
		line.Status = domain.AccountStatusFrozen
	} else {
		t.Status = domain.TransactionStatusCompleted
		line.CurrentBalance = line.CurrentBalance.Sub(op.Amount)
		line.DailyWithdrawUsed = line.DailyWithdrawUsed.Add(op.Amount)
		line.MonthlyWithdrawUsed = line.MonthlyWithdrawUsed.Add(op.Amount)
		mut.CashDelta = op.Amount.Neg()
		mut.ProfitFee = fees
	}
	line.UpdatedAt = now

	mut.Audit = &domain.AuditEntry{
		UserID:     op.ActorID,
		ActionType: "Withdraw",
		EntityType: "CashTransaction",
		Details:    fmt.Sprintf("Withdraw %s from line %s (%s), fees %s", op.Amount, line.PhoneNumber, t.Status, fees),
		CreatedAt:  now,
	}

	if err := s.lineRepo.ApplyTransaction(ctx, mut); err != nil {
		return nil, err
	}
	s.metrics.RecordTransaction("cash_line", string(t.Status))
	if t.Status == domain.TransactionStatusFrozen {
		logger.Warn("cash line frozen, limit exceeded", "id", line.ID, "phone", line.PhoneNumber, "amount", op.Amount)
	}
	return t, nil
}

// Deposit moves customer cash onto the line. The drawer must hold enough
// cash to cover the amount. NO_DEDUCTION books no fee; the other modes
// charge amount times the commission rate.
func (s *cashLineService) Deposit(ctx context.Context, op domain.CashOperation) (*domain.CashTransaction, error) {
	if !op.Amount.IsPositive() {
		return nil, fmt.Errorf("deposit amount %s: %w", op.Amount, domain.ErrInvalidAmount)
	}
	if op.DepositType != domain.DepositTypeNoDeduction &&
		(!op.CommissionRate.IsPositive() || op.CommissionRate.GreaterThan(decimal.NewFromInt(hundred))) {
		return nil, fmt.Errorf("commission rate %s: %w", op.CommissionRate, domain.ErrInvalidAmount)
	}

	line, err := s.lineRepo.GetByID(ctx, op.CashLineID)
	if err != nil {
		return nil, err
	}
	if line.Status == domain.AccountStatusDeleted {
		return nil, domain.ErrNotFound
	}
	if line.Status != domain.AccountStatusActive {
		return nil, fmt.Errorf("cash line %s is %s: %w", line.PhoneNumber, line.Status, domain.ErrInactiveAccount)
	}

	sys, err := s.sysRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if sys.TotalPhysicalCash.LessThan(op.Amount) {
		return nil, fmt.Errorf("drawer holds %s, need %s: %w", sys.TotalPhysicalCash, op.Amount, domain.ErrInsufficientFunds)
	}

	depositType := op.DepositType
	if depositType == "" {
		depositType = domain.DepositTypeAutomatic
	}
	fees := decimal.Zero
	if depositType != domain.DepositTypeNoDeduction {
		fees = op.Amount.Mul(op.CommissionRate).Div(decimal.NewFromInt(hundred))
	}

	now := s.now().UTC()
	t := &domain.CashTransaction{
		CashLineID:      line.ID,
		Amount:          op.Amount,
		Fees:            fees,
		NetAmount:       op.Amount.Add(fees),
		CommissionRate:  op.CommissionRate,
		Type:            domain.TransactionTypeDeposit,
		DepositType:     &depositType,
		RecipientNumber: op.RecipientNumber,
		Description:     op.Description,
		UserID:          op.ActorID,
		Reference:       uuid.NewString(),
		CreatedAt:       now,
	}

	mut := &repository.CashLineMutation{
		Line:          line,
		PrevUpdatedAt: line.UpdatedAt,
		Transaction:   t,
		ProfitDate:    s.localDate(now),
	}

	if line.ExceedsLimits(domain.TransactionTypeDeposit, op.Amount) {
		t.Status = domain.TransactionStatusFrozen
		until := s.nextMonthStart(now)
		t.FrozenUntil = &until
		line.Status = domain.AccountStatusFrozen
	} else {
		t.Status = domain.TransactionStatusCompleted
		line.CurrentBalance = line.CurrentBalance.Add(op.Amount)
		line.DailyDepositUsed = line.DailyDepositUsed.Add(op.Amount)
		line.MonthlyDepositUsed = line.MonthlyDepositUsed.Add(op.Amount)
		mut.CashDelta = op.Amount
		mut.ProfitFee = fees
	}
	line.UpdatedAt = now

	mut.Audit = &domain.AuditEntry{
		UserID:     op.ActorID,
		ActionType: "Deposit",
		EntityType: "CashTransaction",
		Details:    fmt.Sprintf("Deposit %s to line %s (%s), fees %s, mode %s", op.Amount, line.PhoneNumber, t.Status, fees, depositType),
		CreatedAt:  now,
	}

	if err := s.lineRepo.ApplyTransaction(ctx, mut); err != nil {
		return nil, err
	}
	s.metrics.RecordTransaction("cash_line", string(t.Status))
	if t.Status == domain.TransactionStatusFrozen {
		logger.Warn("cash line frozen, limit exceeded", "id", line.ID, "phone", line.PhoneNumber, "amount", op.Amount)
	}
	return t, nil
}

// nextMonthStart is midnight local time on the first of the following month,
// when the monthly reset will unfreeze the line.
func (s *cashLineService) nextMonthStart(t time.Time) time.Time {
	local := t.In(s.loc)
	return time.Date(local.Year(), local.Month()+1, 1, 0, 0, 0, 0, s.loc)
}

func (s *cashLineService) GetTransaction(ctx context.Context, id int32) (*domain.CashTransaction, error) {
	return s.lineRepo.GetTransaction(ctx, id)
}

func (s *cashLineService) ListTransactions(ctx context.Context, filter domain.CashTransactionFilter, page, pageSize int32) ([]domain.CashTransaction, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 200 {
		pageSize = 50
	}
	return s.lineRepo.ListTransactions(ctx, filter, page, pageSize)
}

func (s *cashLineService) Dashboard(ctx context.Context) (*domain.CashDashboard, error) {
	now := s.now().In(s.loc)
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)

	dash, err := s.lineRepo.DailyActivity(ctx, dayStart.UTC(), now.UTC())
	if err != nil {
		return nil, err
	}

	lines, err := s.lineRepo.List(ctx, false)
	if err != nil {
		return nil, err
	}
	for i := range lines {
		line := &lines[i]
		switch line.Status {
		case domain.AccountStatusActive:
			dash.ActiveLines++
		case domain.AccountStatusFrozen:
			dash.FrozenLines++
		}
		dash.Lines = append(dash.Lines, domain.CashLineUsage{
			ID:                     line.ID,
			PhoneNumber:            line.PhoneNumber,
			CurrentBalance:         line.CurrentBalance,
			Status:                 line.Status,
			DailyWithdrawUsedPct:   domain.UsagePercent(line.DailyWithdrawUsed, line.DailyWithdrawLimit),
			DailyDepositUsedPct:    domain.UsagePercent(line.DailyDepositUsed, line.DailyDepositLimit),
			MonthlyWithdrawUsedPct: domain.UsagePercent(line.MonthlyWithdrawUsed, line.MonthlyWithdrawLimit),
			MonthlyDepositUsedPct:  domain.UsagePercent(line.MonthlyDepositUsed, line.MonthlyDepositLimit),
		})
	}
	return dash, nil
}
