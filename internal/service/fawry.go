package service

import (
	"context"
	"fmt"
	"time"

	"cashdesk-backend/internal/domain"
	"cashdesk-backend/internal/repository"
	"cashdesk-backend/pkg/metrics"
)

type fawryService struct {
	fawryRepo repository.FawryRepository
	sysRepo   repository.SystemBalanceRepository
	metrics   *metrics.Collector
	loc       *time.Location
	now       func() time.Time
}

func NewFawryService(
	fawryRepo repository.FawryRepository,
	sysRepo repository.SystemBalanceRepository,
	collector *metrics.Collector,
	loc *time.Location,
) FawryService {
	return &fawryService{
		fawryRepo: fawryRepo,
		sysRepo:   sysRepo,
		metrics:   collector,
		loc:       loc,
		now:       time.Now,
	}
}

func (s *fawryService) RecordRegular(ctx context.Context, op domain.FawryOperation) (*domain.FawryTransaction, error) {
	return s.record(ctx, domain.FawryServiceRegular, op)
}

func (s *fawryService) RecordPurchases(ctx context.Context, op domain.FawryOperation) (*domain.FawryTransaction, error) {
	return s.record(ctx, domain.FawryServicePurchases, op)
}

// record books a Fawry movement. Fees are entered by the operator, not
// computed from a rate, and default to zero. A deposit brings amount into
// the drawer; a withdraw pays amount out of the drawer while the fee comes
// back in as collected income.
func (s *fawryService) record(ctx context.Context, serviceType domain.FawryServiceType, op domain.FawryOperation) (*domain.FawryTransaction, error) {
	if !op.Amount.IsPositive() {
		return nil, fmt.Errorf("fawry amount %s: %w", op.Amount, domain.ErrInvalidAmount)
	}
	if op.ManualFees.IsNegative() {
		return nil, fmt.Errorf("fawry fees %s: %w", op.ManualFees, domain.ErrInvalidAmount)
	}

	fees := op.ManualFees
	var net, delta = op.Amount, op.Amount
	if op.Type == domain.TransactionTypeWithdraw {
		net = op.Amount.Add(fees)
		delta = fees.Sub(op.Amount)
		sys, err := s.sysRepo.Get(ctx)
		if err != nil {
			return nil, err
		}
		if sys.TotalPhysicalCash.Add(delta).IsNegative() {
			return nil, fmt.Errorf("drawer holds %s, need %s: %w", sys.TotalPhysicalCash, delta.Neg(), domain.ErrInsufficientFunds)
		}
	} else {
		net = op.Amount.Sub(fees)
	}

	now := s.now().UTC()
	t := &domain.FawryTransaction{
		Amount:      op.Amount,
		Type:        op.Type,
		ServiceType: serviceType,
		Fees:        fees,
		NetAmount:   net,
		Description: op.Description,
		Status:      domain.TransactionStatusCompleted,
		UserID:      op.ActorID,
		CreatedAt:   now,
	}
	mut := &repository.FawryMutation{
		Transaction: t,
		CashDelta:   delta,
		ProfitFee:   fees,
		ProfitDate:  now.In(s.loc).Format("2006-01-02"),
		Audit: &domain.AuditEntry{
			UserID:     op.ActorID,
			ActionType: auditAction(op.Type),
			EntityType: "Fawry",
			Details:    fmt.Sprintf("Fawry %s %s %s, fees %s", serviceType, op.Type, op.Amount, fees),
			CreatedAt:  now,
		},
	}
	if err := s.fawryRepo.ApplyTransaction(ctx, mut); err != nil {
		return nil, err
	}
	s.metrics.RecordTransaction("fawry", string(t.Status))
	return t, nil
}

func (s *fawryService) ListTransactions(ctx context.Context, serviceType *domain.FawryServiceType, page, pageSize int32) ([]domain.FawryTransaction, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 200 {
		pageSize = 50
	}
	return s.fawryRepo.ListTransactions(ctx, serviceType, page, pageSize)
}

// ChannelSummaries reports both service types' running balances and today's
// turnover, computed from the transaction log.
func (s *fawryService) ChannelSummaries(ctx context.Context) ([]domain.FawryChannelSummary, error) {
	local := s.now().In(s.loc)
	dayStart := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.loc).UTC()
	dayEnd := dayStart.Add(24 * time.Hour)

	var summaries []domain.FawryChannelSummary
	for _, st := range []domain.FawryServiceType{domain.FawryServiceRegular, domain.FawryServicePurchases} {
		sum, err := s.fawryRepo.ChannelSummary(ctx, st, dayStart, dayEnd)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, *sum)
	}
	return summaries, nil
}
