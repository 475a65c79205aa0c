package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cashdesk-backend/internal/domain"
	"cashdesk-backend/internal/repository"
	"cashdesk-backend/pkg/metrics"
)

type reportService struct {
	sysRepo    repository.SystemBalanceRepository
	profitRepo repository.DailyProfitRepository
	metrics    *metrics.Collector
	loc        *time.Location
	now        func() time.Time
}

func NewReportService(
	sysRepo repository.SystemBalanceRepository,
	profitRepo repository.DailyProfitRepository,
	collector *metrics.Collector,
	loc *time.Location,
) ReportService {
	return &reportService{
		sysRepo:    sysRepo,
		profitRepo: profitRepo,
		metrics:    collector,
		loc:        loc,
		now:        time.Now,
	}
}

func (s *reportService) SystemBalance(ctx context.Context) (*domain.SystemBalance, error) {
	sys, err := s.sysRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	s.metrics.SetChannelBalance("cash_line", sys.TotalCashLine.InexactFloat64())
	s.metrics.SetChannelBalance("physical_cash", sys.TotalPhysicalCash.InexactFloat64())
	s.metrics.SetChannelBalance("instapay", sys.TotalInstaPay.InexactFloat64())
	return sys, nil
}

// DailyProfit returns the day's accumulated fee income. An empty date means
// today in the business time zone; a day with no qualifying transactions
// yet reports zeros rather than not-found.
func (s *reportService) DailyProfit(ctx context.Context, date string) (*domain.DailyProfit, error) {
	if date == "" {
		date = s.now().In(s.loc).Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, fmt.Errorf("date %q: %w", date, domain.ErrInvalidAmount)
	}
	p, err := s.profitRepo.GetByDate(ctx, date)
	if err == nil {
		return p, nil
	}
	if errors.Is(err, domain.ErrNotFound) {
		return &domain.DailyProfit{Date: date}, nil
	}
	return nil, err
}

func (s *reportService) ProfitRange(ctx context.Context, from, to string) ([]domain.DailyProfit, error) {
	if _, err := time.Parse("2006-01-02", from); err != nil {
		return nil, fmt.Errorf("from %q: %w", from, domain.ErrInvalidAmount)
	}
	if _, err := time.Parse("2006-01-02", to); err != nil {
		return nil, fmt.Errorf("to %q: %w", to, domain.ErrInvalidAmount)
	}
	return s.profitRepo.ListRange(ctx, from, to)
}
