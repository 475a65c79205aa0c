package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"cashdesk-backend/internal/domain"
)

func TestReportService_DailyProfit(t *testing.T) {
	now := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	ctx := context.Background()

	t.Run("EmptyDateMeansLocalToday", func(t *testing.T) {
		repo := new(MockDailyProfitRepo)
		repo.On("GetByDate", ctx, "2025-03-10").Return(&domain.DailyProfit{
			Date: "2025-03-10", TotalProfit: dec("42"),
		}, nil).Once()

		svc := &reportService{profitRepo: repo, loc: cairo, now: fixedClock(now)}
		p, err := svc.DailyProfit(ctx, "")
		assert.NoError(t, err)
		assert.Equal(t, dec("42").String(), p.TotalProfit.String())
		repo.AssertExpectations(t)
	})

	t.Run("MissingDayReportsZeros", func(t *testing.T) {
		repo := new(MockDailyProfitRepo)
		repo.On("GetByDate", ctx, "2025-03-01").Return(nil, domain.ErrNotFound).Once()

		svc := &reportService{profitRepo: repo, loc: cairo, now: fixedClock(now)}
		p, err := svc.DailyProfit(ctx, "2025-03-01")
		assert.NoError(t, err)
		assert.Equal(t, "2025-03-01", p.Date)
		assert.True(t, p.TotalProfit.IsZero())
	})

	t.Run("MalformedDateRejects", func(t *testing.T) {
		repo := new(MockDailyProfitRepo)
		svc := &reportService{profitRepo: repo, loc: cairo, now: fixedClock(now)}
		_, err := svc.DailyProfit(ctx, "10/03/2025")
		assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	})
}

func TestReportService_ProfitRange(t *testing.T) {
	ctx := context.Background()

	t.Run("ValidatesBothBounds", func(t *testing.T) {
		repo := new(MockDailyProfitRepo)
		svc := &reportService{profitRepo: repo, loc: cairo, now: time.Now}
		_, err := svc.ProfitRange(ctx, "2025-03-01", "bad")
		assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	})

	t.Run("PassesThrough", func(t *testing.T) {
		repo := new(MockDailyProfitRepo)
		repo.On("ListRange", ctx, "2025-03-01", "2025-03-10").Return([]domain.DailyProfit{
			{Date: "2025-03-02"}, {Date: "2025-03-05"},
		}, nil).Once()

		svc := &reportService{profitRepo: repo, loc: cairo, now: time.Now}
		rows, err := svc.ProfitRange(ctx, "2025-03-01", "2025-03-10")
		assert.NoError(t, err)
		assert.Len(t, rows, 2)
		repo.AssertExpectations(t)
	})
}
