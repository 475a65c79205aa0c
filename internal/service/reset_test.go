package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"cashdesk-backend/internal/domain"
)

func TestResetService_ResetDailyLimits(t *testing.T) {
	// 14:00 UTC is 16:00 in Cairo, local day 2025-03-10.
	now := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	ctx := context.Background()

	// 12:00 UTC is 14:00 in Cairo, still local day 2025-03-09.
	yesterday := time.Date(2025, 3, 9, 12, 0, 0, 0, time.UTC)
	earlierToday := time.Date(2025, 3, 10, 1, 0, 0, 0, time.UTC)

	t.Run("ResetsOnlyLinesNotYetResetToday", func(t *testing.T) {
		repo := new(MockCashLineRepo)
		repo.On("List", ctx, false).Return([]domain.CashLine{
			{ID: 1, LastResetDate: &yesterday},
			{ID: 2, LastResetDate: &earlierToday},
			{ID: 3, CreatedAt: yesterday},
		}, nil).Once()
		repo.On("ResetDailyCounters", ctx, []int32{1, 3}, now).Return(int64(2), nil).Once()

		svc := &resetService{lineRepo: repo, loc: cairo, now: fixedClock(now)}
		n, err := svc.ResetDailyLimits(ctx)
		assert.NoError(t, err)
		assert.Equal(t, int64(2), n)
		repo.AssertExpectations(t)
	})

	t.Run("LateUTCResetAlreadyCountsAsToday", func(t *testing.T) {
		// 22:05 UTC on Mar 9 is 00:05 Mar 10 in Cairo, already today.
		lateUTC := time.Date(2025, 3, 9, 22, 5, 0, 0, time.UTC)
		repo := new(MockCashLineRepo)
		repo.On("List", ctx, false).Return([]domain.CashLine{
			{ID: 1, LastResetDate: &lateUTC},
		}, nil).Once()

		svc := &resetService{lineRepo: repo, loc: cairo, now: fixedClock(now)}
		n, err := svc.ResetDailyLimits(ctx)
		assert.NoError(t, err)
		assert.Zero(t, n)
		repo.AssertNotCalled(t, "ResetDailyCounters", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("SecondRunSameDayIsNoOp", func(t *testing.T) {
		repo := new(MockCashLineRepo)
		repo.On("List", ctx, false).Return([]domain.CashLine{
			{ID: 1, LastResetDate: &earlierToday},
			{ID: 2, CreatedAt: earlierToday},
		}, nil).Once()

		svc := &resetService{lineRepo: repo, loc: cairo, now: fixedClock(now)}
		n, err := svc.ResetDailyLimits(ctx)
		assert.NoError(t, err)
		assert.Zero(t, n)
		repo.AssertNotCalled(t, "ResetDailyCounters", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestResetService_ResetMonthlyLimits(t *testing.T) {
	ctx := context.Background()

	t.Run("RunsOnFirstOfMonth", func(t *testing.T) {
		now := time.Date(2025, 3, 1, 6, 0, 0, 0, time.UTC)
		repo := new(MockCashLineRepo)
		repo.On("ResetMonthlyCounters", ctx, now).Return(int64(4), nil).Once()

		svc := &resetService{lineRepo: repo, loc: cairo, now: fixedClock(now)}
		n, err := svc.ResetMonthlyLimits(ctx)
		assert.NoError(t, err)
		assert.Equal(t, int64(4), n)
		repo.AssertExpectations(t)
	})

	t.Run("SkipsMidMonth", func(t *testing.T) {
		now := time.Date(2025, 3, 10, 6, 0, 0, 0, time.UTC)
		repo := new(MockCashLineRepo)

		svc := &resetService{lineRepo: repo, loc: cairo, now: fixedClock(now)}
		n, err := svc.ResetMonthlyLimits(ctx)
		assert.NoError(t, err)
		assert.Zero(t, n)
		repo.AssertNotCalled(t, "ResetMonthlyCounters", mock.Anything, mock.Anything)
	})

	t.Run("LocalCalendarDecides", func(t *testing.T) {
		// 23:00 UTC on the last of February is already March 1st in Cairo.
		now := time.Date(2025, 2, 28, 23, 0, 0, 0, time.UTC)
		repo := new(MockCashLineRepo)
		repo.On("ResetMonthlyCounters", ctx, now).Return(int64(1), nil).Once()

		svc := &resetService{lineRepo: repo, loc: cairo, now: fixedClock(now)}
		_, err := svc.ResetMonthlyLimits(ctx)
		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})
}
