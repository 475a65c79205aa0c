package jobs

import (
	"context"
	"errors"
	"time"

	"cashdesk-backend/internal/domain"
	"cashdesk-backend/internal/logger"
)

// ResetDailyLimits zeroes every due line's daily usage counters at local
// midnight.
func (jr *JobRunner) ResetDailyLimits() {
	jr.runWithRecovery("ResetDailyLimits", func() {
		ctx := context.Background()

		n, err := jr.services.Reset.ResetDailyLimits(ctx)
		if err != nil {
			logger.Error("Failed to reset daily limits", "error", err)
			return
		}
		logger.Info("Daily limits reset", "lines", n)
	})
}

// ResetMonthlyLimits zeroes monthly usage counters and unfreezes
// limit-frozen lines on the first of the month.
func (jr *JobRunner) ResetMonthlyLimits() {
	jr.runWithRecovery("ResetMonthlyLimits", func() {
		ctx := context.Background()

		n, err := jr.services.Reset.ResetMonthlyLimits(ctx)
		if err != nil {
			logger.Error("Failed to reset monthly limits", "error", err)
			return
		}
		logger.Info("Monthly limits reset", "lines", n)
	})
}

// ReconcileSystemBalance compares the stored aggregate components with the
// sums of their source tables and logs any drift. The drawer component has
// no source table, so only the cash-line and InstaPay columns are checked.
func (jr *JobRunner) ReconcileSystemBalance() {
	jr.runWithRecovery("ReconcileSystemBalance", func() {
		ctx := context.Background()

		var cashLineDrift, instaPayDrift string
		err := jr.db.QueryRowContext(ctx, `
			SELECT
				(sb.total_cash_line - COALESCE((SELECT SUM(current_balance) FROM cash_lines WHERE status <> 'DELETED'), 0))::text,
				(sb.total_instapay - COALESCE((SELECT SUM(current_balance) FROM instapay_accounts WHERE status = 'ACTIVE'), 0))::text
			FROM system_balances sb WHERE sb.id = 1`,
		).Scan(&cashLineDrift, &instaPayDrift)
		if err != nil {
			logger.Error("Failed to reconcile system balance", "error", err)
			return
		}

		if cashLineDrift != "0" && cashLineDrift != "0.00" {
			logger.Warn("System balance drift on cash-line component", "drift", cashLineDrift)
		}
		if instaPayDrift != "0" && instaPayDrift != "0.00" {
			logger.Warn("System balance drift on instapay component", "drift", instaPayDrift)
		}

		if _, err := jr.services.Report.SystemBalance(ctx); err != nil {
			logger.Error("Failed to refresh balance metrics", "error", err)
		}
	})
}

// SummarizeDay logs the previous local day's profit row and the current
// frozen-line count, as an end-of-day operator digest.
func (jr *JobRunner) SummarizeDay() {
	jr.runWithRecovery("SummarizeDay", func() {
		ctx := context.Background()

		loc := jr.config.BusinessLocation()
		yesterday := time.Now().In(loc).AddDate(0, 0, -1).Format("2006-01-02")

		profit, err := jr.store.DailyProfitRepository.GetByDate(ctx, yesterday)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			logger.Info("Day closed with no fee income", "date", yesterday)
		case err != nil:
			logger.Error("Failed to load daily profit", "date", yesterday, "error", err)
		default:
			logger.Info("Day closed", "date", yesterday,
				"total_profit", profit.TotalProfit,
				"cash_line_profit", profit.CashLineProfit,
				"instapay_profit", profit.InstaPayProfit,
				"fawry_profit", profit.FawryProfit)
		}

		lines, err := jr.store.CashLineRepository.List(ctx, false)
		if err != nil {
			logger.Error("Failed to list cash lines", "error", err)
			return
		}
		var frozen int
		for i := range lines {
			if lines[i].Status == domain.AccountStatusFrozen {
				frozen++
			}
		}
		if frozen > 0 {
			logger.Warn("Lines still frozen at day close", "count", frozen)
		}
	})
}
