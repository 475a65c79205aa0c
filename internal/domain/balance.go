package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SystemBalance is the singleton aggregate row summing all channel balances.
// TotalSystem must equal TotalCashLine + TotalPhysicalCash + TotalInstaPay;
// every mutation recomputes it from the three components inside the same
// database transaction.
type SystemBalance struct {
	ID                int32           `json:"id"`
	TotalCashLine     decimal.Decimal `json:"total_cash_line"`
	TotalPhysicalCash decimal.Decimal `json:"total_physical_cash"`
	TotalInstaPay     decimal.Decimal `json:"total_instapay"`
	TotalSystem       decimal.Decimal `json:"total_system"`
	LastUpdated       time.Time       `json:"last_updated"`
}

// DailyProfit accumulates fee income by channel for one local calendar day.
// Created lazily on the first qualifying transaction, never deleted.
type DailyProfit struct {
	ID             int32           `json:"id"`
	Date           string          `json:"date"` // local date, YYYY-MM-DD
	CashLineProfit decimal.Decimal `json:"cash_line_profit"`
	InstaPayProfit decimal.Decimal `json:"instapay_profit"`
	FawryProfit    decimal.Decimal `json:"fawry_profit"`
	TotalProfit    decimal.Decimal `json:"total_profit"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// CashDashboard summarises today's cash line activity.
type CashDashboard struct {
	TotalTransactions int32           `json:"total_transactions"`
	TotalWithdrawals  decimal.Decimal `json:"total_withdrawals"`
	TotalDeposits     decimal.Decimal `json:"total_deposits"`
	TotalFees         decimal.Decimal `json:"total_fees"`
	ActiveLines       int32           `json:"active_lines"`
	FrozenLines       int32           `json:"frozen_lines"`
	Lines             []CashLineUsage `json:"lines"`
}

// CashLineUsage reports a line's balance and consumed allowance percentages.
type CashLineUsage struct {
	ID                     int32           `json:"id"`
	PhoneNumber            string          `json:"phone_number"`
	CurrentBalance         decimal.Decimal `json:"current_balance"`
	Status                 AccountStatus   `json:"status"`
	DailyWithdrawUsedPct   decimal.Decimal `json:"daily_withdraw_used_pct"`
	DailyDepositUsedPct    decimal.Decimal `json:"daily_deposit_used_pct"`
	MonthlyWithdrawUsedPct decimal.Decimal `json:"monthly_withdraw_used_pct"`
	MonthlyDepositUsedPct  decimal.Decimal `json:"monthly_deposit_used_pct"`
}
