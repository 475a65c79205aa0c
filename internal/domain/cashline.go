package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type AccountStatus string

const (
	AccountStatusActive  AccountStatus = "ACTIVE"
	AccountStatusFrozen  AccountStatus = "FROZEN"
	AccountStatusDeleted AccountStatus = "DELETED"
)

type NetworkType string

const (
	NetworkEtisalat NetworkType = "ETISALAT"
	NetworkVodafone NetworkType = "VODAFONE"
	NetworkOrange   NetworkType = "ORANGE"
	NetworkWE       NetworkType = "WE"
)

// CashLine is a SIM-based mobile-money channel with its own balance and
// daily/monthly usage caps per direction.
type CashLine struct {
	ID                   int32           `json:"id"`
	PhoneNumber          string          `json:"phone_number"`
	OwnerName            string          `json:"owner_name"`
	NationalID           string          `json:"national_id"`
	NetworkType          NetworkType     `json:"network_type"`
	CurrentBalance       decimal.Decimal `json:"current_balance"`
	DailyWithdrawLimit   decimal.Decimal `json:"daily_withdraw_limit"`
	DailyDepositLimit    decimal.Decimal `json:"daily_deposit_limit"`
	MonthlyWithdrawLimit decimal.Decimal `json:"monthly_withdraw_limit"`
	MonthlyDepositLimit  decimal.Decimal `json:"monthly_deposit_limit"`
	DailyWithdrawUsed    decimal.Decimal `json:"daily_withdraw_used"`
	DailyDepositUsed     decimal.Decimal `json:"daily_deposit_used"`
	MonthlyWithdrawUsed  decimal.Decimal `json:"monthly_withdraw_used"`
	MonthlyDepositUsed   decimal.Decimal `json:"monthly_deposit_used"`
	Status               AccountStatus   `json:"status"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
	LastResetDate        *time.Time      `json:"last_reset_date,omitempty"`
}

// RemainingDaily returns the unused daily allowance for the direction.
func (cl *CashLine) RemainingDaily(t TransactionType) decimal.Decimal {
	if t == TransactionTypeWithdraw {
		return cl.DailyWithdrawLimit.Sub(cl.DailyWithdrawUsed)
	}
	return cl.DailyDepositLimit.Sub(cl.DailyDepositUsed)
}

// RemainingMonthly returns the unused monthly allowance for the direction.
func (cl *CashLine) RemainingMonthly(t TransactionType) decimal.Decimal {
	if t == TransactionTypeWithdraw {
		return cl.MonthlyWithdrawLimit.Sub(cl.MonthlyWithdrawUsed)
	}
	return cl.MonthlyDepositLimit.Sub(cl.MonthlyDepositUsed)
}

// ExceedsLimits reports whether amount does not fit within the remaining
// daily or monthly allowance for the direction.
func (cl *CashLine) ExceedsLimits(t TransactionType, amount decimal.Decimal) bool {
	return cl.RemainingDaily(t).LessThan(amount) || cl.RemainingMonthly(t).LessThan(amount)
}

// UsagePercent returns how much of a limit has been consumed, 0 when the
// limit itself is zero.
func UsagePercent(used, limit decimal.Decimal) decimal.Decimal {
	if limit.IsZero() {
		return decimal.Zero
	}
	return used.Div(limit).Mul(decimal.NewFromInt(100))
}

type TransactionType string

const (
	TransactionTypeWithdraw TransactionType = "WITHDRAW"
	TransactionTypeDeposit  TransactionType = "DEPOSIT"
)

type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "PENDING"
	TransactionStatusCompleted TransactionStatus = "COMPLETED"
	TransactionStatusRejected  TransactionStatus = "REJECTED"
	TransactionStatusFrozen    TransactionStatus = "FROZEN"
)

type DepositType string

const (
	DepositTypeAutomatic   DepositType = "AUTOMATIC"
	DepositTypeManual      DepositType = "MANUAL"
	DepositTypeNoDeduction DepositType = "NO_DEDUCTION"
)

// CashTransaction records one withdraw/deposit against a cash line. Rows are
// immutable after creation except for the Pending -> Completed/Frozen status
// transition.
type CashTransaction struct {
	ID              int32             `json:"id"`
	CashLineID      int32             `json:"cash_line_id"`
	Amount          decimal.Decimal   `json:"amount"`
	Fees            decimal.Decimal   `json:"fees"`
	NetAmount       decimal.Decimal   `json:"net_amount"`
	CommissionRate  decimal.Decimal   `json:"commission_rate"`
	Type            TransactionType   `json:"type"`
	DepositType     *DepositType      `json:"deposit_type,omitempty"`
	RecipientNumber string            `json:"recipient_number,omitempty"`
	Description     string            `json:"description,omitempty"`
	Status          TransactionStatus `json:"status"`
	UserID          string            `json:"user_id"`
	Reference       string            `json:"reference"`
	FrozenUntil     *time.Time        `json:"frozen_until,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
}

// CashOperation is the request for a single cash line withdraw or deposit.
type CashOperation struct {
	CashLineID      int32
	Amount          decimal.Decimal
	CommissionRate  decimal.Decimal
	DepositType     DepositType
	RecipientNumber string
	Description     string
	ActorID         string
}

// CashTransactionFilter narrows transaction listings.
type CashTransactionFilter struct {
	CashLineID *int32
	Type       *TransactionType
	Status     *TransactionStatus
	From       *time.Time
	To         *time.Time
	Search     string
}
