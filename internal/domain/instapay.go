package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InstaPayAccount is a bank-linked instant-transfer channel. There is no
// freeze/limit concept on this channel.
type InstaPayAccount struct {
	ID                int32           `json:"id"`
	PhoneNumber       string          `json:"phone_number"`
	BankAccountNumber string          `json:"bank_account_number"`
	BankName          string          `json:"bank_name"`
	CurrentBalance    decimal.Decimal `json:"current_balance"`
	Status            AccountStatus   `json:"status"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

type InstaPayTransaction struct {
	ID          int32             `json:"id"`
	InstaPayID  int32             `json:"instapay_id"`
	Amount      decimal.Decimal   `json:"amount"`
	FeeRate     decimal.Decimal   `json:"fee_rate"`
	Fees        decimal.Decimal   `json:"fees"`
	NetAmount   decimal.Decimal   `json:"net_amount"`
	Type        TransactionType   `json:"type"`
	Description string            `json:"description,omitempty"`
	Status      TransactionStatus `json:"status"`
	UserID      string            `json:"user_id"`
	CreatedAt   time.Time         `json:"created_at"`
}

// InstaPayOperation is the request for a withdraw or deposit on an account.
type InstaPayOperation struct {
	AccountID int32
	Amount    decimal.Decimal
	// FeeRate is a percentage of Amount. FeeAmount, when positive, is a flat
	// EGP fee that takes precedence over the rate.
	FeeRate     decimal.Decimal
	FeeAmount   decimal.Decimal
	Description string
	ActorID     string
}
