package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type FawryServiceType string

const (
	FawryServiceRegular   FawryServiceType = "REGULAR"
	FawryServicePurchases FawryServiceType = "PURCHASES"
)

// FawryTransaction records a bill/cash-collection movement. Fees are entered
// manually rather than computed from a rate.
type FawryTransaction struct {
	ID          int32             `json:"id"`
	Amount      decimal.Decimal   `json:"amount"`
	Type        TransactionType   `json:"type"`
	ServiceType FawryServiceType  `json:"service_type"`
	Fees        decimal.Decimal   `json:"fees"`
	NetAmount   decimal.Decimal   `json:"net_amount"`
	Description string            `json:"description,omitempty"`
	Status      TransactionStatus `json:"status"`
	UserID      string            `json:"user_id"`
	CreatedAt   time.Time         `json:"created_at"`
}

// FawryOperation is the request for recording a Fawry movement.
type FawryOperation struct {
	Amount      decimal.Decimal
	Type        TransactionType
	ManualFees  decimal.Decimal
	Description string
	ActorID     string
}

// FawryChannelSummary reports a service type's running balance and today's
// turnover, both computed on read from the transaction log.
type FawryChannelSummary struct {
	ServiceType FawryServiceType `json:"service_type"`
	Balance     decimal.Decimal  `json:"balance"`
	TodayTotal  decimal.Decimal  `json:"today_total"`
}
