package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PhysicalCashTransaction is a movement of the physical cash drawer: a
// deposit adds cash, a withdraw records an expense taken out of the drawer.
type PhysicalCashTransaction struct {
	ID          int32           `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Type        TransactionType `json:"type"`
	Description string          `json:"description,omitempty"`
	UserID      string          `json:"user_id"`
	CreatedAt   time.Time       `json:"created_at"`
}
