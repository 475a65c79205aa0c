package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type SupplierType string

const (
	SupplierTypeSupplier SupplierType = "SUPPLIER"
	SupplierTypeCustomer SupplierType = "CUSTOMER"
)

type EntryType string

const (
	EntryTypeCredit EntryType = "CREDIT"
	EntryTypeDebit  EntryType = "DEBIT"
)

// Supplier carries a running balance with a supplier or customer. The sign
// encodes direction of debt: positive means the counterparty owes the
// business, negative means the business owes them. Negative is not an error.
type Supplier struct {
	ID             int32           `json:"id"`
	Name           string          `json:"name"`
	Type           SupplierType    `json:"type"`
	PhoneNumber    string          `json:"phone_number,omitempty"`
	Email          string          `json:"email,omitempty"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

type SupplierTransaction struct {
	ID              int32           `json:"id"`
	SupplierID      int32           `json:"supplier_id"`
	Amount          decimal.Decimal `json:"amount"`
	Type            EntryType       `json:"type"`
	Description     string          `json:"description,omitempty"`
	UserID          string          `json:"user_id"`
	TransactionDate time.Time       `json:"transaction_date"`
	CreatedAt       time.Time       `json:"created_at"`
}

// SignedAmount is the balance delta this entry applies: positive for credit,
// negative for debit.
func (t *SupplierTransaction) SignedAmount() decimal.Decimal {
	if t.Type == EntryTypeCredit {
		return t.Amount
	}
	return t.Amount.Neg()
}

// SupplierTotals summarises the supplier book for reporting.
type SupplierTotals struct {
	TotalCredit      decimal.Decimal `json:"total_credit"`
	TotalDebit       decimal.Decimal `json:"total_debit"`
	CreditSuppliers  int32           `json:"credit_suppliers"`
	DebitSuppliers   int32           `json:"debit_suppliers"`
	SettledSuppliers int32           `json:"settled_suppliers"`
}
