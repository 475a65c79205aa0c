package domain

import "time"

// AuditEntry is an append-only, human-readable record of a mutating action.
type AuditEntry struct {
	ID         int32     `json:"id"`
	UserID     string    `json:"user_id"`
	ActionType string    `json:"action_type"` // Add, Update, Delete, Withdraw, Deposit, Freeze, Unfreeze
	EntityType string    `json:"entity_type"` // CashLine, CashTransaction, InstaPay, ...
	EntityID   *int32    `json:"entity_id,omitempty"`
	Details    string    `json:"details"`
	CreatedAt  time.Time `json:"created_at"`
}

// AuditFilter narrows audit listings.
type AuditFilter struct {
	EntityType string
	ActionType string
	From       *time.Time
	To         *time.Time
}
