package postgres

import (
	"context"
	"database/sql"
	"time"

	"cashdesk-backend/internal/domain"
	"cashdesk-backend/internal/repository"

	"github.com/shopspring/decimal"
	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.CashLineRepository
	repository.InstaPayRepository
	repository.PhysicalCashRepository
	repository.SupplierRepository
	repository.FawryRepository
	repository.SystemBalanceRepository
	repository.DailyProfitRepository
	repository.AuditRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                      db,
		CashLineRepository:      NewCashLineRepository(db),
		InstaPayRepository:      NewInstaPayRepository(db),
		PhysicalCashRepository:  NewPhysicalCashRepository(db),
		SupplierRepository:      NewSupplierRepository(db),
		FawryRepository:         NewFawryRepository(db),
		SystemBalanceRepository: NewSystemBalanceRepository(db),
		DailyProfitRepository:   NewDailyProfitRepository(db),
		AuditRepository:         NewAuditRepository(db),
	}
}

// ensureSystemBalance makes sure the singleton aggregate row exists before a
// mutation touches it.
func ensureSystemBalance(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `INSERT INTO system_balances (id) VALUES (1) ON CONFLICT (id) DO NOTHING`)
	return err
}

// adjustSystemBalance applies a physical-cash delta and recomputes the
// cash-line and InstaPay components from their source tables, then the
// total, all within the caller's transaction.
func adjustSystemBalance(ctx context.Context, tx *sql.Tx, cashDelta decimal.Decimal, now time.Time) error {
	if err := ensureSystemBalance(ctx, tx); err != nil {
		return err
	}
	_, err := tx.ExecContext(ctx, `
		UPDATE system_balances SET
			total_physical_cash = total_physical_cash + $1,
			total_cash_line = (SELECT COALESCE(SUM(current_balance), 0) FROM cash_lines WHERE status <> 'DELETED'),
			total_instapay = (SELECT COALESCE(SUM(current_balance), 0) FROM instapay_accounts WHERE status = 'ACTIVE'),
			last_updated = $2
		WHERE id = 1`, cashDelta, now)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `
		UPDATE system_balances SET total_system = total_cash_line + total_physical_cash + total_instapay
		WHERE id = 1`)
	return err
}

// physicalCashSufficient reports whether the drawer holds at least amount.
func physicalCashSufficient(ctx context.Context, tx *sql.Tx, amount decimal.Decimal) (bool, error) {
	if err := ensureSystemBalance(ctx, tx); err != nil {
		return false, err
	}
	var cash decimal.Decimal
	err := tx.QueryRowContext(ctx, `SELECT total_physical_cash FROM system_balances WHERE id = 1`).Scan(&cash)
	if err != nil {
		return false, err
	}
	return !cash.LessThan(amount), nil
}

const (
	profitColumnCashLine = "cash_line_profit"
	profitColumnInstaPay = "instapay_profit"
	profitColumnFawry    = "fawry_profit"
)

// addDailyProfit lazily creates the day's profit row and adds fee to the
// given channel column and the running total.
func addDailyProfit(ctx context.Context, tx *sql.Tx, column, date string, fee decimal.Decimal, now time.Time) error {
	var query string
	switch column {
	case profitColumnCashLine:
		query = `INSERT INTO daily_profits (date, cash_line_profit, total_profit, created_at, updated_at)
		         VALUES ($1, $2, $2, $3, $3)
		         ON CONFLICT (date) DO UPDATE SET
		             cash_line_profit = daily_profits.cash_line_profit + EXCLUDED.cash_line_profit,
		             total_profit = daily_profits.total_profit + EXCLUDED.total_profit,
		             updated_at = EXCLUDED.updated_at`
	case profitColumnInstaPay:
		query = `INSERT INTO daily_profits (date, instapay_profit, total_profit, created_at, updated_at)
		         VALUES ($1, $2, $2, $3, $3)
		         ON CONFLICT (date) DO UPDATE SET
		             instapay_profit = daily_profits.instapay_profit + EXCLUDED.instapay_profit,
		             total_profit = daily_profits.total_profit + EXCLUDED.total_profit,
		             updated_at = EXCLUDED.updated_at`
	case profitColumnFawry:
		query = `INSERT INTO daily_profits (date, fawry_profit, total_profit, created_at, updated_at)
		         VALUES ($1, $2, $2, $3, $3)
		         ON CONFLICT (date) DO UPDATE SET
		             fawry_profit = daily_profits.fawry_profit + EXCLUDED.fawry_profit,
		             total_profit = daily_profits.total_profit + EXCLUDED.total_profit,
		             updated_at = EXCLUDED.updated_at`
	}
	_, err := tx.ExecContext(ctx, query, date, fee, now)
	return err
}

// insertAudit appends an audit entry within the caller's transaction. Audit
// rows are write-once.
func insertAudit(ctx context.Context, tx *sql.Tx, entry *domain.AuditEntry) error {
	if entry == nil {
		return nil
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	return tx.QueryRowContext(ctx, `
		INSERT INTO audit_logs (user_id, action_type, entity_type, entity_id, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		entry.UserID, entry.ActionType, entry.EntityType, entry.EntityID, entry.Details, entry.CreatedAt,
	).Scan(&entry.ID)
}
