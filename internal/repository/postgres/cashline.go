package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"cashdesk-backend/internal/domain"
	"cashdesk-backend/internal/repository"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type cashLineRepository struct {
	db *sql.DB
}

func NewCashLineRepository(db *sql.DB) repository.CashLineRepository {
	return &cashLineRepository{db: db}
}

const cashLineColumns = `id, phone_number, owner_name, national_id, network_type, current_balance,
	daily_withdraw_limit, daily_deposit_limit, monthly_withdraw_limit, monthly_deposit_limit,
	daily_withdraw_used, daily_deposit_used, monthly_withdraw_used, monthly_deposit_used,
	status, created_at, updated_at, last_reset_date`

func scanCashLine(row interface{ Scan(...any) error }) (*domain.CashLine, error) {
	var cl domain.CashLine
	err := row.Scan(&cl.ID, &cl.PhoneNumber, &cl.OwnerName, &cl.NationalID, &cl.NetworkType, &cl.CurrentBalance,
		&cl.DailyWithdrawLimit, &cl.DailyDepositLimit, &cl.MonthlyWithdrawLimit, &cl.MonthlyDepositLimit,
		&cl.DailyWithdrawUsed, &cl.DailyDepositUsed, &cl.MonthlyWithdrawUsed, &cl.MonthlyDepositUsed,
		&cl.Status, &cl.CreatedAt, &cl.UpdatedAt, &cl.LastResetDate)
	if err != nil {
		return nil, err
	}
	return &cl, nil
}

func (r *cashLineRepository) Create(ctx context.Context, line *domain.CashLine, audit *domain.AuditEntry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO cash_lines (phone_number, owner_name, national_id, network_type, current_balance,
			daily_withdraw_limit, daily_deposit_limit, monthly_withdraw_limit, monthly_deposit_limit,
			status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id`,
		line.PhoneNumber, line.OwnerName, line.NationalID, line.NetworkType, line.CurrentBalance,
		line.DailyWithdrawLimit, line.DailyDepositLimit, line.MonthlyWithdrawLimit, line.MonthlyDepositLimit,
		line.Status, line.CreatedAt, line.UpdatedAt,
	).Scan(&line.ID)
	if err != nil {
		return err
	}

	// Opening balance is bought with drawer cash; the aggregate's cash-line
	// component is recomputed from the table by adjustSystemBalance.
	if err := adjustSystemBalance(ctx, tx, line.CurrentBalance.Neg(), line.CreatedAt); err != nil {
		return err
	}
	if audit != nil {
		audit.EntityID = &line.ID
	}
	if err := insertAudit(ctx, tx, audit); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *cashLineRepository) GetByID(ctx context.Context, id int32) (*domain.CashLine, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+cashLineColumns+` FROM cash_lines WHERE id = $1`, id)
	line, err := scanCashLine(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return line, err
}

func (r *cashLineRepository) Update(ctx context.Context, line *domain.CashLine, balanceDelta decimal.Decimal, audit *domain.AuditEntry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE cash_lines SET phone_number = $1, owner_name = $2, national_id = $3, network_type = $4,
			current_balance = $5, daily_withdraw_limit = $6, daily_deposit_limit = $7,
			monthly_withdraw_limit = $8, monthly_deposit_limit = $9, status = $10, updated_at = $11
		WHERE id = $12`,
		line.PhoneNumber, line.OwnerName, line.NationalID, line.NetworkType,
		line.CurrentBalance, line.DailyWithdrawLimit, line.DailyDepositLimit,
		line.MonthlyWithdrawLimit, line.MonthlyDepositLimit, line.Status, line.UpdatedAt, line.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}

	// A manual balance increase is funded from the drawer and vice versa.
	if err := adjustSystemBalance(ctx, tx, balanceDelta.Neg(), line.UpdatedAt); err != nil {
		return err
	}
	if err := insertAudit(ctx, tx, audit); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *cashLineRepository) SetStatus(ctx context.Context, id int32, status domain.AccountStatus, audit *domain.AuditEntry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE cash_lines SET status = $1, updated_at = $2 WHERE id = $3`,
		status, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	if err := insertAudit(ctx, tx, audit); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *cashLineRepository) Delete(ctx context.Context, id int32, audit *domain.AuditEntry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var balance decimal.Decimal
	err = tx.QueryRowContext(ctx, `SELECT current_balance FROM cash_lines WHERE id = $1 AND status <> 'DELETED'`, id).Scan(&balance)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	_, err = tx.ExecContext(ctx, `UPDATE cash_lines SET status = 'DELETED', updated_at = $1 WHERE id = $2`, now, id)
	if err != nil {
		return err
	}

	// The deleted line's balance returns to the drawer; the recompute drops
	// it from the cash-line component at the same time.
	if err := adjustSystemBalance(ctx, tx, balance, now); err != nil {
		return err
	}
	if err := insertAudit(ctx, tx, audit); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *cashLineRepository) List(ctx context.Context, includeDeleted bool) ([]domain.CashLine, error) {
	query := `SELECT ` + cashLineColumns + ` FROM cash_lines`
	if !includeDeleted {
		query += ` WHERE status <> 'DELETED'`
	}
	query += ` ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []domain.CashLine
	for rows.Next() {
		line, err := scanCashLine(rows)
		if err != nil {
			return nil, err
		}
		lines = append(lines, *line)
	}
	return lines, rows.Err()
}

func (r *cashLineRepository) PhoneExists(ctx context.Context, phone string, excludeID int32) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM cash_lines WHERE phone_number = $1 AND id <> $2)`,
		phone, excludeID).Scan(&exists)
	return exists, err
}

func (r *cashLineRepository) NationalIDExists(ctx context.Context, nationalID string, excludeID int32) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM cash_lines WHERE national_id = $1 AND id <> $2)`,
		nationalID, excludeID).Scan(&exists)
	return exists, err
}

// ApplyTransaction commits a cash line operation: the line row (guarded by
// the optimistic updated_at token), the transaction record, the aggregate
// physical-cash delta, the day's fee income, and the audit entry.
func (r *cashLineRepository) ApplyTransaction(ctx context.Context, mut *repository.CashLineMutation) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	line := mut.Line
	res, err := tx.ExecContext(ctx, `
		UPDATE cash_lines SET current_balance = $1,
			daily_withdraw_used = $2, daily_deposit_used = $3,
			monthly_withdraw_used = $4, monthly_deposit_used = $5,
			status = $6, updated_at = $7
		WHERE id = $8 AND updated_at = $9`,
		line.CurrentBalance, line.DailyWithdrawUsed, line.DailyDepositUsed,
		line.MonthlyWithdrawUsed, line.MonthlyDepositUsed,
		line.Status, line.UpdatedAt, line.ID, mut.PrevUpdatedAt)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrConcurrencyConflict
	}

	t := mut.Transaction
	err = tx.QueryRowContext(ctx, `
		INSERT INTO cash_transactions (cash_line_id, amount, fees, net_amount, commission_rate,
			type, deposit_type, recipient_number, description, status, user_id, reference, frozen_until, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14) RETURNING id`,
		t.CashLineID, t.Amount, t.Fees, t.NetAmount, t.CommissionRate,
		t.Type, t.DepositType, t.RecipientNumber, t.Description, t.Status, t.UserID, t.Reference, t.FrozenUntil, t.CreatedAt,
	).Scan(&t.ID)
	if err != nil {
		return err
	}

	if !mut.CashDelta.IsZero() {
		if err := adjustSystemBalance(ctx, tx, mut.CashDelta, line.UpdatedAt); err != nil {
			return err
		}
	}
	if !mut.ProfitFee.IsZero() {
		if err := addDailyProfit(ctx, tx, profitColumnCashLine, mut.ProfitDate, mut.ProfitFee, line.UpdatedAt); err != nil {
			return err
		}
	}
	if mut.Audit != nil {
		mut.Audit.EntityID = &t.ID
	}
	if err := insertAudit(ctx, tx, mut.Audit); err != nil {
		return err
	}
	return tx.Commit()
}

const cashTransactionColumns = `id, cash_line_id, amount, fees, net_amount, commission_rate,
	type, deposit_type, COALESCE(recipient_number, ''), COALESCE(description, ''), status, user_id, reference, frozen_until, created_at`

func scanCashTransaction(row interface{ Scan(...any) error }) (*domain.CashTransaction, error) {
	var t domain.CashTransaction
	err := row.Scan(&t.ID, &t.CashLineID, &t.Amount, &t.Fees, &t.NetAmount, &t.CommissionRate,
		&t.Type, &t.DepositType, &t.RecipientNumber, &t.Description, &t.Status, &t.UserID, &t.Reference, &t.FrozenUntil, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *cashLineRepository) GetTransaction(ctx context.Context, id int32) (*domain.CashTransaction, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+cashTransactionColumns+` FROM cash_transactions WHERE id = $1`, id)
	t, err := scanCashTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return t, err
}

func (r *cashLineRepository) ListTransactions(ctx context.Context, filter domain.CashTransactionFilter, page, pageSize int32) ([]domain.CashTransaction, int32, error) {
	where := ` WHERE 1=1`
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if filter.CashLineID != nil {
		where += ` AND cash_line_id = ` + arg(*filter.CashLineID)
	}
	if filter.Type != nil {
		where += ` AND type = ` + arg(*filter.Type)
	}
	if filter.Status != nil {
		where += ` AND status = ` + arg(*filter.Status)
	}
	if filter.From != nil {
		where += ` AND created_at >= ` + arg(*filter.From)
	}
	if filter.To != nil {
		where += ` AND created_at < ` + arg(*filter.To)
	}
	if filter.Search != "" {
		p := arg("%" + filter.Search + "%")
		where += ` AND (recipient_number LIKE ` + p + ` OR description LIKE ` + p + `)`
	}

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM cash_transactions`+where, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	query := `SELECT ` + cashTransactionColumns + ` FROM cash_transactions` + where +
		` ORDER BY created_at DESC LIMIT ` + arg(pageSize) + ` OFFSET ` + arg(offset)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var txs []domain.CashTransaction
	for rows.Next() {
		t, err := scanCashTransaction(rows)
		if err != nil {
			return nil, 0, err
		}
		txs = append(txs, *t)
	}
	return txs, count, rows.Err()
}

func (r *cashLineRepository) DailyActivity(ctx context.Context, from, to time.Time) (*domain.CashDashboard, error) {
	var d domain.CashDashboard
	err := r.db.QueryRowContext(ctx, `
		SELECT count(*),
			COALESCE(SUM(CASE WHEN type = 'WITHDRAW' THEN amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN type = 'DEPOSIT' THEN amount ELSE 0 END), 0),
			COALESCE(SUM(fees), 0)
		FROM cash_transactions
		WHERE status = 'COMPLETED' AND created_at >= $1 AND created_at < $2`,
		from, to).Scan(&d.TotalTransactions, &d.TotalWithdrawals, &d.TotalDeposits, &d.TotalFees)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *cashLineRepository) ResetDailyCounters(ctx context.Context, ids []int32, resetAt time.Time) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE cash_lines SET daily_withdraw_used = 0, daily_deposit_used = 0,
			last_reset_date = $1, updated_at = $1
		WHERE id = ANY($2)`, resetAt, pq.Array(ids))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *cashLineRepository) ResetMonthlyCounters(ctx context.Context, resetAt time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE cash_lines SET monthly_withdraw_used = 0, monthly_deposit_used = 0,
			status = CASE WHEN status = 'FROZEN' THEN 'ACTIVE' ELSE status END,
			last_reset_date = $1, updated_at = $1
		WHERE status <> 'DELETED'`, resetAt)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
