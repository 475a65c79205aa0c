package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strconv"

	"cashdesk-backend/internal/domain"
	"cashdesk-backend/internal/repository"

	"github.com/shopspring/decimal"
)

type instaPayRepository struct {
	db *sql.DB
}

func NewInstaPayRepository(db *sql.DB) repository.InstaPayRepository {
	return &instaPayRepository{db: db}
}

const instaPayColumns = `id, phone_number, bank_account_number, bank_name, current_balance, status, created_at, updated_at`

func scanInstaPay(row interface{ Scan(...any) error }) (*domain.InstaPayAccount, error) {
	var a domain.InstaPayAccount
	err := row.Scan(&a.ID, &a.PhoneNumber, &a.BankAccountNumber, &a.BankName, &a.CurrentBalance, &a.Status, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *instaPayRepository) Create(ctx context.Context, acct *domain.InstaPayAccount, audit *domain.AuditEntry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO instapay_accounts (phone_number, bank_account_number, bank_name, current_balance, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		acct.PhoneNumber, acct.BankAccountNumber, acct.BankName, acct.CurrentBalance, acct.Status, acct.CreatedAt, acct.UpdatedAt,
	).Scan(&acct.ID)
	if err != nil {
		return err
	}

	// Opening balance flows into the InstaPay component via the recompute.
	if err := adjustSystemBalance(ctx, tx, decimal.Zero, acct.CreatedAt); err != nil {
		return err
	}
	if audit != nil {
		audit.EntityID = &acct.ID
	}
	if err := insertAudit(ctx, tx, audit); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *instaPayRepository) GetByID(ctx context.Context, id int32) (*domain.InstaPayAccount, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+instaPayColumns+` FROM instapay_accounts WHERE id = $1`, id)
	acct, err := scanInstaPay(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return acct, err
}

func (r *instaPayRepository) Update(ctx context.Context, acct *domain.InstaPayAccount, audit *domain.AuditEntry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE instapay_accounts SET phone_number = $1, bank_account_number = $2, bank_name = $3,
			current_balance = $4, status = $5, updated_at = $6
		WHERE id = $7`,
		acct.PhoneNumber, acct.BankAccountNumber, acct.BankName, acct.CurrentBalance, acct.Status, acct.UpdatedAt, acct.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	if err := adjustSystemBalance(ctx, tx, decimal.Zero, acct.UpdatedAt); err != nil {
		return err
	}
	if err := insertAudit(ctx, tx, audit); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *instaPayRepository) List(ctx context.Context, activeOnly bool) ([]domain.InstaPayAccount, error) {
	query := `SELECT ` + instaPayColumns + ` FROM instapay_accounts`
	if activeOnly {
		query += ` WHERE status = 'ACTIVE'`
	} else {
		query += ` WHERE status <> 'DELETED'`
	}
	query += ` ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []domain.InstaPayAccount
	for rows.Next() {
		a, err := scanInstaPay(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, *a)
	}
	return accounts, rows.Err()
}

func (r *instaPayRepository) IdentifierExists(ctx context.Context, phone, bankAccount string, excludeID int32) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM instapay_accounts WHERE (phone_number = $1 OR bank_account_number = $2) AND id <> $3)`,
		phone, bankAccount, excludeID).Scan(&exists)
	return exists, err
}

// ApplyTransaction commits an InstaPay operation. The deposit direction
// consumes drawer cash, so sufficiency is re-checked inside the transaction.
func (r *instaPayRepository) ApplyTransaction(ctx context.Context, mut *repository.InstaPayMutation) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if mut.CashDelta.IsNegative() {
		ok, err := physicalCashSufficient(ctx, tx, mut.CashDelta.Neg())
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrInsufficientFunds
		}
	}

	acct := mut.Account
	res, err := tx.ExecContext(ctx, `
		UPDATE instapay_accounts SET current_balance = $1, updated_at = $2
		WHERE id = $3 AND updated_at = $4`,
		acct.CurrentBalance, acct.UpdatedAt, acct.ID, mut.PrevUpdatedAt)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrConcurrencyConflict
	}

	t := mut.Transaction
	err = tx.QueryRowContext(ctx, `
		INSERT INTO instapay_transactions (instapay_id, amount, fee_rate, fees, net_amount, type, description, status, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`,
		t.InstaPayID, t.Amount, t.FeeRate, t.Fees, t.NetAmount, t.Type, t.Description, t.Status, t.UserID, t.CreatedAt,
	).Scan(&t.ID)
	if err != nil {
		return err
	}

	if err := adjustSystemBalance(ctx, tx, mut.CashDelta, acct.UpdatedAt); err != nil {
		return err
	}
	if !mut.ProfitFee.IsZero() {
		if err := addDailyProfit(ctx, tx, profitColumnInstaPay, mut.ProfitDate, mut.ProfitFee, acct.UpdatedAt); err != nil {
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

func (r *instaPayRepository) ListTransactions(ctx context.Context, accountID *int32, page, pageSize int32) ([]domain.InstaPayTransaction, int32, error) {
	where := ``
	args := []any{}
	if accountID != nil {
		where = ` WHERE instapay_id = $1`
		args = append(args, *accountID)
	}

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM instapay_transactions`+where, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	args = append(args, pageSize, offset)
	query := `SELECT id, instapay_id, amount, fee_rate, fees, net_amount, type, COALESCE(description, ''), status, user_id, created_at
		FROM instapay_transactions` + where +
		` ORDER BY created_at DESC LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args))
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var txs []domain.InstaPayTransaction
	for rows.Next() {
		var t domain.InstaPayTransaction
		if err := rows.Scan(&t.ID, &t.InstaPayID, &t.Amount, &t.FeeRate, &t.Fees, &t.NetAmount, &t.Type, &t.Description, &t.Status, &t.UserID, &t.CreatedAt); err != nil {
			return nil, 0, err
		}
		txs = append(txs, t)
	}
	return txs, count, rows.Err()
}
