package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"cashdesk-backend/internal/domain"
	"cashdesk-backend/internal/repository"
)

type physicalCashRepository struct {
	db *sql.DB
}

func NewPhysicalCashRepository(db *sql.DB) repository.PhysicalCashRepository {
	return &physicalCashRepository{db: db}
}

// ApplyTransaction commits one drawer movement. Withdrawals re-check drawer
// sufficiency inside the transaction so two concurrent expenses cannot both
// drain the same cash.
func (r *physicalCashRepository) ApplyTransaction(ctx context.Context, mut *repository.PhysicalCashMutation) error {
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

	t := mut.Transaction
	err = tx.QueryRowContext(ctx, `
		INSERT INTO physical_cash_transactions (amount, type, description, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		t.Amount, t.Type, t.Description, t.UserID, t.CreatedAt,
	).Scan(&t.ID)
	if err != nil {
		return err
	}

	if err := adjustSystemBalance(ctx, tx, mut.CashDelta, t.CreatedAt); err != nil {
		return err
	}
	if mut.Audit != nil {
		mut.Audit.EntityID = &t.ID
	}
	if err := insertAudit(ctx, tx, mut.Audit); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *physicalCashRepository) GetTransaction(ctx context.Context, id int32) (*domain.PhysicalCashTransaction, error) {
	var t domain.PhysicalCashTransaction
	err := r.db.QueryRowContext(ctx, `
		SELECT id, amount, type, COALESCE(description, ''), user_id, created_at
		FROM physical_cash_transactions WHERE id = $1`, id,
	).Scan(&t.ID, &t.Amount, &t.Type, &t.Description, &t.UserID, &t.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *physicalCashRepository) ListTransactions(ctx context.Context, txType *domain.TransactionType, from, to *time.Time, page, pageSize int32) ([]domain.PhysicalCashTransaction, int32, error) {
	where := ` WHERE 1=1`
	args := []any{}
	if txType != nil {
		args = append(args, *txType)
		where += ` AND type = $` + strconv.Itoa(len(args))
	}
	if from != nil {
		args = append(args, *from)
		where += ` AND created_at >= $` + strconv.Itoa(len(args))
	}
	if to != nil {
		args = append(args, *to)
		where += ` AND created_at < $` + strconv.Itoa(len(args))
	}

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM physical_cash_transactions`+where, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	args = append(args, pageSize, offset)
	query := `SELECT id, amount, type, COALESCE(description, ''), user_id, created_at
		FROM physical_cash_transactions` + where +
		` ORDER BY created_at DESC LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args))
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var txs []domain.PhysicalCashTransaction
	for rows.Next() {
		var t domain.PhysicalCashTransaction
		if err := rows.Scan(&t.ID, &t.Amount, &t.Type, &t.Description, &t.UserID, &t.CreatedAt); err != nil {
			return nil, 0, err
		}
		txs = append(txs, t)
	}
	return txs, count, rows.Err()
}
