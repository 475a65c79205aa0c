package postgres

import (
	"context"
	"database/sql"
	"strconv"
	"time"

	"cashdesk-backend/internal/domain"
	"cashdesk-backend/internal/repository"
)

type fawryRepository struct {
	db *sql.DB
}

func NewFawryRepository(db *sql.DB) repository.FawryRepository {
	return &fawryRepository{db: db}
}

func (r *fawryRepository) ApplyTransaction(ctx context.Context, mut *repository.FawryMutation) error {
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
		INSERT INTO fawry_transactions (amount, type, service_type, fees, net_amount, description, status, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`,
		t.Amount, t.Type, t.ServiceType, t.Fees, t.NetAmount, t.Description, t.Status, t.UserID, t.CreatedAt,
	).Scan(&t.ID)
	if err != nil {
		return err
	}

	if !mut.CashDelta.IsZero() {
		if err := adjustSystemBalance(ctx, tx, mut.CashDelta, t.CreatedAt); err != nil {
			return err
		}
	}
	if !mut.ProfitFee.IsZero() {
		if err := addDailyProfit(ctx, tx, profitColumnFawry, mut.ProfitDate, mut.ProfitFee, t.CreatedAt); err != nil {
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

func (r *fawryRepository) ListTransactions(ctx context.Context, serviceType *domain.FawryServiceType, page, pageSize int32) ([]domain.FawryTransaction, int32, error) {
	where := ``
	args := []any{}
	if serviceType != nil {
		args = append(args, *serviceType)
		where = ` WHERE service_type = $1`
	}

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM fawry_transactions`+where, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	args = append(args, pageSize, offset)
	query := `SELECT id, amount, type, service_type, fees, net_amount, COALESCE(description, ''), status, user_id, created_at
		FROM fawry_transactions` + where +
		` ORDER BY created_at DESC LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args))
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var txs []domain.FawryTransaction
	for rows.Next() {
		var t domain.FawryTransaction
		if err := rows.Scan(&t.ID, &t.Amount, &t.Type, &t.ServiceType, &t.Fees, &t.NetAmount, &t.Description, &t.Status, &t.UserID, &t.CreatedAt); err != nil {
			return nil, 0, err
		}
		txs = append(txs, t)
	}
	return txs, count, rows.Err()
}

// ChannelSummary computes a service type's running balance (signed sum of
// all movements) and today's turnover directly from the transaction log.
func (r *fawryRepository) ChannelSummary(ctx context.Context, serviceType domain.FawryServiceType, dayStart, dayEnd time.Time) (*domain.FawryChannelSummary, error) {
	summary := &domain.FawryChannelSummary{ServiceType: serviceType}

	err := r.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(CASE WHEN type = 'DEPOSIT' THEN amount ELSE -amount END), 0)
		FROM fawry_transactions WHERE service_type = $1`, serviceType,
	).Scan(&summary.Balance)
	if err != nil {
		return nil, err
	}

	err = r.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(amount), 0)
		FROM fawry_transactions WHERE service_type = $1 AND created_at >= $2 AND created_at < $3`,
		serviceType, dayStart, dayEnd,
	).Scan(&summary.TodayTotal)
	if err != nil {
		return nil, err
	}
	return summary, nil
}
