package postgres

import (
	"context"
	"database/sql"
	"errors"

	"cashdesk-backend/internal/domain"
	"cashdesk-backend/internal/repository"
)

type systemBalanceRepository struct {
	db *sql.DB
}

func NewSystemBalanceRepository(db *sql.DB) repository.SystemBalanceRepository {
	return &systemBalanceRepository{db: db}
}

func (r *systemBalanceRepository) Get(ctx context.Context) (*domain.SystemBalance, error) {
	_, err := r.db.ExecContext(ctx, `INSERT INTO system_balances (id) VALUES (1) ON CONFLICT (id) DO NOTHING`)
	if err != nil {
		return nil, err
	}

	var sb domain.SystemBalance
	err = r.db.QueryRowContext(ctx, `
		SELECT id, total_cash_line, total_physical_cash, total_instapay, total_system, last_updated
		FROM system_balances WHERE id = 1`,
	).Scan(&sb.ID, &sb.TotalCashLine, &sb.TotalPhysicalCash, &sb.TotalInstaPay, &sb.TotalSystem, &sb.LastUpdated)
	if err != nil {
		return nil, err
	}
	return &sb, nil
}

type dailyProfitRepository struct {
	db *sql.DB
}

func NewDailyProfitRepository(db *sql.DB) repository.DailyProfitRepository {
	return &dailyProfitRepository{db: db}
}

const dailyProfitColumns = `id, to_char(date, 'YYYY-MM-DD'), cash_line_profit, instapay_profit, fawry_profit, total_profit, created_at, updated_at`

func (r *dailyProfitRepository) GetByDate(ctx context.Context, date string) (*domain.DailyProfit, error) {
	var p domain.DailyProfit
	err := r.db.QueryRowContext(ctx,
		`SELECT `+dailyProfitColumns+` FROM daily_profits WHERE date = $1`, date,
	).Scan(&p.ID, &p.Date, &p.CashLineProfit, &p.InstaPayProfit, &p.FawryProfit, &p.TotalProfit, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *dailyProfitRepository) ListRange(ctx context.Context, from, to string) ([]domain.DailyProfit, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+dailyProfitColumns+` FROM daily_profits WHERE date >= $1 AND date <= $2 ORDER BY date`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profits []domain.DailyProfit
	for rows.Next() {
		var p domain.DailyProfit
		if err := rows.Scan(&p.ID, &p.Date, &p.CashLineProfit, &p.InstaPayProfit, &p.FawryProfit, &p.TotalProfit, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		profits = append(profits, p)
	}
	return profits, rows.Err()
}
