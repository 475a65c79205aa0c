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

type supplierRepository struct {
	db *sql.DB
}

func NewSupplierRepository(db *sql.DB) repository.SupplierRepository {
	return &supplierRepository{db: db}
}

const supplierColumns = `id, name, type, COALESCE(phone_number, ''), COALESCE(email, ''), opening_balance, current_balance, created_at, updated_at`

func scanSupplier(row interface{ Scan(...any) error }) (*domain.Supplier, error) {
	var s domain.Supplier
	err := row.Scan(&s.ID, &s.Name, &s.Type, &s.PhoneNumber, &s.Email, &s.OpeningBalance, &s.CurrentBalance, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *supplierRepository) Create(ctx context.Context, s *domain.Supplier, audit *domain.AuditEntry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO suppliers (name, type, phone_number, email, opening_balance, current_balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`,
		s.Name, s.Type, s.PhoneNumber, s.Email, s.OpeningBalance, s.CurrentBalance, s.CreatedAt, s.UpdatedAt,
	).Scan(&s.ID)
	if err != nil {
		return err
	}
	if audit != nil {
		audit.EntityID = &s.ID
	}
	if err := insertAudit(ctx, tx, audit); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *supplierRepository) GetByID(ctx context.Context, id int32) (*domain.Supplier, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+supplierColumns+` FROM suppliers WHERE id = $1`, id)
	s, err := scanSupplier(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return s, err
}

func (r *supplierRepository) Update(ctx context.Context, s *domain.Supplier, audit *domain.AuditEntry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE suppliers SET name = $1, type = $2, phone_number = $3, email = $4,
			opening_balance = $5, current_balance = $6, updated_at = $7
		WHERE id = $8`,
		s.Name, s.Type, s.PhoneNumber, s.Email, s.OpeningBalance, s.CurrentBalance, s.UpdatedAt, s.ID)
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

func (r *supplierRepository) List(ctx context.Context) ([]domain.Supplier, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+supplierColumns+` FROM suppliers ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var suppliers []domain.Supplier
	for rows.Next() {
		s, err := scanSupplier(rows)
		if err != nil {
			return nil, err
		}
		suppliers = append(suppliers, *s)
	}
	return suppliers, rows.Err()
}

func (r *supplierRepository) Totals(ctx context.Context) (*domain.SupplierTotals, error) {
	var t domain.SupplierTotals
	err := r.db.QueryRowContext(ctx, `
		SELECT
			COALESCE(SUM(CASE WHEN current_balance > 0 THEN current_balance ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN current_balance < 0 THEN -current_balance ELSE 0 END), 0),
			COUNT(*) FILTER (WHERE current_balance > 0),
			COUNT(*) FILTER (WHERE current_balance < 0),
			COUNT(*) FILTER (WHERE current_balance = 0)
		FROM suppliers`,
	).Scan(&t.TotalCredit, &t.TotalDebit, &t.CreditSuppliers, &t.DebitSuppliers, &t.SettledSuppliers)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ApplyEntry inserts a ledger entry and moves the supplier balance by its
// signed amount in one transaction.
func (r *supplierRepository) ApplyEntry(ctx context.Context, mut *repository.SupplierMutation) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	t := mut.Transaction
	err = tx.QueryRowContext(ctx, `
		INSERT INTO supplier_transactions (supplier_id, amount, type, description, user_id, transaction_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		t.SupplierID, t.Amount, t.Type, t.Description, t.UserID, t.TransactionDate, t.CreatedAt,
	).Scan(&t.ID)
	if err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE suppliers SET current_balance = current_balance + $1, updated_at = $2 WHERE id = $3`,
		t.SignedAmount(), t.CreatedAt, t.SupplierID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	if mut.Audit != nil {
		mut.Audit.EntityID = &t.ID
	}
	if err := insertAudit(ctx, tx, mut.Audit); err != nil {
		return err
	}
	return tx.Commit()
}

// ReplaceEntry edits an entry with a compensating adjustment: the old delta
// is reversed before the new one is applied, preserving
// balance = opening + sum of signed entries.
func (r *supplierRepository) ReplaceEntry(ctx context.Context, old, updated *domain.SupplierTransaction, audit *domain.AuditEntry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	delta := updated.SignedAmount().Sub(old.SignedAmount())
	res, err := tx.ExecContext(ctx, `
		UPDATE suppliers SET current_balance = current_balance + $1, updated_at = $2 WHERE id = $3`,
		delta, time.Now().UTC(), old.SupplierID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}

	res, err = tx.ExecContext(ctx, `
		UPDATE supplier_transactions SET amount = $1, type = $2, description = $3, transaction_date = $4
		WHERE id = $5`,
		updated.Amount, updated.Type, updated.Description, updated.TransactionDate, old.ID)
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

func (r *supplierRepository) GetEntry(ctx context.Context, id int32) (*domain.SupplierTransaction, error) {
	var t domain.SupplierTransaction
	err := r.db.QueryRowContext(ctx, `
		SELECT id, supplier_id, amount, type, COALESCE(description, ''), user_id, transaction_date, created_at
		FROM supplier_transactions WHERE id = $1`, id,
	).Scan(&t.ID, &t.SupplierID, &t.Amount, &t.Type, &t.Description, &t.UserID, &t.TransactionDate, &t.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *supplierRepository) ListEntries(ctx context.Context, supplierID int32, entryType *domain.EntryType, from, to *time.Time) ([]domain.SupplierTransaction, error) {
	where := ` WHERE supplier_id = $1`
	args := []any{supplierID}
	if entryType != nil {
		args = append(args, *entryType)
		where += ` AND type = $` + strconv.Itoa(len(args))
	}
	if from != nil {
		args = append(args, *from)
		where += ` AND transaction_date >= $` + strconv.Itoa(len(args))
	}
	if to != nil {
		args = append(args, *to)
		where += ` AND transaction_date < $` + strconv.Itoa(len(args))
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, supplier_id, amount, type, COALESCE(description, ''), user_id, transaction_date, created_at
		FROM supplier_transactions`+where+` ORDER BY transaction_date DESC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.SupplierTransaction
	for rows.Next() {
		var t domain.SupplierTransaction
		if err := rows.Scan(&t.ID, &t.SupplierID, &t.Amount, &t.Type, &t.Description, &t.UserID, &t.TransactionDate, &t.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, t)
	}
	return entries, rows.Err()
}
