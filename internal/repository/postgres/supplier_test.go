package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"cashdesk-backend/internal/domain"
	"cashdesk-backend/internal/repository"
)

func TestSupplierRepository_ApplyEntry(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewSupplierRepository(db)
	ctx := context.Background()
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("Success", func(t *testing.T) {
		entry := &domain.SupplierTransaction{
			SupplierID:      3,
			Amount:          decimal.NewFromInt(80),
			Type:            domain.EntryTypeCredit,
			UserID:          "op-1",
			TransactionDate: now,
			CreatedAt:       now,
		}

		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO supplier_transactions").
			WithArgs(entry.SupplierID, entry.Amount, entry.Type, entry.Description, entry.UserID, now, now).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(9))
		mock.ExpectExec("UPDATE suppliers SET current_balance").
			WithArgs(entry.SignedAmount(), now, entry.SupplierID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.ApplyEntry(ctx, &repository.SupplierMutation{Transaction: entry})
		assert.NoError(t, err)
		assert.Equal(t, int32(9), entry.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("MissingSupplier", func(t *testing.T) {
		entry := &domain.SupplierTransaction{
			SupplierID: 99, Amount: decimal.NewFromInt(80), Type: domain.EntryTypeCredit, CreatedAt: now,
		}

		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO supplier_transactions").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))
		mock.ExpectExec("UPDATE suppliers SET current_balance").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.ApplyEntry(ctx, &repository.SupplierMutation{Transaction: entry})
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSupplierRepository_ReplaceEntry(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewSupplierRepository(db)
	ctx := context.Background()

	old := &domain.SupplierTransaction{
		ID: 9, SupplierID: 3, Amount: decimal.NewFromInt(80), Type: domain.EntryTypeCredit,
	}
	updated := &domain.SupplierTransaction{
		ID: 9, SupplierID: 3, Amount: decimal.NewFromInt(120), Type: domain.EntryTypeDebit,
	}

	// -120 - (+80) = -200 lands on the balance in one adjustment.
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE suppliers SET current_balance").
		WithArgs(decimal.NewFromInt(-200), sqlmock.AnyArg(), int32(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE supplier_transactions SET amount").
		WithArgs(updated.Amount, updated.Type, updated.Description, updated.TransactionDate, int32(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = repo.ReplaceEntry(ctx, old, updated, nil)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSupplierRepository_Totals(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewSupplierRepository(db)
	ctx := context.Background()

	mock.ExpectQuery("SELECT").
		WillReturnRows(sqlmock.NewRows([]string{"credit", "debit", "n_credit", "n_debit", "n_settled"}).
			AddRow("1500", "300", 4, 2, 1))

	totals, err := repo.Totals(ctx)
	assert.NoError(t, err)
	assert.True(t, totals.TotalCredit.Equal(decimal.NewFromInt(1500)))
	assert.Equal(t, int32(2), totals.DebitSuppliers)
}
