package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"cashdesk-backend/internal/domain"
	"cashdesk-backend/internal/repository"
)

func TestSupplierService_RecordEntry(t *testing.T) {
	now := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	ctx := context.Background()

	newSupplier := func() *domain.Supplier {
		return &domain.Supplier{
			ID:             3,
			Name:           "Metro Wholesale",
			Type:           domain.SupplierTypeSupplier,
			OpeningBalance: dec("100"),
			CurrentBalance: dec("250"),
		}
	}

	t.Run("CreditRaisesBalance", func(t *testing.T) {
		repo := new(MockSupplierRepo)
		repo.On("GetByID", ctx, int32(3)).Return(newSupplier(), nil).Once()
		repo.On("ApplyEntry", ctx, mock.MatchedBy(func(mut *repository.SupplierMutation) bool {
			return mut.Supplier.CurrentBalance.Equal(dec("330"))
		})).Return(nil).Once()

		svc := &supplierService{supplierRepo: repo, now: fixedClock(now)}
		entry, err := svc.RecordEntry(ctx, &domain.SupplierTransaction{
			SupplierID: 3, Amount: dec("80"), Type: domain.EntryTypeCredit, UserID: "op-1",
		})
		assert.NoError(t, err)
		assert.Equal(t, now, entry.TransactionDate)
		repo.AssertExpectations(t)
	})

	t.Run("DebitLowersBalanceBelowZero", func(t *testing.T) {
		repo := new(MockSupplierRepo)
		repo.On("GetByID", ctx, int32(3)).Return(newSupplier(), nil).Once()
		repo.On("ApplyEntry", ctx, mock.MatchedBy(func(mut *repository.SupplierMutation) bool {
			return mut.Supplier.CurrentBalance.Equal(dec("-150"))
		})).Return(nil).Once()

		svc := &supplierService{supplierRepo: repo, now: fixedClock(now)}
		_, err := svc.RecordEntry(ctx, &domain.SupplierTransaction{
			SupplierID: 3, Amount: dec("400"), Type: domain.EntryTypeDebit, UserID: "op-1",
		})
		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("ExplicitTransactionDateKept", func(t *testing.T) {
		repo := new(MockSupplierRepo)
		repo.On("GetByID", ctx, int32(3)).Return(newSupplier(), nil).Once()
		repo.On("ApplyEntry", ctx, mock.Anything).Return(nil).Once()

		when := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
		svc := &supplierService{supplierRepo: repo, now: fixedClock(now)}
		entry, err := svc.RecordEntry(ctx, &domain.SupplierTransaction{
			SupplierID: 3, Amount: dec("10"), Type: domain.EntryTypeCredit, TransactionDate: when,
		})
		assert.NoError(t, err)
		assert.Equal(t, when, entry.TransactionDate)
	})

	t.Run("NonPositiveAmountRejects", func(t *testing.T) {
		repo := new(MockSupplierRepo)
		svc := &supplierService{supplierRepo: repo, now: fixedClock(now)}
		_, err := svc.RecordEntry(ctx, &domain.SupplierTransaction{
			SupplierID: 3, Amount: dec("0"), Type: domain.EntryTypeCredit,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	})
}

func TestSupplierService_EditEntry(t *testing.T) {
	now := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	ctx := context.Background()

	t.Run("ReversesOldAndAppliesNew", func(t *testing.T) {
		repo := new(MockSupplierRepo)
		old := &domain.SupplierTransaction{
			ID: 9, SupplierID: 3, Amount: dec("80"), Type: domain.EntryTypeCredit,
		}
		repo.On("GetEntry", ctx, int32(9)).Return(old, nil).Once()
		repo.On("ReplaceEntry", ctx, old, mock.MatchedBy(func(e *domain.SupplierTransaction) bool {
			// Net effect on the balance is -80 (reverse credit) -120 (apply
			// debit); the repository applies the two signed amounts together.
			return e.ID == int32(9) && e.SignedAmount().Equal(dec("-120"))
		}), mock.Anything).Return(nil).Once()

		svc := &supplierService{supplierRepo: repo, now: fixedClock(now)}
		err := svc.EditEntry(ctx, &domain.SupplierTransaction{
			ID: 9, SupplierID: 3, Amount: dec("120"), Type: domain.EntryTypeDebit,
		}, "op-1")
		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("SupplierMismatchRejects", func(t *testing.T) {
		repo := new(MockSupplierRepo)
		repo.On("GetEntry", ctx, int32(9)).Return(&domain.SupplierTransaction{
			ID: 9, SupplierID: 4, Amount: dec("80"), Type: domain.EntryTypeCredit,
		}, nil).Once()

		svc := &supplierService{supplierRepo: repo, now: fixedClock(now)}
		err := svc.EditEntry(ctx, &domain.SupplierTransaction{
			ID: 9, SupplierID: 3, Amount: dec("120"), Type: domain.EntryTypeDebit,
		}, "op-1")
		assert.ErrorIs(t, err, domain.ErrNotFound)
		repo.AssertNotCalled(t, "ReplaceEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestSupplierService_UpdateSupplier(t *testing.T) {
	now := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	ctx := context.Background()

	t.Run("OpeningBalanceShiftMovesCurrent", func(t *testing.T) {
		repo := new(MockSupplierRepo)
		repo.On("GetByID", ctx, int32(3)).Return(&domain.Supplier{
			ID: 3, Name: "Metro Wholesale", OpeningBalance: dec("100"), CurrentBalance: dec("250"),
		}, nil).Once()
		repo.On("Update", ctx, mock.MatchedBy(func(sup *domain.Supplier) bool {
			return sup.CurrentBalance.Equal(dec("300"))
		}), mock.Anything).Return(nil).Once()

		svc := &supplierService{supplierRepo: repo, now: fixedClock(now)}
		err := svc.UpdateSupplier(ctx, &domain.Supplier{
			ID: 3, Name: "Metro Wholesale", OpeningBalance: dec("150"),
		}, "op-1")
		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})
}
