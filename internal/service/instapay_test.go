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

func TestInstaPayService_Deposit(t *testing.T) {
	now := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	ctx := context.Background()

	newAccount := func() *domain.InstaPayAccount {
		return &domain.InstaPayAccount{
			ID:                7,
			PhoneNumber:       "01055556666",
			BankAccountNumber: "EG120002000156789",
			BankName:          "CIB",
			CurrentBalance:    dec("1000"),
			Status:            domain.AccountStatusActive,
			UpdatedAt:         now.Add(-time.Hour),
		}
	}

	t.Run("BooksFeeAndPaysNetFromDrawer", func(t *testing.T) {
		repo := new(MockInstaPayRepo)
		sys := new(MockSystemBalanceRepo)
		repo.On("GetByID", ctx, int32(7)).Return(newAccount(), nil).Once()
		sys.On("Get", ctx).Return(&domain.SystemBalance{ID: 1, TotalPhysicalCash: dec("500")}, nil).Once()
		repo.On("ApplyTransaction", ctx, mock.MatchedBy(func(mut *repository.InstaPayMutation) bool {
			return mut.Account.CurrentBalance.Equal(dec("1095")) &&
				mut.CashDelta.Equal(dec("-95")) &&
				mut.ProfitFee.Equal(dec("5")) &&
				mut.ProfitDate == "2025-03-10"
		})).Return(nil).Once()

		svc := &instaPayService{acctRepo: repo, sysRepo: sys, loc: cairo, now: fixedClock(now)}
		tx, err := svc.Deposit(ctx, domain.InstaPayOperation{
			AccountID: 7, Amount: dec("100"), FeeRate: dec("5"), ActorID: "op-1",
		})
		assert.NoError(t, err)
		assert.Equal(t, dec("5").String(), tx.Fees.String())
		assert.Equal(t, dec("95").String(), tx.NetAmount.String())
		repo.AssertExpectations(t)
		sys.AssertExpectations(t)
	})

	t.Run("DrawerShortfallRejects", func(t *testing.T) {
		repo := new(MockInstaPayRepo)
		sys := new(MockSystemBalanceRepo)
		repo.On("GetByID", ctx, int32(7)).Return(newAccount(), nil).Once()
		sys.On("Get", ctx).Return(&domain.SystemBalance{ID: 1, TotalPhysicalCash: dec("50")}, nil).Once()

		svc := &instaPayService{acctRepo: repo, sysRepo: sys, loc: cairo, now: fixedClock(now)}
		_, err := svc.Deposit(ctx, domain.InstaPayOperation{
			AccountID: 7, Amount: dec("100"), FeeRate: dec("5"),
		})
		assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
		repo.AssertNotCalled(t, "ApplyTransaction", mock.Anything, mock.Anything)
	})

	t.Run("ZeroFeeRateRejects", func(t *testing.T) {
		repo := new(MockInstaPayRepo)
		svc := &instaPayService{acctRepo: repo, loc: cairo, now: fixedClock(now)}
		_, err := svc.Deposit(ctx, domain.InstaPayOperation{
			AccountID: 7, Amount: dec("100"), FeeRate: dec("0"),
		})
		assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	})

	t.Run("FlatFeeOverridesRate", func(t *testing.T) {
		repo := new(MockInstaPayRepo)
		sys := new(MockSystemBalanceRepo)
		repo.On("GetByID", ctx, int32(7)).Return(newAccount(), nil).Once()
		sys.On("Get", ctx).Return(&domain.SystemBalance{ID: 1, TotalPhysicalCash: dec("500")}, nil).Once()
		repo.On("ApplyTransaction", ctx, mock.MatchedBy(func(mut *repository.InstaPayMutation) bool {
			return mut.Account.CurrentBalance.Equal(dec("1090")) &&
				mut.CashDelta.Equal(dec("-90")) &&
				mut.ProfitFee.Equal(dec("10"))
		})).Return(nil).Once()

		svc := &instaPayService{acctRepo: repo, sysRepo: sys, loc: cairo, now: fixedClock(now)}
		tx, err := svc.Deposit(ctx, domain.InstaPayOperation{
			AccountID: 7, Amount: dec("100"), FeeRate: dec("5"), FeeAmount: dec("10"), ActorID: "op-1",
		})
		assert.NoError(t, err)
		assert.Equal(t, dec("10").String(), tx.Fees.String())
		assert.Equal(t, dec("90").String(), tx.NetAmount.String())
		repo.AssertExpectations(t)
		sys.AssertExpectations(t)
	})

	t.Run("FlatFeeBeyondAmountRejects", func(t *testing.T) {
		repo := new(MockInstaPayRepo)
		repo.On("GetByID", ctx, int32(7)).Return(newAccount(), nil).Once()

		svc := &instaPayService{acctRepo: repo, loc: cairo, now: fixedClock(now)}
		_, err := svc.Deposit(ctx, domain.InstaPayOperation{
			AccountID: 7, Amount: dec("15"), FeeAmount: dec("20"),
		})
		assert.ErrorIs(t, err, domain.ErrInvalidAmount)
		repo.AssertNotCalled(t, "ApplyTransaction", mock.Anything, mock.Anything)
	})

	t.Run("NegativeFlatFeeRejects", func(t *testing.T) {
		repo := new(MockInstaPayRepo)
		svc := &instaPayService{acctRepo: repo, loc: cairo, now: fixedClock(now)}
		_, err := svc.Deposit(ctx, domain.InstaPayOperation{
			AccountID: 7, Amount: dec("100"), FeeAmount: dec("-1"),
		})
		assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	})

	t.Run("FrozenAccountRejects", func(t *testing.T) {
		repo := new(MockInstaPayRepo)
		acct := newAccount()
		acct.Status = domain.AccountStatusFrozen
		repo.On("GetByID", ctx, int32(7)).Return(acct, nil).Once()

		svc := &instaPayService{acctRepo: repo, loc: cairo, now: fixedClock(now)}
		_, err := svc.Deposit(ctx, domain.InstaPayOperation{
			AccountID: 7, Amount: dec("100"), FeeRate: dec("5"),
		})
		assert.ErrorIs(t, err, domain.ErrInactiveAccount)
	})
}

func TestInstaPayService_Withdraw(t *testing.T) {
	now := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	ctx := context.Background()

	newAccount := func() *domain.InstaPayAccount {
		return &domain.InstaPayAccount{
			ID:             7,
			PhoneNumber:    "01055556666",
			CurrentBalance: dec("1000"),
			Status:         domain.AccountStatusActive,
			UpdatedAt:      now.Add(-time.Hour),
		}
	}

	t.Run("CollectsGrossIntoDrawer", func(t *testing.T) {
		repo := new(MockInstaPayRepo)
		repo.On("GetByID", ctx, int32(7)).Return(newAccount(), nil).Once()
		repo.On("ApplyTransaction", ctx, mock.MatchedBy(func(mut *repository.InstaPayMutation) bool {
			return mut.Account.CurrentBalance.Equal(dec("898")) &&
				mut.CashDelta.Equal(dec("102")) &&
				mut.ProfitFee.Equal(dec("2"))
		})).Return(nil).Once()

		svc := &instaPayService{acctRepo: repo, loc: cairo, now: fixedClock(now)}
		tx, err := svc.Withdraw(ctx, domain.InstaPayOperation{
			AccountID: 7, Amount: dec("100"), FeeRate: dec("2"), ActorID: "op-1",
		})
		assert.NoError(t, err)
		assert.Equal(t, dec("102").String(), tx.NetAmount.String())
		repo.AssertExpectations(t)
	})

	t.Run("BalanceBelowGrossRejects", func(t *testing.T) {
		repo := new(MockInstaPayRepo)
		acct := newAccount()
		acct.CurrentBalance = dec("101")
		repo.On("GetByID", ctx, int32(7)).Return(acct, nil).Once()

		svc := &instaPayService{acctRepo: repo, loc: cairo, now: fixedClock(now)}
		_, err := svc.Withdraw(ctx, domain.InstaPayOperation{
			AccountID: 7, Amount: dec("100"), FeeRate: dec("2"),
		})
		assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
		repo.AssertNotCalled(t, "ApplyTransaction", mock.Anything, mock.Anything)
	})
}

func TestInstaPayService_CreateAccount(t *testing.T) {
	now := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	ctx := context.Background()

	t.Run("DuplicateIdentifierRejects", func(t *testing.T) {
		repo := new(MockInstaPayRepo)
		repo.On("IdentifierExists", ctx, "01055556666", "EG12", int32(0)).Return(true, nil).Once()

		svc := &instaPayService{acctRepo: repo, loc: cairo, now: fixedClock(now)}
		err := svc.CreateAccount(ctx, &domain.InstaPayAccount{
			PhoneNumber: "01055556666", BankAccountNumber: "EG12", CurrentBalance: dec("0"),
		}, "op-1")
		assert.ErrorIs(t, err, domain.ErrDuplicateIdentifier)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("NegativeOpeningBalanceRejects", func(t *testing.T) {
		repo := new(MockInstaPayRepo)
		svc := &instaPayService{acctRepo: repo, loc: cairo, now: fixedClock(now)}
		err := svc.CreateAccount(ctx, &domain.InstaPayAccount{CurrentBalance: dec("-1")}, "op-1")
		assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	})
}

func TestInstaPayService_UpdateAccount(t *testing.T) {
	now := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	ctx := context.Background()

	t.Run("BalanceAndStatusCarryOver", func(t *testing.T) {
		repo := new(MockInstaPayRepo)
		repo.On("GetByID", ctx, int32(7)).Return(&domain.InstaPayAccount{
			ID: 7, PhoneNumber: "01055556666", BankAccountNumber: "EG12",
			CurrentBalance: dec("1000"), Status: domain.AccountStatusActive,
		}, nil).Once()
		repo.On("Update", ctx, mock.MatchedBy(func(acct *domain.InstaPayAccount) bool {
			return acct.CurrentBalance.Equal(dec("1000")) &&
				acct.Status == domain.AccountStatusActive &&
				acct.BankName == "NBE"
		}), mock.Anything).Return(nil).Once()

		svc := &instaPayService{acctRepo: repo, loc: cairo, now: fixedClock(now)}
		err := svc.UpdateAccount(ctx, &domain.InstaPayAccount{
			ID: 7, PhoneNumber: "01055556666", BankAccountNumber: "EG12", BankName: "NBE",
		}, "op-1")
		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("ChangedIdentifierMustBeFree", func(t *testing.T) {
		repo := new(MockInstaPayRepo)
		repo.On("GetByID", ctx, int32(7)).Return(&domain.InstaPayAccount{
			ID: 7, PhoneNumber: "01055556666", BankAccountNumber: "EG12",
		}, nil).Once()
		repo.On("IdentifierExists", ctx, "01077778888", "EG12", int32(7)).Return(true, nil).Once()

		svc := &instaPayService{acctRepo: repo, loc: cairo, now: fixedClock(now)}
		err := svc.UpdateAccount(ctx, &domain.InstaPayAccount{
			ID: 7, PhoneNumber: "01077778888", BankAccountNumber: "EG12",
		}, "op-1")
		assert.ErrorIs(t, err, domain.ErrDuplicateIdentifier)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})
}
