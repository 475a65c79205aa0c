package service

import (
	"context"
	"fmt"
	"time"

	"cashdesk-backend/internal/domain"
	"cashdesk-backend/internal/repository"
)

type supplierService struct {
	supplierRepo repository.SupplierRepository
	now          func() time.Time
}

func NewSupplierService(supplierRepo repository.SupplierRepository) SupplierService {
	return &supplierService{supplierRepo: supplierRepo, now: time.Now}
}

func (s *supplierService) CreateSupplier(ctx context.Context, sup *domain.Supplier, actorID string) error {
	now := s.now().UTC()
	sup.CurrentBalance = sup.OpeningBalance
	sup.CreatedAt = now
	sup.UpdatedAt = now

	audit := &domain.AuditEntry{
		UserID:     actorID,
		ActionType: "Add",
		EntityType: "Supplier",
		Details:    fmt.Sprintf("Added %s %s, opening balance %s", sup.Type, sup.Name, sup.OpeningBalance),
		CreatedAt:  now,
	}
	return s.supplierRepo.Create(ctx, sup, audit)
}

func (s *supplierService) UpdateSupplier(ctx context.Context, sup *domain.Supplier, actorID string) error {
	existing, err := s.supplierRepo.GetByID(ctx, sup.ID)
	if err != nil {
		return err
	}
	// The running balance is owned by the ledger; contact details and the
	// opening balance are the editable fields. Changing the opening balance
	// shifts the current balance by the same delta.
	openingDelta := sup.OpeningBalance.Sub(existing.OpeningBalance)
	sup.CurrentBalance = existing.CurrentBalance.Add(openingDelta)
	sup.UpdatedAt = s.now().UTC()

	audit := &domain.AuditEntry{
		UserID:     actorID,
		ActionType: "Update",
		EntityType: "Supplier",
		EntityID:   &sup.ID,
		Details:    fmt.Sprintf("Updated %s %s", sup.Type, sup.Name),
		CreatedAt:  sup.UpdatedAt,
	}
	return s.supplierRepo.Update(ctx, sup, audit)
}

func (s *supplierService) GetSupplier(ctx context.Context, id int32) (*domain.Supplier, error) {
	return s.supplierRepo.GetByID(ctx, id)
}

func (s *supplierService) ListSuppliers(ctx context.Context) ([]domain.Supplier, error) {
	return s.supplierRepo.List(ctx)
}

func (s *supplierService) Totals(ctx context.Context) (*domain.SupplierTotals, error) {
	return s.supplierRepo.Totals(ctx)
}

// RecordEntry appends a ledger entry and moves the running balance by the
// signed amount. Negative balances are a direction of debt, not an error.
func (s *supplierService) RecordEntry(ctx context.Context, entry *domain.SupplierTransaction) (*domain.SupplierTransaction, error) {
	if !entry.Amount.IsPositive() {
		return nil, fmt.Errorf("entry amount %s: %w", entry.Amount, domain.ErrInvalidAmount)
	}
	sup, err := s.supplierRepo.GetByID(ctx, entry.SupplierID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	if entry.TransactionDate.IsZero() {
		entry.TransactionDate = now
	}
	entry.CreatedAt = now
	sup.CurrentBalance = sup.CurrentBalance.Add(entry.SignedAmount())
	sup.UpdatedAt = now

	mut := &repository.SupplierMutation{
		Supplier:    sup,
		Transaction: entry,
		Audit: &domain.AuditEntry{
			UserID:     entry.UserID,
			ActionType: "Add",
			EntityType: "SupplierTransaction",
			Details:    fmt.Sprintf("%s %s for %s, balance now %s", entry.Type, entry.Amount, sup.Name, sup.CurrentBalance),
			CreatedAt:  now,
		},
	}
	if err := s.supplierRepo.ApplyEntry(ctx, mut); err != nil {
		return nil, err
	}
	return entry, nil
}

// EditEntry rewrites an existing ledger entry. The old signed amount is
// reversed and the new one applied in the same commit, so the invariant
// balance = opening + sum of signed entries holds throughout.
func (s *supplierService) EditEntry(ctx context.Context, entry *domain.SupplierTransaction, actorID string) error {
	if !entry.Amount.IsPositive() {
		return fmt.Errorf("entry amount %s: %w", entry.Amount, domain.ErrInvalidAmount)
	}
	old, err := s.supplierRepo.GetEntry(ctx, entry.ID)
	if err != nil {
		return err
	}
	if old.SupplierID != entry.SupplierID {
		return fmt.Errorf("entry %d belongs to supplier %d: %w", entry.ID, old.SupplierID, domain.ErrNotFound)
	}

	now := s.now().UTC()
	audit := &domain.AuditEntry{
		UserID:     actorID,
		ActionType: "Update",
		EntityType: "SupplierTransaction",
		EntityID:   &entry.ID,
		Details:    fmt.Sprintf("Edited entry %d: %s %s -> %s %s", entry.ID, old.Type, old.Amount, entry.Type, entry.Amount),
		CreatedAt:  now,
	}
	return s.supplierRepo.ReplaceEntry(ctx, old, entry, audit)
}

func (s *supplierService) ListEntries(ctx context.Context, supplierID int32, entryType *domain.EntryType, from, to *time.Time) ([]domain.SupplierTransaction, error) {
	return s.supplierRepo.ListEntries(ctx, supplierID, entryType, from, to)
}
