package service

import (
	"context"

	"cashdesk-backend/internal/domain"
	"cashdesk-backend/internal/repository"
)

type auditService struct {
	auditRepo repository.AuditRepository
}

func NewAuditService(auditRepo repository.AuditRepository) AuditService {
	return &auditService{auditRepo: auditRepo}
}

func (s *auditService) List(ctx context.Context, filter domain.AuditFilter, page, pageSize int32) ([]domain.AuditEntry, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 200 {
		pageSize = 50
	}
	return s.auditRepo.List(ctx, filter, page, pageSize)
}
