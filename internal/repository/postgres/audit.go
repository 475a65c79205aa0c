package postgres

import (
	"context"
	"database/sql"
	"strconv"

	"cashdesk-backend/internal/domain"
	"cashdesk-backend/internal/repository"
)

type auditRepository struct {
	db *sql.DB
}

func NewAuditRepository(db *sql.DB) repository.AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) List(ctx context.Context, filter domain.AuditFilter, page, pageSize int32) ([]domain.AuditEntry, int32, error) {
	where := ` WHERE 1=1`
	args := []any{}
	if filter.EntityType != "" {
		args = append(args, filter.EntityType)
		where += ` AND entity_type = $` + strconv.Itoa(len(args))
	}
	if filter.ActionType != "" {
		args = append(args, filter.ActionType)
		where += ` AND action_type = $` + strconv.Itoa(len(args))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		where += ` AND created_at >= $` + strconv.Itoa(len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		where += ` AND created_at < $` + strconv.Itoa(len(args))
	}

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM audit_logs`+where, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	args = append(args, pageSize, offset)
	query := `SELECT id, user_id, action_type, entity_type, entity_id, COALESCE(details, ''), created_at
		FROM audit_logs` + where +
		` ORDER BY created_at DESC LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args))
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var entries []domain.AuditEntry
	for rows.Next() {
		var e domain.AuditEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.ActionType, &e.EntityType, &e.EntityID, &e.Details, &e.CreatedAt); err != nil {
			return nil, 0, err
		}
		entries = append(entries, e)
	}
	return entries, count, rows.Err()
}
