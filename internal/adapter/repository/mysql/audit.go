package mysql

import (
	"context"

	"gorm.io/gorm"

	domain "loanhub-backend/internal/domain/audit"
)

type AuditRepository struct{ db *gorm.DB }

func NewAuditRepository(db *gorm.DB) *AuditRepository { return &AuditRepository{db: db} }

func (r *AuditRepository) Create(ctx context.Context, l *domain.Log) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *AuditRepository) ListByApplication(ctx context.Context, applicationID uint64) ([]domain.Log, error) {
	var out []domain.Log
	err := r.db.WithContext(ctx).
		Where("application_id = ?", applicationID).
		Order("created_at ASC, id ASC").
		Find(&out).Error
	return out, err
}
