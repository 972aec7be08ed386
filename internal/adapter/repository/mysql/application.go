package mysql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "loanhub-backend/internal/domain/application"
)

type ApplicationRepository struct{ db *gorm.DB }

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) Create(ctx context.Context, a *domain.Application) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *ApplicationRepository) Save(ctx context.Context, a *domain.Application) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id uint64) (*domain.Application, error) {
	var out domain.Application
	res := r.db.WithContext(ctx).First(&out, id)
	return &out, res.Error
}

func (r *ApplicationRepository) GetByRef(ctx context.Context, ref string) (*domain.Application, error) {
	var out domain.Application
	res := r.db.WithContext(ctx).
		Preload("Documents").
		Where("application_ref = ?", ref).
		First(&out)
	return &out, res.Error
}

// GetByRefForUpdate must run inside a transaction; the lock is held until
// that transaction ends.
func (r *ApplicationRepository) GetByRefForUpdate(ctx context.Context, ref string) (*domain.Application, error) {
	var out domain.Application
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("application_ref = ?", ref).
		First(&out)
	return &out, res.Error
}

func (r *ApplicationRepository) List(ctx context.Context, f domain.ListFilter) ([]domain.Application, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Application{})
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []domain.Application
	err := q.
		Preload("User").
		Preload("Documents").
		Order("created_at DESC, id DESC").
		Offset((f.Page - 1) * f.Limit).
		Limit(f.Limit).
		Find(&out).Error
	return out, total, err
}

func (r *ApplicationRepository) ListByUser(ctx context.Context, userID uint64) ([]domain.Application, error) {
	var out []domain.Application
	err := r.db.WithContext(ctx).
		Preload("Documents").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	return out, err
}

func (r *ApplicationRepository) CountByStatus(ctx context.Context) (domain.StatusCounts, error) {
	var rows []struct {
		Status domain.Status
		N      int64
	}
	err := r.db.WithContext(ctx).
		Model(&domain.Application{}).
		Select("status, COUNT(*) AS n").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return domain.StatusCounts{}, err
	}

	var counts domain.StatusCounts
	for _, row := range rows {
		switch row.Status {
		case domain.StatusPending:
			counts.Pending = row.N
		case domain.StatusApproved:
			counts.Approved = row.N
		case domain.StatusRejected:
			counts.Rejected = row.N
		}
	}
	return counts, nil
}

func (r *ApplicationRepository) SumApprovedAmount(ctx context.Context) (float64, error) {
	var sum float64
	err := r.db.WithContext(ctx).
		Model(&domain.Application{}).
		Where("status = ?", domain.StatusApproved).
		Select("COALESCE(SUM(approved_amount), 0)").
		Scan(&sum).Error
	return sum, err
}
