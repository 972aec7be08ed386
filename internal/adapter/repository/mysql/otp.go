package mysql

import (
	"context"
	"time"

	"gorm.io/gorm"

	domain "loanhub-backend/internal/domain/otp"
)

type OtpRepository struct{ db *gorm.DB }

func NewOtpRepository(db *gorm.DB) *OtpRepository { return &OtpRepository{db: db} }

func (r *OtpRepository) Create(ctx context.Context, v *domain.Verification) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *OtpRepository) InvalidateActive(ctx context.Context, email string, purpose domain.Purpose) error {
	return r.db.WithContext(ctx).
		Model(&domain.Verification{}).
		Where("email = ? AND purpose = ? AND used = ?", email, purpose, false).
		Update("used", true).Error
}

// Consume is a single conditional UPDATE so a code can only ever be
// redeemed once, even under concurrent attempts.
func (r *OtpRepository) Consume(ctx context.Context, email, code string, purpose domain.Purpose, now time.Time) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&domain.Verification{}).
		Where("email = ? AND code = ? AND purpose = ? AND used = ? AND expires_at > ?",
			email, code, purpose, false, now).
		Update("used", true)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
