package mysql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "loanhub-backend/internal/domain/document"
)

type DocumentRepository struct{ db *gorm.DB }

func NewDocumentRepository(db *gorm.DB) *DocumentRepository { return &DocumentRepository{db: db} }

// Upsert relies on the unique index over (application_id, document_type):
// a re-upload of the same type replaces the existing row's metadata.
func (r *DocumentRepository) Upsert(ctx context.Context, d *domain.Document) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "application_id"}, {Name: "document_type"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"file_name", "storage_path", "file_size", "mime_type", "public_id", "uploaded_at",
			}),
		}).
		Create(d).Error
}

func (r *DocumentRepository) GetByID(ctx context.Context, id uint64) (*domain.Document, error) {
	var out domain.Document
	res := r.db.WithContext(ctx).First(&out, id)
	return &out, res.Error
}

func (r *DocumentRepository) ListByApplication(ctx context.Context, applicationID uint64) ([]domain.Document, error) {
	var out []domain.Document
	err := r.db.WithContext(ctx).
		Where("application_id = ?", applicationID).
		Order("document_type ASC").
		Find(&out).Error
	return out, err
}
