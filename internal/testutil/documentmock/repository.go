package documentmock

import (
	"context"
	"errors"

	domain "loanhub-backend/internal/domain/document"
)

var _ domain.Repository = (*Repo)(nil)

var errUnimplemented = errors.New("documentmock: method not implemented")

// Repo is a function-backed mock that satisfies document.Repository.
type Repo struct {
	UpsertFn            func(ctx context.Context, d *domain.Document) error
	GetByIDFn           func(ctx context.Context, id uint64) (*domain.Document, error)
	ListByApplicationFn func(ctx context.Context, applicationID uint64) ([]domain.Document, error)
}

func (m *Repo) Upsert(ctx context.Context, d *domain.Document) error {
	if m.UpsertFn != nil {
		return m.UpsertFn(ctx, d)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Document, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, errUnimplemented
}

func (m *Repo) ListByApplication(ctx context.Context, applicationID uint64) ([]domain.Document, error) {
	if m.ListByApplicationFn != nil {
		return m.ListByApplicationFn(ctx, applicationID)
	}
	return nil, errUnimplemented
}
