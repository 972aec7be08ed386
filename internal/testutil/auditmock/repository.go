package auditmock

import (
	"context"
	"errors"

	domain "loanhub-backend/internal/domain/audit"
)

var _ domain.Repository = (*Repo)(nil)

var errUnimplemented = errors.New("auditmock: method not implemented")

// Repo is a function-backed mock that satisfies audit.Repository.
type Repo struct {
	CreateFn            func(ctx context.Context, l *domain.Log) error
	ListByApplicationFn func(ctx context.Context, applicationID uint64) ([]domain.Log, error)
}

func (m *Repo) Create(ctx context.Context, l *domain.Log) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) ListByApplication(ctx context.Context, applicationID uint64) ([]domain.Log, error) {
	if m.ListByApplicationFn != nil {
		return m.ListByApplicationFn(ctx, applicationID)
	}
	return nil, errUnimplemented
}
