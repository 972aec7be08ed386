package applicationmock

import (
	"context"
	"errors"

	domain "loanhub-backend/internal/domain/application"
)

var _ domain.Repository = (*Repo)(nil)

var errUnimplemented = errors.New("applicationmock: method not implemented")

// Repo is a function-backed mock that satisfies application.Repository.
type Repo struct {
	CreateFn            func(ctx context.Context, a *domain.Application) error
	SaveFn              func(ctx context.Context, a *domain.Application) error
	GetByIDFn           func(ctx context.Context, id uint64) (*domain.Application, error)
	GetByRefFn          func(ctx context.Context, ref string) (*domain.Application, error)
	GetByRefForUpdateFn func(ctx context.Context, ref string) (*domain.Application, error)
	ListFn              func(ctx context.Context, f domain.ListFilter) ([]domain.Application, int64, error)
	ListByUserFn        func(ctx context.Context, userID uint64) ([]domain.Application, error)
	CountByStatusFn     func(ctx context.Context) (domain.StatusCounts, error)
	SumApprovedAmountFn func(ctx context.Context) (float64, error)
}

func (m *Repo) Create(ctx context.Context, a *domain.Application) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, a *domain.Application) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, a)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Application, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, errUnimplemented
}

func (m *Repo) GetByRef(ctx context.Context, ref string) (*domain.Application, error) {
	if m.GetByRefFn != nil {
		return m.GetByRefFn(ctx, ref)
	}
	return nil, errUnimplemented
}

func (m *Repo) GetByRefForUpdate(ctx context.Context, ref string) (*domain.Application, error) {
	if m.GetByRefForUpdateFn != nil {
		return m.GetByRefForUpdateFn(ctx, ref)
	}
	return nil, errUnimplemented
}

func (m *Repo) List(ctx context.Context, f domain.ListFilter) ([]domain.Application, int64, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f)
	}
	return nil, 0, errUnimplemented
}

func (m *Repo) ListByUser(ctx context.Context, userID uint64) ([]domain.Application, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID)
	}
	return nil, errUnimplemented
}

func (m *Repo) CountByStatus(ctx context.Context) (domain.StatusCounts, error) {
	if m.CountByStatusFn != nil {
		return m.CountByStatusFn(ctx)
	}
	return domain.StatusCounts{}, errUnimplemented
}

func (m *Repo) SumApprovedAmount(ctx context.Context) (float64, error) {
	if m.SumApprovedAmountFn != nil {
		return m.SumApprovedAmountFn(ctx)
	}
	return 0, errUnimplemented
}
