package uowmock

import (
	"context"
	"errors"

	"loanhub-backend/internal/domain/application"
	"loanhub-backend/internal/domain/uow"
)

// Ensure compile-time compliance
var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW is a function-backed mock that satisfies uow.UnitOfWork.
// When the function fields are left nil, calls run fn against Repos
// directly (no transaction), which is what most usecase tests want.
type UoW struct {
	Repos                 uow.Repos
	WithinTxFn            func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinApplicationTxFn func(ctx context.Context, ref string, fn func(r uow.Repos, a *application.Application) error) error
}

func New(repos uow.Repos) *UoW { return &UoW{Repos: repos} }

func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return fn(m.Repos)
}

func (m *UoW) WithinApplicationTx(ctx context.Context, ref string, fn func(r uow.Repos, a *application.Application) error) error {
	if m.WithinApplicationTxFn != nil {
		return m.WithinApplicationTxFn(ctx, ref, fn)
	}
	if m.Repos.Applications == nil {
		return errUnimplemented
	}
	a, err := m.Repos.Applications.GetByRefForUpdate(ctx, ref)
	if err != nil {
		return err
	}
	return fn(m.Repos, a)
}
