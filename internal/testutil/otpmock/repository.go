package otpmock

import (
	"context"
	"errors"
	"time"

	domain "loanhub-backend/internal/domain/otp"
)

var _ domain.Repository = (*Repo)(nil)

var errUnimplemented = errors.New("otpmock: method not implemented")

// Repo is a function-backed mock that satisfies otp.Repository.
type Repo struct {
	CreateFn           func(ctx context.Context, v *domain.Verification) error
	InvalidateActiveFn func(ctx context.Context, email string, purpose domain.Purpose) error
	ConsumeFn          func(ctx context.Context, email, code string, purpose domain.Purpose, now time.Time) (bool, error)
}

func (m *Repo) Create(ctx context.Context, v *domain.Verification) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, v)
	}
	return nil
}

func (m *Repo) InvalidateActive(ctx context.Context, email string, purpose domain.Purpose) error {
	if m.InvalidateActiveFn != nil {
		return m.InvalidateActiveFn(ctx, email, purpose)
	}
	return nil
}

func (m *Repo) Consume(ctx context.Context, email, code string, purpose domain.Purpose, now time.Time) (bool, error) {
	if m.ConsumeFn != nil {
		return m.ConsumeFn(ctx, email, code, purpose, now)
	}
	return false, errUnimplemented
}
