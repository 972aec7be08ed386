package uow

import (
	"context"

	"loanhub-backend/internal/domain/application"
	"loanhub-backend/internal/domain/audit"
	"loanhub-backend/internal/domain/document"
	"loanhub-backend/internal/domain/otp"
	"loanhub-backend/internal/domain/user"
)

type Repos struct {
	Users        user.Repository
	Otps         otp.Repository
	Applications application.Repository
	Documents    document.Repository
	Logs         audit.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the application row first, then pass it in
	WithinApplicationTx(ctx context.Context, ref string, fn func(r Repos, a *application.Application) error) error
}
