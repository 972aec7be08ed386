package mysql

import (
	"context"

	"gorm.io/gorm"

	"loanhub-backend/internal/domain/application"
	"loanhub-backend/internal/domain/uow"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func reposFor(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Users:        &UserRepository{db: tx},
		Otps:         &OtpRepository{db: tx},
		Applications: &ApplicationRepository{db: tx},
		Documents:    &DocumentRepository{db: tx},
		Logs:         &AuditRepository{db: tx},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(reposFor(tx))
	})
}

func (u *GormUoW) WithinApplicationTx(ctx context.Context, ref string, fn func(r uow.Repos, a *application.Application) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := reposFor(tx)
		// lock the application row up-front so concurrent decisions serialize
		a, err := r.Applications.GetByRefForUpdate(ctx, ref)
		if err != nil {
			return err
		}
		return fn(r, a)
	})
}
