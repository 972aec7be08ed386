package application

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	domain "loanhub-backend/internal/domain/application"
	"loanhub-backend/internal/domain/audit"
	"loanhub-backend/internal/domain/uow"
	"loanhub-backend/internal/domain/user"
	"loanhub-backend/internal/mailer"
	"loanhub-backend/pkg/id"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

type Usecase struct {
	apps  domain.Repository
	users user.Repository
	tx    uow.UnitOfWork
	mail  mailer.Mailer
	log   *zap.Logger
	now   func() time.Time
}

func NewUsecase(apps domain.Repository, users user.Repository, tx uow.UnitOfWork, mail mailer.Mailer, log *zap.Logger) *Usecase {
	return &Usecase{
		apps:  apps,
		users: users,
		tx:    tx,
		mail:  mail,
		log:   log,
		now:   time.Now,
	}
}

// Submit validates the payload against the loan type's requirements and
// persists the application as PENDING, writing the CREATED audit entry in
// the same transaction.
func (u *Usecase) Submit(ctx context.Context, userID uint64, in SubmitInput) (*domain.Application, error) {
	if err := validateSubmit(in); err != nil {
		return nil, err
	}

	app := in.toEntity(userID, id.NewApplicationRef())

	err := u.tx.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Applications.Create(ctx, app); err != nil {
			return err
		}
		meta, _ := json.Marshal(map[string]any{
			"loan_type":     app.LoanType,
			"amount":        app.Amount,
			"tenure_months": app.TenureMonths,
		})
		return r.Logs.Create(ctx, &audit.Log{
			ApplicationID: app.ID,
			Action:        audit.ActionCreated,
			PerformedBy:   userID,
			Metadata:      string(meta),
		})
	})
	if err != nil {
		return nil, err
	}

	u.notifyOwner(ctx, app, mailer.TemplateApplicationReceived, map[string]string{
		"application_id": app.ApplicationRef,
		"loan_type":      string(app.LoanType),
		"amount":         formatAmount(app.Amount),
	})
	return app, nil
}

// Approve transitions a PENDING application to APPROVED, assigns the loan
// id, and records the audit entry. The row is locked for the duration of
// the transaction so concurrent decisions serialize; the loser sees
// ErrNotPending.
func (u *Usecase) Approve(ctx context.Context, in ApproveInput) (*domain.Application, error) {
	if err := validateApprove(in); err != nil {
		return nil, err
	}

	var app *domain.Application
	err := u.tx.WithinApplicationTx(ctx, in.Ref, func(r uow.Repos, a *domain.Application) error {
		if a.Status != domain.StatusPending {
			return domain.ErrNotPending
		}

		now := u.now()
		loanID := id.NewLoanID(a.LoanType.Prefix())
		a.Status = domain.StatusApproved
		a.ApprovedAmount = &in.ApprovedAmount
		a.InterestRate = &in.InterestRate
		a.ApprovedTenure = &in.ApprovedTenure
		a.LoanID = &loanID
		a.ReviewedAt = &now
		a.ReviewedBy = &in.ActorID
		if in.Notes != "" {
			a.Notes = in.Notes
		}
		if err := r.Applications.Save(ctx, a); err != nil {
			return err
		}

		meta, _ := json.Marshal(map[string]any{
			"approved_amount": in.ApprovedAmount,
			"interest_rate":   in.InterestRate,
			"approved_tenure": in.ApprovedTenure,
			"loan_id":         loanID,
		})
		if err := r.Logs.Create(ctx, &audit.Log{
			ApplicationID: a.ID,
			Action:        audit.ActionApproved,
			PerformedBy:   in.ActorID,
			Notes:         in.Notes,
			Metadata:      string(meta),
		}); err != nil {
			return err
		}
		app = a
		return nil
	})
	if err != nil {
		return nil, mapNotFound(err)
	}

	u.notifyOwner(ctx, app, mailer.TemplateApplicationApproved, map[string]string{
		"application_id":  app.ApplicationRef,
		"loan_id":         *app.LoanID,
		"approved_amount": formatAmount(in.ApprovedAmount),
		"interest_rate":   formatAmount(in.InterestRate),
		"approved_tenure": strconv.Itoa(in.ApprovedTenure),
	})
	return app, nil
}

// Reject transitions a PENDING application to REJECTED with a mandatory
// reason, under the same locking discipline as Approve.
func (u *Usecase) Reject(ctx context.Context, in RejectInput) (*domain.Application, error) {
	if err := validateReject(in); err != nil {
		return nil, err
	}

	var app *domain.Application
	err := u.tx.WithinApplicationTx(ctx, in.Ref, func(r uow.Repos, a *domain.Application) error {
		if a.Status != domain.StatusPending {
			return domain.ErrNotPending
		}

		now := u.now()
		a.Status = domain.StatusRejected
		a.RejectionReason = &in.Reason
		a.ReviewedAt = &now
		a.ReviewedBy = &in.ActorID
		if in.Notes != "" {
			a.Notes = in.Notes
		}
		if err := r.Applications.Save(ctx, a); err != nil {
			return err
		}

		meta, _ := json.Marshal(map[string]any{"reason": in.Reason})
		if err := r.Logs.Create(ctx, &audit.Log{
			ApplicationID: a.ID,
			Action:        audit.ActionRejected,
			PerformedBy:   in.ActorID,
			Notes:         in.Notes,
			Metadata:      string(meta),
		}); err != nil {
			return err
		}
		app = a
		return nil
	})
	if err != nil {
		return nil, mapNotFound(err)
	}

	u.notifyOwner(ctx, app, mailer.TemplateApplicationRejected, map[string]string{
		"application_id": app.ApplicationRef,
		"reason":         in.Reason,
	})
	return app, nil
}

// List returns one admin page, newest first.
func (u *Usecase) List(ctx context.Context, f domain.ListFilter) (*Page, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = defaultPageLimit
	}
	if f.Limit > maxPageLimit {
		f.Limit = maxPageLimit
	}

	apps, total, err := u.apps.List(ctx, f)
	if err != nil {
		return nil, err
	}
	totalPages := int((total + int64(f.Limit) - 1) / int64(f.Limit))
	return &Page{
		Applications: apps,
		Pagination: Pagination{
			Page:       f.Page,
			Limit:      f.Limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}, nil
}

// ListMine returns every application owned by the user, newest first.
func (u *Usecase) ListMine(ctx context.Context, userID uint64) ([]domain.Application, error) {
	return u.apps.ListByUser(ctx, userID)
}

// Get returns one application by ref. When requesterID is non-zero the
// caller is a regular user and must own the application.
func (u *Usecase) Get(ctx context.Context, ref string, requesterID uint64) (*domain.Application, error) {
	app, err := u.apps.GetByRef(ctx, ref)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if requesterID != 0 && app.UserID != requesterID {
		// Non-owners cannot probe for existence.
		return nil, domain.ErrNotFound
	}
	return app, nil
}

// Statistics aggregates the review dashboard counters.
func (u *Usecase) Statistics(ctx context.Context) (*Statistics, error) {
	counts, err := u.apps.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	sum, err := u.apps.SumApprovedAmount(ctx)
	if err != nil {
		return nil, err
	}
	return &Statistics{
		Pending:             counts.Pending,
		Approved:            counts.Approved,
		Rejected:            counts.Rejected,
		Total:               counts.Total(),
		TotalApprovedAmount: sum,
	}, nil
}

func (u *Usecase) notifyOwner(ctx context.Context, app *domain.Application, tmpl mailer.TemplateType, vars map[string]string) {
	owner, err := u.users.GetByID(ctx, app.UserID)
	if err != nil {
		u.log.Warn("load applicant for notification failed",
			zap.String("application", app.ApplicationRef), zap.Error(err))
		return
	}
	if err := u.mail.Send(ctx, tmpl, owner.Email, owner.FirstName, vars); err != nil {
		u.log.Warn("send application email failed",
			zap.String("template", string(tmpl)),
			zap.String("application", app.ApplicationRef), zap.Error(err))
	}
}

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
