package otp

import (
	"context"
	"fmt"
	"time"

	domain "loanhub-backend/internal/domain/otp"
	pkgotp "loanhub-backend/pkg/otp"
)

const (
	verificationTTL  = 5 * time.Minute
	passwordResetTTL = 15 * time.Minute
)

type Usecase struct {
	repo domain.Repository
	gen  *pkgotp.Generator
	now  func() time.Time
}

func NewUsecase(repo domain.Repository, gen *pkgotp.Generator) *Usecase {
	return &Usecase{repo: repo, gen: gen, now: func() time.Time { return time.Now().UTC() }}
}

func ttlFor(purpose domain.Purpose) time.Duration {
	if purpose == domain.PurposePasswordReset {
		return passwordResetTTL
	}
	return verificationTTL
}

// Issue invalidates any still-active codes for (email, purpose) and persists
// a fresh one. The code is returned so the caller can put it in an email.
func (u *Usecase) Issue(ctx context.Context, email string, purpose domain.Purpose) (string, error) {
	if err := u.repo.InvalidateActive(ctx, email, purpose); err != nil {
		return "", fmt.Errorf("invalidate prior codes: %w", err)
	}

	now := u.now()
	code := u.gen.Generate(email, string(purpose), now)
	rec := &domain.Verification{
		Email:     email,
		Code:      code,
		Purpose:   purpose,
		ExpiresAt: now.Add(ttlFor(purpose)),
	}
	if err := u.repo.Create(ctx, rec); err != nil {
		return "", fmt.Errorf("persist code: %w", err)
	}
	return code, nil
}

// Verify consumes the matching active code. Consumption is a single
// conditional update, so a code can never be accepted twice.
func (u *Usecase) Verify(ctx context.Context, email, code string, purpose domain.Purpose) error {
	ok, err := u.repo.Consume(ctx, email, code, purpose, u.now())
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrInvalid
	}
	return nil
}
