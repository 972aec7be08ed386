package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	sessions "loanhub-backend/internal/auth"
	otpdomain "loanhub-backend/internal/domain/otp"
	"loanhub-backend/internal/domain/user"
	"loanhub-backend/internal/domain/uow"
	"loanhub-backend/internal/mailer"
)

const bcryptCost = 12

// OTPIssuer issues a fresh code, invalidating prior active ones.
type OTPIssuer interface {
	Issue(ctx context.Context, email string, purpose otpdomain.Purpose) (string, error)
}

type Usecase struct {
	users  user.Repository
	uow    uow.UnitOfWork
	otps   OTPIssuer
	tokens *sessions.Manager
	mail   mailer.Mailer
	log    *zap.Logger
	now    func() time.Time
}

func NewUsecase(users user.Repository, tx uow.UnitOfWork, otps OTPIssuer, tokens *sessions.Manager, mail mailer.Mailer, log *zap.Logger) *Usecase {
	return &Usecase{
		users:  users,
		uow:    tx,
		otps:   otps,
		tokens: tokens,
		mail:   mail,
		log:    log.Named("auth"),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// sendMail dispatches best-effort: a provider failure is logged and swallowed.
func (u *Usecase) sendMail(ctx context.Context, tmpl mailer.TemplateType, toEmail, toName string, vars map[string]string) {
	if err := u.mail.Send(ctx, tmpl, toEmail, toName, vars); err != nil {
		u.log.Warn("notification dispatch failed",
			zap.String("template", string(tmpl)),
			zap.String("email", toEmail),
			zap.Error(err))
	}
}

// issueAndMailOTP is also best-effort: the caller's primary operation stands
// even if the code could not be issued (the user can always resend).
func (u *Usecase) issueAndMailOTP(ctx context.Context, usr *user.User, purpose otpdomain.Purpose, tmpl mailer.TemplateType) {
	code, err := u.otps.Issue(ctx, usr.Email, purpose)
	if err != nil {
		u.log.Warn("otp issuance failed", zap.String("email", usr.Email), zap.Error(err))
		return
	}
	u.sendMail(ctx, tmpl, usr.Email, usr.FirstName, map[string]string{"code": code})
}

// Register creates the user unverified, kicks off email verification and
// returns a session token.
func (u *Usecase) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	email := normalizeEmail(in.Email)

	_, err := u.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, user.ErrEmailTaken
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	usr := &user.User{
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Role:         user.RoleUser,
	}
	if err := u.users.Create(ctx, usr); err != nil {
		// Loser of a concurrent registration for the same email hits the
		// unique index instead of the pre-check.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, user.ErrEmailTaken
		}
		return nil, err
	}

	u.issueAndMailOTP(ctx, usr, otpdomain.PurposeEmailVerification, mailer.TemplateEmailVerification)
	u.sendMail(ctx, mailer.TemplateWelcome, usr.Email, usr.FirstName, nil)

	token, err := u.tokens.Generate(usr)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: toUserDTO(usr), Token: token}, nil
}

// Login refuses unverified accounts with ErrEmailNotVerified after issuing a
// fresh OTP, so the client can move straight to the verification step.
func (u *Usecase) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	usr, err := u.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	if !usr.EmailVerified {
		u.issueAndMailOTP(ctx, usr, otpdomain.PurposeEmailVerification, mailer.TemplateEmailVerification)
		return nil, ErrEmailNotVerified
	}

	token, err := u.tokens.Generate(usr)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: toUserDTO(usr), Token: token}, nil
}

// VerifyEmail consumes the code and flips the verified flag in one
// transaction.
func (u *Usecase) VerifyEmail(ctx context.Context, email, code string) error {
	email = normalizeEmail(email)
	return u.uow.WithinTx(ctx, func(r uow.Repos) error {
		ok, err := r.Otps.Consume(ctx, email, code, otpdomain.PurposeEmailVerification, u.now())
		if err != nil {
			return err
		}
		if !ok {
			return otpdomain.ErrInvalid
		}
		usr, err := r.Users.GetByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return otpdomain.ErrInvalid
			}
			return err
		}
		usr.EmailVerified = true
		return r.Users.Save(ctx, usr)
	})
}

// RequestPasswordReset always reports success so callers cannot probe which
// emails exist.
func (u *Usecase) RequestPasswordReset(ctx context.Context, email string) error {
	usr, err := u.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			u.log.Warn("password reset lookup failed", zap.Error(err))
		}
		return nil
	}
	u.issueAndMailOTP(ctx, usr, otpdomain.PurposePasswordReset, mailer.TemplatePasswordReset)
	return nil
}

// ConfirmPasswordReset consumes the reset code and stores the new hash in one
// transaction. Existing sessions are deliberately left intact.
func (u *Usecase) ConfirmPasswordReset(ctx context.Context, email, code, newPassword string) error {
	email = normalizeEmail(email)
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return u.uow.WithinTx(ctx, func(r uow.Repos) error {
		ok, err := r.Otps.Consume(ctx, email, code, otpdomain.PurposePasswordReset, u.now())
		if err != nil {
			return err
		}
		if !ok {
			return otpdomain.ErrInvalid
		}
		usr, err := r.Users.GetByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return otpdomain.ErrInvalid
			}
			return err
		}
		usr.PasswordHash = string(hash)
		return r.Users.Save(ctx, usr)
	})
}

// ResendOTP re-issues a verification or reset code. Like the reset request,
// it never discloses whether the account exists.
func (u *Usecase) ResendOTP(ctx context.Context, email string, purpose otpdomain.Purpose) error {
	usr, err := u.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil
	}
	if purpose == otpdomain.PurposeEmailVerification && usr.EmailVerified {
		return nil
	}
	tmpl := mailer.TemplateEmailVerification
	if purpose == otpdomain.PurposePasswordReset {
		tmpl = mailer.TemplatePasswordReset
	}
	u.issueAndMailOTP(ctx, usr, purpose, tmpl)
	return nil
}

// Me resolves the authenticated profile.
func (u *Usecase) Me(ctx context.Context, userID uint64) (*UserDTO, error) {
	usr, err := u.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrNotFound
		}
		return nil, err
	}
	return toUserDTO(usr), nil
}
