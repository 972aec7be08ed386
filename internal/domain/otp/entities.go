package otp

import (
	"errors"
	"time"
)

// ErrInvalid deliberately covers both wrong and expired codes so the
// response does not leak which one it was.
var ErrInvalid = errors.New("invalid or expired code")

type Purpose string

const (
	PurposeEmailVerification Purpose = "EMAIL_VERIFICATION"
	PurposePasswordReset     Purpose = "PASSWORD_RESET"
)

type Verification struct {
	ID        uint64    `gorm:"primaryKey;column:id" json:"-"`
	Email     string    `gorm:"size:255;index:idx_otp_email_purpose" json:"email"`
	Code      string    `gorm:"size:6" json:"-"`
	Purpose   Purpose   `gorm:"type:enum('EMAIL_VERIFICATION','PASSWORD_RESET');index:idx_otp_email_purpose" json:"purpose"`
	ExpiresAt time.Time `json:"expires_at"`
	Used      bool      `gorm:"default:false" json:"used"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"-"`
}

func (Verification) TableName() string { return "otp_verifications" }
