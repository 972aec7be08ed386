package user

import (
	"errors"
	"time"
)

var (
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("email already registered")
)

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Satisfies reports whether a holder of this role may act as required.
// ADMIN is a superset of USER.
func (r Role) Satisfies(required Role) bool {
	if r == RoleAdmin {
		return true
	}
	return r == required
}

type User struct {
	ID            uint64    `gorm:"primaryKey;column:id" json:"-"`
	Email         string    `gorm:"size:255;uniqueIndex:ux_users_email" json:"email"`
	PasswordHash  string    `gorm:"size:100" json:"-"`
	FirstName     string    `gorm:"size:100" json:"first_name"`
	LastName      string    `gorm:"size:100" json:"last_name"`
	Role          Role      `gorm:"type:enum('USER','ADMIN');default:'USER'" json:"role"`
	EmailVerified bool      `gorm:"default:false" json:"email_verified"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string { return "users" }
