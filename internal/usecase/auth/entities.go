package auth

import (
	"errors"
	"time"

	"loanhub-backend/internal/domain/user"
)

var (
	// ErrInvalidCredentials covers unknown email and wrong password alike;
	// the login response never says which.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmailNotVerified blocks login until the OTP flow completes.
	ErrEmailNotVerified = errors.New("email not verified")
)

type RegisterInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// UserDTO is the user record minus secret fields.
type UserDTO struct {
	ID            uint64    `json:"id"`
	Email         string    `json:"email"`
	FirstName     string    `json:"firstName"`
	LastName      string    `json:"lastName"`
	Role          user.Role `json:"role"`
	EmailVerified bool      `json:"emailVerified"`
	CreatedAt     time.Time `json:"createdAt"`
}

type AuthResult struct {
	User  *UserDTO `json:"user"`
	Token string   `json:"token"`
}

func toUserDTO(u *user.User) *UserDTO {
	return &UserDTO{
		ID:            u.ID,
		Email:         u.Email,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		Role:          u.Role,
		EmailVerified: u.EmailVerified,
		CreatedAt:     u.CreatedAt,
	}
}
