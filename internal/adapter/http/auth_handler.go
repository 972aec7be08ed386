package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"loanhub-backend/internal/domain/otp"
	authuc "loanhub-backend/internal/usecase/auth"
)

type AuthHandler struct {
	uc            *authuc.Usecase
	cookieTTL     time.Duration
	secureCookies bool
}

func NewAuthHandler(uc *authuc.Usecase, cookieTTL time.Duration, secureCookies bool) *AuthHandler {
	return &AuthHandler{uc: uc, cookieTTL: cookieTTL, secureCookies: secureCookies}
}

type registerReq struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	res, err := h.uc.Register(c.Request().Context(), authuc.RegisterInput(req))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, res)
}

type loginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	res, err := h.uc.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, authuc.ErrEmailNotVerified) {
			return c.JSON(http.StatusForbidden, map[string]any{
				"error":                "email not verified",
				"requiresVerification": true,
			})
		}
		return writeDomainError(c, err)
	}
	setAuthCookie(c, res.Token, h.cookieTTL, h.secureCookies)
	return c.JSON(http.StatusOK, res)
}

type verifyEmailReq struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,otp6"`
}

func (h *AuthHandler) VerifyEmail(c echo.Context) error {
	var req verifyEmailReq
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	if err := h.uc.VerifyEmail(c.Request().Context(), req.Email, req.Code); err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "email verified"})
}

type resendOTPReq struct {
	Email string `json:"email" validate:"required,email"`
	Type  string `json:"type" validate:"required,oneof=email password_reset"`
}

func (h *AuthHandler) ResendOTP(c echo.Context) error {
	var req resendOTPReq
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	purpose := otp.PurposeEmailVerification
	if req.Type == "password_reset" {
		purpose = otp.PurposePasswordReset
	}
	if err := h.uc.ResendOTP(c.Request().Context(), req.Email, purpose); err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "if the account exists, a code has been sent"})
}

type resetPasswordReq struct {
	Email string `json:"email" validate:"required,email"`
}

func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordReq
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	if err := h.uc.RequestPasswordReset(c.Request().Context(), req.Email); err != nil {
		return writeDomainError(c, err)
	}
	// always generic: the response never reveals whether the email exists
	return c.JSON(http.StatusOK, map[string]string{"message": "if the account exists, a reset code has been sent"})
}

type confirmResetReq struct {
	Email       string `json:"email" validate:"required,email"`
	OTP         string `json:"otp" validate:"required,otp6"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

func (h *AuthHandler) ConfirmReset(c echo.Context) error {
	var req confirmResetReq
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	if err := h.uc.ConfirmPasswordReset(c.Request().Context(), req.Email, req.OTP, req.NewPassword); err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "password updated"})
}

func (h *AuthHandler) Me(c echo.Context) error {
	dto, err := h.uc.Me(c.Request().Context(), sessionUserID(c))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"user": dto})
}
