package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"loanhub-backend/internal/adapter/middleware"
	appDomain "loanhub-backend/internal/domain/application"
	docDomain "loanhub-backend/internal/domain/document"
	"loanhub-backend/internal/domain/otp"
	"loanhub-backend/internal/domain/user"
	"loanhub-backend/internal/storage"
	appuc "loanhub-backend/internal/usecase/application"
	authuc "loanhub-backend/internal/usecase/auth"
	docuc "loanhub-backend/internal/usecase/document"
)

// ---- helpers ----

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}

func bindError(c echo.Context) error { return badRequest(c, "invalid body") }

func validationFailed(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
}

// writeDomainError translates the usecase sentinels into the HTTP
// taxonomy. Anything unrecognized is a dependency failure: generic 500, the
// detail stays in the server log.
func writeDomainError(c echo.Context, err error) error {
	var verr *appuc.ValidationError
	if errors.As(err, &verr) {
		details := make([]FieldError, 0, len(verr.Fields))
		for _, f := range verr.Fields {
			details = append(details, FieldError(f))
		}
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: details})
	}

	switch {
	case errors.Is(err, authuc.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid email or password"})
	case errors.Is(err, user.ErrEmailTaken):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: "email already registered"})
	case errors.Is(err, otp.ErrInvalid):
		return badRequest(c, otp.ErrInvalid.Error())
	case errors.Is(err, appDomain.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "loan application not found"})
	case errors.Is(err, appDomain.ErrNotPending):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: "loan application has already been reviewed"})
	case errors.Is(err, docDomain.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "document not found"})
	case errors.Is(err, user.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "user not found"})
	case errors.Is(err, docuc.ErrInvalidType),
		errors.Is(err, docuc.ErrFileTooLarge),
		errors.Is(err, docuc.ErrEmptyFile),
		errors.Is(err, docuc.ErrUnsupportedMime),
		errors.Is(err, storage.ErrUnsupported):
		return badRequest(c, err.Error())
	}
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

// setAuthCookie attaches the session cookie the SPA relies on. Secure is
// only set in production so local HTTP development keeps working.
func setAuthCookie(c echo.Context, token string, ttl time.Duration, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	})
}

func sessionUserID(c echo.Context) uint64 {
	if claims, ok := middleware.ClaimsFrom(c); ok {
		return claims.UserID
	}
	return 0
}

func isAdmin(c echo.Context) bool {
	claims, ok := middleware.ClaimsFrom(c)
	return ok && claims.Role.Satisfies(user.RoleAdmin)
}
