package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"loanhub-backend/internal/auth"
	"loanhub-backend/internal/domain/user"
)

// CookieName is the session cookie set on login.
const CookieName = "auth-token"

// ClaimsKey is the echo context key the auth middleware stores claims under.
const ClaimsKey = "session.claims"

// ClaimsFrom returns the session claims the auth middleware stored on the
// request context.
func ClaimsFrom(c echo.Context) (*auth.Claims, bool) {
	claims, ok := c.Get(ClaimsKey).(*auth.Claims)
	return claims, ok
}

// extractToken prefers the Authorization header; the cookie is the browser
// fallback.
func extractToken(c echo.Context) string {
	if h := c.Request().Header.Get(echo.HeaderAuthorization); h != "" {
		if tok, ok := strings.CutPrefix(h, "Bearer "); ok {
			return strings.TrimSpace(tok)
		}
		return ""
	}
	if cookie, err := c.Cookie(CookieName); err == nil {
		return cookie.Value
	}
	return ""
}

// Auth rejects requests without a valid session token and stores the
// claims for downstream handlers.
func Auth(tokens *auth.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tok := extractToken(c)
			if tok == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "authentication required"})
			}
			claims, err := tokens.Parse(tok)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid or expired token"})
			}
			c.Set(ClaimsKey, claims)
			return next(c)
		}
	}
}

// RequireRole runs after Auth and enforces the role on the route group.
func RequireRole(required user.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := ClaimsFrom(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "authentication required"})
			}
			if !claims.Role.Satisfies(required) {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "insufficient permissions"})
			}
			return next(c)
		}
	}
}
