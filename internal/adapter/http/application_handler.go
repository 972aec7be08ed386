package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	appuc "loanhub-backend/internal/usecase/application"
)

type ApplicationHandler struct{ uc *appuc.Usecase }

func NewApplicationHandler(uc *appuc.Usecase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

func (h *ApplicationHandler) submit(c echo.Context, in appuc.SubmitInput) error {
	app, err := h.uc.Submit(c.Request().Context(), sessionUserID(c), in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]any{
		"applicationId":   app.ApplicationRef,
		"loanApplication": app,
	})
}

// Submit takes the loan type from the body.
func (h *ApplicationHandler) Submit(c echo.Context) error {
	var in appuc.SubmitInput
	if err := c.Bind(&in); err != nil {
		return bindError(c)
	}
	return h.submit(c, in)
}

// SubmitTyped serves the per-product routes; the URL decides the loan type
// and overrides whatever the body says.
func (h *ApplicationHandler) SubmitTyped(c echo.Context) error {
	loanType, ok := appuc.RouteLoanType(c.Param("type"))
	if !ok {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "unknown loan product"})
	}
	var in appuc.SubmitInput
	if err := c.Bind(&in); err != nil {
		return bindError(c)
	}
	in.LoanType = loanType
	return h.submit(c, in)
}

// ListMine returns the caller's own applications.
func (h *ApplicationHandler) ListMine(c echo.Context) error {
	apps, err := h.uc.ListMine(c.Request().Context(), sessionUserID(c))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"applications": apps})
}

// Get returns one application; regular users only see their own.
func (h *ApplicationHandler) Get(c echo.Context) error {
	requesterID := sessionUserID(c)
	if isAdmin(c) {
		requesterID = 0
	}
	app, err := h.uc.Get(c.Request().Context(), c.Param("id"), requesterID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"loanApplication": app})
}
