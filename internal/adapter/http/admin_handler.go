package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	appDomain "loanhub-backend/internal/domain/application"
	appuc "loanhub-backend/internal/usecase/application"
)

// AdminHandler is the review surface: list, decide, aggregate.
type AdminHandler struct{ uc *appuc.Usecase }

func NewAdminHandler(uc *appuc.Usecase) *AdminHandler { return &AdminHandler{uc: uc} }

func (h *AdminHandler) List(c echo.Context) error {
	var filter appDomain.ListFilter
	if raw := c.QueryParam("status"); raw != "" {
		status := appDomain.Status(raw)
		switch status {
		case appDomain.StatusPending, appDomain.StatusApproved, appDomain.StatusRejected:
			filter.Status = &status
		default:
			return badRequest(c, "status must be PENDING, APPROVED or REJECTED")
		}
	}
	filter.Page, _ = strconv.Atoi(c.QueryParam("page"))
	filter.Limit, _ = strconv.Atoi(c.QueryParam("limit"))

	page, err := h.uc.List(c.Request().Context(), filter)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, page)
}

type approveReq struct {
	ApprovedAmount float64 `json:"approvedAmount"`
	InterestRate   float64 `json:"interestRate"`
	ApprovedTenure int     `json:"approvedTenure"`
	Notes          string  `json:"notes"`
}

func (h *AdminHandler) Approve(c echo.Context) error {
	var req approveReq
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}
	app, err := h.uc.Approve(c.Request().Context(), appuc.ApproveInput{
		Ref:            c.Param("id"),
		ApprovedAmount: req.ApprovedAmount,
		InterestRate:   req.InterestRate,
		ApprovedTenure: req.ApprovedTenure,
		Notes:          req.Notes,
		ActorID:        sessionUserID(c),
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message":         "loan application approved",
		"loanApplication": app,
	})
}

type rejectReq struct {
	Reason string `json:"reason"`
	Notes  string `json:"notes"`
}

func (h *AdminHandler) Reject(c echo.Context) error {
	var req rejectReq
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}
	app, err := h.uc.Reject(c.Request().Context(), appuc.RejectInput{
		Ref:     c.Param("id"),
		Reason:  req.Reason,
		Notes:   req.Notes,
		ActorID: sessionUserID(c),
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message":         "loan application rejected",
		"loanApplication": app,
	})
}

func (h *AdminHandler) Statistics(c echo.Context) error {
	stats, err := h.uc.Statistics(c.Request().Context())
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"statistics": stats})
}
