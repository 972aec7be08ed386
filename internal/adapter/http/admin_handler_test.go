package http

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"loanhub-backend/internal/adapter/middleware"
	sessions "loanhub-backend/internal/auth"
	appDomain "loanhub-backend/internal/domain/application"
	"loanhub-backend/internal/domain/uow"
	"loanhub-backend/internal/domain/user"
	"loanhub-backend/internal/testutil/applicationmock"
	"loanhub-backend/internal/testutil/auditmock"
	"loanhub-backend/internal/testutil/mailermock"
	"loanhub-backend/internal/testutil/uowmock"
	"loanhub-backend/internal/testutil/usermock"
	appuc "loanhub-backend/internal/usecase/application"
)

func newAppUsecase(apps *applicationmock.Repo) *appuc.Usecase {
	users := &usermock.Repo{
		GetByIDFn: func(ctx context.Context, id uint64) (*user.User, error) {
			return &user.User{ID: id, Email: "owner@example.com", FirstName: "Ada"}, nil
		},
	}
	tx := uowmock.New(uow.Repos{Applications: apps, Logs: &auditmock.Repo{}, Users: users})
	return appuc.NewUsecase(apps, users, tx, &mailermock.Mailer{}, zap.NewNop())
}

func adminContext(e *echo.Echo, req *stdhttp.Request, rec *httptest.ResponseRecorder) echo.Context {
	c := e.NewContext(req, rec)
	c.Set(middleware.ClaimsKey, &sessions.Claims{UserID: 2, Email: "admin@example.com", Role: user.RoleAdmin})
	return c
}

func pendingApplication() *appDomain.Application {
	return &appDomain.Application{
		ID:             42,
		ApplicationRef: "APP-7K2M9QW4XT",
		UserID:         7,
		LoanType:       appDomain.LoanTypeSalaryCash,
		Amount:         500000,
		TenureMonths:   12,
		Status:         appDomain.StatusPending,
	}
}

func TestAdminApprove_OK(t *testing.T) {
	e := newEchoWithValidator()
	app := pendingApplication()
	apps := &applicationmock.Repo{
		GetByRefForUpdateFn: func(ctx context.Context, ref string) (*appDomain.Application, error) {
			return app, nil
		},
	}
	h := NewAdminHandler(newAppUsecase(apps))

	req := httptest.NewRequest(stdhttp.MethodPost, "/admin/loan-applications/APP-7K2M9QW4XT/approve", mustJSON(map[string]any{
		"approvedAmount": 450000,
		"interestRate":   4.5,
		"approvedTenure": 10,
	}))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := adminContext(e, req, rec)
	c.SetPath("/admin/loan-applications/:id/approve")
	c.SetParamNames("id")
	c.SetParamValues("APP-7K2M9QW4XT")

	if err := h.Approve(c); err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body)
	}
	var body struct {
		LoanApplication appDomain.Application `json:"loanApplication"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.LoanApplication.Status != appDomain.StatusApproved || body.LoanApplication.LoanID == nil {
		t.Errorf("loanApplication = %+v", body.LoanApplication)
	}
}

func TestAdminApprove_NonPendingConflict(t *testing.T) {
	e := newEchoWithValidator()
	app := pendingApplication()
	app.Status = appDomain.StatusRejected
	apps := &applicationmock.Repo{
		GetByRefForUpdateFn: func(ctx context.Context, ref string) (*appDomain.Application, error) {
			return app, nil
		},
	}
	h := NewAdminHandler(newAppUsecase(apps))

	req := httptest.NewRequest(stdhttp.MethodPost, "/admin/loan-applications/APP-7K2M9QW4XT/approve", mustJSON(map[string]any{
		"approvedAmount": 450000,
		"interestRate":   4.5,
		"approvedTenure": 10,
	}))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := adminContext(e, req, rec)
	c.SetParamNames("id")
	c.SetParamValues("APP-7K2M9QW4XT")

	if err := h.Approve(c); err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if rec.Code != stdhttp.StatusConflict {
		t.Fatalf("status = %d, want 409: %s", rec.Code, rec.Body)
	}
}

func TestAdminReject_UnknownRef(t *testing.T) {
	e := newEchoWithValidator()
	apps := &applicationmock.Repo{
		GetByRefForUpdateFn: func(ctx context.Context, ref string) (*appDomain.Application, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	h := NewAdminHandler(newAppUsecase(apps))

	req := httptest.NewRequest(stdhttp.MethodPost, "/admin/loan-applications/APP-MISSING000/reject", mustJSON(map[string]any{
		"reason": "insufficient income",
	}))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := adminContext(e, req, rec)
	c.SetParamNames("id")
	c.SetParamValues("APP-MISSING000")

	if err := h.Reject(c); err != nil {
		t.Fatalf("Reject: %v", err)
	}
	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("status = %d, want 404: %s", rec.Code, rec.Body)
	}
}

func TestAdminList_PaginationAndBadStatus(t *testing.T) {
	e := newEchoWithValidator()
	apps := &applicationmock.Repo{
		ListFn: func(ctx context.Context, f appDomain.ListFilter) ([]appDomain.Application, int64, error) {
			return []appDomain.Application{*pendingApplication()}, 25, nil
		},
	}
	h := NewAdminHandler(newAppUsecase(apps))

	req := httptest.NewRequest(stdhttp.MethodGet, "/admin/loan-applications?status=PENDING&page=1&limit=10", nil)
	rec := httptest.NewRecorder()
	if err := h.List(adminContext(e, req, rec)); err != nil {
		t.Fatalf("List: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	var page appuc.Page
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if page.Pagination.TotalPages != 3 || len(page.Applications) != 1 {
		t.Errorf("page = %+v", page.Pagination)
	}

	req = httptest.NewRequest(stdhttp.MethodGet, "/admin/loan-applications?status=BOGUS", nil)
	rec = httptest.NewRecorder()
	if err := h.List(adminContext(e, req, rec)); err != nil {
		t.Fatalf("List: %v", err)
	}
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestAdminStatistics(t *testing.T) {
	e := newEchoWithValidator()
	apps := &applicationmock.Repo{
		CountByStatusFn: func(ctx context.Context) (appDomain.StatusCounts, error) {
			return appDomain.StatusCounts{Pending: 4, Approved: 3, Rejected: 2}, nil
		},
		SumApprovedAmountFn: func(ctx context.Context) (float64, error) { return 1250000, nil },
	}
	h := NewAdminHandler(newAppUsecase(apps))

	req := httptest.NewRequest(stdhttp.MethodGet, "/admin/statistics", nil)
	rec := httptest.NewRecorder()
	if err := h.Statistics(adminContext(e, req, rec)); err != nil {
		t.Fatalf("Statistics: %v", err)
	}
	var body struct {
		Statistics appuc.Statistics `json:"statistics"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Statistics.Total != 9 || body.Statistics.TotalApprovedAmount != 1250000 {
		t.Errorf("statistics = %+v", body.Statistics)
	}
}
