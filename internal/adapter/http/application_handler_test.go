package http

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"loanhub-backend/internal/adapter/middleware"
	sessions "loanhub-backend/internal/auth"
	appDomain "loanhub-backend/internal/domain/application"
	"loanhub-backend/internal/domain/user"
	"loanhub-backend/internal/testutil/applicationmock"
)

func userContext(e *echo.Echo, req *stdhttp.Request, rec *httptest.ResponseRecorder) echo.Context {
	c := e.NewContext(req, rec)
	c.Set(middleware.ClaimsKey, &sessions.Claims{UserID: 7, Email: "ada@example.com", Role: user.RoleUser})
	return c
}

func submitBody() map[string]any {
	return map[string]any{
		"loanType":     "SALARY_CASH",
		"amount":       500000,
		"tenureMonths": 12,
		"applicant": map[string]any{
			"phoneNumber":        "08012345678",
			"bvn":                "12345678901",
			"nin":                "10987654321",
			"dateOfBirth":        "1990-06-15",
			"residentialAddress": "4 Marina Rd, Lagos",
		},
		"employment": map[string]any{
			"employerName":    "Acme Ltd",
			"employerAddress": "12 Broad St, Lagos",
			"jobTitle":        "Analyst",
			"monthlyIncome":   350000,
		},
		"nextOfKin": map[string]any{
			"fullName":     "Grace Obi",
			"phoneNumber":  "08087654321",
			"relationship": "SIBLING",
		},
		"bankAccount": map[string]any{
			"bankName":      "GTBank",
			"accountNumber": "0123456789",
			"accountName":   "Ada Obi",
		},
	}
}

func TestSubmitHandler_Created(t *testing.T) {
	e := newEchoWithValidator()
	var created *appDomain.Application
	apps := &applicationmock.Repo{
		CreateFn: func(ctx context.Context, a *appDomain.Application) error {
			a.ID = 42
			created = a
			return nil
		},
	}
	h := NewApplicationHandler(newAppUsecase(apps))

	req := httptest.NewRequest(stdhttp.MethodPost, "/loan-applications", mustJSON(submitBody()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	if err := h.Submit(userContext(e, req, rec)); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body)
	}
	if created == nil || created.UserID != 7 {
		t.Fatalf("created = %+v", created)
	}

	var body struct {
		ApplicationID string `json:"applicationId"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.ApplicationID != created.ApplicationRef {
		t.Errorf("applicationId = %q, want %q", body.ApplicationID, created.ApplicationRef)
	}
}

func TestSubmitHandler_ValidationDetails(t *testing.T) {
	e := newEchoWithValidator()
	h := NewApplicationHandler(newAppUsecase(&applicationmock.Repo{}))

	body := submitBody()
	body["loanType"] = "BUSINESS_CASH" // but only employment section present

	req := httptest.NewRequest(stdhttp.MethodPost, "/loan-applications", mustJSON(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	if err := h.Submit(userContext(e, req, rec)); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", rec.Code, rec.Body)
	}
	var resp ErrorResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	found := false
	for _, d := range resp.Details {
		if d.Field == "business" {
			found = true
		}
	}
	if !found {
		t.Errorf("details = %+v, want a business entry", resp.Details)
	}
}

func TestSubmitTypedHandler_PinsLoanType(t *testing.T) {
	e := newEchoWithValidator()
	var created *appDomain.Application
	apps := &applicationmock.Repo{
		CreateFn: func(ctx context.Context, a *appDomain.Application) error {
			created = a
			return nil
		},
	}
	h := NewApplicationHandler(newAppUsecase(apps))

	body := submitBody()
	body["loanType"] = "BUSINESS_CAR" // route wins over the body
	body["business"] = nil
	body["vehicle"] = nil

	req := httptest.NewRequest(stdhttp.MethodPost, "/loan-applications/salary-cash", mustJSON(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := userContext(e, req, rec)
	c.SetParamNames("type")
	c.SetParamValues("salary-cash")

	if err := h.SubmitTyped(c); err != nil {
		t.Fatalf("SubmitTyped: %v", err)
	}
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body)
	}
	if created.LoanType != appDomain.LoanTypeSalaryCash {
		t.Errorf("loan type = %s, want SALARY_CASH", created.LoanType)
	}
}

func TestSubmitTypedHandler_UnknownSlug(t *testing.T) {
	e := newEchoWithValidator()
	h := NewApplicationHandler(newAppUsecase(&applicationmock.Repo{}))

	req := httptest.NewRequest(stdhttp.MethodPost, "/loan-applications/payday", mustJSON(submitBody()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := userContext(e, req, rec)
	c.SetParamNames("type")
	c.SetParamValues("payday")

	if err := h.SubmitTyped(c); err != nil {
		t.Fatalf("SubmitTyped: %v", err)
	}
	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestListMineHandler(t *testing.T) {
	e := newEchoWithValidator()
	apps := &applicationmock.Repo{
		ListByUserFn: func(ctx context.Context, userID uint64) ([]appDomain.Application, error) {
			if userID != 7 {
				t.Fatalf("userID = %d, want 7 (from session)", userID)
			}
			return []appDomain.Application{*pendingApplication()}, nil
		},
	}
	h := NewApplicationHandler(newAppUsecase(apps))

	req := httptest.NewRequest(stdhttp.MethodGet, "/loan-applications", nil)
	rec := httptest.NewRecorder()
	if err := h.ListMine(userContext(e, req, rec)); err != nil {
		t.Fatalf("ListMine: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	var body struct {
		Applications []appDomain.Application `json:"applications"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Applications) != 1 {
		t.Errorf("applications = %+v", body.Applications)
	}
}
