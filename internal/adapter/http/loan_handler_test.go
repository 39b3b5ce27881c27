package http

import (
	"bytes"
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	mw "github.com/JohnClaps/heslgbmw-ltrs/internal/adapter/middleware"
	domainLoan "github.com/JohnClaps/heslgbmw-ltrs/internal/domain/loan"
	"github.com/JohnClaps/heslgbmw-ltrs/internal/domain/uow"
	"github.com/JohnClaps/heslgbmw-ltrs/internal/domain/user"
	"github.com/JohnClaps/heslgbmw-ltrs/internal/testutil/loanmock"
	"github.com/JohnClaps/heslgbmw-ltrs/internal/testutil/uowmock"
	ucApproval "github.com/JohnClaps/heslgbmw-ltrs/internal/usecase/approval"
	ucLoan "github.com/JohnClaps/heslgbmw-ltrs/internal/usecase/loan"

	"github.com/labstack/echo/v4"
)

func newEchoWithValidator() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func mustJSON(v any) *bytes.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func hasFieldDetail(details []FieldError, field, contains string) bool {
	for _, d := range details {
		if d.Field == field && strings.Contains(d.Message, contains) {
			return true
		}
	}
	return false
}

func student(id uint64) *user.User {
	return &user.User{ID: id, Name: "Chisomo Banda", Role: user.RoleStudent, Active: true}
}

func admin() *user.User {
	return &user.User{ID: 999, Name: "Admin", Role: user.RoleAdmin, Active: true}
}

func TestCreateLoan_Success(t *testing.T) {
	e := newEchoWithValidator()
	loans := &loanmock.Repo{
		CreateFn: func(ctx context.Context, l *domainLoan.Loan) error { return nil },
	}
	h := NewLoanHandler(ucLoan.NewUsecase(loans, nil), nil)

	body := map[string]any{"amount": 500000, "term_months": 24, "purpose": "tuition"}
	req := httptest.NewRequest(stdhttp.MethodPost, "/loans", mustJSON(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	mw.SetCurrentUser(c, student(7))

	if err := h.CreateLoan(c); err != nil {
		t.Fatalf("CreateLoan error: %v", err)
	}
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("status = %d, want 201; body=%s", rec.Code, rec.Body.String())
	}

	var dto ucLoan.LoanDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &dto); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if dto.UserID != 7 || dto.Status != "pending" || dto.Principal != 500000 {
		t.Errorf("dto = %+v", dto)
	}
}

func TestCreateLoan_ValidationDetails(t *testing.T) {
	e := newEchoWithValidator()
	h := NewLoanHandler(ucLoan.NewUsecase(&loanmock.Repo{}, nil), nil)

	body := map[string]any{"amount": 1000, "term_months": 3, "purpose": "vacation"}
	req := httptest.NewRequest(stdhttp.MethodPost, "/loans", mustJSON(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	mw.SetCurrentUser(c, student(7))

	if err := h.CreateLoan(c); err != nil {
		t.Fatalf("CreateLoan error: %v", err)
	}
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if !hasFieldDetail(resp.Details, "Amount", "greater than or equal") {
		t.Errorf("missing amount detail: %+v", resp.Details)
	}
	if !hasFieldDetail(resp.Details, "TermMonths", "greater than or equal") {
		t.Errorf("missing term detail: %+v", resp.Details)
	}
	if !hasFieldDetail(resp.Details, "Purpose", "recognized loan purpose") {
		t.Errorf("missing purpose detail: %+v", resp.Details)
	}
}

func TestCreateLoan_Unauthenticated(t *testing.T) {
	e := newEchoWithValidator()
	h := NewLoanHandler(ucLoan.NewUsecase(&loanmock.Repo{}, nil), nil)

	req := httptest.NewRequest(stdhttp.MethodPost, "/loans", mustJSON(map[string]any{"amount": 500000, "term_months": 24, "purpose": "tuition"}))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.CreateLoan(c); err != nil {
		t.Fatalf("CreateLoan error: %v", err)
	}
	if rec.Code != stdhttp.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestGetLoan_OwnershipEnforced(t *testing.T) {
	e := newEchoWithValidator()
	stored := &domainLoan.Loan{LoanID: "aaaabbbbccccddddeeeeffff00001111", UserID: 7, Principal: 100_000, RemainingBalance: 100_000, TermMonths: 12, AnnualRate: 5, Status: domainLoan.StatusActive}
	loans := &loanmock.Repo{
		GetByLoanIDFn: func(ctx context.Context, loanID string) (*domainLoan.Loan, error) {
			if loanID != stored.LoanID {
				return nil, domainLoan.ErrNotFound
			}
			return stored, nil
		},
	}
	h := NewLoanHandler(ucLoan.NewUsecase(loans, nil), nil)

	run := func(u *user.User) *httptest.ResponseRecorder {
		req := httptest.NewRequest(stdhttp.MethodGet, "/loans/"+stored.LoanID, nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("loan_id")
		c.SetParamValues(stored.LoanID)
		mw.SetCurrentUser(c, u)
		if err := h.GetLoan(c); err != nil {
			t.Fatalf("GetLoan error: %v", err)
		}
		return rec
	}

	if rec := run(student(7)); rec.Code != stdhttp.StatusOK {
		t.Errorf("owner: status = %d, want 200", rec.Code)
	}
	// another student must not learn the loan exists
	if rec := run(student(8)); rec.Code != stdhttp.StatusNotFound {
		t.Errorf("stranger: status = %d, want 404", rec.Code)
	}
	if rec := run(admin()); rec.Code != stdhttp.StatusOK {
		t.Errorf("admin: status = %d, want 200", rec.Code)
	}
}

func TestGetLoan_NotFound(t *testing.T) {
	e := newEchoWithValidator()
	loans := &loanmock.Repo{
		GetByLoanIDFn: func(ctx context.Context, loanID string) (*domainLoan.Loan, error) {
			return nil, domainLoan.ErrNotFound
		},
	}
	h := NewLoanHandler(ucLoan.NewUsecase(loans, nil), nil)

	req := httptest.NewRequest(stdhttp.MethodGet, "/loans/missing", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("loan_id")
	c.SetParamValues("missing")
	mw.SetCurrentUser(c, student(7))

	if err := h.GetLoan(c); err != nil {
		t.Fatalf("GetLoan error: %v", err)
	}
	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestApproveLoan_Success(t *testing.T) {
	e := newEchoWithValidator()
	l := &domainLoan.Loan{ID: 1, LoanID: "aaaabbbbccccddddeeeeffff00001111", Status: domainLoan.StatusPending}
	tx := uowmock.ForLoan(l, uow.Repos{Loans: &loanmock.Repo{}})
	h := NewLoanHandler(nil, ucApproval.NewUsecase(tx))

	req := httptest.NewRequest(stdhttp.MethodPost, "/admin/loans/"+l.LoanID+"/approve", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("loan_id")
	c.SetParamValues(l.LoanID)

	if err := h.ApproveLoan(c); err != nil {
		t.Fatalf("ApproveLoan error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200; body=%s", rec.Code, rec.Body.String())
	}

	var dto ucApproval.DecisionDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &dto); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if dto.Status != "active" || dto.StartDate == nil {
		t.Errorf("dto = %+v", dto)
	}
}

func TestApproveLoan_AlreadyActiveConflicts(t *testing.T) {
	e := newEchoWithValidator()
	l := &domainLoan.Loan{ID: 1, LoanID: "aaaabbbbccccddddeeeeffff00001111", Status: domainLoan.StatusActive}
	tx := uowmock.ForLoan(l, uow.Repos{Loans: &loanmock.Repo{}})
	h := NewLoanHandler(nil, ucApproval.NewUsecase(tx))

	req := httptest.NewRequest(stdhttp.MethodPost, "/admin/loans/"+l.LoanID+"/approve", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("loan_id")
	c.SetParamValues(l.LoanID)

	if err := h.ApproveLoan(c); err != nil {
		t.Fatalf("ApproveLoan error: %v", err)
	}
	if rec.Code != stdhttp.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
}

func TestRejectLoan_Success(t *testing.T) {
	e := newEchoWithValidator()
	l := &domainLoan.Loan{ID: 1, LoanID: "aaaabbbbccccddddeeeeffff00001111", Status: domainLoan.StatusPending}
	tx := uowmock.ForLoan(l, uow.Repos{Loans: &loanmock.Repo{}})
	h := NewLoanHandler(nil, ucApproval.NewUsecase(tx))

	req := httptest.NewRequest(stdhttp.MethodPost, "/admin/loans/"+l.LoanID+"/reject", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("loan_id")
	c.SetParamValues(l.LoanID)

	if err := h.RejectLoan(c); err != nil {
		t.Fatalf("RejectLoan error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if l.Status != domainLoan.StatusRejected {
		t.Errorf("status = %q, want rejected", l.Status)
	}
}

func TestListMyLoans_ScopedToCaller(t *testing.T) {
	e := newEchoWithValidator()
	var askedFor uint64
	loans := &loanmock.Repo{
		ListByUserIDFn: func(ctx context.Context, userID uint64) ([]domainLoan.Loan, error) {
			askedFor = userID
			return []domainLoan.Loan{{LoanID: "l1", UserID: userID, Principal: 100_000, RemainingBalance: 50_000, TermMonths: 12, AnnualRate: 5, Status: domainLoan.StatusActive}}, nil
		},
	}
	h := NewLoanHandler(ucLoan.NewUsecase(loans, nil), nil)

	req := httptest.NewRequest(stdhttp.MethodGet, "/loans", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	mw.SetCurrentUser(c, student(7))

	if err := h.ListMyLoans(c); err != nil {
		t.Fatalf("ListMyLoans error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if askedFor != 7 {
		t.Errorf("listed loans for user %d, want 7", askedFor)
	}

	var dtos []ucLoan.LoanDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &dtos); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if len(dtos) != 1 || dtos[0].ProgressPercent != 50 {
		t.Errorf("dtos = %+v", dtos)
	}
}
