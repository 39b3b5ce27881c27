package http

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	mw "github.com/JohnClaps/heslgbmw-ltrs/internal/adapter/middleware"
	domainLoan "github.com/JohnClaps/heslgbmw-ltrs/internal/domain/loan"
	"github.com/JohnClaps/heslgbmw-ltrs/internal/domain/transaction"
	"github.com/JohnClaps/heslgbmw-ltrs/internal/domain/uow"
	"github.com/JohnClaps/heslgbmw-ltrs/internal/testutil/gatewaymock"
	"github.com/JohnClaps/heslgbmw-ltrs/internal/testutil/loanmock"
	"github.com/JohnClaps/heslgbmw-ltrs/internal/testutil/txmock"
	"github.com/JohnClaps/heslgbmw-ltrs/internal/testutil/uowmock"
	"github.com/JohnClaps/heslgbmw-ltrs/internal/usecase/checkout"
	ucLoan "github.com/JohnClaps/heslgbmw-ltrs/internal/usecase/loan"
	ucPayment "github.com/JohnClaps/heslgbmw-ltrs/internal/usecase/payment"

	"github.com/labstack/echo/v4"
)

// payFixture wires the full collection path (handler, wizard, ledger) over
// mocks, with one active loan owned by user 7.
type payFixture struct {
	handler *PaymentHandler
	loan    *domainLoan.Loan
	gateway *gatewaymock.Gateway
	txs     []*transaction.Transaction
}

func newPayFixture(t *testing.T, balance float64) *payFixture {
	t.Helper()
	f := &payFixture{
		loan: &domainLoan.Loan{
			ID: 42, LoanID: "aaaabbbbccccddddeeeeffff00001111", UserID: 7,
			Principal: 250_000, RemainingBalance: balance,
			TermMonths: 12, AnnualRate: 5, Status: domainLoan.StatusActive,
		},
		gateway: &gatewaymock.Gateway{
			ChargeFn: func(ctx context.Context, req checkout.ChargeRequest) (*checkout.ChargeResult, error) {
				return &checkout.ChargeResult{TransactionID: "ch_test_1"}, nil
			},
		},
	}
	loans := &loanmock.Repo{
		GetByLoanIDFn: func(ctx context.Context, loanID string) (*domainLoan.Loan, error) {
			if loanID != f.loan.LoanID {
				return nil, domainLoan.ErrNotFound
			}
			return f.loan, nil
		},
	}
	txs := &txmock.Repo{
		CreateFn: func(ctx context.Context, tx *transaction.Transaction) error {
			f.txs = append(f.txs, tx)
			return nil
		},
	}
	tx := uowmock.ForLoan(f.loan, uow.Repos{Loans: &loanmock.Repo{}, Transactions: txs})
	svc := checkout.NewService(f.gateway, ucPayment.NewUsecase(tx))
	f.handler = NewPaymentHandler(ucLoan.NewUsecase(loans, nil), svc)
	return f
}

func (f *payFixture) pay(t *testing.T, e *echo.Echo, userID uint64, body map[string]any) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(stdhttp.MethodPost, "/loans/"+f.loan.LoanID+"/payments", mustJSON(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("loan_id")
	c.SetParamValues(f.loan.LoanID)
	mw.SetCurrentUser(c, student(userID))
	if err := f.handler.Pay(c); err != nil {
		t.Fatalf("Pay error: %v", err)
	}
	return rec
}

func TestPay_MobileMoneySuccess(t *testing.T) {
	e := newEchoWithValidator()
	f := newPayFixture(t, 250_000)

	rec := f.pay(t, e, 7, map[string]any{
		"amount": 20_000, "method": "airtel_money", "phone_number": "0991234567",
	})
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("status = %d, want 201; body=%s", rec.Code, rec.Body.String())
	}

	var res checkout.SubmitResult
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if res.GatewayRef != "ch_test_1" || res.Fee != 300 || res.Total != 20_300 {
		t.Errorf("result = %+v", res)
	}
	if res.Receipt == nil || res.Receipt.RemainingBalance != 230_000 {
		t.Errorf("receipt = %+v", res.Receipt)
	}
	if f.loan.RemainingBalance != 230_000 {
		t.Errorf("loan balance = %v, want 230000", f.loan.RemainingBalance)
	}
	if len(f.txs) != 1 || f.txs[0].AccountNumber != "0991234567" {
		t.Errorf("recorded transactions = %+v", f.txs)
	}
	if len(f.gateway.Calls) != 1 || f.gateway.Calls[0].Amount != 20_300 {
		t.Errorf("gateway calls = %+v", f.gateway.Calls)
	}
}

func TestPay_BankTransferSuccess(t *testing.T) {
	e := newEchoWithValidator()
	f := newPayFixture(t, 250_000)

	rec := f.pay(t, e, 7, map[string]any{
		"amount": 20_000, "method": "bank_transfer",
		"bank": map[string]any{"bank_code": "NBM", "account_number": "00012345", "account_name": "Chisomo Banda"},
	})
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("status = %d, want 201; body=%s", rec.Code, rec.Body.String())
	}

	var res checkout.SubmitResult
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	// flat MK 500 fee
	if res.Fee != 500 || res.Total != 20_500 {
		t.Errorf("result = %+v", res)
	}
	if len(f.txs) != 1 || f.txs[0].AccountNumber != "NBM-00012345" {
		t.Errorf("recorded transactions = %+v", f.txs)
	}
}

func TestPay_InvalidPhoneRejectedBeforeCharge(t *testing.T) {
	e := newEchoWithValidator()
	f := newPayFixture(t, 250_000)

	rec := f.pay(t, e, 7, map[string]any{
		"amount": 20_000, "method": "airtel_money", "phone_number": "123456",
	})
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400; body=%s", rec.Code, rec.Body.String())
	}
	if len(f.gateway.Calls) != 0 {
		t.Error("gateway must not be charged for invalid details")
	}
	if len(f.txs) != 0 {
		t.Error("no transaction may be recorded")
	}
}

func TestPay_OverpaymentUnprocessable(t *testing.T) {
	e := newEchoWithValidator()
	f := newPayFixture(t, 10_000)

	rec := f.pay(t, e, 7, map[string]any{
		"amount": 10_001, "method": "airtel_money", "phone_number": "0991234567",
	})
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422; body=%s", rec.Code, rec.Body.String())
	}
	if f.loan.RemainingBalance != 10_000 {
		t.Errorf("balance changed to %v", f.loan.RemainingBalance)
	}
	// rejected before the gateway captures anything
	if len(f.gateway.Calls) != 0 {
		t.Error("gateway must not be charged for an overpayment")
	}
	if len(f.txs) != 0 {
		t.Error("no transaction may be recorded")
	}
}

func TestPay_NonActiveLoanNotCharged(t *testing.T) {
	e := newEchoWithValidator()

	for _, status := range []domainLoan.Status{
		domainLoan.StatusPending, domainLoan.StatusCompleted, domainLoan.StatusRejected,
	} {
		f := newPayFixture(t, 250_000)
		f.loan.Status = status

		rec := f.pay(t, e, 7, map[string]any{
			"amount": 20_000, "method": "airtel_money", "phone_number": "0991234567",
		})
		if rec.Code != stdhttp.StatusConflict {
			t.Fatalf("%s: status = %d, want 409; body=%s", status, rec.Code, rec.Body.String())
		}
		if len(f.gateway.Calls) != 0 {
			t.Errorf("%s: gateway must not be charged", status)
		}
		if len(f.txs) != 0 {
			t.Errorf("%s: no transaction may be recorded", status)
		}
	}
}

func TestPay_GatewayDeclineMapsToBadGateway(t *testing.T) {
	e := newEchoWithValidator()
	f := newPayFixture(t, 250_000)
	f.gateway.ChargeFn = func(ctx context.Context, req checkout.ChargeRequest) (*checkout.ChargeResult, error) {
		return nil, checkout.ErrDeclined
	}

	rec := f.pay(t, e, 7, map[string]any{
		"amount": 20_000, "method": "airtel_money", "phone_number": "0991234567",
	})
	if rec.Code != stdhttp.StatusBadGateway {
		t.Fatalf("status = %d, want 502; body=%s", rec.Code, rec.Body.String())
	}
	if len(f.txs) != 0 {
		t.Error("declined charge must not reach the ledger")
	}
}

func TestPay_StrangerGets404(t *testing.T) {
	e := newEchoWithValidator()
	f := newPayFixture(t, 250_000)

	rec := f.pay(t, e, 8, map[string]any{
		"amount": 20_000, "method": "airtel_money", "phone_number": "0991234567",
	})
	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if len(f.gateway.Calls) != 0 {
		t.Error("gateway must not be charged")
	}
}

func TestPay_UnsupportedMethodValidation(t *testing.T) {
	e := newEchoWithValidator()
	f := newPayFixture(t, 250_000)

	rec := f.pay(t, e, 7, map[string]any{"amount": 20_000, "method": "cash"})
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if !hasFieldDetail(resp.Details, "Method", "supported payment method") {
		t.Errorf("details = %+v", resp.Details)
	}
}

func TestBanks_ReturnsDirectory(t *testing.T) {
	e := newEchoWithValidator()
	h := NewPaymentHandler(nil, nil)

	req := httptest.NewRequest(stdhttp.MethodGet, "/banks", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Banks(c); err != nil {
		t.Fatalf("Banks error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var banks []checkout.Bank
	if err := json.Unmarshal(rec.Body.Bytes(), &banks); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if len(banks) != 7 {
		t.Errorf("len = %d, want 7", len(banks))
	}
	if banks[0].Code != "NBM" {
		t.Errorf("first bank = %+v", banks[0])
	}
}
