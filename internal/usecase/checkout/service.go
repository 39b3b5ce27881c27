package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/JohnClaps/heslgbmw-ltrs/internal/domain/transaction"
	"github.com/JohnClaps/heslgbmw-ltrs/internal/usecase/payment"
)

// ErrDeclined marks a charge the gateway refused (as opposed to a
// transport failure). Both leave the session in Confirmation so the user
// can retry manually.
var ErrDeclined = errors.New("payment declined")

// ChargeRequest is what the collection gateway needs to take the money.
// The gross amount includes the processing fee.
type ChargeRequest struct {
	Amount    float64             `json:"amount"`
	Currency  string              `json:"currency"`
	Method    transaction.Method  `json:"method"`
	Phone     string              `json:"phone,omitempty"`
	Bank      BankDetails         `json:"bank,omitempty"`
	Card      CardDetails         `json:"card,omitempty"`
	Reference string              `json:"reference"`
}

type ChargeResult struct {
	TransactionID string `json:"transaction_id"`
}

// Gateway is the external collection API. Implementations must surface
// declines as errors wrapping ErrDeclined.
type Gateway interface {
	Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error)
}

// Payments is the slice of the ledger the wizard hands instructions to.
type Payments interface {
	Apply(ctx context.Context, in payment.ApplyInput) (*payment.ReceiptDTO, error)
}

const currencyMWK = "MWK"

type Service struct {
	gateway  Gateway
	payments Payments
}

func NewService(gw Gateway, payments Payments) *Service {
	return &Service{gateway: gw, payments: payments}
}

type SubmitResult struct {
	GatewayRef string              `json:"gateway_ref"`
	Fee        float64             `json:"fee"`
	Total      float64             `json:"total"`
	Receipt    *payment.ReceiptDTO `json:"receipt"`
}

// Submit charges the gateway for amount+fee and, on success, records the
// payment on the ledger. A gateway failure returns with the session still
// in Confirmation; the caller may invoke Submit again (one attempt per
// user action, no automatic retry).
func (svc *Service) Submit(ctx context.Context, s *Session) (*SubmitResult, error) {
	switch s.step {
	case StepConfirmation:
	case stepDone:
		return nil, ErrAlreadySubmitted
	default:
		return nil, ErrWrongStep
	}

	req := ChargeRequest{
		Amount:    s.Total(),
		Currency:  currencyMWK,
		Method:    s.method,
		Reference: s.reference(time.Now().UTC()),
	}
	switch {
	case s.method.Mobile():
		req.Phone = s.accountNumber()
	case s.method == transaction.MethodBankTransfer:
		req.Bank = s.details.Bank
	default:
		req.Card = s.details.Card
	}

	res, err := svc.gateway.Charge(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("charge %s: %w", req.Reference, err)
	}

	receipt, err := svc.payments.Apply(ctx, payment.ApplyInput{
		LoanID:        s.loanID,
		Amount:        s.amount,
		Method:        s.method,
		AccountNumber: s.accountNumber(),
	})
	if err != nil {
		return nil, err
	}

	s.step = stepDone
	return &SubmitResult{
		GatewayRef: res.TransactionID,
		Fee:        s.Fee(),
		Total:      s.Total(),
		Receipt:    receipt,
	}, nil
}
