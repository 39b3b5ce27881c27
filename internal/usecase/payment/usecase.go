package payment

import (
	"context"
	"errors"
	"time"

	domainLoan "github.com/JohnClaps/heslgbmw-ltrs/internal/domain/loan"
	"github.com/JohnClaps/heslgbmw-ltrs/internal/domain/transaction"
	"github.com/JohnClaps/heslgbmw-ltrs/internal/domain/uow"
	"github.com/JohnClaps/heslgbmw-ltrs/pkg/id"

	"github.com/shopspring/decimal"
)

var (
	ErrNonPositiveAmount = errors.New("payment amount must be positive")
	ErrInvalidMethod     = errors.New("unsupported payment method")
)

// Usecase is the only writer of loan balances. Each accepted payment
// inserts exactly one transaction row and applies exactly one balance
// decrement, inside one locked db transaction.
type Usecase struct {
	uow uow.UnitOfWork
}

func NewUsecase(tx uow.UnitOfWork) *Usecase { return &Usecase{uow: tx} }

type ApplyInput struct {
	LoanID        string
	Amount        float64
	Method        transaction.Method
	AccountNumber string
}

type ReceiptDTO struct {
	TxID             string    `json:"tx_id"`
	LoanID           string    `json:"loan_id"`
	Amount           float64   `json:"amount"`
	Method           string    `json:"payment_method"`
	AccountNumber    string    `json:"account_number"`
	RemainingBalance float64   `json:"remaining_balance"`
	LoanStatus       string    `json:"loan_status"`
	CreatedAt        time.Time `json:"created_at"`
}

// Apply records a payment against an active loan. Overpayment is rejected
// rather than clamped, so the balance can never go negative; a payment
// that lands exactly on zero completes the loan in the same transaction.
func (u *Usecase) Apply(ctx context.Context, in ApplyInput) (*ReceiptDTO, error) {
	if in.Amount <= 0 {
		return nil, ErrNonPositiveAmount
	}
	if !in.Method.Valid() {
		return nil, ErrInvalidMethod
	}

	var dto *ReceiptDTO
	err := u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *domainLoan.Loan) error {
		if l.Status != domainLoan.StatusActive {
			return domainLoan.ErrNotActive
		}

		balance := decimal.NewFromFloat(l.RemainingBalance)
		amount := decimal.NewFromFloat(in.Amount).Round(2)
		if amount.GreaterThan(balance) {
			return domainLoan.ErrExceedsBalance
		}

		now := time.Now().UTC()
		t := &transaction.Transaction{
			TxID:          id.NewID32(),
			LoanID:        l.ID,
			Amount:        amount.InexactFloat64(),
			Type:          transaction.TypePayment,
			Method:        in.Method,
			AccountNumber: in.AccountNumber,
			CreatedAt:     now,
		}
		if err := r.Transactions.Create(ctx, t); err != nil {
			return err
		}

		l.RemainingBalance = balance.Sub(amount).Round(2).InexactFloat64()
		l.LastPaymentDate = &now
		if l.RemainingBalance == 0 {
			l.Status = domainLoan.StatusCompleted
			l.StatusUpdatedAt = now
		}
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}

		dto = &ReceiptDTO{
			TxID:             t.TxID,
			LoanID:           l.LoanID,
			Amount:           t.Amount,
			Method:           string(t.Method),
			AccountNumber:    t.AccountNumber,
			RemainingBalance: l.RemainingBalance,
			LoanStatus:       string(l.Status),
			CreatedAt:        t.CreatedAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}
