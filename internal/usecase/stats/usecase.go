package stats

import (
	"context"
	"time"

	"github.com/JohnClaps/heslgbmw-ltrs/internal/domain/loan"
	"github.com/JohnClaps/heslgbmw-ltrs/pkg/loanmath"
)

// Usecase serves the read-only dashboard aggregates. Nothing here writes.
type Usecase struct {
	loans loan.Repository
}

func NewUsecase(loans loan.Repository) *Usecase { return &Usecase{loans: loans} }

type NextPaymentDTO struct {
	Amount float64 `json:"amount"`
	Date   string  `json:"date"`
}

type BorrowerStatsDTO struct {
	TotalBorrowed      float64         `json:"total_borrowed"`
	OutstandingBalance float64         `json:"outstanding_balance"`
	TotalLoans         int64           `json:"total_loans"`
	RepaymentProgress  int             `json:"repayment_progress"`
	NextPayment        *NextPaymentDTO `json:"next_payment,omitempty"`
}

func (u *Usecase) Borrower(ctx context.Context, userID uint64) (*BorrowerStatsDTO, error) {
	agg, err := u.loans.BorrowerStats(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := &BorrowerStatsDTO{
		TotalBorrowed:      agg.TotalBorrowed,
		OutstandingBalance: agg.OutstandingBalance,
		TotalLoans:         agg.TotalLoans,
		RepaymentProgress:  loanmath.Progress(agg.TotalBorrowed, agg.OutstandingBalance),
	}

	// Next payment info comes from the borrower's first active loan.
	ls, err := u.loans.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range ls {
		if ls[i].Status != loan.StatusActive {
			continue
		}
		monthly, err := loanmath.MonthlyPayment(ls[i].Principal, ls[i].TermMonths, ls[i].AnnualRate)
		if err != nil {
			break
		}
		next := loanmath.NextPaymentDate(ls[i].LastPaymentDate, time.Now().UTC())
		out.NextPayment = &NextPaymentDTO{Amount: monthly, Date: next.Format("2006-01-02")}
		break
	}
	return out, nil
}

func (u *Usecase) Portfolio(ctx context.Context) (*loan.PortfolioStats, error) {
	return u.loans.PortfolioStats(ctx)
}
