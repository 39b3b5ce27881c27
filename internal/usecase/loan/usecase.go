package loan

import (
	"context"
	"fmt"
	"time"

	"github.com/JohnClaps/heslgbmw-ltrs/internal/domain/loan"
	"github.com/JohnClaps/heslgbmw-ltrs/internal/domain/user"
	"github.com/JohnClaps/heslgbmw-ltrs/pkg/id"
	"github.com/JohnClaps/heslgbmw-ltrs/pkg/loanmath"
)

// Application bounds. The UI offers stepped sliders but any value inside
// these bounds is accepted.
const (
	MinAmount     = 50_000.0
	MaxAmount     = 2_000_000.0
	MinTermMonths = 6
	MaxTermMonths = 60

	// DefaultAnnualRate is the flat subsidized rate applied to every
	// student loan in the scheme.
	DefaultAnnualRate = 5.0
)

type Usecase struct {
	loans loan.Repository
	users user.Repository
}

func NewUsecase(loans loan.Repository, users user.Repository) *Usecase {
	return &Usecase{loans: loans, users: users}
}

type CreateLoanInput struct {
	UserID     uint64  `json:"-"`
	Amount     float64 `json:"amount"`
	TermMonths int     `json:"term_months"`
	Purpose    string  `json:"purpose"`
}

// LoanDTO is a loan with its derived fields. MonthlyPayment, Progress and
// NextPaymentDate are recomputed on every read so they never go stale
// against the stored balance.
type LoanDTO struct {
	LoanID           string     `json:"loan_id"`
	UserID           uint64     `json:"user_id"`
	Principal        float64    `json:"principal"`
	RemainingBalance float64    `json:"remaining_balance"`
	TermMonths       int        `json:"term_months"`
	AnnualRate       float64    `json:"annual_rate"`
	Purpose          string     `json:"purpose"`
	Status           string     `json:"status"`
	StartDate        *time.Time `json:"start_date,omitempty"`
	LastPaymentDate  *time.Time `json:"last_payment_date,omitempty"`
	MonthlyPayment   float64    `json:"monthly_payment"`
	ProgressPercent  int        `json:"progress_percent"`
	NextPaymentDate  string     `json:"next_payment_date"`
	CreatedAt        time.Time  `json:"created_at"`
}

type AdminLoanDTO struct {
	LoanDTO
	BorrowerName string `json:"borrower_name"`
	StudentID    string `json:"student_id"`
}

func (u *Usecase) Create(ctx context.Context, in CreateLoanInput) (*LoanDTO, error) {
	if in.Amount < MinAmount || in.Amount > MaxAmount {
		return nil, fmt.Errorf("amount must be between MK %.0f and MK %.0f", MinAmount, MaxAmount)
	}
	if in.TermMonths < MinTermMonths || in.TermMonths > MaxTermMonths {
		return nil, fmt.Errorf("term must be between %d and %d months", MinTermMonths, MaxTermMonths)
	}
	purpose := loan.Purpose(in.Purpose)
	if !purpose.Valid() {
		return nil, fmt.Errorf("unrecognized loan purpose %q", in.Purpose)
	}

	l := &loan.Loan{
		LoanID:           id.NewID32(),
		UserID:           in.UserID,
		Principal:        in.Amount,
		RemainingBalance: in.Amount,
		TermMonths:       in.TermMonths,
		AnnualRate:       DefaultAnnualRate,
		Purpose:          purpose,
		Status:           loan.StatusPending,
		StatusUpdatedAt:  time.Now().UTC(),
	}
	if err := u.loans.Create(ctx, l); err != nil {
		return nil, err
	}
	return ToDTO(l), nil
}

func (u *Usecase) Get(ctx context.Context, loanID string) (*LoanDTO, error) {
	l, err := u.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	return ToDTO(l), nil
}

func (u *Usecase) ListForOwner(ctx context.Context, userID uint64) ([]LoanDTO, error) {
	ls, err := u.loans.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]LoanDTO, 0, len(ls))
	for i := range ls {
		out = append(out, *ToDTO(&ls[i]))
	}
	return out, nil
}

// ListAll returns every loan joined with its borrower, for the admin view.
func (u *Usecase) ListAll(ctx context.Context) ([]AdminLoanDTO, error) {
	ls, err := u.loans.ListWithBorrowers(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]AdminLoanDTO, 0, len(ls))
	for i := range ls {
		out = append(out, AdminLoanDTO{
			LoanDTO:      *ToDTO(&ls[i].Loan),
			BorrowerName: ls[i].BorrowerName,
			StudentID:    ls[i].StudentID,
		})
	}
	return out, nil
}

// ToDTO attaches the derived fields to a stored loan.
func ToDTO(l *loan.Loan) *LoanDTO {
	monthly, err := loanmath.MonthlyPayment(l.Principal, l.TermMonths, l.AnnualRate)
	if err != nil {
		monthly = 0
	}
	next := loanmath.NextPaymentDate(l.LastPaymentDate, time.Now().UTC())
	return &LoanDTO{
		LoanID:           l.LoanID,
		UserID:           l.UserID,
		Principal:        l.Principal,
		RemainingBalance: l.RemainingBalance,
		TermMonths:       l.TermMonths,
		AnnualRate:       l.AnnualRate,
		Purpose:          string(l.Purpose),
		Status:           string(l.Status),
		StartDate:        l.StartDate,
		LastPaymentDate:  l.LastPaymentDate,
		MonthlyPayment:   monthly,
		ProgressPercent:  loanmath.Progress(l.Principal, l.RemainingBalance),
		NextPaymentDate:  next.Format("2006-01-02"),
		CreatedAt:        l.CreatedAt,
	}
}
