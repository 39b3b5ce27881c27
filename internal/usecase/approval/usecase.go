package approval

import (
	"context"
	"time"

	domainLoan "github.com/JohnClaps/heslgbmw-ltrs/internal/domain/loan"
	"github.com/JohnClaps/heslgbmw-ltrs/internal/domain/uow"
)

// Usecase drives the admin decisions on pending applications:
// pending -> active on approval, pending -> rejected on rejection.
type Usecase struct {
	uow uow.UnitOfWork
}

func NewUsecase(tx uow.UnitOfWork) *Usecase { return &Usecase{uow: tx} }

type DecisionDTO struct {
	LoanID    string     `json:"loan_id"`
	Status    string     `json:"status"`
	StartDate *time.Time `json:"start_date,omitempty"`
	DecidedAt time.Time  `json:"decided_at"`
}

func (u *Usecase) Approve(ctx context.Context, loanID string) (*DecisionDTO, error) {
	var dto *DecisionDTO
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domainLoan.Loan) error {
		if l.Status != domainLoan.StatusPending {
			return domainLoan.ErrInvalidTransition
		}
		now := time.Now().UTC()
		l.Status = domainLoan.StatusActive
		l.StartDate = &now
		l.StatusUpdatedAt = now
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		dto = &DecisionDTO{LoanID: l.LoanID, Status: string(l.Status), StartDate: l.StartDate, DecidedAt: now}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (u *Usecase) Reject(ctx context.Context, loanID string) (*DecisionDTO, error) {
	var dto *DecisionDTO
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domainLoan.Loan) error {
		if l.Status != domainLoan.StatusPending {
			return domainLoan.ErrInvalidTransition
		}
		now := time.Now().UTC()
		l.Status = domainLoan.StatusRejected
		l.StatusUpdatedAt = now
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		dto = &DecisionDTO{LoanID: l.LoanID, Status: string(l.Status), DecidedAt: now}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}
