package uow

import (
	"context"

	"github.com/JohnClaps/heslgbmw-ltrs/internal/domain/loan"
	"github.com/JohnClaps/heslgbmw-ltrs/internal/domain/transaction"
	"github.com/JohnClaps/heslgbmw-ltrs/internal/domain/user"
)

type Repos struct {
	Loans        loan.Repository
	Transactions transaction.Repository
	Users        user.Repository
}

type UnitOfWork interface {
	// WithinTx runs fn inside one db transaction.
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// WithinLoanTx locks the loan row first, then passes it in. Every
	// balance mutation goes through this so payments against the same
	// loan cannot interleave.
	WithinLoanTx(ctx context.Context, loanID string, fn func(r Repos, l *loan.Loan) error) error
}
