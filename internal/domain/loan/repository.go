package loan

import "context"

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	GetByLoanID(ctx context.Context, loanID string) (*Loan, error)
	// GetByLoanIDForUpdate locks the row (SELECT ... FOR UPDATE) so that
	// balance mutations on the same loan serialize.
	GetByLoanIDForUpdate(ctx context.Context, loanID string) (*Loan, error)
	ListByUserID(ctx context.Context, userID uint64) ([]Loan, error)
	ListWithBorrowers(ctx context.Context) ([]WithBorrower, error)
	Save(ctx context.Context, l *Loan) error

	PortfolioStats(ctx context.Context) (*PortfolioStats, error)
	BorrowerStats(ctx context.Context, userID uint64) (*BorrowerStats, error)
}
