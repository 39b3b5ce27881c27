package transaction

import "context"

type Repository interface {
	Create(ctx context.Context, t *Transaction) error
	GetByTxID(ctx context.Context, txID string) (*Transaction, error)
	ListByLoanID(ctx context.Context, loanID uint64) ([]Transaction, error)
}
