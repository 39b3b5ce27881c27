package txmock

import (
	"context"
	"errors"

	domain "github.com/JohnClaps/heslgbmw-ltrs/internal/domain/transaction"
)

var _ domain.Repository = (*Repo)(nil)

var errUnimplemented = errors.New("txmock: method not implemented")

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn       func(ctx context.Context, t *domain.Transaction) error
	GetByTxIDFn    func(ctx context.Context, txID string) (*domain.Transaction, error)
	ListByLoanIDFn func(ctx context.Context, loanID uint64) ([]domain.Transaction, error)
}

func (m *Repo) Create(ctx context.Context, t *domain.Transaction) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, t)
	}
	return nil
}

func (m *Repo) GetByTxID(ctx context.Context, txID string) (*domain.Transaction, error) {
	if m.GetByTxIDFn != nil {
		return m.GetByTxIDFn(ctx, txID)
	}
	return nil, errUnimplemented
}

func (m *Repo) ListByLoanID(ctx context.Context, loanID uint64) ([]domain.Transaction, error) {
	if m.ListByLoanIDFn != nil {
		return m.ListByLoanIDFn(ctx, loanID)
	}
	return nil, errUnimplemented
}
