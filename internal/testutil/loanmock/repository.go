package loanmock

import (
	"context"
	"errors"

	domain "github.com/JohnClaps/heslgbmw-ltrs/internal/domain/loan"
)

var _ domain.Repository = (*Repo)(nil)

var errUnimplemented = errors.New("loanmock: method not implemented")

// Repo is a function-backed mock that satisfies domain.Repository.
// Fill in the function fields a test needs; unfilled ones return
// errUnimplemented (or nil for writes).
type Repo struct {
	CreateFn               func(ctx context.Context, l *domain.Loan) error
	GetByLoanIDFn          func(ctx context.Context, loanID string) (*domain.Loan, error)
	GetByLoanIDForUpdateFn func(ctx context.Context, loanID string) (*domain.Loan, error)
	ListByUserIDFn         func(ctx context.Context, userID uint64) ([]domain.Loan, error)
	ListWithBorrowersFn    func(ctx context.Context) ([]domain.WithBorrower, error)
	SaveFn                 func(ctx context.Context, l *domain.Loan) error
	PortfolioStatsFn       func(ctx context.Context) (*domain.PortfolioStats, error)
	BorrowerStatsFn        func(ctx context.Context, userID uint64) (*domain.BorrowerStats, error)
}

func (m *Repo) Create(ctx context.Context, l *domain.Loan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) GetByLoanID(ctx context.Context, loanID string) (*domain.Loan, error) {
	if m.GetByLoanIDFn != nil {
		return m.GetByLoanIDFn(ctx, loanID)
	}
	return nil, errUnimplemented
}

func (m *Repo) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*domain.Loan, error) {
	if m.GetByLoanIDForUpdateFn != nil {
		return m.GetByLoanIDForUpdateFn(ctx, loanID)
	}
	return nil, errUnimplemented
}

func (m *Repo) ListByUserID(ctx context.Context, userID uint64) ([]domain.Loan, error) {
	if m.ListByUserIDFn != nil {
		return m.ListByUserIDFn(ctx, userID)
	}
	return nil, errUnimplemented
}

func (m *Repo) ListWithBorrowers(ctx context.Context) ([]domain.WithBorrower, error) {
	if m.ListWithBorrowersFn != nil {
		return m.ListWithBorrowersFn(ctx)
	}
	return nil, errUnimplemented
}

func (m *Repo) Save(ctx context.Context, l *domain.Loan) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, l)
	}
	return nil
}

func (m *Repo) PortfolioStats(ctx context.Context) (*domain.PortfolioStats, error) {
	if m.PortfolioStatsFn != nil {
		return m.PortfolioStatsFn(ctx)
	}
	return nil, errUnimplemented
}

func (m *Repo) BorrowerStats(ctx context.Context, userID uint64) (*domain.BorrowerStats, error) {
	if m.BorrowerStatsFn != nil {
		return m.BorrowerStatsFn(ctx, userID)
	}
	return nil, errUnimplemented
}
