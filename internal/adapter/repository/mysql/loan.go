package mysql

import (
	"context"

	loanDomain "github.com/JohnClaps/heslgbmw-ltrs/internal/domain/loan"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

func (r *LoanRepository) Create(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *LoanRepository) Save(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *LoanRepository) GetByLoanID(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).Where("loan_id = ?", loanID).First(&out)
	return &out, res.Error
}

func (r *LoanRepository) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("loan_id = ?", loanID).
		First(&out)
	return &out, res.Error
}

func (r *LoanRepository) ListByUserID(ctx context.Context, userID uint64) ([]loanDomain.Loan, error) {
	var out []loanDomain.Loan
	res := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&out)
	return out, res.Error
}

func (r *LoanRepository) ListWithBorrowers(ctx context.Context) ([]loanDomain.WithBorrower, error) {
	var out []loanDomain.WithBorrower
	res := r.db.WithContext(ctx).
		Table("loans").
		Select("loans.*, users.name AS borrower_name, users.student_id AS student_id").
		Joins("JOIN users ON loans.user_id = users.id").
		Where("loans.deleted_at IS NULL").
		Order("loans.created_at DESC, loans.id DESC").
		Scan(&out)
	return out, res.Error
}

func (r *LoanRepository) PortfolioStats(ctx context.Context) (*loanDomain.PortfolioStats, error) {
	var out loanDomain.PortfolioStats
	res := r.db.WithContext(ctx).
		Table("loans").
		Select(`COUNT(*) AS total_loans,
			COUNT(DISTINCT user_id) AS active_borrowers,
			COALESCE(SUM(principal), 0) AS total_disbursed,
			COUNT(CASE WHEN status = 'active' THEN 1 END) AS active_loans,
			COUNT(CASE WHEN status = 'pending' THEN 1 END) AS pending_loans,
			COUNT(CASE WHEN status = 'completed' THEN 1 END) AS completed_loans`).
		Where("deleted_at IS NULL").
		Scan(&out)
	return &out, res.Error
}

func (r *LoanRepository) BorrowerStats(ctx context.Context, userID uint64) (*loanDomain.BorrowerStats, error) {
	var out loanDomain.BorrowerStats
	res := r.db.WithContext(ctx).
		Table("loans").
		Select(`COALESCE(SUM(principal), 0) AS total_borrowed,
			COALESCE(SUM(remaining_balance), 0) AS outstanding_balance,
			COUNT(*) AS total_loans`).
		Where("user_id = ? AND deleted_at IS NULL", userID).
		Scan(&out)
	return &out, res.Error
}
