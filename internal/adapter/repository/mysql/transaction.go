package mysql

import (
	"context"

	txDomain "github.com/JohnClaps/heslgbmw-ltrs/internal/domain/transaction"

	"gorm.io/gorm"
)

type TransactionRepository struct{ db *gorm.DB }

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Create(ctx context.Context, t *txDomain.Transaction) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *TransactionRepository) GetByTxID(ctx context.Context, txID string) (*txDomain.Transaction, error) {
	var out txDomain.Transaction
	res := r.db.WithContext(ctx).Where("tx_id = ?", txID).First(&out)
	return &out, res.Error
}

func (r *TransactionRepository) ListByLoanID(ctx context.Context, loanID uint64) ([]txDomain.Transaction, error) {
	var out []txDomain.Transaction
	res := r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Order("created_at DESC, id DESC").
		Find(&out)
	return out, res.Error
}
