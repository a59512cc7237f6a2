package repositories

import (
	"context"

	"corebank/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// transactionRepository implements TransactionRepository
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

// RecentByAccountIDs lists the most recent ledger entries touching any
// of the given accounts, newest first
func (r *transactionRepository) RecentByAccountIDs(ctx context.Context, accountIDs []uint, limit int) ([]*models.Transaction, error) {
	var transactions []*models.Transaction
	err := r.db.WithContext(ctx).
		Where("from_account_id IN ? OR to_account_id IN ?", accountIDs, accountIDs).
		Order("created_at DESC").
		Limit(limit).
		Find(&transactions).Error
	if err != nil {
		return nil, err
	}
	return transactions, nil
}

// RecentByBranch lists the most recent ledger entries whose debited
// account belongs to the branch, newest first
func (r *transactionRepository) RecentByBranch(ctx context.Context, branchID uint, limit int) ([]*models.Transaction, error) {
	var transactions []*models.Transaction
	err := r.db.WithContext(ctx).
		Joins("JOIN accounts ON accounts.id = transactions.from_account_id").
		Where("accounts.branch_id = ?", branchID).
		Order("transactions.created_at DESC").
		Limit(limit).
		Find(&transactions).Error
	if err != nil {
		return nil, err
	}
	return transactions, nil
}
