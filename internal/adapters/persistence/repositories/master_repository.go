package repositories

import (
	"context"
	"errors"

	"corebank/internal/adapters/persistence/models"
	"corebank/internal/core/domain"

	"gorm.io/gorm"
)

// masterRepository implements MasterRepository
type masterRepository struct {
	db *gorm.DB
}

// NewMasterRepository creates a new master data repository
func NewMasterRepository(db *gorm.DB) MasterRepository {
	return &masterRepository{db: db}
}

// GetLoanType gets an active loan type by ID
func (r *masterRepository) GetLoanType(ctx context.Context, id uint) (*models.LoanType, error) {
	var loanType models.LoanType
	err := r.db.WithContext(ctx).Where("id = ? AND is_active = ?", id, true).First(&loanType).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrLoanTypeNotFound
		}
		return nil, err
	}
	return &loanType, nil
}

// ListLoanTypes lists active loan types
func (r *masterRepository) ListLoanTypes(ctx context.Context) ([]*models.LoanType, error) {
	var loanTypes []*models.LoanType
	err := r.db.WithContext(ctx).Where("is_active = ?", true).Find(&loanTypes).Error
	if err != nil {
		return nil, err
	}
	return loanTypes, nil
}

// ListAccountTypes lists all account types
func (r *masterRepository) ListAccountTypes(ctx context.Context) ([]*models.AccountType, error) {
	var accountTypes []*models.AccountType
	err := r.db.WithContext(ctx).Find(&accountTypes).Error
	if err != nil {
		return nil, err
	}
	return accountTypes, nil
}

// ListBranches lists all branches
func (r *masterRepository) ListBranches(ctx context.Context) ([]*models.Branch, error) {
	var branches []*models.Branch
	err := r.db.WithContext(ctx).Find(&branches).Error
	if err != nil {
		return nil, err
	}
	return branches, nil
}
