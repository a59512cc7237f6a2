package repositories

import (
	"context"
	"errors"
	"time"

	"corebank/internal/adapters/persistence/models"
	"corebank/internal/core/domain"

	"gorm.io/gorm"
)

// loanRepository implements LoanRepository
type loanRepository struct {
	db *gorm.DB
}

// NewLoanRepository creates a new loan repository
func NewLoanRepository(db *gorm.DB) LoanRepository {
	return &loanRepository{db: db}
}

// Create creates a new loan
func (r *loanRepository) Create(ctx context.Context, loan *models.Loan) error {
	return r.db.WithContext(ctx).Create(loan).Error
}

// GetByID gets a loan by ID with its type preloaded
func (r *loanRepository) GetByID(ctx context.Context, id uint) (*models.Loan, error) {
	var loan models.Loan
	err := r.db.WithContext(ctx).Preload("LoanType").Where("id = ?", id).First(&loan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrLoanNotFound
		}
		return nil, err
	}
	return &loan, nil
}

// ListByCustomer lists a customer's loans, newest first
func (r *loanRepository) ListByCustomer(ctx context.Context, customerID uint) ([]*models.Loan, error) {
	var loans []*models.Loan
	err := r.db.WithContext(ctx).Preload("LoanType").
		Where("customer_id = ?", customerID).
		Order("requested_at DESC").
		Find(&loans).Error
	if err != nil {
		return nil, err
	}
	return loans, nil
}

// ListPendingByBranch lists a branch's pending loans, oldest first
func (r *loanRepository) ListPendingByBranch(ctx context.Context, branchID uint) ([]*models.Loan, error) {
	var loans []*models.Loan
	err := r.db.WithContext(ctx).Preload("LoanType").
		Where("branch_id = ? AND status = ?", branchID, models.LoanStatusPending).
		Order("requested_at ASC").
		Find(&loans).Error
	if err != nil {
		return nil, err
	}
	return loans, nil
}

// ListPendingOlderThan lists pending loans requested before the cutoff
func (r *loanRepository) ListPendingOlderThan(ctx context.Context, cutoff time.Time) ([]*models.Loan, error) {
	var loans []*models.Loan
	err := r.db.WithContext(ctx).
		Where("status = ? AND requested_at < ?", models.LoanStatusPending, cutoff).
		Order("requested_at ASC").
		Find(&loans).Error
	if err != nil {
		return nil, err
	}
	return loans, nil
}

// DecideIfPending applies the status transition only while the row is
// still PENDING. The WHERE clause is the race guard: a concurrent
// decision that commits first leaves zero rows for the loser.
func (r *loanRepository) DecideIfPending(ctx context.Context, loanID uint, newStatus string, decidedBy uint, decidedAt time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.Loan{}).
		Where("id = ? AND status = ?", loanID, models.LoanStatusPending).
		Updates(map[string]interface{}{
			"status":        newStatus,
			"decided_at":    decidedAt,
			"decided_by_id": decidedBy,
		})
	return result.RowsAffected, result.Error
}
