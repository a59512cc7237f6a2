package repositories

import (
	"context"
	"errors"

	"corebank/internal/adapters/persistence/models"
	"corebank/internal/core/domain"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// accountRepository implements AccountRepository
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

// GetByNumber gets an account by account number with its type preloaded
func (r *accountRepository) GetByNumber(ctx context.Context, accountNumber string) (*models.Account, error) {
	var account models.Account
	err := r.db.WithContext(ctx).Preload("AccountType").
		Where("account_number = ?", accountNumber).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

// ListByCustomer lists all accounts owned by a customer
func (r *accountRepository) ListByCustomer(ctx context.Context, customerID uint) ([]*models.Account, error) {
	var accounts []*models.Account
	err := r.db.WithContext(ctx).Preload("AccountType").
		Where("customer_id = ?", customerID).Find(&accounts).Error
	if err != nil {
		return nil, err
	}
	return accounts, nil
}

// Create creates a new account
func (r *accountRepository) Create(ctx context.Context, account *models.Account) error {
	return r.db.WithContext(ctx).Create(account).Error
}

// ExecuteTransfer performs the debit+credit+record sequence as a single
// database transaction. Both account rows are locked FOR UPDATE in
// ascending account-number order so concurrent transfers touching the
// same accounts serialize without deadlocking, and the sufficiency check
// runs against the locked row. A context cancellation rolls the whole
// unit back.
func (r *accountRepository) ExecuteTransfer(ctx context.Context, fromNumber, toNumber string, amount decimal.Decimal, record *models.Transaction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		first, second := fromNumber, toNumber
		if second < first {
			first, second = second, first
		}

		lockRow := func(number string) (*models.Account, error) {
			var account models.Account
			err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("account_number = ?", number).First(&account).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, domain.ErrAccountNotFound
				}
				return nil, err
			}
			return &account, nil
		}

		a, err := lockRow(first)
		if err != nil {
			return err
		}
		b, err := lockRow(second)
		if err != nil {
			return err
		}

		from, to := a, b
		if from.AccountNumber != fromNumber {
			from, to = b, a
		}

		if from.Balance.LessThan(amount) {
			return domain.ErrInsufficientFunds
		}

		newFrom := from.Balance.Sub(amount)
		newTo := to.Balance.Add(amount)

		if err := tx.Model(&models.Account{}).Where("id = ?", from.ID).
			Update("balance", newFrom).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Account{}).Where("id = ?", to.ID).
			Update("balance", newTo).Error; err != nil {
			return err
		}

		record.FromAccountID = from.ID
		record.ToAccountID = to.ID
		return tx.Create(record).Error
	})
}
