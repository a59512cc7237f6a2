package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"log"
	"math/big"

	"corebank/internal/adapters/persistence/models"
	"corebank/internal/adapters/persistence/repositories"
	"corebank/internal/core/domain"

	"github.com/shopspring/decimal"
)

// AccountService handles account lookups and employee-initiated account
// opening. It never mutates balances; that is the transfer service's job.
type AccountService struct {
	accountRepo  repositories.AccountRepository
	customerRepo repositories.CustomerRepository
	employeeRepo repositories.EmployeeRepository
	masterRepo   repositories.MasterRepository
}

// NewAccountService creates a new account service
func NewAccountService(
	accountRepo repositories.AccountRepository,
	customerRepo repositories.CustomerRepository,
	employeeRepo repositories.EmployeeRepository,
	masterRepo repositories.MasterRepository,
) *AccountService {
	return &AccountService{
		accountRepo:  accountRepo,
		customerRepo: customerRepo,
		employeeRepo: employeeRepo,
		masterRepo:   masterRepo,
	}
}

// Summary returns the calling customer's accounts with balances
func (s *AccountService) Summary(ctx context.Context, customerID uint) ([]*models.AccountSummary, error) {
	accounts, err := s.accountRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	summaries := make([]*models.AccountSummary, 0, len(accounts))
	for _, a := range accounts {
		summaries = append(summaries, a.ToSummary())
	}
	return summaries, nil
}

// OpenAccountInput represents employee account opening input
type OpenAccountInput struct {
	CustomerID     uint            `json:"customerId" validate:"required"`
	AccountTypeID  uint            `json:"accountTypeId" validate:"required"`
	InitialDeposit decimal.Decimal `json:"initialDeposit"`
}

// Open creates a new account for a customer. The account is opened at
// the handling employee's branch, mirroring the over-the-counter flow.
func (s *AccountService) Open(ctx context.Context, employeeID uint, input *OpenAccountInput) (*models.Account, error) {
	if input.InitialDeposit.IsNegative() {
		return nil, domain.ErrValidation
	}

	employee, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return nil, domain.ErrPrincipalNotFound
	}

	if _, err := s.customerRepo.GetByID(ctx, input.CustomerID); err != nil {
		return nil, domain.ErrNotFound
	}

	number, err := generateAccountNumber()
	if err != nil {
		return nil, err
	}

	account := &models.Account{
		AccountNumber: number,
		CustomerID:    input.CustomerID,
		BranchID:      employee.BranchID,
		AccountTypeID: input.AccountTypeID,
		Balance:       input.InitialDeposit,
	}

	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	log.Printf("Account opened: %s for customer %d at branch %d", number, input.CustomerID, employee.BranchID)
	return account, nil
}

// Types lists the account types available when opening an account
func (s *AccountService) Types(ctx context.Context) ([]*models.AccountType, error) {
	return s.masterRepo.ListAccountTypes(ctx)
}

// Branches lists all branches (technician lookup)
func (s *AccountService) Branches(ctx context.Context) ([]*models.Branch, error) {
	return s.masterRepo.ListBranches(ctx)
}

// generateAccountNumber produces a random 10-digit account number. The
// unique index on accounts.account_number rejects the rare collision.
func generateAccountNumber() (string, error) {
	max := big.NewInt(1_000_000_000)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("1%09d", n), nil
}
