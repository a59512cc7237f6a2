package services

import (
	"context"
	"log"
	"time"

	"corebank/internal/adapters/persistence/models"
	"corebank/internal/adapters/persistence/repositories"
	"corebank/internal/core/domain"

	"github.com/shopspring/decimal"
)

// LoanService governs the loan lifecycle. Loans enter PENDING on
// submission and move exactly once to APPROVED or REJECTED.
type LoanService struct {
	loanRepo     repositories.LoanRepository
	accountRepo  repositories.AccountRepository
	employeeRepo repositories.EmployeeRepository
	masterRepo   repositories.MasterRepository
}

// NewLoanService creates a new loan service
func NewLoanService(
	loanRepo repositories.LoanRepository,
	accountRepo repositories.AccountRepository,
	employeeRepo repositories.EmployeeRepository,
	masterRepo repositories.MasterRepository,
) *LoanService {
	return &LoanService{
		loanRepo:     loanRepo,
		accountRepo:  accountRepo,
		employeeRepo: employeeRepo,
		masterRepo:   masterRepo,
	}
}

// RequestLoanInput represents a customer loan request
type RequestLoanInput struct {
	LoanTypeID uint            `json:"loanType" validate:"required"`
	Amount     decimal.Decimal `json:"amount" validate:"required"`
	TermMonths int             `json:"duration" validate:"required"`
}

// Request files a loan for the calling customer. The loan's branch is
// the branch of the customer's first account; the interest rate is
// copied from the loan type at request time.
func (s *LoanService) Request(ctx context.Context, customerID uint, input *RequestLoanInput) (*models.Loan, error) {
	if !input.Amount.IsPositive() || input.TermMonths <= 0 {
		return nil, domain.ErrValidation
	}

	loanType, err := s.masterRepo.GetLoanType(ctx, input.LoanTypeID)
	if err != nil {
		return nil, err
	}

	accounts, err := s.accountRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if len(accounts) == 0 {
		return nil, domain.ErrAccountNotFound
	}

	loan := &models.Loan{
		CustomerID:   customerID,
		BranchID:     accounts[0].BranchID,
		LoanTypeID:   loanType.ID,
		Amount:       input.Amount,
		TermMonths:   input.TermMonths,
		InterestRate: loanType.InterestRate,
		Status:       models.LoanStatusPending,
	}

	if err := s.loanRepo.Create(ctx, loan); err != nil {
		return nil, err
	}

	log.Printf("Loan requested: customer %d, type %d, amount %s", customerID, loanType.ID, input.Amount.StringFixed(2))
	return loan, nil
}

// RequestByEmployeeInput represents an employee-initiated loan request
type RequestByEmployeeInput struct {
	CustomerAccountNumber string          `json:"customerAccountNumber" validate:"required"`
	LoanTypeID            uint            `json:"typeId" validate:"required"`
	Amount                decimal.Decimal `json:"loanAmount" validate:"required"`
	TermMonths            int             `json:"loanTerm" validate:"required"`
}

// RequestByEmployee files a loan on behalf of the customer owning the
// given account. The loan lands in that account's branch.
func (s *LoanService) RequestByEmployee(ctx context.Context, input *RequestByEmployeeInput) (*models.Loan, error) {
	if !input.Amount.IsPositive() || input.TermMonths <= 0 {
		return nil, domain.ErrValidation
	}

	account, err := s.accountRepo.GetByNumber(ctx, input.CustomerAccountNumber)
	if err != nil {
		return nil, err
	}

	loanType, err := s.masterRepo.GetLoanType(ctx, input.LoanTypeID)
	if err != nil {
		return nil, err
	}

	loan := &models.Loan{
		CustomerID:   account.CustomerID,
		BranchID:     account.BranchID,
		LoanTypeID:   loanType.ID,
		Amount:       input.Amount,
		TermMonths:   input.TermMonths,
		InterestRate: loanType.InterestRate,
		Status:       models.LoanStatusPending,
	}

	if err := s.loanRepo.Create(ctx, loan); err != nil {
		return nil, err
	}

	log.Printf("Loan requested by employee for customer %d (account %s)", account.CustomerID, account.AccountNumber)
	return loan, nil
}

// ListByCustomer lists the customer's own loans
func (s *LoanService) ListByCustomer(ctx context.Context, customerID uint) ([]*models.Loan, error) {
	return s.loanRepo.ListByCustomer(ctx, customerID)
}

// Details returns one loan, visible only to its owning customer. A loan
// owned by somebody else reads as not found rather than forbidden so
// loan IDs cannot be probed.
func (s *LoanService) Details(ctx context.Context, customerID, loanID uint) (*models.Loan, error) {
	loan, err := s.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if loan.CustomerID != customerID {
		return nil, domain.ErrLoanNotFound
	}
	return loan, nil
}

// PendingForManager lists the pending loans queued for the manager's
// own branch
func (s *LoanService) PendingForManager(ctx context.Context, managerID uint) ([]*models.Loan, error) {
	manager, err := s.employeeRepo.GetByID(ctx, managerID)
	if err != nil {
		return nil, domain.ErrPrincipalNotFound
	}
	return s.loanRepo.ListPendingByBranch(ctx, manager.BranchID)
}

// Decide applies the PENDING -> APPROVED|REJECTED transition. Only a
// branch manager of the loan's own branch may decide, and a loan is
// decided at most once: the conditional update loses cleanly if a
// concurrent decision commits first.
func (s *LoanService) Decide(ctx context.Context, loanID uint, newStatus string, managerID uint) error {
	if newStatus != models.LoanStatusApproved && newStatus != models.LoanStatusRejected {
		return domain.ErrValidation
	}

	loan, err := s.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		return err
	}

	manager, err := s.employeeRepo.GetByID(ctx, managerID)
	if err != nil {
		return domain.ErrPrincipalNotFound
	}
	if manager.BranchID != loan.BranchID {
		return domain.ErrWrongBranch
	}

	if loan.IsDecided() {
		return domain.ErrLoanAlreadyDecided
	}

	rows, err := s.loanRepo.DecideIfPending(ctx, loanID, newStatus, managerID, time.Now())
	if err != nil {
		return err
	}
	if rows == 0 {
		// Lost the race against a concurrent decision
		return domain.ErrLoanAlreadyDecided
	}

	log.Printf("Loan %d decided: %s (by manager %d)", loanID, newStatus, managerID)
	return nil
}

// ListTypes lists active loan types
func (s *LoanService) ListTypes(ctx context.Context) ([]*models.LoanType, error) {
	return s.masterRepo.ListLoanTypes(ctx)
}
