package services

import (
	"context"
	"errors"
	"log"

	"corebank/internal/adapters/persistence/models"
	"corebank/internal/adapters/persistence/repositories"
	"corebank/internal/core/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransferService executes funds transfers against the ledger. It is
// the sole writer of account balances.
type TransferService struct {
	accountRepo     repositories.AccountRepository
	transactionRepo repositories.TransactionRepository
	employeeRepo    repositories.EmployeeRepository
}

// NewTransferService creates a new transfer service
func NewTransferService(
	accountRepo repositories.AccountRepository,
	transactionRepo repositories.TransactionRepository,
	employeeRepo repositories.EmployeeRepository,
) *TransferService {
	return &TransferService{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		employeeRepo:    employeeRepo,
	}
}

// TransferInput represents transfer input. The debiting customer comes
// from the session token, never from the body.
type TransferInput struct {
	FromAccount        string          `json:"fromAccount" validate:"required"`
	BeneficiaryAccount string          `json:"beneficiaryAccount" validate:"required"`
	BeneficiaryName    string          `json:"beneficiaryName" validate:"required"`
	Amount             decimal.Decimal `json:"amount" validate:"required"`
	ReceiverReference  string          `json:"receiverReference"`
	MyReference        string          `json:"myReference"`
}

// Transfer moves funds between two accounts as a single atomic unit:
// debit, credit and the ledger record all commit together or not at all.
func (s *TransferService) Transfer(ctx context.Context, customerID uint, input *TransferInput) (*models.Transaction, error) {
	if !input.Amount.IsPositive() {
		return nil, domain.ErrValidation
	}
	if input.FromAccount == input.BeneficiaryAccount {
		return nil, domain.ErrSelfTransfer
	}

	// Ownership: a customer may only debit their own account
	from, err := s.accountRepo.GetByNumber(ctx, input.FromAccount)
	if err != nil {
		return nil, s.mapStorageErr(err)
	}
	if from.CustomerID != customerID {
		return nil, domain.ErrAccountNotOwned
	}

	record := &models.Transaction{
		Reference:         uuid.NewString(),
		Amount:            input.Amount,
		BeneficiaryName:   input.BeneficiaryName,
		MyReference:       input.MyReference,
		ReceiverReference: input.ReceiverReference,
	}

	if err := s.accountRepo.ExecuteTransfer(ctx, input.FromAccount, input.BeneficiaryAccount, input.Amount, record); err != nil {
		return nil, s.mapStorageErr(err)
	}

	log.Printf("Transfer completed: %s -> %s amount %s (ref %s)",
		input.FromAccount, input.BeneficiaryAccount, input.Amount.StringFixed(2), record.Reference)

	return record, nil
}

// RecentByCustomer lists recent ledger entries touching any of the
// customer's accounts
func (s *TransferService) RecentByCustomer(ctx context.Context, customerID uint, limit int) ([]*models.Transaction, error) {
	accounts, err := s.accountRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, s.mapStorageErr(err)
	}
	if len(accounts) == 0 {
		return nil, nil
	}

	ids := make([]uint, 0, len(accounts))
	for _, a := range accounts {
		ids = append(ids, a.ID)
	}

	return s.transactionRepo.RecentByAccountIDs(ctx, ids, limit)
}

// RecentByAccount lists recent ledger entries for one of the customer's
// accounts, rejecting accounts the customer does not own
func (s *TransferService) RecentByAccount(ctx context.Context, customerID uint, accountNumber string, limit int) ([]*models.Transaction, error) {
	account, err := s.accountRepo.GetByNumber(ctx, accountNumber)
	if err != nil {
		return nil, s.mapStorageErr(err)
	}
	if account.CustomerID != customerID {
		return nil, domain.ErrAccountNotOwned
	}

	return s.transactionRepo.RecentByAccountIDs(ctx, []uint{account.ID}, limit)
}

// RecentByBranch lists recent ledger entries debited from the branch's
// accounts (branch manager view)
func (s *TransferService) RecentByBranch(ctx context.Context, branchID uint, limit int) ([]*models.Transaction, error) {
	return s.transactionRepo.RecentByBranch(ctx, branchID, limit)
}

// RecentForEmployee lists recent ledger entries for the employee's own
// branch
func (s *TransferService) RecentForEmployee(ctx context.Context, employeeID uint, limit int) ([]*models.Transaction, error) {
	employee, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return nil, s.mapStorageErr(err)
	}
	return s.transactionRepo.RecentByBranch(ctx, employee.BranchID, limit)
}

// mapStorageErr passes business errors through and reclassifies
// cancellations as transient storage failures so callers know a retry
// is safe. The transaction boundary guarantees no half-applied transfer
// survives a timeout.
func (s *TransferService) mapStorageErr(err error) error {
	switch {
	case errors.Is(err, domain.ErrAccountNotFound),
		errors.Is(err, domain.ErrInsufficientFunds):
		return err
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return domain.ErrStorageUnavailable
	default:
		return err
	}
}
