package repositories

import (
	"context"
	"time"

	"corebank/internal/adapters/persistence/models"

	"github.com/shopspring/decimal"
)

// EmployeeRepository defines employee credential/identity access
type EmployeeRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Employee, error)
	GetByUsername(ctx context.Context, username string) (*models.Employee, error)
	UpdatePassword(ctx context.Context, id uint, passwordHash string) error
}

// CustomerRepository defines customer credential/identity access
type CustomerRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Customer, error)
	GetByUsername(ctx context.Context, username string) (*models.Customer, error)
	UpdatePassword(ctx context.Context, id uint, passwordHash string) error
}

// AccountRepository owns account rows and is the single entry point for
// balance mutation. ExecuteTransfer is the atomic debit+credit+record
// unit of the ledger.
type AccountRepository interface {
	GetByNumber(ctx context.Context, accountNumber string) (*models.Account, error)
	ListByCustomer(ctx context.Context, customerID uint) ([]*models.Account, error)
	Create(ctx context.Context, account *models.Account) error

	// ExecuteTransfer moves amount between the two accounts and appends
	// the transaction record as one atomic unit. Implementations must
	// serialize concurrent transfers touching the same account so the
	// sufficiency check cannot pass against a stale balance. Returns
	// domain.ErrAccountNotFound or domain.ErrInsufficientFunds with no
	// partial state written.
	ExecuteTransfer(ctx context.Context, fromNumber, toNumber string, amount decimal.Decimal, record *models.Transaction) error
}

// TransactionRepository reads the append-only ledger history
type TransactionRepository interface {
	RecentByAccountIDs(ctx context.Context, accountIDs []uint, limit int) ([]*models.Transaction, error)
	RecentByBranch(ctx context.Context, branchID uint, limit int) ([]*models.Transaction, error)
}

// LoanRepository defines loan lifecycle access
type LoanRepository interface {
	Create(ctx context.Context, loan *models.Loan) error
	GetByID(ctx context.Context, id uint) (*models.Loan, error)
	ListByCustomer(ctx context.Context, customerID uint) ([]*models.Loan, error)
	ListPendingByBranch(ctx context.Context, branchID uint) ([]*models.Loan, error)
	ListPendingOlderThan(ctx context.Context, cutoff time.Time) ([]*models.Loan, error)

	// DecideIfPending performs the conditional status transition: the
	// update applies only while the row is still PENDING. Returns the
	// number of rows affected so callers can detect a lost race.
	DecideIfPending(ctx context.Context, loanID uint, newStatus string, decidedBy uint, decidedAt time.Time) (int64, error)
}

// MasterRepository reads master data (positions, account types, loan
// types, branches)
type MasterRepository interface {
	GetLoanType(ctx context.Context, id uint) (*models.LoanType, error)
	ListLoanTypes(ctx context.Context) ([]*models.LoanType, error)
	ListAccountTypes(ctx context.Context) ([]*models.AccountType, error)
	ListBranches(ctx context.Context) ([]*models.Branch, error)
}
