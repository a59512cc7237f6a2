package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ============================================================
// Master tables
// ============================================================

// Branch represents a bank branch. Branches are referenced by employees
// and accounts, never owned by them.
type Branch struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"size:100;not null" json:"name"`
	Address       string    `gorm:"size:255" json:"address"`
	ContactNumber string    `gorm:"size:30" json:"contact_number"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Branch) TableName() string {
	return "branches"
}

// Position represents an employee position (master)
type Position struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:50;uniqueIndex;not null" json:"name"`
}

func (Position) TableName() string {
	return "positions"
}

// AccountType represents an account type (master)
type AccountType struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:50;uniqueIndex;not null" json:"name"`
}

func (AccountType) TableName() string {
	return "account_types"
}

// LoanType represents a loan product (master)
type LoanType struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	Name         string          `gorm:"size:100;uniqueIndex;not null" json:"name"`
	InterestRate decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"interest_rate"`
	IsActive     bool            `gorm:"default:true" json:"is_active"`
}

func (LoanType) TableName() string {
	return "loan_types"
}

// ============================================================
// Principals
// ============================================================

// Employee represents the employees table. An employee's role is derived
// from the joined position name, never stored.
type Employee struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Username   string         `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Email      string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password   string         `gorm:"size:255;not null" json:"-"`
	FirstName  string         `gorm:"size:50" json:"first_name"`
	LastName   string         `gorm:"size:50" json:"last_name"`
	PositionID uint           `gorm:"index;not null" json:"position_id"`
	BranchID   uint           `gorm:"index;not null" json:"branch_id"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	Position Position `gorm:"foreignKey:PositionID" json:"-"`
	Branch   Branch   `gorm:"foreignKey:BranchID" json:"-"`
}

func (Employee) TableName() string {
	return "employees"
}

// Customer represents the customers table
type Customer struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Username  string         `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Email     string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password  string         `gorm:"size:255;not null" json:"-"`
	FirstName string         `gorm:"size:50" json:"first_name"`
	LastName  string         `gorm:"size:50" json:"last_name"`
	Address   string         `gorm:"size:255" json:"address"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Customer) TableName() string {
	return "customers"
}

// ============================================================
// Ledger
// ============================================================

// Account represents the accounts table. Balance is a fixed-point
// monetary value and must never go negative from an outbound transfer.
type Account struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	AccountNumber string          `gorm:"uniqueIndex;size:20;not null" json:"account_number"`
	CustomerID    uint            `gorm:"index;not null" json:"customer_id"`
	BranchID      uint            `gorm:"index;not null" json:"branch_id"`
	AccountTypeID uint            `gorm:"not null" json:"account_type_id"`
	Balance       decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"balance"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	AccountType AccountType `gorm:"foreignKey:AccountTypeID" json:"-"`
}

func (Account) TableName() string {
	return "accounts"
}

// Transaction represents an append-only ledger entry. Rows are created
// only as the side effect of a successful transfer and never updated.
type Transaction struct {
	ID                uint            `gorm:"primaryKey" json:"id"`
	Reference         string          `gorm:"uniqueIndex;size:36;not null" json:"reference"`
	FromAccountID     uint            `gorm:"index;not null" json:"from_account_id"`
	ToAccountID       uint            `gorm:"index;not null" json:"to_account_id"`
	Amount            decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	BeneficiaryName   string          `gorm:"size:100" json:"beneficiary_name"`
	MyReference       string          `gorm:"size:100" json:"my_reference"`
	ReceiverReference string          `gorm:"size:100" json:"receiver_reference"`
	CreatedAt         time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (Transaction) TableName() string {
	return "transactions"
}

// ============================================================
// Loans
// ============================================================

// Loan statuses. PENDING is the only non-terminal state.
const (
	LoanStatusPending  = "PENDING"
	LoanStatusApproved = "APPROVED"
	LoanStatusRejected = "REJECTED"
)

// Loan represents the loans table. Rows are mutated only by the status
// transition and never deleted.
type Loan struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	CustomerID   uint            `gorm:"index;not null" json:"customer_id"`
	BranchID     uint            `gorm:"index;not null" json:"branch_id"`
	LoanTypeID   uint            `gorm:"not null" json:"loan_type_id"`
	Amount       decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	TermMonths   int             `gorm:"not null" json:"term_months"`
	InterestRate decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"interest_rate"`
	Status       string          `gorm:"size:20;not null;default:'PENDING';index" json:"status"`
	RequestedAt  time.Time       `gorm:"autoCreateTime" json:"requested_at"`
	DecidedAt    *time.Time      `json:"decided_at,omitempty"`
	DecidedByID  *uint           `json:"decided_by_id,omitempty"`

	LoanType LoanType `gorm:"foreignKey:LoanTypeID" json:"-"`
}

func (Loan) TableName() string {
	return "loans"
}

// IsDecided reports whether the loan has reached a terminal status
func (l *Loan) IsDecided() bool {
	return l.Status != LoanStatusPending
}

// ============================================================
// DTOs
// ============================================================

// AccountSummary is the customer-facing view of one account
type AccountSummary struct {
	AccountNumber string          `json:"account_number"`
	AccountType   string          `json:"account_type"`
	BranchID      uint            `json:"branch_id"`
	Balance       decimal.Decimal `json:"balance"`
}

// ToSummary builds the customer-facing view of the account
func (a *Account) ToSummary() *AccountSummary {
	return &AccountSummary{
		AccountNumber: a.AccountNumber,
		AccountType:   a.AccountType.Name,
		BranchID:      a.BranchID,
		Balance:       a.Balance,
	}
}

// AutoMigrate creates or updates all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Branch{},
		&Position{},
		&AccountType{},
		&LoanType{},
		&Employee{},
		&Customer{},
		&Account{},
		&Transaction{},
		&Loan{},
	)
}
