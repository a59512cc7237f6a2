package services_test

import (
	"context"
	"sync"
	"time"

	"corebank/internal/adapters/persistence/models"
	"corebank/internal/core/domain"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// In-memory repository fakes. The account and loan fakes serialize
// mutation behind a mutex and enforce the same sufficiency / conditional
// update semantics as the MySQL implementations, so the concurrency
// tests exercise real interleavings.

type fakeEmployeeRepo struct {
	mu        sync.Mutex
	employees map[uint]*models.Employee
}

func newFakeEmployeeRepo(employees ...*models.Employee) *fakeEmployeeRepo {
	r := &fakeEmployeeRepo{employees: make(map[uint]*models.Employee)}
	for _, e := range employees {
		r.employees[e.ID] = e
	}
	return r
}

func (r *fakeEmployeeRepo) GetByID(_ context.Context, id uint) (*models.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.employees[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return e, nil
}

func (r *fakeEmployeeRepo) GetByUsername(_ context.Context, username string) (*models.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.employees {
		if e.Username == username {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeEmployeeRepo) UpdatePassword(_ context.Context, id uint, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.employees[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	e.Password = passwordHash
	return nil
}

type fakeCustomerRepo struct {
	mu        sync.Mutex
	customers map[uint]*models.Customer
}

func newFakeCustomerRepo(customers ...*models.Customer) *fakeCustomerRepo {
	r := &fakeCustomerRepo{customers: make(map[uint]*models.Customer)}
	for _, c := range customers {
		r.customers[c.ID] = c
	}
	return r
}

func (r *fakeCustomerRepo) GetByID(_ context.Context, id uint) (*models.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.customers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *fakeCustomerRepo) GetByUsername(_ context.Context, username string) (*models.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.customers {
		if c.Username == username {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCustomerRepo) UpdatePassword(_ context.Context, id uint, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.customers[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.Password = passwordHash
	return nil
}

type fakeAccountRepo struct {
	mu       sync.Mutex
	accounts map[string]*models.Account
	nextID   uint
}

func newFakeAccountRepo(accounts ...*models.Account) *fakeAccountRepo {
	r := &fakeAccountRepo{accounts: make(map[string]*models.Account), nextID: 1}
	for _, a := range accounts {
		if a.ID == 0 {
			a.ID = r.nextID
		}
		if a.ID >= r.nextID {
			r.nextID = a.ID + 1
		}
		r.accounts[a.AccountNumber] = a
	}
	return r
}

func (r *fakeAccountRepo) GetByNumber(_ context.Context, accountNumber string) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[accountNumber]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	copied := *a
	return &copied, nil
}

func (r *fakeAccountRepo) ListByCustomer(_ context.Context, customerID uint) ([]*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Account
	for _, a := range r.accounts {
		if a.CustomerID == customerID {
			copied := *a
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeAccountRepo) Create(_ context.Context, account *models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	account.ID = r.nextID
	r.nextID++
	r.accounts[account.AccountNumber] = account
	return nil
}

func (r *fakeAccountRepo) ExecuteTransfer(_ context.Context, fromNumber, toNumber string, amount decimal.Decimal, record *models.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	from, ok := r.accounts[fromNumber]
	if !ok {
		return domain.ErrAccountNotFound
	}
	to, ok := r.accounts[toNumber]
	if !ok {
		return domain.ErrAccountNotFound
	}
	if from.Balance.LessThan(amount) {
		return domain.ErrInsufficientFunds
	}

	from.Balance = from.Balance.Sub(amount)
	to.Balance = to.Balance.Add(amount)
	record.FromAccountID = from.ID
	record.ToAccountID = to.ID
	return nil
}

func (r *fakeAccountRepo) balance(accountNumber string) decimal.Decimal {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.accounts[accountNumber].Balance
}

type fakeTransactionRepo struct {
	mu      sync.Mutex
	records []*models.Transaction
}

func (r *fakeTransactionRepo) add(records ...*models.Transaction) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, records...)
}

func (r *fakeTransactionRepo) RecentByAccountIDs(_ context.Context, accountIDs []uint, limit int) ([]*models.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make(map[uint]bool, len(accountIDs))
	for _, id := range accountIDs {
		ids[id] = true
	}
	var out []*models.Transaction
	for _, tx := range r.records {
		if ids[tx.FromAccountID] || ids[tx.ToAccountID] {
			out = append(out, tx)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *fakeTransactionRepo) RecentByBranch(_ context.Context, branchID uint, limit int) ([]*models.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.records
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeLoanRepo struct {
	mu     sync.Mutex
	loans  map[uint]*models.Loan
	nextID uint
}

func newFakeLoanRepo(loans ...*models.Loan) *fakeLoanRepo {
	r := &fakeLoanRepo{loans: make(map[uint]*models.Loan), nextID: 1}
	for _, l := range loans {
		if l.ID == 0 {
			l.ID = r.nextID
		}
		if l.ID >= r.nextID {
			r.nextID = l.ID + 1
		}
		r.loans[l.ID] = l
	}
	return r
}

func (r *fakeLoanRepo) Create(_ context.Context, loan *models.Loan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	loan.ID = r.nextID
	r.nextID++
	loan.RequestedAt = time.Now()
	r.loans[loan.ID] = loan
	return nil
}

func (r *fakeLoanRepo) GetByID(_ context.Context, id uint) (*models.Loan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.loans[id]
	if !ok {
		return nil, domain.ErrLoanNotFound
	}
	copied := *l
	return &copied, nil
}

func (r *fakeLoanRepo) ListByCustomer(_ context.Context, customerID uint) ([]*models.Loan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Loan
	for _, l := range r.loans {
		if l.CustomerID == customerID {
			copied := *l
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeLoanRepo) ListPendingByBranch(_ context.Context, branchID uint) ([]*models.Loan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Loan
	for _, l := range r.loans {
		if l.BranchID == branchID && l.Status == models.LoanStatusPending {
			copied := *l
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeLoanRepo) ListPendingOlderThan(_ context.Context, cutoff time.Time) ([]*models.Loan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Loan
	for _, l := range r.loans {
		if l.Status == models.LoanStatusPending && l.RequestedAt.Before(cutoff) {
			copied := *l
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeLoanRepo) DecideIfPending(_ context.Context, loanID uint, newStatus string, decidedBy uint, decidedAt time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.loans[loanID]
	if !ok || l.Status != models.LoanStatusPending {
		return 0, nil
	}
	l.Status = newStatus
	l.DecidedByID = &decidedBy
	l.DecidedAt = &decidedAt
	return 1, nil
}

type fakeMasterRepo struct {
	loanTypes    map[uint]*models.LoanType
	accountTypes []*models.AccountType
	branches     []*models.Branch
}

func newFakeMasterRepo(loanTypes ...*models.LoanType) *fakeMasterRepo {
	r := &fakeMasterRepo{loanTypes: make(map[uint]*models.LoanType)}
	for _, lt := range loanTypes {
		r.loanTypes[lt.ID] = lt
	}
	return r
}

func (r *fakeMasterRepo) GetLoanType(_ context.Context, id uint) (*models.LoanType, error) {
	lt, ok := r.loanTypes[id]
	if !ok {
		return nil, domain.ErrLoanTypeNotFound
	}
	return lt, nil
}

func (r *fakeMasterRepo) ListLoanTypes(_ context.Context) ([]*models.LoanType, error) {
	var out []*models.LoanType
	for _, lt := range r.loanTypes {
		out = append(out, lt)
	}
	return out, nil
}

func (r *fakeMasterRepo) ListAccountTypes(_ context.Context) ([]*models.AccountType, error) {
	return r.accountTypes, nil
}

func (r *fakeMasterRepo) ListBranches(_ context.Context) ([]*models.Branch, error) {
	return r.branches, nil
}
