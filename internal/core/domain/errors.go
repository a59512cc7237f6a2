package domain

import "errors"

// Business error taxonomy. Only the taxonomy kind and a human-readable
// message cross the HTTP boundary; raw storage errors are logged
// server-side and never surfaced.
var (
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("resource not found")
	ErrValidation         = errors.New("invalid input")
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// Authentication errors. Missing user and wrong password are deliberately
// indistinguishable to prevent username enumeration.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPrincipalNotFound  = errors.New("principal not found")
)

// Ledger errors
var (
	ErrAccountNotFound   = errors.New("account not found")
	ErrAccountNotOwned   = errors.New("account does not belong to customer")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrSelfTransfer      = errors.New("cannot transfer to the same account")
)

// Loan workflow errors
var (
	ErrLoanNotFound       = errors.New("loan not found")
	ErrLoanTypeNotFound   = errors.New("loan type not found")
	ErrLoanAlreadyDecided = errors.New("loan already decided")
	ErrWrongBranch        = errors.New("loan belongs to a different branch")
)
