package handlers

import (
	"errors"
	"log"
	"strconv"

	"corebank/internal/adapters/http/middleware"
	"corebank/internal/core/domain"
	"corebank/internal/core/services"
	"corebank/internal/pkg/pagination"
	"corebank/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// TransactionHandler handles money movement and ledger history endpoints
type TransactionHandler struct {
	transferService *services.TransferService
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(transferService *services.TransferService) *TransactionHandler {
	return &TransactionHandler{transferService: transferService}
}

// TransferRequest represents transfer request body. The debiting
// customer is taken from the session token, never from the body.
type TransferRequest struct {
	FromAccount        string          `json:"fromAccount"`
	BeneficiaryAccount string          `json:"beneficiaryAccount"`
	BeneficiaryName    string          `json:"beneficiaryName"`
	Amount             decimal.Decimal `json:"amount"`
	ReceiverReference  string          `json:"receiverReference"`
	MyReference        string          `json:"myReference"`
}

// Transfer handles a funds transfer
// @Summary Transfer funds
// @Description Atomically move funds from the caller's account to a beneficiary account
// @Tags Transactions
// @Accept json
// @Produce json
// @Param body body TransferRequest true "Transfer details"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 422 {object} response.Response
// @Security BearerAuth
// @Router /transactions/transfer [post]
func (h *TransactionHandler) Transfer(c *fiber.Ctx) error {
	var req TransferRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.FromAccount == "" || req.BeneficiaryAccount == "" {
		return response.BadRequest(c, "From and beneficiary accounts are required")
	}
	if req.BeneficiaryName == "" {
		return response.BadRequest(c, "Beneficiary name is required")
	}

	customerID, _ := c.Locals(middleware.LocalUserID).(uint)

	input := &services.TransferInput{
		FromAccount:        req.FromAccount,
		BeneficiaryAccount: req.BeneficiaryAccount,
		BeneficiaryName:    req.BeneficiaryName,
		Amount:             req.Amount,
		ReceiverReference:  req.ReceiverReference,
		MyReference:        req.MyReference,
	}

	record, err := h.transferService.Transfer(c.Context(), customerID, input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			return response.BadRequest(c, "Amount must be positive")
		case errors.Is(err, domain.ErrSelfTransfer):
			return response.BadRequest(c, "Cannot transfer to the same account")
		case errors.Is(err, domain.ErrAccountNotOwned):
			return response.Forbidden(c, "Account does not belong to you")
		case errors.Is(err, domain.ErrAccountNotFound):
			return response.NotFound(c, "Account not found")
		case errors.Is(err, domain.ErrInsufficientFunds):
			return response.UnprocessableEntity(c, "Insufficient funds")
		case errors.Is(err, domain.ErrStorageUnavailable):
			return response.ServiceUnavailable(c, "Service temporarily unavailable, please retry")
		default:
			log.Printf("Transfer failed: %v", err)
			return response.InternalServerError(c, "Transaction failed")
		}
	}

	return response.Success(c, "Transaction successful", fiber.Map{
		"reference": record.Reference,
	})
}

// RecentForEmployee lists recent transactions for the employee's branch
// @Summary Recent branch transactions
// @Tags Transactions
// @Produce json
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /transactions/recent [get]
func (h *TransactionHandler) RecentForEmployee(c *fiber.Ctx) error {
	employeeID, _ := c.Locals(middleware.LocalUserID).(uint)

	transactions, err := h.transferService.RecentForEmployee(c.Context(), employeeID, pagination.Limit(c))
	if err != nil {
		log.Printf("Recent transactions lookup failed: %v", err)
		return response.InternalServerError(c, "Failed to fetch transactions")
	}

	return response.Success(c, "", transactions)
}

// RecentByBranch lists recent transactions for a branch (manager view)
// @Summary Recent transactions by branch
// @Tags Transactions
// @Produce json
// @Param branchId path int true "Branch ID"
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /transactions/recent/branch/{branchId} [get]
func (h *TransactionHandler) RecentByBranch(c *fiber.Ctx) error {
	branchID, err := strconv.ParseUint(c.Params("branchId"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid branch ID")
	}

	transactions, err := h.transferService.RecentByBranch(c.Context(), uint(branchID), pagination.Limit(c))
	if err != nil {
		log.Printf("Branch transactions lookup failed: %v", err)
		return response.InternalServerError(c, "Failed to fetch transactions")
	}

	return response.Success(c, "", transactions)
}

// RecentByCustomer lists recent transactions across the caller's accounts
// @Summary Recent own transactions
// @Tags Transactions
// @Produce json
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /transactions/recent/mine [get]
func (h *TransactionHandler) RecentByCustomer(c *fiber.Ctx) error {
	customerID, _ := c.Locals(middleware.LocalUserID).(uint)

	transactions, err := h.transferService.RecentByCustomer(c.Context(), customerID, pagination.Limit(c))
	if err != nil {
		log.Printf("Customer transactions lookup failed: %v", err)
		return response.InternalServerError(c, "Failed to fetch transactions")
	}

	return response.Success(c, "", transactions)
}

// RecentByAccount lists recent transactions for one of the caller's accounts
// @Summary Recent transactions for an account
// @Tags Transactions
// @Produce json
// @Param accountNumber path string true "Account number"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Security BearerAuth
// @Router /transactions/recent/account/{accountNumber} [get]
func (h *TransactionHandler) RecentByAccount(c *fiber.Ctx) error {
	customerID, _ := c.Locals(middleware.LocalUserID).(uint)
	accountNumber := c.Params("accountNumber")

	transactions, err := h.transferService.RecentByAccount(c.Context(), customerID, accountNumber, pagination.Limit(c))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAccountNotFound):
			return response.NotFound(c, "Account not found")
		case errors.Is(err, domain.ErrAccountNotOwned):
			return response.Forbidden(c, "Account does not belong to you")
		default:
			log.Printf("Account transactions lookup failed: %v", err)
			return response.InternalServerError(c, "Failed to fetch transactions")
		}
	}

	return response.Success(c, "", transactions)
}
