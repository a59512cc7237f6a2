package handlers

import (
	"errors"
	"log"

	"corebank/internal/adapters/http/middleware"
	"corebank/internal/core/domain"
	"corebank/internal/core/services"
	"corebank/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// AccountHandler handles account lookup and opening endpoints
type AccountHandler struct {
	accountService *services.AccountService
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(accountService *services.AccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// Summary handles the customer's account summary
// @Summary Own account summary
// @Tags Accounts
// @Produce json
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /accounts/summary [get]
func (h *AccountHandler) Summary(c *fiber.Ctx) error {
	customerID, _ := c.Locals(middleware.LocalUserID).(uint)

	summaries, err := h.accountService.Summary(c.Context(), customerID)
	if err != nil {
		log.Printf("Account summary lookup failed: %v", err)
		return response.InternalServerError(c, "Failed to fetch account summary")
	}

	if len(summaries) == 0 {
		return response.NotFound(c, "No accounts found for this customer")
	}

	return response.Success(c, "", fiber.Map{
		"customerId": customerID,
		"accounts":   summaries,
	})
}

// OpenAccountRequest represents account opening request body
type OpenAccountRequest struct {
	CustomerID     uint            `json:"customerId"`
	AccountTypeID  uint            `json:"accountTypeId"`
	InitialDeposit decimal.Decimal `json:"initialDeposit"`
}

// Open handles employee-initiated account opening
// @Summary Open an account
// @Description Open a new account for a customer at the employee's branch
// @Tags Accounts
// @Accept json
// @Produce json
// @Param body body OpenAccountRequest true "Account details"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /accounts/open [post]
func (h *AccountHandler) Open(c *fiber.Ctx) error {
	var req OpenAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.CustomerID == 0 || req.AccountTypeID == 0 {
		return response.BadRequest(c, "Customer and account type are required")
	}

	employeeID, _ := c.Locals(middleware.LocalUserID).(uint)

	input := &services.OpenAccountInput{
		CustomerID:     req.CustomerID,
		AccountTypeID:  req.AccountTypeID,
		InitialDeposit: req.InitialDeposit,
	}

	account, err := h.accountService.Open(c.Context(), employeeID, input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			return response.BadRequest(c, "Initial deposit cannot be negative")
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, "Customer not found")
		case errors.Is(err, domain.ErrPrincipalNotFound):
			return response.Unauthorized(c, "Authentication required")
		default:
			log.Printf("Account opening failed: %v", err)
			return response.InternalServerError(c, "Failed to open account")
		}
	}

	return response.Created(c, "Account opened successfully", fiber.Map{
		"accountNumber": account.AccountNumber,
	})
}

// Types handles listing account types
// @Summary List account types
// @Tags Accounts
// @Produce json
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /accounts/types [get]
func (h *AccountHandler) Types(c *fiber.Ctx) error {
	types, err := h.accountService.Types(c.Context())
	if err != nil {
		log.Printf("Account types lookup failed: %v", err)
		return response.InternalServerError(c, "Failed to fetch account types")
	}

	return response.Success(c, "", types)
}

// Branches handles the technician branch listing
// @Summary List branches
// @Tags Branches
// @Produce json
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /branches [get]
func (h *AccountHandler) Branches(c *fiber.Ctx) error {
	branches, err := h.accountService.Branches(c.Context())
	if err != nil {
		log.Printf("Branch listing failed: %v", err)
		return response.InternalServerError(c, "Failed to fetch branches")
	}

	return response.Success(c, "", branches)
}
