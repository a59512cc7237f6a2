package handlers

import (
	"errors"
	"log"
	"strconv"
	"strings"

	"corebank/internal/adapters/http/middleware"
	"corebank/internal/core/domain"
	"corebank/internal/core/services"
	"corebank/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// LoanHandler handles loan request, lookup and decision endpoints
type LoanHandler struct {
	loanService *services.LoanService
}

// NewLoanHandler creates a new loan handler
func NewLoanHandler(loanService *services.LoanService) *LoanHandler {
	return &LoanHandler{loanService: loanService}
}

// RequestLoanRequest represents a customer loan request body
type RequestLoanRequest struct {
	LoanType uint            `json:"loanType"`
	Amount   decimal.Decimal `json:"amount"`
	Duration int             `json:"duration"`
}

// Request handles a customer loan request
// @Summary Request a loan
// @Tags Loans
// @Accept json
// @Produce json
// @Param body body RequestLoanRequest true "Loan request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Security BearerAuth
// @Router /loans/request [post]
func (h *LoanHandler) Request(c *fiber.Ctx) error {
	var req RequestLoanRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	customerID, _ := c.Locals(middleware.LocalUserID).(uint)

	input := &services.RequestLoanInput{
		LoanTypeID: req.LoanType,
		Amount:     req.Amount,
		TermMonths: req.Duration,
	}

	loan, err := h.loanService.Request(c.Context(), customerID, input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			return response.BadRequest(c, "Amount and duration must be positive")
		case errors.Is(err, domain.ErrLoanTypeNotFound):
			return response.BadRequest(c, "Unknown loan type")
		case errors.Is(err, domain.ErrAccountNotFound):
			return response.BadRequest(c, "Customer has no account to attach the loan to")
		default:
			log.Printf("Loan request failed: %v", err)
			return response.InternalServerError(c, "Failed to submit loan request")
		}
	}

	return response.Created(c, "Loan request submitted successfully", fiber.Map{
		"loanId": loan.ID,
	})
}

// RequestByEmployeeRequest represents an employee-initiated loan request body
type RequestByEmployeeRequest struct {
	CustomerAccountNumber string          `json:"customerAccountNumber"`
	TypeID                uint            `json:"typeId"`
	LoanAmount            decimal.Decimal `json:"loanAmount"`
	LoanTerm              int             `json:"loanTerm"`
}

// RequestByEmployee handles an employee filing a loan for a customer
// @Summary Request a loan on behalf of a customer
// @Tags Loans
// @Accept json
// @Produce json
// @Param body body RequestByEmployeeRequest true "Loan request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /loans/request-by-employee [post]
func (h *LoanHandler) RequestByEmployee(c *fiber.Ctx) error {
	var req RequestByEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.CustomerAccountNumber == "" {
		return response.BadRequest(c, "Customer account number is required")
	}

	input := &services.RequestByEmployeeInput{
		CustomerAccountNumber: strings.TrimSpace(req.CustomerAccountNumber),
		LoanTypeID:            req.TypeID,
		Amount:                req.LoanAmount,
		TermMonths:            req.LoanTerm,
	}

	loan, err := h.loanService.RequestByEmployee(c.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			return response.BadRequest(c, "Amount and term must be positive")
		case errors.Is(err, domain.ErrAccountNotFound):
			return response.NotFound(c, "Customer account not found")
		case errors.Is(err, domain.ErrLoanTypeNotFound):
			return response.BadRequest(c, "Unknown loan type")
		default:
			log.Printf("Employee loan request failed: %v", err)
			return response.InternalServerError(c, "Failed to submit loan request")
		}
	}

	return response.Created(c, "Loan application submitted successfully", fiber.Map{
		"loanId": loan.ID,
	})
}

// List handles listing the caller's loans
// @Summary List own loans
// @Tags Loans
// @Produce json
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /loans [get]
func (h *LoanHandler) List(c *fiber.Ctx) error {
	customerID, _ := c.Locals(middleware.LocalUserID).(uint)

	loans, err := h.loanService.ListByCustomer(c.Context(), customerID)
	if err != nil {
		log.Printf("Loan listing failed: %v", err)
		return response.InternalServerError(c, "Failed to fetch loans")
	}

	return response.Success(c, "", loans)
}

// Details handles fetching one of the caller's loans
// @Summary Loan details
// @Tags Loans
// @Produce json
// @Param id path int true "Loan ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /loans/{id} [get]
func (h *LoanHandler) Details(c *fiber.Ctx) error {
	loanID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid loan ID")
	}

	customerID, _ := c.Locals(middleware.LocalUserID).(uint)

	loan, err := h.loanService.Details(c.Context(), customerID, uint(loanID))
	if err != nil {
		if errors.Is(err, domain.ErrLoanNotFound) {
			return response.NotFound(c, "No loan found with this ID")
		}
		log.Printf("Loan details lookup failed: %v", err)
		return response.InternalServerError(c, "Failed to fetch loan details")
	}

	return response.Success(c, "", loan)
}

// Pending handles the manager's pending-loan queue
// @Summary Pending loans for the manager's branch
// @Tags Loans
// @Produce json
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /loans/pending [get]
func (h *LoanHandler) Pending(c *fiber.Ctx) error {
	managerID, _ := c.Locals(middleware.LocalUserID).(uint)

	loans, err := h.loanService.PendingForManager(c.Context(), managerID)
	if err != nil {
		log.Printf("Pending loans lookup failed: %v", err)
		return response.InternalServerError(c, "Failed to fetch pending loans")
	}

	return response.Success(c, "", loans)
}

// DecideRequest represents a loan decision body
type DecideRequest struct {
	NewStatus string `json:"newStatus"`
}

// Decide handles the loan approval/rejection
// @Summary Decide a pending loan
// @Description Approve or reject a pending loan of the manager's own branch
// @Tags Loans
// @Accept json
// @Produce json
// @Param id path int true "Loan ID"
// @Param body body DecideRequest true "Decision"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Security BearerAuth
// @Router /loans/{id}/decision [put]
func (h *LoanHandler) Decide(c *fiber.Ctx) error {
	loanID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid loan ID")
	}

	var req DecideRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	newStatus := strings.ToUpper(strings.TrimSpace(req.NewStatus))
	managerID, _ := c.Locals(middleware.LocalUserID).(uint)

	if err := h.loanService.Decide(c.Context(), uint(loanID), newStatus, managerID); err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			return response.BadRequest(c, "Status must be APPROVED or REJECTED")
		case errors.Is(err, domain.ErrLoanNotFound):
			return response.NotFound(c, "Loan not found")
		case errors.Is(err, domain.ErrWrongBranch):
			return response.Forbidden(c, "Loan belongs to a different branch")
		case errors.Is(err, domain.ErrLoanAlreadyDecided):
			return response.Conflict(c, "Loan has already been decided")
		default:
			log.Printf("Loan decision failed: %v", err)
			return response.InternalServerError(c, "Failed to update loan status")
		}
	}

	return response.Success(c, "Loan status updated", fiber.Map{
		"loanId": loanID,
		"status": newStatus,
	})
}

// Types handles listing loan types
// @Summary List loan types
// @Tags Loans
// @Produce json
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /loans/types [get]
func (h *LoanHandler) Types(c *fiber.Ctx) error {
	types, err := h.loanService.ListTypes(c.Context())
	if err != nil {
		log.Printf("Loan types lookup failed: %v", err)
		return response.InternalServerError(c, "Failed to fetch loan types")
	}

	return response.Success(c, "", types)
}
