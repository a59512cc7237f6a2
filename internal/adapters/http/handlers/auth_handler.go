package handlers

import (
	"errors"
	"strings"

	"corebank/internal/adapters/http/middleware"
	"corebank/internal/core/domain"
	"corebank/internal/core/services"
	"corebank/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// LoginRequest represents login request body
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles user login
// @Summary Login
// @Description Authenticate an employee or customer and return a session token
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Login credentials"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Username == "" {
		return response.BadRequest(c, "Username is required")
	}
	if req.Password == "" {
		return response.BadRequest(c, "Password is required")
	}

	input := &services.LoginInput{
		Username: strings.TrimSpace(req.Username),
		Password: req.Password,
	}

	result, err := h.authService.Login(c.Context(), input)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			// One generic message for unknown user and wrong password
			return response.BadRequest(c, "Invalid credentials")
		}
		return response.InternalServerError(c, "Login failed")
	}

	return response.Success(c, "Login successful", fiber.Map{
		"token":    result.Token,
		"userType": result.UserType,
	})
}

// ChangePasswordRequest represents change-password request body
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// ChangePassword handles password change for the logged-in principal
// @Summary Change password
// @Description Change the current principal's password
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body ChangePasswordRequest true "Passwords"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Security BearerAuth
// @Router /auth/change-password [post]
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.OldPassword == "" || req.NewPassword == "" {
		return response.BadRequest(c, "Old and new passwords are required")
	}

	userID, _ := c.Locals(middleware.LocalUserID).(uint)
	kind, _ := c.Locals(middleware.LocalKind).(string)

	input := &services.ChangePasswordInput{
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	}

	err := h.authService.ChangePassword(c.Context(), userID, domain.PrincipalKind(kind), input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			return response.BadRequest(c, "New password must be at least 8 characters")
		case errors.Is(err, domain.ErrInvalidCredentials):
			return response.BadRequest(c, "Invalid current password")
		case errors.Is(err, domain.ErrPrincipalNotFound):
			return response.Unauthorized(c, "Authentication required")
		default:
			return response.InternalServerError(c, "Failed to change password")
		}
	}

	return response.Success(c, "Password updated successfully", nil)
}
