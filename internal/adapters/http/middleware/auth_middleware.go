package middleware

import (
	"context"
	"log"
	"strings"

	"corebank/internal/config"
	"corebank/internal/core/domain"
	"corebank/internal/pkg/jwt"
	"corebank/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Locals keys set by the authentication gate
const (
	LocalUserID   = "userID"
	LocalUsername = "username"
	LocalEmail    = "email"
	LocalRole     = "role"
	LocalKind     = "kind"
)

// RoleResolver re-derives a principal's current role from storage.
// Satisfied by services.AuthService.
type RoleResolver interface {
	ResolveRole(ctx context.Context, principalID uint, kind domain.PrincipalKind) (domain.Role, error)
}

// Protected is the authentication gate. It extracts the bearer token,
// verifies it, and attaches the claims to the request context. On any
// failure the chain halts with 401 and no later gate or handler runs.
// Expired and invalid tokens are logged as distinct kinds but answered
// identically so the response leaks nothing about the validity window.
func Protected(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var accessToken string

		authHeader := c.Get("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			accessToken = strings.TrimPrefix(authHeader, "Bearer ")
		}

		if accessToken == "" {
			return response.Unauthorized(c, "Authentication required")
		}

		claims, err := jwt.Validate(accessToken, cfg.JWT.Secret)
		if err != nil {
			if err == jwt.ErrTokenExpired {
				log.Printf("Rejected expired token from %s", c.IP())
			} else {
				log.Printf("Rejected invalid token from %s", c.IP())
			}
			return response.Unauthorized(c, "Authentication required")
		}

		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalUsername, claims.Username)
		c.Locals(LocalEmail, claims.Email)
		c.Locals(LocalRole, claims.Role)
		c.Locals(LocalKind, claims.Kind)

		return c.Next()
	}
}

// RequireRole is the authorization gate. The role membership is
// re-derived from current storage state on every request; the token's
// role claim is only a hint and never authoritative, so a forged or
// stale claim cannot survive a demotion. Allowed roles are an explicit
// allow-list, never an exclusion.
func RequireRole(resolver RoleResolver, allowedRoles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals(LocalUserID).(uint)
		if !ok {
			return response.Unauthorized(c, "Authentication required")
		}

		kind, ok := c.Locals(LocalKind).(string)
		if !ok {
			return response.Unauthorized(c, "Authentication required")
		}

		role, err := resolver.ResolveRole(c.Context(), userID, domain.PrincipalKind(kind))
		if err != nil {
			log.Printf("Role resolution failed for principal %d: %v", userID, err)
			return response.Forbidden(c, "You don't have permission to access this resource")
		}

		for _, allowed := range allowedRoles {
			if role == allowed {
				// Downstream reads the authoritative role, not the claim
				c.Locals(LocalRole, role.String())
				return c.Next()
			}
		}

		return response.Forbidden(c, "You don't have permission to access this resource")
	}
}

// CustomerOnly allows only customers
func CustomerOnly(resolver RoleResolver) fiber.Handler {
	return RequireRole(resolver, domain.RoleCustomer)
}

// EmployeeOnly allows only general staff; branch managers and
// technicians are excluded
func EmployeeOnly(resolver RoleResolver) fiber.Handler {
	return RequireRole(resolver, domain.RoleEmployee)
}

// ManagerOnly allows only branch managers
func ManagerOnly(resolver RoleResolver) fiber.Handler {
	return RequireRole(resolver, domain.RoleManager)
}

// TechnicianOnly allows only technicians
func TechnicianOnly(resolver RoleResolver) fiber.Handler {
	return RequireRole(resolver, domain.RoleTechnician)
}
