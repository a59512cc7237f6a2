package services

import (
	"context"
	"errors"
	"log"

	"corebank/internal/adapters/persistence/models"
	"corebank/internal/adapters/persistence/repositories"
	"corebank/internal/config"
	"corebank/internal/core/domain"
	"corebank/internal/pkg/jwt"
	"corebank/internal/pkg/password"

	"gorm.io/gorm"
)

// AuthService authenticates principals and derives their role. It is
// also the authoritative role resolver used by the role gates: the role
// embedded in a session token is a hint, the database is the truth.
type AuthService struct {
	employeeRepo repositories.EmployeeRepository
	customerRepo repositories.CustomerRepository
	cfg          *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(
	employeeRepo repositories.EmployeeRepository,
	customerRepo repositories.CustomerRepository,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		employeeRepo: employeeRepo,
		customerRepo: customerRepo,
		cfg:          cfg,
	}
}

// LoginInput represents login input
type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResult represents a successful login
type LoginResult struct {
	Token    string      `json:"token"`
	UserType domain.Role `json:"userType"`
}

// Login authenticates a principal and issues a session token.
//
// Lookup order is fixed: employees first, then customers. An employee
// username shadows a customer username with the same value; the two
// remain fully distinct accounts. Missing user and wrong password both
// return ErrInvalidCredentials so usernames cannot be enumerated.
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginResult, error) {
	employee, err := s.employeeRepo.GetByUsername(ctx, input.Username)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if employee != nil {
		if !password.Verify(input.Password, employee.Password) {
			return nil, domain.ErrInvalidCredentials
		}

		role := domain.RoleFromPosition(employee.Position.Name)
		token, err := jwt.Generate(employee.ID, employee.Username, employee.Email,
			role.String(), string(domain.KindEmployee), s.cfg.JWT.Secret)
		if err != nil {
			return nil, err
		}

		log.Printf("Employee logged in: %s (role: %s)", employee.Username, role)
		return &LoginResult{Token: token, UserType: role}, nil
	}

	customer, err := s.customerRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !password.Verify(input.Password, customer.Password) {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := jwt.Generate(customer.ID, customer.Username, customer.Email,
		domain.RoleCustomer.String(), string(domain.KindCustomer), s.cfg.JWT.Secret)
	if err != nil {
		return nil, err
	}

	log.Printf("Customer logged in: %s", customer.Username)
	return &LoginResult{Token: token, UserType: domain.RoleCustomer}, nil
}

// ResolveRole re-derives a principal's current role from storage. The
// role gates call this on every request so a stale or forged token role
// claim never survives a demotion.
func (s *AuthService) ResolveRole(ctx context.Context, principalID uint, kind domain.PrincipalKind) (domain.Role, error) {
	switch kind {
	case domain.KindEmployee:
		employee, err := s.employeeRepo.GetByID(ctx, principalID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return "", domain.ErrPrincipalNotFound
			}
			return "", err
		}
		return domain.RoleFromPosition(employee.Position.Name), nil

	case domain.KindCustomer:
		if _, err := s.customerRepo.GetByID(ctx, principalID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return "", domain.ErrPrincipalNotFound
			}
			return "", err
		}
		return domain.RoleCustomer, nil
	}

	return "", domain.ErrPrincipalNotFound
}

// ChangePasswordInput represents change-password input
type ChangePasswordInput struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

// ChangePassword verifies the current password and stores a new hash
// for whichever principal kind is logged in
func (s *AuthService) ChangePassword(ctx context.Context, principalID uint, kind domain.PrincipalKind, input *ChangePasswordInput) error {
	if !password.Validate(input.NewPassword) {
		return domain.ErrValidation
	}

	var currentHash string
	switch kind {
	case domain.KindEmployee:
		employee, err := s.employeeRepo.GetByID(ctx, principalID)
		if err != nil {
			return domain.ErrPrincipalNotFound
		}
		currentHash = employee.Password
	case domain.KindCustomer:
		customer, err := s.customerRepo.GetByID(ctx, principalID)
		if err != nil {
			return domain.ErrPrincipalNotFound
		}
		currentHash = customer.Password
	default:
		return domain.ErrPrincipalNotFound
	}

	if !password.Verify(input.OldPassword, currentHash) {
		return domain.ErrInvalidCredentials
	}

	newHash, err := password.Hash(input.NewPassword)
	if err != nil {
		return err
	}

	if kind == domain.KindEmployee {
		return s.employeeRepo.UpdatePassword(ctx, principalID, newHash)
	}
	return s.customerRepo.UpdatePassword(ctx, principalID, newHash)
}

// GetEmployee loads an employee with their position, for handlers that
// need the caller's branch
func (s *AuthService) GetEmployee(ctx context.Context, id uint) (*models.Employee, error) {
	employee, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPrincipalNotFound
		}
		return nil, err
	}
	return employee, nil
}
