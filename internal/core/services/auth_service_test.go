package services_test

import (
	"context"
	"testing"

	"corebank/internal/adapters/persistence/models"
	"corebank/internal/config"
	"corebank/internal/core/domain"
	"corebank/internal/core/services"
	"corebank/internal/pkg/jwt"
	"corebank/internal/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func testConfig() *config.Config {
	return &config.Config{JWT: config.JWTConfig{Secret: testSecret}}
}

func mustHash(t *testing.T, plain string) string {
	t.Helper()
	hash, err := password.Hash(plain)
	require.NoError(t, err)
	return hash
}

func newAuthFixture(t *testing.T) (*services.AuthService, *fakeEmployeeRepo, *fakeCustomerRepo) {
	t.Helper()
	hash := mustHash(t, "correct-horse")

	employees := newFakeEmployeeRepo(
		&models.Employee{ID: 1, Username: "mgr", Email: "mgr@bank.test", Password: hash,
			BranchID: 1, Position: models.Position{Name: domain.PositionBranchManager}},
		&models.Employee{ID: 2, Username: "tech", Email: "tech@bank.test", Password: hash,
			BranchID: 1, Position: models.Position{Name: domain.PositionTechnician}},
		&models.Employee{ID: 3, Username: "clerk", Email: "clerk@bank.test", Password: hash,
			BranchID: 2, Position: models.Position{Name: domain.PositionGeneralEmployee}},
		// Same username as a customer: the employee shadows
		&models.Employee{ID: 4, Username: "shadow", Email: "shadow-e@bank.test", Password: hash,
			BranchID: 1, Position: models.Position{Name: domain.PositionGeneralEmployee}},
	)
	customers := newFakeCustomerRepo(
		&models.Customer{ID: 10, Username: "alice", Email: "alice@bank.test", Password: hash},
		&models.Customer{ID: 11, Username: "shadow", Email: "shadow-c@bank.test", Password: hash},
	)

	return services.NewAuthService(employees, customers, testConfig()), employees, customers
}

func TestLoginRoleDerivation(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	tests := []struct {
		username string
		want     domain.Role
		kind     domain.PrincipalKind
	}{
		{"mgr", domain.RoleManager, domain.KindEmployee},
		{"tech", domain.RoleTechnician, domain.KindEmployee},
		{"clerk", domain.RoleEmployee, domain.KindEmployee},
		{"alice", domain.RoleCustomer, domain.KindCustomer},
	}

	for _, tt := range tests {
		t.Run(tt.username, func(t *testing.T) {
			result, err := svc.Login(context.Background(), &services.LoginInput{
				Username: tt.username, Password: "correct-horse",
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, result.UserType)

			claims, err := jwt.Validate(result.Token, testSecret)
			require.NoError(t, err)
			assert.Equal(t, tt.want.String(), claims.Role)
			assert.Equal(t, string(tt.kind), claims.Kind)
		})
	}
}

func TestLoginEmployeeShadowsCustomer(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	result, err := svc.Login(context.Background(), &services.LoginInput{
		Username: "shadow", Password: "correct-horse",
	})
	require.NoError(t, err)

	claims, err := jwt.Validate(result.Token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, uint(4), claims.UserID, "employee account must win the lookup")
	assert.Equal(t, string(domain.KindEmployee), claims.Kind)
}

func TestLoginInvalidCredentialsIndistinguishable(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, missingErr := svc.Login(context.Background(), &services.LoginInput{
		Username: "nobody", Password: "correct-horse",
	})
	_, wrongErr := svc.Login(context.Background(), &services.LoginInput{
		Username: "alice", Password: "wrong-pass",
	})

	assert.ErrorIs(t, missingErr, domain.ErrInvalidCredentials)
	assert.ErrorIs(t, wrongErr, domain.ErrInvalidCredentials)
	assert.Equal(t, missingErr, wrongErr, "missing user and wrong password must look identical")
}

func TestLoginWrongEmployeePasswordDoesNotFallThrough(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	// "shadow" exists in both tables; a wrong password against the
	// employee row must fail outright, not retry the customer row.
	_, err := svc.Login(context.Background(), &services.LoginInput{
		Username: "shadow", Password: "wrong-pass",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestResolveRole(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	ctx := context.Background()

	role, err := svc.ResolveRole(ctx, 1, domain.KindEmployee)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleManager, role)

	role, err = svc.ResolveRole(ctx, 10, domain.KindCustomer)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleCustomer, role)

	_, err = svc.ResolveRole(ctx, 999, domain.KindEmployee)
	assert.ErrorIs(t, err, domain.ErrPrincipalNotFound)

	_, err = svc.ResolveRole(ctx, 1, domain.PrincipalKind("BOGUS"))
	assert.ErrorIs(t, err, domain.ErrPrincipalNotFound)
}

func TestResolveRoleTracksDemotion(t *testing.T) {
	svc, employees, _ := newAuthFixture(t)
	ctx := context.Background()

	role, err := svc.ResolveRole(ctx, 1, domain.KindEmployee)
	require.NoError(t, err)
	require.Equal(t, domain.RoleManager, role)

	// Demote the manager in storage; the resolver must see it on the
	// next call even though any issued token still claims "manager".
	employees.employees[1].Position.Name = domain.PositionGeneralEmployee

	role, err = svc.ResolveRole(ctx, 1, domain.KindEmployee)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleEmployee, role)
}

func TestChangePassword(t *testing.T) {
	svc, _, customers := newAuthFixture(t)
	ctx := context.Background()

	err := svc.ChangePassword(ctx, 10, domain.KindCustomer, &services.ChangePasswordInput{
		OldPassword: "correct-horse", NewPassword: "battery-staple",
	})
	require.NoError(t, err)
	assert.True(t, password.Verify("battery-staple", customers.customers[10].Password))

	// Old password must now be rejected
	_, err = svc.Login(ctx, &services.LoginInput{Username: "alice", Password: "correct-horse"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestChangePasswordRejectsBadInput(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	ctx := context.Background()

	err := svc.ChangePassword(ctx, 10, domain.KindCustomer, &services.ChangePasswordInput{
		OldPassword: "correct-horse", NewPassword: "short",
	})
	assert.ErrorIs(t, err, domain.ErrValidation)

	err = svc.ChangePassword(ctx, 10, domain.KindCustomer, &services.ChangePasswordInput{
		OldPassword: "wrong-pass", NewPassword: "battery-staple",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}
