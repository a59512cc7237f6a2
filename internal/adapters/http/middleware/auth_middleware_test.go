package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"corebank/internal/adapters/http/middleware"
	"corebank/internal/config"
	"corebank/internal/core/domain"
	"corebank/internal/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

// fakeResolver maps a principal ID straight to a role, simulating the
// storage-backed role lookup
type fakeResolver struct {
	roles map[uint]domain.Role
}

func (r *fakeResolver) ResolveRole(_ context.Context, principalID uint, _ domain.PrincipalKind) (domain.Role, error) {
	role, ok := r.roles[principalID]
	if !ok {
		return "", domain.ErrPrincipalNotFound
	}
	return role, nil
}

// gateApp builds a one-route app guarded by the full gate chain. The
// counter proves whether the handler behind the gates ever ran.
func gateApp(resolver *fakeResolver, handlerRuns *int32, allowed ...domain.Role) *fiber.App {
	cfg := &config.Config{JWT: config.JWTConfig{Secret: testSecret}}
	app := fiber.New()
	app.Get("/guarded",
		middleware.Protected(cfg),
		middleware.RequireRole(resolver, allowed...),
		func(c *fiber.Ctx) error {
			atomic.AddInt32(handlerRuns, 1)
			return c.SendString(c.Locals(middleware.LocalRole).(string))
		})
	return app
}

func request(t *testing.T, app *fiber.App, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func expiredToken(t *testing.T, userID uint, role string) string {
	t.Helper()
	claims := jwt.Claims{
		UserID: userID,
		Role:   role,
		Kind:   string(domain.KindEmployee),
		RegisteredClaims: gojwt.RegisteredClaims{
			ExpiresAt: gojwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  gojwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			Issuer:    "corebank",
		},
	}
	token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func TestProtectedRejectsMissingToken(t *testing.T) {
	var runs int32
	app := gateApp(&fakeResolver{}, &runs, domain.RoleManager)

	resp := request(t, app, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Zero(t, atomic.LoadInt32(&runs), "handler must not run")
}

func TestProtectedRejectsMalformedToken(t *testing.T) {
	var runs int32
	app := gateApp(&fakeResolver{}, &runs, domain.RoleManager)

	resp := request(t, app, "not.a.token")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Zero(t, atomic.LoadInt32(&runs))
}

func TestProtectedRejectsExpiredToken(t *testing.T) {
	var runs int32
	app := gateApp(&fakeResolver{roles: map[uint]domain.Role{1: domain.RoleManager}}, &runs, domain.RoleManager)

	resp := request(t, app, expiredToken(t, 1, "manager"))
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Zero(t, atomic.LoadInt32(&runs), "expired session must halt before the role gate")
}

func TestProtectedRejectsWrongSecret(t *testing.T) {
	var runs int32
	app := gateApp(&fakeResolver{roles: map[uint]domain.Role{1: domain.RoleManager}}, &runs, domain.RoleManager)

	token, err := jwt.Generate(1, "mgr", "mgr@bank.test", "manager", string(domain.KindEmployee), "other-secret")
	require.NoError(t, err)

	resp := request(t, app, token)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Zero(t, atomic.LoadInt32(&runs))
}

func TestRequireRoleAllowsMember(t *testing.T) {
	var runs int32
	app := gateApp(&fakeResolver{roles: map[uint]domain.Role{1: domain.RoleManager}}, &runs, domain.RoleManager)

	token, err := jwt.Generate(1, "mgr", "mgr@bank.test", "manager", string(domain.KindEmployee), testSecret)
	require.NoError(t, err)

	resp := request(t, app, token)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(1), atomic.LoadInt32(&runs))
}

func TestRequireRoleIgnoresForgedClaim(t *testing.T) {
	var runs int32
	// Storage says employee; the token claims manager
	app := gateApp(&fakeResolver{roles: map[uint]domain.Role{1: domain.RoleEmployee}}, &runs, domain.RoleManager)

	token, err := jwt.Generate(1, "clerk", "clerk@bank.test", "manager", string(domain.KindEmployee), testSecret)
	require.NoError(t, err)

	resp := request(t, app, token)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Zero(t, atomic.LoadInt32(&runs), "stale or forged role claim must not pass the gate")
}

func TestRequireRoleRejectsDeletedPrincipal(t *testing.T) {
	var runs int32
	app := gateApp(&fakeResolver{roles: map[uint]domain.Role{}}, &runs, domain.RoleManager)

	token, err := jwt.Generate(1, "ghost", "ghost@bank.test", "manager", string(domain.KindEmployee), testSecret)
	require.NoError(t, err)

	resp := request(t, app, token)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Zero(t, atomic.LoadInt32(&runs))
}

func TestRequireRoleAllowList(t *testing.T) {
	resolver := &fakeResolver{roles: map[uint]domain.Role{
		1: domain.RoleManager,
		2: domain.RoleEmployee,
		3: domain.RoleCustomer,
	}}

	// Gate admits customers and general staff only
	var runs int32
	app := gateApp(resolver, &runs, domain.RoleCustomer, domain.RoleEmployee)

	tests := []struct {
		userID uint
		role   string
		kind   domain.PrincipalKind
		want   int
	}{
		{1, "manager", domain.KindEmployee, fiber.StatusForbidden},
		{2, "employee", domain.KindEmployee, fiber.StatusOK},
		{3, "customer", domain.KindCustomer, fiber.StatusOK},
	}

	for _, tt := range tests {
		token, err := jwt.Generate(tt.userID, "u", "u@bank.test", tt.role, string(tt.kind), testSecret)
		require.NoError(t, err)

		resp := request(t, app, token)
		assert.Equal(t, tt.want, resp.StatusCode, "role %s", tt.role)
	}
}

func TestRequireRoleOverwritesClaimWithStorageRole(t *testing.T) {
	var runs int32
	app := gateApp(&fakeResolver{roles: map[uint]domain.Role{1: domain.RoleManager}}, &runs, domain.RoleManager)

	// Claim says employee; storage says manager. The gate admits on the
	// storage role and downstream must see "manager".
	token, err := jwt.Generate(1, "mgr", "mgr@bank.test", "employee", string(domain.KindEmployee), testSecret)
	require.NoError(t, err)

	resp := request(t, app, token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := make([]byte, 32)
	n, _ := resp.Body.Read(body)
	assert.Equal(t, "manager", string(body[:n]))
}
