package jwt_test

import (
	"testing"
	"time"

	"corebank/internal/pkg/jwt"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestGenerateAndValidate(t *testing.T) {
	token, err := jwt.Generate(42, "jdoe", "jdoe@example.com", "customer", "CUSTOMER", testSecret)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := jwt.Validate(token, testSecret)
	require.NoError(t, err)

	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "jdoe", claims.Username)
	assert.Equal(t, "jdoe@example.com", claims.Email)
	assert.Equal(t, "customer", claims.Role)
	assert.Equal(t, "CUSTOMER", claims.Kind)
	assert.Equal(t, "corebank", claims.Issuer)

	// Fixed one-hour validity window
	require.NotNil(t, claims.ExpiresAt)
	require.NotNil(t, claims.IssuedAt)
	assert.Equal(t, time.Hour, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
}

func TestValidateWrongSecret(t *testing.T) {
	token, err := jwt.Generate(1, "jdoe", "jdoe@example.com", "customer", "CUSTOMER", testSecret)
	require.NoError(t, err)

	_, err = jwt.Validate(token, "other-secret")
	assert.ErrorIs(t, err, jwt.ErrTokenInvalid)
}

func TestValidateMalformed(t *testing.T) {
	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		_, err := jwt.Validate(token, testSecret)
		assert.ErrorIs(t, err, jwt.ErrTokenInvalid, "token %q", token)
	}
}

func TestValidateExpired(t *testing.T) {
	claims := jwt.Claims{
		UserID:   7,
		Username: "jdoe",
		RegisteredClaims: gojwt.RegisteredClaims{
			ExpiresAt: gojwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  gojwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			Issuer:    "corebank",
		},
	}

	token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = jwt.Validate(token, testSecret)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestValidateRejectsNonHMAC(t *testing.T) {
	// alg=none style tokens must not pass
	token, err := gojwt.NewWithClaims(gojwt.SigningMethodNone, gojwt.RegisteredClaims{
		ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(gojwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = jwt.Validate(token, testSecret)
	assert.ErrorIs(t, err, jwt.ErrTokenInvalid)
}
