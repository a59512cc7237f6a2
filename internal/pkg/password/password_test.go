package password_test

import (
	"testing"

	"corebank/internal/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := password.Hash("s3cret-pass")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, password.Verify("s3cret-pass", hash))
	assert.False(t, password.Verify("wrong-pass", hash))
}

func TestValidate(t *testing.T) {
	assert.False(t, password.Validate("short"))
	assert.True(t, password.Validate("long enough"))
}
