//go:build unit

package password_test

import (
	"testing"

	"bookcars/internal/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCompare(t *testing.T) {
	hash, err := password.HashPassword("s3cret-pass")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret-pass", hash)

	assert.NoError(t, password.ComparePassword(hash, "s3cret-pass"))
	assert.ErrorIs(t, password.ComparePassword(hash, "wrong-pass"), password.ErrComparisonFailed)
}

func TestHashPassword_Empty(t *testing.T) {
	_, err := password.HashPassword("")
	assert.ErrorIs(t, err, password.ErrInvalidPassword)
}

func TestComparePassword_EmptyArgs(t *testing.T) {
	assert.ErrorIs(t, password.ComparePassword("", "x"), password.ErrInvalidPassword)
	assert.ErrorIs(t, password.ComparePassword("x", ""), password.ErrInvalidPassword)
}
