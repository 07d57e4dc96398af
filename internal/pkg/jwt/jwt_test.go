//go:build unit

package jwt_test

import (
	"testing"
	"time"

	"bookcars/internal/domain/user"
	"bookcars/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_GenerateAndValidate(t *testing.T) {
	svc := jwt.NewService("test-secret", time.Hour)
	userID := uuid.New()

	token, err := svc.GenerateToken(userID, user.RoleOwner)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "owner", claims.Role)
}

func TestService_ValidateToken_WrongSecret(t *testing.T) {
	token, err := jwt.NewService("secret-a", time.Hour).GenerateToken(uuid.New(), user.RoleRenter)
	require.NoError(t, err)

	_, err = jwt.NewService("secret-b", time.Hour).ValidateToken(token)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestService_ValidateToken_Expired(t *testing.T) {
	svc := jwt.NewService("test-secret", -time.Minute)

	token, err := svc.GenerateToken(uuid.New(), user.RoleRenter)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, jwt.ErrExpiredToken)
}

func TestService_ValidateToken_Garbage(t *testing.T) {
	svc := jwt.NewService("test-secret", time.Hour)

	_, err := svc.ValidateToken("not.a.token")
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}
