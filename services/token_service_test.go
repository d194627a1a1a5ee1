package services

import (
	"testing"

	"roopshree-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenPairRoundTrip(t *testing.T) {
	svc := NewTokenService("test-secret")

	pair, err := svc.GenerateTokenPair("user-1", "Priya", "priya@example.com", models.RoleAdmin)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(pair.AccessToken, "access")
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims["sub"])
	assert.Equal(t, "ADMIN", claims["role"])
	assert.Equal(t, "priya@example.com", claims["email"])

	claims, err = svc.ValidateToken(pair.RefreshToken, "refresh")
	require.NoError(t, err)
	assert.Equal(t, "refresh", claims["typ"])
}

func TestTokenTypeEnforced(t *testing.T) {
	svc := NewTokenService("test-secret")

	pair, err := svc.GenerateTokenPair("user-1", "Priya", "priya@example.com", models.RoleUser)
	require.NoError(t, err)

	_, err = svc.ValidateToken(pair.RefreshToken, "access")
	assert.Error(t, err, "refresh token must not pass as access")

	_, err = svc.ValidateToken(pair.AccessToken, "refresh")
	assert.Error(t, err)
}

func TestTokenWrongSecretRejected(t *testing.T) {
	pair, err := NewTokenService("secret-a").GenerateTokenPair("user-1", "Priya", "priya@example.com", models.RoleUser)
	require.NoError(t, err)

	_, err = NewTokenService("secret-b").ValidateToken(pair.AccessToken, "access")
	assert.Error(t, err)
}

func TestTokenGarbageRejected(t *testing.T) {
	svc := NewTokenService("test-secret")

	_, err := svc.ValidateToken("not-a-token", "access")
	assert.Error(t, err)

	_, err = svc.ValidateToken("", "access")
	assert.Error(t, err)
}
