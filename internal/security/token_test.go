package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-0123456789abcdef-0123456789abcdef"

func TestAccessTokenRoundTrip(t *testing.T) {
	manager := NewTokenManager(testSecret, 30, 20160)

	token, err := manager.GenerateAccessToken("user-1", "student@example.edu", []string{"COMMON"})
	require.NoError(t, err)

	claims, err := manager.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "student@example.edu", claims.Email)
	assert.Equal(t, TokenTypeAccess, claims.Type)
	assert.Equal(t, []string{"COMMON"}, claims.Roles)
	assert.Equal(t, "campus-community", claims.Issuer)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	manager := NewTokenManager(testSecret, 30, 20160)

	token, err := manager.GenerateRefreshToken("user-1", "student@example.edu")
	require.NoError(t, err)

	claims, err := manager.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, TokenTypeRefresh, claims.Type)
	assert.Empty(t, claims.Roles)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	manager := NewTokenManager(testSecret, 30, 20160)
	other := NewTokenManager("another-secret-entirely-0123456789abcdef", 30, 20160)

	token, err := manager.GenerateAccessToken("user-1", "", nil)
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenExpired(t *testing.T) {
	manager := NewTokenManager(testSecret, -1, 20160)

	token, err := manager.GenerateAccessToken("user-1", "", nil)
	require.NoError(t, err)

	_, err = manager.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateTokenGarbage(t *testing.T) {
	manager := NewTokenManager(testSecret, 30, 20160)

	_, err := manager.ValidateToken("not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAccessTokenExpirySet(t *testing.T) {
	manager := NewTokenManager(testSecret, 30, 20160)

	token, err := manager.GenerateAccessToken("user-1", "", nil)
	require.NoError(t, err)

	claims, err := manager.ValidateToken(token)
	require.NoError(t, err)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), claims.ExpiresAt.Time, time.Minute)
}
