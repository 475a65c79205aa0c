package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestTokenManager_RoundTrip(t *testing.T) {
	mgr := NewTokenManager(testSecret, 60)

	token, err := mgr.GenerateAccessToken("op-1", "Desk Operator", []string{"operator"})
	require.NoError(t, err)

	claims, err := mgr.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "op-1", claims.UserID)
	assert.Equal(t, "Desk Operator", claims.Name)
	assert.Equal(t, []string{"operator"}, claims.Roles)
}

func TestTokenManager_Expired(t *testing.T) {
	mgr := NewTokenManager(testSecret, -1)

	token, err := mgr.GenerateAccessToken("op-1", "", nil)
	require.NoError(t, err)

	_, err = mgr.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestTokenManager_WrongSecret(t *testing.T) {
	token, err := NewTokenManager(testSecret, 60).GenerateAccessToken("op-1", "", nil)
	require.NoError(t, err)

	_, err = NewTokenManager("another-secret-another-secret-xx", 60).ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_Garbage(t *testing.T) {
	_, err := NewTokenManager(testSecret, 60).ValidateToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
