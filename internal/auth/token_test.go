package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	mgr := NewTokenManager("test-secret", time.Hour)

	token, err := mgr.Generate("64f1c9a2b3d4e5f601020304")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := mgr.Validate(token)
	require.NoError(t, err)
	require.Equal(t, "64f1c9a2b3d4e5f601020304", claims.UserID)
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := NewTokenManager("secret-a", time.Hour).Generate("user")
	require.NoError(t, err)

	_, err = NewTokenManager("secret-b", time.Hour).Validate(token)
	require.Error(t, err)
}

func TestTokenExpired(t *testing.T) {
	mgr := NewTokenManager("test-secret", -time.Minute)

	token, err := mgr.Generate("user")
	require.NoError(t, err)

	_, err = mgr.Validate(token)
	require.Error(t, err)
}

func TestTokenGarbage(t *testing.T) {
	_, err := NewTokenManager("test-secret", time.Hour).Validate("not.a.token")
	require.Error(t, err)
}
