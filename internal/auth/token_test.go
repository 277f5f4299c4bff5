package auth_test

import (
	"testing"

	"beatbattle_backend/internal/auth"
	"beatbattle_backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setTestConfig(t *testing.T, secret string) {
	t.Helper()
	cfg := &config.Config{}
	cfg.JWT.Secret = secret
	cfg.JWT.TTL = 60
	config.AppConfig = cfg
}

func TestTokenRoundTrip(t *testing.T) {
	setTestConfig(t, "test-secret")

	token, err := auth.GenerateToken("user-42")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := auth.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", claims.UserID)
}

func TestParseToken_Garbage(t *testing.T) {
	setTestConfig(t, "test-secret")

	_, err := auth.ParseToken("not.a.token")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestParseToken_WrongSecret(t *testing.T) {
	setTestConfig(t, "secret-one")
	token, err := auth.GenerateToken("user-42")
	require.NoError(t, err)

	setTestConfig(t, "secret-two")
	_, err = auth.ParseToken(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestParseToken_EmptyUserID(t *testing.T) {
	setTestConfig(t, "test-secret")

	token, err := auth.GenerateToken("")
	require.NoError(t, err)

	_, err = auth.ParseToken(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
