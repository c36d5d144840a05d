package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/aichat/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	secret := []byte("test-secret")

	tokenString, err := GenerateToken("u-1", "alice", secret, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	claims, err := ParseToken(tokenString, secret)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "alice", claims.Username)
}

func TestParseToken_WrongSecret(t *testing.T) {
	tokenString, err := GenerateToken("u-1", "alice", []byte("secret-a"), time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(tokenString, []byte("secret-b"))
	assert.True(t, errors.Is(err, common.ErrorInvalidToken))
}

func TestParseToken_Expired(t *testing.T) {
	secret := []byte("test-secret")

	tokenString, err := GenerateToken("u-1", "alice", secret, -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(tokenString, secret)
	assert.True(t, errors.Is(err, common.ErrorInvalidToken))
}

func TestParseToken_Malformed(t *testing.T) {
	_, err := ParseToken("not-a-token", []byte("test-secret"))
	assert.True(t, errors.Is(err, common.ErrorInvalidToken))
}
