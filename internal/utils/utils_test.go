package utils

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secret", 4)
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	assert.True(t, VerifyPassword(hash, "secret"))
	assert.False(t, VerifyPassword(hash, "wrong"))
	assert.False(t, VerifyPassword("", "secret"))
	assert.False(t, VerifyPassword("not-a-bcrypt-hash", "secret"))
}

func TestAccessTokenClaims(t *testing.T) {
	at, err := NewAccessToken("test-secret", "alice", "USER", 15)
	require.NoError(t, err)

	tok, err := jwt.Parse(at.Token, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, tok.Valid)

	claims := tok.Claims.(jwt.MapClaims)
	assert.Equal(t, "alice", claims["sub"])
	assert.Equal(t, "USER", claims["role"])
}

func TestRefreshTokenHashing(t *testing.T) {
	rt1, err := NewRefreshToken(14)
	require.NoError(t, err)
	rt2, err := NewRefreshToken(14)
	require.NoError(t, err)

	assert.NotEqual(t, rt1.Raw, rt2.Raw)
	assert.Len(t, rt1.Raw, 96) // 48 random bytes, hex encoded

	// Hashing is deterministic and never exposes the raw token.
	assert.Equal(t, HashRefreshRaw(rt1.Raw), HashRefreshRaw(rt1.Raw))
	assert.NotEqual(t, rt1.Raw, HashRefreshRaw(rt1.Raw))
}
