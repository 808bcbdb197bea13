package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionJWT(t *testing.T) {
	const secret = "test-secret"

	t.Run("Round Trip", func(t *testing.T) {
		token, err := GenerateSessionJWT("session-1", secret, time.Now(), time.Now().Add(time.Hour))
		require.NoError(t, err)

		sessionID, err := ParseSessionJWT(token, secret)

		require.NoError(t, err)
		assert.Equal(t, "session-1", sessionID)
	})

	t.Run("Wrong Secret", func(t *testing.T) {
		token, err := GenerateSessionJWT("session-1", secret, time.Now(), time.Now().Add(time.Hour))
		require.NoError(t, err)

		_, err = ParseSessionJWT(token, "other")

		assert.Error(t, err)
	})

	t.Run("Expired Token", func(t *testing.T) {
		token, err := GenerateSessionJWT("session-1", secret, time.Now(), time.Now().Add(-time.Minute))
		require.NoError(t, err)

		_, err = ParseSessionJWT(token, secret)

		assert.Error(t, err)
	})
}

func TestSessionJWTAt(t *testing.T) {
	const secret = "test-secret"
	issuedAt := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	token, err := GenerateSessionJWT("session-1", secret, issuedAt, issuedAt.Add(2*time.Hour))
	require.NoError(t, err)

	t.Run("Valid Within Lifetime", func(t *testing.T) {
		sessionID, err := ParseSessionJWTAt(token, secret, issuedAt.Add(time.Hour))
		require.NoError(t, err)
		assert.Equal(t, "session-1", sessionID)
	})

	t.Run("Expired After Lifetime", func(t *testing.T) {
		_, err := ParseSessionJWTAt(token, secret, issuedAt.Add(3*time.Hour))
		assert.Error(t, err)
	})

	t.Run("Not Yet Issued", func(t *testing.T) {
		_, err := ParseSessionJWTAt(token, secret, issuedAt.Add(-time.Hour))
		assert.Error(t, err, "a token from the future should be rejected")
	})
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("Sup3r$ecret")
	require.NoError(t, err)

	assert.True(t, CheckPasswordHash("Sup3r$ecret", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}
