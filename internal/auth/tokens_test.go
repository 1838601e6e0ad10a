package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_secret_key_1234567890_abcdef"

func TestTokenManager_IssueAndParse(t *testing.T) {
	m := NewTokenManager(testSecret, "sms-test", 15*time.Minute, time.Hour)

	token, expiresAt, err := m.IssueAccessToken("user-1", []string{"customer", "manager"})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiresAt, time.Second)

	claims, err := m.ParseAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, []string{"customer", "manager"}, claims.Roles)
	assert.Equal(t, "sms-test", claims.Issuer)
}

func TestTokenManager_ParseRejects(t *testing.T) {
	m := NewTokenManager(testSecret, "sms-test", 15*time.Minute, time.Hour)
	valid, _, err := m.IssueAccessToken("user-1", nil)
	require.NoError(t, err)

	t.Run("Expired", func(t *testing.T) {
		past := NewTokenManager(testSecret, "sms-test", time.Minute, time.Hour)
		past.now = func() time.Time { return time.Now().Add(-time.Hour) }
		expired, _, err := past.IssueAccessToken("user-1", nil)
		require.NoError(t, err)

		_, err = m.ParseAccessToken(expired)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("WrongSecret", func(t *testing.T) {
		other := NewTokenManager("another_secret_key_that_is_long_enough", "sms-test", time.Minute, time.Hour)
		_, err := other.ParseAccessToken(valid)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("WrongIssuer", func(t *testing.T) {
		other := NewTokenManager(testSecret, "someone-else", time.Minute, time.Hour)
		_, err := other.ParseAccessToken(valid)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Tampered", func(t *testing.T) {
		_, err := m.ParseAccessToken(valid[:len(valid)-2] + "xx")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("NoneAlgorithm", func(t *testing.T) {
		unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
			RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1", Issuer: "sms-test"},
		})
		s, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = m.ParseAccessToken(s)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := m.ParseAccessToken("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestTokenManager_NewRefreshToken(t *testing.T) {
	m := NewTokenManager(testSecret, "sms-test", time.Minute, 48*time.Hour)

	token, hash, expiresAt, err := m.NewRefreshToken()
	require.NoError(t, err)
	assert.Len(t, token, 43)
	assert.False(t, strings.ContainsAny(token, "+/="))
	assert.Equal(t, HashRefreshToken(token), hash)
	assert.Len(t, hash, 64)
	assert.WithinDuration(t, time.Now().Add(48*time.Hour), expiresAt, time.Second)

	second, _, _, err := m.NewRefreshToken()
	require.NoError(t, err)
	assert.NotEqual(t, token, second)
}
