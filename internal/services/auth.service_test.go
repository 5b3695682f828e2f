package services

import (
	"testing"
	"time"

	"gearguard/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthService() *AuthService {
	return NewAuthService(config.Config{JWTSecret: "test-secret", JWTTTLHours: 1})
}

func TestAuthService_Passwords(t *testing.T) {
	service := newTestAuthService()

	hash, err := service.HashPassword("hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2", hash)

	assert.True(t, service.CheckPassword(hash, "hunter2"))
	assert.False(t, service.CheckPassword(hash, "hunter3"))
	assert.False(t, service.CheckPassword("", "hunter2"))
}

func TestAuthService_TokenRoundTrip(t *testing.T) {
	service := newTestAuthService()

	token, expiresAt, err := service.IssueToken(7, "tech1")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	accountID, err := service.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, 7, accountID)
}

func TestAuthService_ParseToken_Rejects(t *testing.T) {
	service := newTestAuthService()

	t.Run("garbage", func(t *testing.T) {
		_, err := service.ParseToken("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewAuthService(config.Config{JWTSecret: "other"})
		token, _, err := other.IssueToken(7, "tech1")
		require.NoError(t, err)

		_, err = service.ParseToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		expired := newTestAuthService()
		expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		token, _, err := expired.IssueToken(7, "tech1")
		require.NoError(t, err)

		_, err = service.ParseToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("non numeric subject", func(t *testing.T) {
		claims := TokenClaims{RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   "abc",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, err = service.ParseToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
