package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", "1h")

	token, expiresAt, err := svc.GenerateAccessToken(7, 3)
	require.NoError(t, err)
	assert.Greater(t, expiresAt, time.Now().Unix())

	tok, err := jwtauth.VerifyToken(svc.JWTAuth(), token)
	require.NoError(t, err)

	claims, err := tok.AsMap(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "7", claims["user_id"])
	assert.Equal(t, "3", claims["team_id"])
	assert.Equal(t, "access", claims["type"])
}

func TestAccessTokenBadExpiration(t *testing.T) {
	svc := NewJWTService("test-secret", "not-a-duration")

	_, _, err := svc.GenerateAccessToken(7, 3)
	assert.Error(t, err)
}

func TestSSEToken(t *testing.T) {
	svc := NewJWTService("test-secret", "1h")

	t.Run("round trip", func(t *testing.T) {
		token, expiresIn, err := svc.GenerateSSEToken(7, 3)
		require.NoError(t, err)
		assert.Equal(t, 300, expiresIn)

		userID, teamID, err := svc.ValidateSSEToken(token)
		require.NoError(t, err)
		assert.Equal(t, int64(7), userID)
		assert.Equal(t, int64(3), teamID)
	})

	t.Run("rejects access token on the stream", func(t *testing.T) {
		token, _, err := svc.GenerateAccessToken(7, 3)
		require.NoError(t, err)

		_, _, err = svc.ValidateSSEToken(token)
		assert.Error(t, err)
	})

	t.Run("rejects foreign signature", func(t *testing.T) {
		other := NewJWTService("other-secret", "1h")
		token, _, err := other.GenerateSSEToken(7, 3)
		require.NoError(t, err)

		_, _, err = svc.ValidateSSEToken(token)
		assert.Error(t, err)
	})
}
