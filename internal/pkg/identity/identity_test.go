package identity

import (
	"context"
	"testing"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func claimsCtx(t *testing.T, userID, teamID interface{}) context.Context {
	t.Helper()
	tok := jwt.New()
	require.NoError(t, tok.Set("user_id", userID))
	require.NoError(t, tok.Set("team_id", teamID))
	return jwtauth.NewContext(context.Background(), tok, nil)
}

func TestFromContext(t *testing.T) {
	t.Run("string claims", func(t *testing.T) {
		userID, teamID, err := FromContext(claimsCtx(t, "7", "3"))
		require.NoError(t, err)
		assert.Equal(t, int64(7), userID)
		assert.Equal(t, int64(3), teamID)
	})

	t.Run("numeric claims", func(t *testing.T) {
		userID, teamID, err := FromContext(claimsCtx(t, float64(7), float64(3)))
		require.NoError(t, err)
		assert.Equal(t, int64(7), userID)
		assert.Equal(t, int64(3), teamID)
	})

	t.Run("rejects non-positive ids regardless of claim type", func(t *testing.T) {
		tests := []struct {
			name           string
			userID, teamID interface{}
		}{
			{"zero string", "0", "3"},
			{"negative string", "-7", "3"},
			{"zero number", float64(0), float64(3)},
			{"negative number", float64(-7), float64(3)},
			{"non-positive team", "7", float64(0)},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, _, err := FromContext(claimsCtx(t, tt.userID, tt.teamID))
				assert.Error(t, err)
			})
		}
	})

	t.Run("missing claims", func(t *testing.T) {
		tok := jwt.New()
		_, _, err := FromContext(jwtauth.NewContext(context.Background(), tok, nil))
		assert.Error(t, err)
	})

	t.Run("no token on context", func(t *testing.T) {
		_, _, err := FromContext(context.Background())
		assert.Error(t, err)
	})
}
