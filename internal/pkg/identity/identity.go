package identity

import (
	"context"
	"fmt"
	"strconv"

	"github.com/go-chi/jwtauth/v5"
)

// FromContext resolves the authenticated (user, team) pair from the JWT
// claims placed on the context by the verifier middleware. The engine trusts
// these values; authentication itself happens upstream.
func FromContext(ctx context.Context) (userID, teamID int64, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, err = claimInt64(claims, "user_id")
	if err != nil {
		return 0, 0, err
	}
	teamID, err = claimInt64(claims, "team_id")
	if err != nil {
		return 0, 0, err
	}
	return userID, teamID, nil
}

func claimInt64(claims map[string]interface{}, key string) (int64, error) {
	switch v := claims[key].(type) {
	case string:
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			return 0, fmt.Errorf("%s claim is missing or invalid", key)
		}
		return id, nil
	case float64:
		if id := int64(v); id > 0 {
			return id, nil
		}
	case int64:
		if v > 0 {
			return v, nil
		}
	}
	return 0, fmt.Errorf("%s claim is missing or invalid", key)
}
