package jwt

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Service mints and verifies the tokens the engine trusts. Accounts and
// credentials live in the external auth system; this only covers the access
// token shape the API consumes and the short-lived token the SSE stream uses
// in place of an Authorization header.
type Service interface {
	GenerateAccessToken(userID, teamID int64) (token string, expiresAt int64, err error)
	GenerateSSEToken(userID, teamID int64) (token string, expiresIn int, err error)
	ValidateSSEToken(tokenString string) (userID, teamID int64, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	secretKey                 string
	accessTokenExpirationTime string
	tokenAuth                 *jwtauth.JWTAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) Service {
	return &JWTService{
		secretKey:                 secretKey,
		accessTokenExpirationTime: accessTokenExpirationTime,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) GenerateAccessToken(userID, teamID int64) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt = time.Now().Add(expDuration).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"user_id": strconv.FormatInt(userID, 10),
		"team_id": strconv.FormatInt(teamID, 10),
		"type":    "access",
		"exp":     expiresAt,
	})
	return tokenString, expiresAt, err
}

// GenerateSSEToken mints a short-lived token for EventSource connections,
// which cannot set headers and pass the token as a query parameter instead.
func (j *JWTService) GenerateSSEToken(userID, teamID int64) (token string, expiresIn int, err error) {
	expiresIn = 300
	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"user_id": strconv.FormatInt(userID, 10),
		"team_id": strconv.FormatInt(teamID, 10),
		"type":    "sse",
		"exp":     time.Now().Add(time.Duration(expiresIn) * time.Second).Unix(),
	})
	return tokenString, expiresIn, err
}

func (j *JWTService) ValidateSSEToken(tokenString string) (userID, teamID int64, err error) {
	tok, err := jwtauth.VerifyToken(j.tokenAuth, tokenString)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to verify sse token: %w", err)
	}

	claims, err := tok.AsMap(context.Background())
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read sse token claims: %w", err)
	}
	if typ, _ := claims["type"].(string); typ != "sse" {
		return 0, 0, fmt.Errorf("token is not an sse token")
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
	s, ok := claims[key].(string)
	if !ok {
		return 0, fmt.Errorf("%s claim is missing or invalid", key)
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s claim is missing or invalid", key)
	}
	return id, nil
}
