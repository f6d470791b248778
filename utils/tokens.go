package utils

import (
	"os"
	"time"

	"github.com/kataras/iris/v12/middleware/jwt"
)

const (
	TokenCategoryAccess  = "access"
	TokenCategoryRefresh = "refresh"

	AccessTokenTTL  = 10 * time.Minute
	RefreshTokenTTL = 24 * time.Hour
)

// AuthClaims is the payload of both access and refresh tokens. Category tells
// them apart so a refresh token can never be replayed as an access token.
type AuthClaims struct {
	Category string `json:"category"`
	LoginID  string `json:"loginId"`
	Role     string `json:"role"`
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

func tokenSecret(category string) []byte {
	if category == TokenCategoryRefresh {
		return []byte(os.Getenv("REFRESH_TOKEN_SECRET"))
	}
	return []byte(os.Getenv("ACCESS_TOKEN_SECRET"))
}

// CreateToken signs a token of the given category. The expiration claim is
// set by the signer from ttl.
func CreateToken(category, loginID, role string, ttl time.Duration) (string, error) {
	signer := jwt.NewSigner(jwt.HS256, tokenSecret(category), ttl)

	token, err := signer.Sign(AuthClaims{
		Category: category,
		LoginID:  loginID,
		Role:     role,
	})
	if err != nil {
		return "", err
	}

	return string(token), nil
}

// CreateTokenPair issues a fresh access/refresh pair for a login. Persisting
// the refresh token in the active-token store is the caller's job.
func CreateTokenPair(loginID, role string) (*TokenPair, error) {
	accessToken, err := CreateToken(TokenCategoryAccess, loginID, role, AccessTokenTTL)
	if err != nil {
		return nil, err
	}

	refreshToken, err := CreateToken(TokenCategoryRefresh, loginID, role, RefreshTokenTTL)
	if err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// VerifyRefreshToken checks signature and expiry of a refresh credential and
// returns its claims. Expired tokens surface as jwt.ErrExpired.
func VerifyRefreshToken(token string) (*AuthClaims, error) {
	verifier := jwt.NewVerifier(jwt.HS256, tokenSecret(TokenCategoryRefresh))

	verified, err := verifier.VerifyToken([]byte(token))
	if err != nil {
		return nil, err
	}

	var claims AuthClaims
	if err := verified.Claims(&claims); err != nil {
		return nil, err
	}

	return &claims, nil
}
