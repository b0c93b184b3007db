package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// clockSkew tolerated between the API and whoever minted the token.
const clockSkew = 30 * time.Second

// AccessClaims are the claims carried by an operator access token.
type AccessClaims struct {
	Username string `json:"usr,omitempty"`
	jwt.RegisteredClaims
}

// AccessTokenIssuer mints HS256 access tokens for operators.
type AccessTokenIssuer struct {
	Secret string
	Issuer string
	TTL    time.Duration
}

// Issue signs a token for userID valid from now for TTL and returns it with its expiry.
func (i AccessTokenIssuer) Issue(userID, username string, now time.Time) (string, time.Time, error) {
	if i.Secret == "" {
		return "", time.Time{}, errors.New("access token secret is empty")
	}
	expiresAt := now.Add(i.TTL)
	claims := AccessClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.Issuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(i.Secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, expiresAt, nil
}

// ParseAccessToken verifies the signature and time claims of an HS256 token.
// A token without a subject is rejected.
func ParseAccessToken(tokenString, secret string) (*AccessClaims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(clockSkew),
	)
	claims := &AccessClaims{}
	_, err := parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if claims.Subject == "" {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}
