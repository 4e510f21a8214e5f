// Package auth issues and verifies session tokens and hashes passwords.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/investkeeper/internal/common"
)

// DefaultTokenValidity is how long an issued token stays valid.
const DefaultTokenValidity = 24 * time.Hour

// Claims is the identity carried by a token, plus the registered claims
// (expiry and issue time).
type Claims struct {
	jwt.RegisteredClaims
	UserID   int    `json:"userId"`
	Username string `json:"username"`
}

// Identity is the verified caller attached to a request.
type Identity struct {
	UserID   int
	Username string
}

// TokenService signs tokens with an HMAC secret held by the server.
type TokenService struct {
	secret   []byte
	validity time.Duration
	now      func() time.Time
}

// NewTokenService fails with common.ErrSecretMissing when secret is empty;
// a zero validity means DefaultTokenValidity.
func NewTokenService(secret string, validity time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, common.ErrSecretMissing
	}
	if validity <= 0 {
		validity = DefaultTokenValidity
	}
	return &TokenService{secret: []byte(secret), validity: validity, now: time.Now}, nil
}

// Issue returns a signed HS256 token for the user, expiring after the
// configured validity.
func (s *TokenService) Issue(userID int, username string) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.validity)),
		},
		UserID:   userID,
		Username: username,
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and expiry of tokenString and returns the
// identity it carries.
func (s *TokenService) Verify(tokenString string) (Identity, error) {
	if tokenString == "" {
		return Identity{}, common.ErrTokenMissing
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Identity{}, common.ErrTokenExpired
		}
		return Identity{}, fmt.Errorf("%w: %v", common.ErrTokenInvalid, err)
	}

	if !token.Valid || claims.UserID <= 0 {
		return Identity{}, common.ErrTokenInvalid
	}

	return Identity{UserID: claims.UserID, Username: claims.Username}, nil
}
