package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid session token")

type tokenClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// TokenSigner turns session ids into tamper-evident cookie values.
type TokenSigner struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenSigner(secret string, ttl time.Duration) *TokenSigner {
	return &TokenSigner{secret: []byte(secret), ttl: normalizeTTL(ttl), now: time.Now}
}

func (signer *TokenSigner) Sign(sessionID string) (string, error) {
	if !ValidID(sessionID) {
		return "", ErrInvalidSessionID
	}
	now := signer.now()

	claims := tokenClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(signer.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(signer.secret)
}

// Parse verifies the signature and expiry of value and returns its session id.
func (signer *TokenSigner) Parse(value string) (string, error) {
	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(value, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return signer.secret, nil
	}, jwt.WithTimeFunc(signer.now), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	if !ValidID(claims.SessionID) {
		return "", ErrInvalidToken
	}
	return claims.SessionID, nil
}
