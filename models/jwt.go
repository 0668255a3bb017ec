package models

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var JWT = struct {
	SESSION_COOKIE_NAME string
	SESSION_SCOPE       string
}{
	SESSION_COOKIE_NAME: "palette_session",
	SESSION_SCOPE:       "palette",
}

// SessionClaims identify an in-memory session. They carry no user identity.
type SessionClaims struct {
	SessionID string `json:"sessionId"`
	Scope     string `json:"scope"`
	jwt.RegisteredClaims
}

func NewSessionToken(sessionID string, key []byte, issuedAt, expiry time.Time) (string, error) {
	claims := SessionClaims{
		SessionID: sessionID,
		Scope:     JWT.SESSION_SCOPE,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiry),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(key)
	if err != nil {
		return "", fmt.Errorf("error signing session token %v", err)
	}
	return signed, nil
}

func ValidateSessionToken(tokenString string, key []byte) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return key, nil
	})

	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || claims.Scope != JWT.SESSION_SCOPE || claims.SessionID == "" {
		return nil, fmt.Errorf("invalid token claims")
	}

	return claims, nil
}
