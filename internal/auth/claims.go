// Package auth verifies the bearer tokens issued by the identity service.
// This service never issues tokens; it only parses and validates them.
package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/evcsm/EVCS-BookingService/internal/domain"
)

var (
	// ErrInvalidToken is returned when a token fails signature or claims validation.
	ErrInvalidToken = errors.New("auth: invalid token")
)

// Claims are the custom claims carried by platform tokens. The subject is the
// user id; EV-owner tokens additionally carry the owner's NIC.
type Claims struct {
	Role string `json:"role"`
	Nic  string `json:"nic,omitempty"`
	jwt.RegisteredClaims
}

// UserRole returns the role claim as a domain role.
func (c *Claims) UserRole() domain.UserRole {
	return domain.UserRole(c.Role)
}

// Verifier validates HS256-signed bearer tokens.
type Verifier struct {
	secret []byte
}

// NewVerifier creates a verifier with the shared signing secret.
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Parse validates the token string and returns its claims.
func (v *Verifier) Parse(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	return claims, nil
}
