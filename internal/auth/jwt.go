package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrNoSubject = errors.New("jwt token has no subject")

// Identity is the caller a token speaks for.
type Identity struct {
	UserID string
	Name   string
}

// Booker is the string recorded on reservations: the display name when the
// token carries one, otherwise the user ID.
func (i Identity) Booker() string {
	if i.Name != "" {
		return i.Name
	}
	return i.UserID
}

// Claims are the JWT claims of a booking token. Subject and name are opaque.
type Claims struct {
	Name string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

func (c *Claims) Identity() Identity {
	return Identity{UserID: c.Subject, Name: c.Name}
}

// JWTManager signs and verifies HS256 booking tokens.
type JWTManager struct {
	secret []byte
	ttl    time.Duration
}

func NewJWTManager(secret string, ttl time.Duration) *JWTManager {
	return &JWTManager{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// IssueToken signs a token for id that expires after the manager's TTL.
// Production tokens come from the identity provider; this serves cmd/devtoken and tests.
func (m *JWTManager) IssueToken(id Identity) (string, error) {
	if id.UserID == "" {
		return "", ErrNoSubject
	}
	now := time.Now().UTC()
	claims := &Claims{
		Name: id.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign jwt: %w", err)
	}
	return signed, nil
}

// ParseAndValidate verifies the signature and expiry of tokenStr and returns its claims.
func (m *JWTManager) ParseAndValidate(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("failed to parse jwt: %w", err)
	}
	if claims.Subject == "" {
		return nil, ErrNoSubject
	}
	return claims, nil
}
