package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTProvider self-signs a short-lived HS256 token per request
type JWTProvider struct {
	Secret  []byte
	Subject string
	TTL     time.Duration
}

func (p *JWTProvider) Token(ctx context.Context) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   p.Subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(p.TTL)),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.Secret)
}
