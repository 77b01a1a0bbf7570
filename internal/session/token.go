package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/parkd-dev/parkd/internal/roles"
)

var (
	ErrNoSecret     = errors.New("session secret not configured")
	ErrInvalidToken = errors.New("invalid session token")
)

// Claims is the JWT payload of a session token
type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// TokenCodec signs and reads HS256 session tokens
type TokenCodec struct {
	secret []byte
}

// NewTokenCodec creates a codec for the given shared secret
func NewTokenCodec(secret string) (*TokenCodec, error) {
	if secret == "" {
		return nil, ErrNoSecret
	}
	return &TokenCodec{secret: []byte(secret)}, nil
}

// Encode signs a token for s. A zero ttl produces a token without expiry.
func (c *TokenCodec) Encode(s Session, ttl time.Duration) (string, error) {
	if s.Username == "" {
		return "", fmt.Errorf("%w: username required", ErrInvalidToken)
	}

	now := time.Now()
	claims := Claims{
		Username: s.Username,
		Role:     s.Role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   s.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Decode validates a token and returns the session it carries
func (c *TokenCodec) Decode(tokenString string) (Session, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return c.secret, nil
	})
	if err != nil {
		return Anonymous, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Username == "" {
		return Anonymous, ErrInvalidToken
	}

	role, err := roles.Parse(claims.Role)
	if err != nil {
		return Anonymous, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	return Session{Username: claims.Username, Role: role}, nil
}
