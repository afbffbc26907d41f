package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "portfolio-site"

// User is an authenticated principal.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// ExtractToken extracts the token from a "Bearer <token>" header value.
func ExtractToken(authHeader string) (string, error) {
	if authHeader == "" {
		return "", errors.New("empty authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("invalid authorization header format")
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", errors.New("empty token")
	}
	return token, nil
}

// JWTAuth issues and verifies HS256 access tokens.
type JWTAuth struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewJWTAuth(secret string, ttl time.Duration) (*JWTAuth, error) {
	if secret == "" {
		return nil, errors.New("JWT secret key cannot be empty")
	}
	if ttl == 0 {
		ttl = 12 * time.Hour
	}
	return &JWTAuth{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

type claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Issue signs an access token for u and returns it with its expiry.
func (a *JWTAuth) Issue(u User) (string, time.Time, error) {
	now := a.now()
	exp := now.Add(a.ttl)
	c := claims{
		Email: u.Email,
		Role:  u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(a.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, exp, nil
}

// Verify parses an access token and returns its user.
func (a *JWTAuth) Verify(tokenString string) (*User, error) {
	token, err := jwt.ParseWithClaims(tokenString, &claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return a.secret, nil
	}, jwt.WithIssuer(issuer), jwt.WithTimeFunc(a.now))
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return &User{ID: c.Subject, Email: c.Email, Role: c.Role}, nil
}
