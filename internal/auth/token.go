package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/upb/jobly/services"
)

// ErrEmptyUsername is returned when issuing a token for an identity without a username
var ErrEmptyUsername = errors.New("cannot issue token: empty username")

// Claims is the verified payload of a token
type Claims struct {
	Username string
	IsAdmin  bool
	IssuedAt time.Time
}

// Identity returns the identity the claims describe
func (c *Claims) Identity() *Identity {
	return &Identity{Username: c.Username, IsAdmin: c.IsAdmin}
}

type tokenClaims struct {
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 tokens.
// It holds no mutable state and is safe for concurrent use.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// TokenOption configures a TokenService
type TokenOption func(*TokenService)

// WithTTL makes issued tokens expire after d. Zero disables expiry.
func WithTTL(d time.Duration) TokenOption {
	return func(s *TokenService) {
		s.ttl = d
	}
}

// WithClock overrides the time source
func WithClock(now func() time.Time) TokenOption {
	return func(s *TokenService) {
		s.now = now
	}
}

// NewTokenService creates a token service signing with secret
func NewTokenService(secret []byte, opts ...TokenOption) *TokenService {
	s := &TokenService{
		secret: append([]byte(nil), secret...),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Issue signs a token for id. IsAdmin is false unless explicitly set.
func (s *TokenService) Issue(id Identity) (string, error) {
	if id.Username == "" {
		return "", ErrEmptyUsername
	}

	now := s.now()
	claims := tokenClaims{
		Username: id.Username,
		IsAdmin:  id.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if s.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.ttl))
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify checks the token signature and decodes its claims.
// Any failure returns services.ErrInvalidToken.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	parsed := &tokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, parsed, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return nil, services.ErrInvalidToken
	}
	if parsed.Username == "" {
		return nil, services.ErrInvalidToken
	}

	claims := &Claims{
		Username: parsed.Username,
		IsAdmin:  parsed.IsAdmin,
	}
	if parsed.IssuedAt != nil {
		claims.IssuedAt = parsed.IssuedAt.Time
	}
	return claims, nil
}

// ValidateToken verifies a bearer token and returns the identity it carries
func (s *TokenService) ValidateToken(_ context.Context, token string) (*Identity, error) {
	claims, err := s.Verify(token)
	if err != nil {
		return nil, err
	}
	return claims.Identity(), nil
}
