// Package security issues and validates the JSON Web Tokens that gate write
// operations, and provides the gin middleware enforcing that gate.
package security

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var errUnsupportedAlg = errors.New("token is not signed with HMAC")

// Config is the immutable token configuration
type Config struct {
	Secret     string
	Expiration time.Duration
}

// TokenProvider signs and verifies HS512 tokens whose subject is a username
type TokenProvider struct {
	cfg *Config
	now func() time.Time
}

// Option customizes a TokenProvider
type Option func(*TokenProvider)

// WithClock replaces time.Now for issuing and expiry checks
func WithClock(now func() time.Time) Option {
	return func(p *TokenProvider) {
		p.now = now
	}
}

// NewTokenProvider creates a provider. cfg must not be modified afterwards.
func NewTokenProvider(cfg *Config, opts ...Option) (*TokenProvider, error) {
	if cfg == nil || cfg.Secret == "" {
		return nil, errors.New("jwt secret is required")
	}
	if cfg.Expiration <= 0 {
		return nil, fmt.Errorf("jwt expiration must be positive, got %s", cfg.Expiration)
	}

	p := &TokenProvider{cfg: cfg, now: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// GenerateToken issues a token for username valid for the configured duration
func (p *TokenProvider) GenerateToken(username string) (string, error) {
	if username == "" {
		return "", errors.New("username is required")
	}

	now := p.now()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(p.cfg.Expiration)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	signed, err := token.SignedString([]byte(p.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// UsernameFromToken verifies token and returns its subject
func (p *TokenProvider) UsernameFromToken(token string) (string, error) {
	claims, err := p.parse(token)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// ValidateToken verifies signature, structure and expiry. The returned
// error, if any, is always a *TokenError.
func (p *TokenProvider) ValidateToken(token string) error {
	_, err := p.parse(token)
	return err
}

func (p *TokenProvider) parse(token string) (*jwt.RegisteredClaims, error) {
	if strings.TrimSpace(token) == "" {
		return nil, newTokenError(KindEmptyClaims, nil)
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, p.keyFunc,
		jwt.WithTimeFunc(p.now),
		jwt.WithExpirationRequired())
	if err != nil {
		return nil, classify(err)
	}

	if claims.Subject == "" {
		return nil, newTokenError(KindEmptyClaims, jwt.ErrTokenRequiredClaimMissing)
	}
	return claims, nil
}

func (p *TokenProvider) keyFunc(t *jwt.Token) (any, error) {
	if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("%w: %v", errUnsupportedAlg, t.Header["alg"])
	}
	return []byte(p.cfg.Secret), nil
}

// classify maps jwt library errors onto the closed set of token error kinds
func classify(err error) *TokenError {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return newTokenError(KindInvalidToken, err)
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		return newTokenError(KindUnsupported, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return newTokenError(KindInvalidSignature, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return newTokenError(KindExpired, err)
	case errors.Is(err, jwt.ErrTokenRequiredClaimMissing):
		return newTokenError(KindEmptyClaims, err)
	default:
		return newTokenError(KindInvalidToken, err)
	}
}
