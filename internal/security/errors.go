package security

import (
	"errors"
	"net/http"
)

// TokenErrorKind classifies why a token was rejected
type TokenErrorKind int

const (
	KindInvalidSignature TokenErrorKind = iota + 1
	KindInvalidToken
	KindExpired
	KindUnsupported
	KindEmptyClaims
)

var kindMessages = map[TokenErrorKind]string{
	KindInvalidSignature: "Invalid JWT signature",
	KindInvalidToken:     "Invalid JWT token",
	KindExpired:          "Expired JWT token",
	KindUnsupported:      "Unsupported JWT token",
	KindEmptyClaims:      "JWT claims string is empty",
}

func (k TokenErrorKind) String() string {
	if msg, ok := kindMessages[k]; ok {
		return msg
	}
	return "unknown token error"
}

// TokenError is returned for every token the provider refuses.
// Kind is one of the Kind* constants; Err keeps the library cause.
type TokenError struct {
	Kind    TokenErrorKind
	Message string
	Err     error
}

func newTokenError(kind TokenErrorKind, cause error) *TokenError {
	return &TokenError{Kind: kind, Message: kind.String(), Err: cause}
}

func (e *TokenError) Error() string { return e.Message }

func (e *TokenError) Unwrap() error { return e.Err }

// Status is the HTTP status a handler should answer with. All token
// failures are client errors.
func (e *TokenError) Status() int { return http.StatusBadRequest }

// Is matches another *TokenError by kind so callers can write
// errors.Is(err, security.ErrExpiredToken).
func (e *TokenError) Is(target error) bool {
	t, ok := target.(*TokenError)
	return ok && t.Kind == e.Kind
}

// Sentinels for errors.Is comparisons
var (
	ErrInvalidSignature = &TokenError{Kind: KindInvalidSignature, Message: KindInvalidSignature.String()}
	ErrInvalidToken     = &TokenError{Kind: KindInvalidToken, Message: KindInvalidToken.String()}
	ErrExpiredToken     = &TokenError{Kind: KindExpired, Message: KindExpired.String()}
	ErrUnsupportedToken = &TokenError{Kind: KindUnsupported, Message: KindUnsupported.String()}
	ErrEmptyClaims      = &TokenError{Kind: KindEmptyClaims, Message: KindEmptyClaims.String()}
)

// AsTokenError unwraps err into a *TokenError
func AsTokenError(err error) (*TokenError, bool) {
	var te *TokenError
	if errors.As(err, &te) {
		return te, true
	}
	return nil, false
}
