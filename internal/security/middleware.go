package security

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	// HeaderName carries the bearer token on gated routes
	HeaderName = "Authorization"
	// DefaultHeaderPrefix precedes the raw token in HeaderName
	DefaultHeaderPrefix = "Bearer "

	usernameKey = "username"
)

// TokenValidator resolves a raw token to the username it was issued for
type TokenValidator interface {
	UsernameFromToken(token string) (string, error)
}

// RequireAuth rejects requests without a valid bearer token before they reach
// the handler. On success the token subject is stored for Username.
func RequireAuth(validator TokenValidator, prefix string) gin.HandlerFunc {
	if prefix == "" {
		prefix = DefaultHeaderPrefix
	}

	return func(c *gin.Context) {
		header := c.GetHeader(HeaderName)
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Authorization header is required",
			})
			return
		}

		if !strings.HasPrefix(header, prefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Authorization header must start with " + strings.TrimSpace(prefix),
			})
			return
		}

		username, err := validator.UsernameFromToken(strings.TrimPrefix(header, prefix))
		if err != nil {
			status := http.StatusUnauthorized
			msg := "Unauthorized"
			if te, ok := AsTokenError(err); ok {
				status = te.Status()
				msg = te.Message
			}
			slog.Warn("Rejected token",
				"error", err.Error(),
				"path", c.FullPath(),
				"request_id", c.GetString("request_id"),
			)
			c.AbortWithStatusJSON(status, gin.H{
				"success": false,
				"error":   msg,
			})
			return
		}

		c.Set(usernameKey, username)
		c.Next()
	}
}

// Username returns the authenticated username set by RequireAuth
func Username(c *gin.Context) (string, bool) {
	v, ok := c.Get(usernameKey)
	if !ok {
		return "", false
	}
	username, ok := v.(string)
	return username, ok && username != ""
}
