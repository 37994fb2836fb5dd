package handlers

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/job-corner/internal/apperrors"
	"github.com/justsurfingit/job-corner/internal/auth"
)

const (
	principalKey = "principal"
	tokenKey     = "session_token"
)

// SessionMiddleware resolves the session token once per request and stores the
// principal on the context. Anonymous requests pass through; the services decide.
func SessionMiddleware(sessions *auth.SessionStore, cookieName string, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessionToken(c, cookieName)
		if token == "" {
			c.Next()
			return
		}
		principal, err := sessions.Lookup(c.Request.Context(), token)
		switch {
		case err == nil:
			c.Set(principalKey, principal)
			c.Set(tokenKey, token)
		case errors.Is(err, apperrors.ErrUnauthenticated):
			// stale or forged token, treated as anonymous
		default:
			respondError(c, logger, err)
			c.Abort()
			return
		}
		c.Next()
	}
}

func sessionToken(c *gin.Context, cookieName string) string {
	if header := c.GetHeader("Authorization"); header != "" {
		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	token, err := c.Cookie(cookieName)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(token)
}

// principalFrom returns nil for anonymous requests.
func principalFrom(c *gin.Context) *auth.Principal {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil
	}
	p, _ := v.(*auth.Principal)
	return p
}
