package middlewares

import (
	"SaudeSync/models"
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// contextKey defines a custom context key type to store session details in the context.
type contextKey string

const sessionKey contextKey = "session"

// SessionAuthenticator resolves an access token to its live session.
type SessionAuthenticator interface {
	Authenticate(ctx context.Context, accessToken string) (*models.Session, error)
}

// TokenAuthMiddleware validates the session token and adds the session to the request context.
func TokenAuthMiddleware(auth SessionAuthenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := ExtractBearerToken(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		session, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired session"})
			return
		}

		ctx := context.WithValue(c.Request.Context(), sessionKey, session)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// ExtractSessionFromContext retrieves the authenticated session from the context.
func ExtractSessionFromContext(ctx context.Context) (*models.Session, error) {
	session, ok := ctx.Value(sessionKey).(*models.Session)
	if !ok {
		return nil, errors.New("session not found in context")
	}
	return session, nil
}
