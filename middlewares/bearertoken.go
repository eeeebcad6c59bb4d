package middlewares

import (
	"SaudeSync/utils"
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var (
	ErrMissingToken       = errors.New("Authorization header is missing")
	ErrInvalidTokenFormat = errors.New("Invalid Authorization header format")
)

// ExtractBearerToken returns the token from the Authorization header, falling back to the
// session cookie.
func ExtractBearerToken(c *gin.Context) (string, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		if cookie, err := c.Cookie(utils.SessionCookieName); err == nil && cookie != "" {
			return cookie, nil
		}
		return "", ErrMissingToken
	}

	// Check if the Authorization header has the Bearer scheme
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", ErrInvalidTokenFormat
	}

	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	if token == "" {
		return "", ErrInvalidTokenFormat
	}
	return token, nil
}

// LoggingMiddleware logs information about incoming requests.
func LoggingMiddleware(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch {
		case c.Writer.Status() >= 500:
			log.Error("Request", fields...)
		case c.Writer.Status() >= 400:
			log.Warn("Request", fields...)
		default:
			log.Info("Request", fields...)
		}
	}
}
