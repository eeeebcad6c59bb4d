package middlewares

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HttpError logs an error and writes an HTTP error response to the client.
func HttpError(c *gin.Context, log *zap.Logger, message string, status int, err error) {
	if err != nil {
		_ = c.Error(err)
	}
	log.Warn("HTTP error",
		zap.Int("status", status),
		zap.String("message", message),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	)
	c.JSON(status, gin.H{"error": message})
}
