package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthCheck reports whether a backing service is reachable.
type HealthCheck func(ctx context.Context) error

// rootHandler handles requests to the root path
func rootHandler(c *gin.Context) {
	c.String(http.StatusOK, "Welcome to SaúdeSync!")
}

func healthHandler(checks map[string]HealthCheck) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := http.StatusOK
		report := gin.H{}
		for name, check := range checks {
			if err := check(c.Request.Context()); err != nil {
				status = http.StatusServiceUnavailable
				report[name] = err.Error()
				continue
			}
			report[name] = "ok"
		}
		c.JSON(status, gin.H{"status": http.StatusText(status), "checks": report})
	}
}

// SetupRootRoute sets up the welcome and health routes
func SetupRootRoute(router *gin.Engine, checks map[string]HealthCheck) {
	router.GET("/", rootHandler)
	router.GET("/healthz", healthHandler(checks))
}
