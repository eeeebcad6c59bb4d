package utils

import (
	"time"

	"github.com/gin-gonic/gin"
)

const SessionCookieName = "accessToken"

func SetSessionCookie(c *gin.Context, accessToken string, expiry time.Duration) {
	c.SetCookie(SessionCookieName, accessToken, int(expiry.Seconds()), "/", "", secureCookies(), true)
}

func ClearSessionCookie(c *gin.Context) {
	c.SetCookie(SessionCookieName, "", -1, "/", "", secureCookies(), true)
}

func secureCookies() bool {
	return gin.Mode() != gin.DebugMode // Toggle for local dev
}
