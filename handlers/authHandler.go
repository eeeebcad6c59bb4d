package handlers

import (
	"SaudeSync/middlewares"
	"SaudeSync/services"
	"SaudeSync/utils"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	AuthService services.AuthService
	log         *zap.Logger
}

func NewAuthHandler(authService services.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{AuthService: authService, log: log}
}

// Login signs the user in with the mock provider and returns the session.
func (h *AuthHandler) Login(c *gin.Context) {
	var credentials struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&credentials); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	session, err := h.AuthService.SignInWithPassword(c.Request.Context(), credentials.Email, credentials.Password)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	utils.SetSessionCookie(c, session.AccessToken, services.SessionExpiry)
	c.JSON(http.StatusOK, gin.H{"session": session, "user": session.User})
}

// Logout ends the current session.
func (h *AuthHandler) Logout(c *gin.Context) {
	session, err := middlewares.ExtractSessionFromContext(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	if err := h.AuthService.SignOut(c.Request.Context(), session.User.ID); err != nil {
		middlewares.HttpError(c, h.log, "Failed to sign out", http.StatusInternalServerError, err)
		return
	}

	utils.ClearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// Session returns the caller's session, or a null session when the token is absent or stale.
func (h *AuthHandler) Session(c *gin.Context) {
	token, err := middlewares.ExtractBearerToken(c)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"session": nil})
		return
	}

	session, err := h.AuthService.Authenticate(c.Request.Context(), token)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"session": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}
