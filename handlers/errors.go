package handlers

import (
	"SaudeSync/middlewares"
	"SaudeSync/models"
	"SaudeSync/repositories"
	"SaudeSync/services"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.uber.org/zap"
)

// ConsultationsBackLink is where the client should send the user after a missing consultation.
const ConsultationsBackLink = "/consultas"

// respondError maps service errors to HTTP responses.
func respondError(c *gin.Context, log *zap.Logger, err error) {
	var fieldErrs validation.Errors
	var ruleErr validation.Error
	var authErr *models.AuthError

	switch {
	case errors.As(err, &fieldErrs):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos", "fields": fieldErrs})
	case errors.As(err, &ruleErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": ruleErr.Error()})
	case errors.As(err, &authErr):
		status := authErr.Status
		if status == 0 {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": authErr.Message})
	case errors.Is(err, repositories.ErrConsultationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Consulta não encontrada", "back": ConsultationsBackLink})
	case errors.Is(err, services.ErrFileNotFound),
		errors.Is(err, services.ErrRecordingNotFound),
		errors.Is(err, services.ErrMedicationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, repositories.ErrInvalidLeadType):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, repositories.ErrReminderExists),
		errors.Is(err, repositories.ErrConsultationUndated),
		errors.Is(err, services.ErrIllegalConfirmation):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		middlewares.HttpError(c, log, "Internal server error", http.StatusInternalServerError, err)
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
}
