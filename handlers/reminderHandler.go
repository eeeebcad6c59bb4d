package handlers

import (
	"SaudeSync/models"
	"SaudeSync/services"
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ReminderTicker runs one reminder check.
type ReminderTicker interface {
	Tick(ctx context.Context, now time.Time) int
}

type ReminderHandler struct {
	service   services.ConsultationService
	scheduler ReminderTicker
	log       *zap.Logger
}

func NewReminderHandler(service services.ConsultationService, scheduler ReminderTicker, log *zap.Logger) *ReminderHandler {
	return &ReminderHandler{service: service, scheduler: scheduler, log: log}
}

func (h *ReminderHandler) AddReminder(c *gin.Context) {
	var body struct {
		Type models.LeadType `json:"type" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}

	reminder, err := h.service.AddReminder(c.Request.Context(), c.Param("id"), body.Type)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"reminder": reminder,
		"message":  "Lembrete criado: " + reminder.Type.Label(),
	})
}

func (h *ReminderHandler) RemoveReminder(c *gin.Context) {
	lead := models.LeadType(c.Param("type"))
	if err := h.service.RemoveReminder(c.Request.Context(), c.Param("id"), lead); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UpcomingReminders lists future consultations that have reminders, soonest first.
func (h *ReminderHandler) UpcomingReminders(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.UpcomingWithReminders(c.Request.Context()))
}

// CheckReminders runs a scheduler tick immediately.
func (h *ReminderHandler) CheckReminders(c *gin.Context) {
	delivered := h.scheduler.Tick(c.Request.Context(), time.Now())
	c.JSON(http.StatusOK, gin.H{"delivered": delivered})
}
