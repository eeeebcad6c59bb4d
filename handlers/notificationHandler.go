package handlers

import (
	"SaudeSync/models"
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NotificationFeed reads recently emitted notifications.
type NotificationFeed interface {
	Recent(ctx context.Context, limit int) ([]models.Notification, error)
}

type NotificationHandler struct {
	feed NotificationFeed
	log  *zap.Logger
}

func NewNotificationHandler(feed NotificationFeed, log *zap.Logger) *NotificationHandler {
	return &NotificationHandler{feed: feed, log: log}
}

func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if err != nil || limit < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
		return
	}

	notifications, err := h.feed.Recent(c.Request.Context(), limit)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, notifications)
}
