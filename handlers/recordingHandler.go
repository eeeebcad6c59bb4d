package handlers

import (
	"SaudeSync/models"
	"SaudeSync/services"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type RecordingHandler struct {
	service services.RecordingService
	log     *zap.Logger
}

func NewRecordingHandler(service services.RecordingService, log *zap.Logger) *RecordingHandler {
	return &RecordingHandler{service: service, log: log}
}

func (h *RecordingHandler) ListRecordings(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.List(c.Request.Context()))
}

func (h *RecordingHandler) CreateRecording(c *gin.Context) {
	var recording models.Recording
	if err := c.ShouldBindJSON(&recording); err != nil {
		badRequest(c, err)
		return
	}

	created, err := h.service.Create(c.Request.Context(), recording)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *RecordingHandler) UpdateRecording(c *gin.Context) {
	var patch models.RecordingPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, err)
		return
	}

	updated, err := h.service.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *RecordingHandler) DeleteRecording(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
