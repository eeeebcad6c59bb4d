package handlers

import (
	"SaudeSync/models"
	"SaudeSync/services"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type FileHandler struct {
	service services.FileService
	log     *zap.Logger
}

func NewFileHandler(service services.FileService, log *zap.Logger) *FileHandler {
	return &FileHandler{service: service, log: log}
}

func (h *FileHandler) ListFiles(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.List(c.Request.Context()))
}

// ListConsultationFiles lists a consultation's files, optionally narrowed by ?category=.
func (h *FileHandler) ListConsultationFiles(c *gin.Context) {
	category := models.FileCategory(c.Query("category"))
	files, err := h.service.ByConsultation(c.Request.Context(), c.Param("id"), category)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, files)
}

func (h *FileHandler) CreateFile(c *gin.Context) {
	var file models.AttachedFile
	if err := c.ShouldBindJSON(&file); err != nil {
		badRequest(c, err)
		return
	}

	created, err := h.service.Create(c.Request.Context(), file)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *FileHandler) UpdateFile(c *gin.Context) {
	var patch models.AttachedFilePatch
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

func (h *FileHandler) DeleteFile(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
