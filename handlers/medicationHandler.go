package handlers

import (
	"SaudeSync/models"
	"SaudeSync/services"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type MedicationHandler struct {
	service services.MedicationService
	log     *zap.Logger
}

func NewMedicationHandler(service services.MedicationService, log *zap.Logger) *MedicationHandler {
	return &MedicationHandler{service: service, log: log}
}

func (h *MedicationHandler) ListMedications(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.List(c.Request.Context()))
}

func (h *MedicationHandler) CreateMedication(c *gin.Context) {
	var medication models.Medication
	if err := c.ShouldBindJSON(&medication); err != nil {
		badRequest(c, err)
		return
	}

	created, err := h.service.Create(c.Request.Context(), medication)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *MedicationHandler) UpdateMedication(c *gin.Context) {
	var patch models.MedicationPatch
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

func (h *MedicationHandler) DeleteMedication(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
