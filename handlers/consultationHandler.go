package handlers

import (
	"SaudeSync/models"
	"SaudeSync/services"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NotesScheduler debounces patient-notes drafts.
type NotesScheduler interface {
	Schedule(consultationID, notes string)
}

type ConsultationHandler struct {
	service services.ConsultationService
	notes   NotesScheduler
	log     *zap.Logger
}

func NewConsultationHandler(service services.ConsultationService, notes NotesScheduler, log *zap.Logger) *ConsultationHandler {
	return &ConsultationHandler{service: service, notes: notes, log: log}
}

func (h *ConsultationHandler) ListConsultations(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.List(c.Request.Context()))
}

func (h *ConsultationHandler) GetConsultation(c *gin.Context) {
	consultation, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, consultation)
}

func (h *ConsultationHandler) CreateConsultation(c *gin.Context) {
	var input services.CreateConsultationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	consultation, err := h.service.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, consultation)
}

func (h *ConsultationHandler) UpdateConsultation(c *gin.Context) {
	var patch models.ConsultationPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, err)
		return
	}

	consultation, err := h.service.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, consultation)
}

func (h *ConsultationHandler) DeleteConsultation(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ConsultationHandler) ConfirmConsultation(c *gin.Context) {
	var body struct {
		Status models.ConsultationStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}

	consultation, err := h.service.Confirm(c.Request.Context(), c.Param("id"), body.Status)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, consultation)
}

func (h *ConsultationHandler) AssociateRecording(c *gin.Context) {
	var body struct {
		RecordingID string `json:"recordingId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}

	consultation, err := h.service.AssociateRecording(c.Request.Context(), c.Param("id"), body.RecordingID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, consultation)
}

// SavePatientNotes accepts a draft; it is stored once the user stops typing.
func (h *ConsultationHandler) SavePatientNotes(c *gin.Context) {
	var body struct {
		PatientNotes string `json:"patientNotes"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}

	id := c.Param("id")
	if _, err := h.service.Get(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err)
		return
	}
	h.notes.Schedule(id, body.PatientNotes)
	c.JSON(http.StatusAccepted, gin.H{"message": "Salvando..."})
}
