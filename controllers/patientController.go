package controllers

import (
	"SaudeSync/handlers"

	"github.com/gin-gonic/gin"
)

// PatientHandlers groups the handlers serving the patient's health record.
type PatientHandlers struct {
	Consultation *handlers.ConsultationHandler
	Reminder     *handlers.ReminderHandler
	File         *handlers.FileHandler
	Recording    *handlers.RecordingHandler
	Medication   *handlers.MedicationHandler
	Notification *handlers.NotificationHandler
}

// SetupPatientRoutes registers the health-record routes on an authenticated group.
func SetupPatientRoutes(router gin.IRoutes, h PatientHandlers) {
	router.GET("/consultations", h.Consultation.ListConsultations)
	router.POST("/consultations", h.Consultation.CreateConsultation)
	router.GET("/consultations/:id", h.Consultation.GetConsultation)
	router.PATCH("/consultations/:id", h.Consultation.UpdateConsultation)
	router.DELETE("/consultations/:id", h.Consultation.DeleteConsultation)
	router.POST("/consultations/:id/confirm", h.Consultation.ConfirmConsultation)
	router.PUT("/consultations/:id/recording", h.Consultation.AssociateRecording)
	router.PUT("/consultations/:id/notes", h.Consultation.SavePatientNotes)

	router.POST("/consultations/:id/reminders", h.Reminder.AddReminder)
	router.DELETE("/consultations/:id/reminders/:type", h.Reminder.RemoveReminder)
	router.GET("/reminders/upcoming", h.Reminder.UpcomingReminders)
	router.POST("/reminders/check", h.Reminder.CheckReminders)

	router.GET("/consultations/:id/files", h.File.ListConsultationFiles)
	router.GET("/files", h.File.ListFiles)
	router.POST("/files", h.File.CreateFile)
	router.PATCH("/files/:id", h.File.UpdateFile)
	router.DELETE("/files/:id", h.File.DeleteFile)

	router.GET("/recordings", h.Recording.ListRecordings)
	router.POST("/recordings", h.Recording.CreateRecording)
	router.PATCH("/recordings/:id", h.Recording.UpdateRecording)
	router.DELETE("/recordings/:id", h.Recording.DeleteRecording)

	router.GET("/medications", h.Medication.ListMedications)
	router.POST("/medications", h.Medication.CreateMedication)
	router.PATCH("/medications/:id", h.Medication.UpdateMedication)
	router.DELETE("/medications/:id", h.Medication.DeleteMedication)

	router.GET("/notifications", h.Notification.ListNotifications)
}
