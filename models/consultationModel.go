package models

import (
	"time"
)

// ConsultationStatus is the lifecycle state of a consultation.
type ConsultationStatus string

const (
	StatusAwaitingDate        ConsultationStatus = "Aguardando Data"
	StatusScheduled           ConsultationStatus = "Agendada"
	StatusPendingConfirmation ConsultationStatus = "A Confirmar"
	StatusCompleted           ConsultationStatus = "Realizada"
	StatusNoShow              ConsultationStatus = "Não Compareceu"
)

// ConsultationStatuses lists every valid status.
var ConsultationStatuses = []ConsultationStatus{
	StatusAwaitingDate,
	StatusScheduled,
	StatusPendingConfirmation,
	StatusCompleted,
	StatusNoShow,
}

// AppointmentType tells whether the consultation happens in person or remotely.
type AppointmentType string

const (
	AppointmentPresential   AppointmentType = "presential"
	AppointmentTelemedicine AppointmentType = "telemedicine"
)

// Specialties accepted for a consultation.
var Specialties = []string{
	"Clínica Geral",
	"Cardiologia",
	"Dermatologia",
	"Endocrinologia",
	"Gastroenterologia",
	"Geriatria",
	"Ginecologia",
	"Hematologia",
	"Infectologia",
	"Medicina do Trabalho",
	"Nefrologia",
	"Neurologia",
	"Nutrologia",
	"Oftalmologia",
	"Oncologia",
	"Ortopedia",
	"Otorrinolaringologia",
	"Pediatria",
	"Psiquiatria",
	"Urologia",
}

// Consultation model
type Consultation struct {
	ID              string             `json:"id"`
	Doctor          string             `json:"doctor,omitempty"`
	Specialty       string             `json:"specialty"`
	Date            *time.Time         `json:"date,omitempty"`
	Address         string             `json:"address,omitempty"`
	Notes           string             `json:"notes,omitempty"`
	PatientNotes    string             `json:"patientNotes,omitempty"`
	AppointmentType AppointmentType    `json:"appointmentType,omitempty"`
	RecordingID     string             `json:"recordingId,omitempty"`
	Reminders       []Reminder         `json:"reminders,omitempty"`
	Status          ConsultationStatus `json:"status"`
}

// Clone returns a copy that shares no mutable state with c.
func (c Consultation) Clone() Consultation {
	if c.Date != nil {
		d := *c.Date
		c.Date = &d
	}
	if c.Reminders != nil {
		c.Reminders = append([]Reminder(nil), c.Reminders...)
	}
	return c
}

// HasReminder reports whether a reminder with the given lead type exists.
func (c Consultation) HasReminder(lead LeadType) bool {
	for _, r := range c.Reminders {
		if r.Type == lead {
			return true
		}
	}
	return false
}

// ConsultationPatch carries a partial update. Nil fields are left untouched;
// Reminders, when set, replaces the whole list.
type ConsultationPatch struct {
	Doctor          *string             `json:"doctor,omitempty"`
	Specialty       *string             `json:"specialty,omitempty"`
	Date            *time.Time          `json:"date,omitempty"`
	Address         *string             `json:"address,omitempty"`
	Notes           *string             `json:"notes,omitempty"`
	PatientNotes    *string             `json:"patientNotes,omitempty"`
	AppointmentType *AppointmentType    `json:"appointmentType,omitempty"`
	RecordingID     *string             `json:"recordingId,omitempty"`
	Reminders       *[]Reminder         `json:"reminders,omitempty"`
	Status          *ConsultationStatus `json:"status,omitempty"`
}

// Apply merges the patch into c.
func (p ConsultationPatch) Apply(c *Consultation) {
	if p.Doctor != nil {
		c.Doctor = *p.Doctor
	}
	if p.Specialty != nil {
		c.Specialty = *p.Specialty
	}
	if p.Date != nil {
		d := *p.Date
		c.Date = &d
	}
	if p.Address != nil {
		c.Address = *p.Address
	}
	if p.Notes != nil {
		c.Notes = *p.Notes
	}
	if p.PatientNotes != nil {
		c.PatientNotes = *p.PatientNotes
	}
	if p.AppointmentType != nil {
		c.AppointmentType = *p.AppointmentType
	}
	if p.RecordingID != nil {
		c.RecordingID = *p.RecordingID
	}
	if p.Reminders != nil {
		c.Reminders = append([]Reminder(nil), (*p.Reminders)...)
	}
	if p.Status != nil {
		c.Status = *p.Status
	}
}
