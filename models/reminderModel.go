package models

import (
	"fmt"
	"time"
)

// LeadType is how long before the consultation a reminder fires.
type LeadType string

const (
	LeadOneDay     LeadType = "1day"
	LeadThreeHours LeadType = "3hours"
	LeadOneHour    LeadType = "1hour"
)

// LeadTypes lists every supported lead type.
var LeadTypes = []LeadType{LeadOneDay, LeadThreeHours, LeadOneHour}

var leadOffsets = map[LeadType]time.Duration{
	LeadOneDay:     24 * time.Hour,
	LeadThreeHours: 3 * time.Hour,
	LeadOneHour:    time.Hour,
}

var leadLabels = map[LeadType]string{
	LeadOneDay:     "1 dia antes",
	LeadThreeHours: "3 horas antes",
	LeadOneHour:    "1 hora antes",
}

// Offset returns the lead duration and whether the lead type is known.
func (l LeadType) Offset() (time.Duration, bool) {
	d, ok := leadOffsets[l]
	return d, ok
}

// Label is the human readable name of the lead type.
func (l LeadType) Label() string {
	if label, ok := leadLabels[l]; ok {
		return label
	}
	return string(l)
}

func (l LeadType) Valid() bool {
	_, ok := leadOffsets[l]
	return ok
}

// Reminder model
type Reminder struct {
	ID             string    `json:"id"`
	ConsultationID string    `json:"consultationId"`
	Type           LeadType  `json:"type"`
	ScheduledTime  time.Time `json:"scheduledTime"`
	Delivered      bool      `json:"delivered"`
}

// ReminderID builds the deterministic reminder id.
func ReminderID(consultationID string, lead LeadType) string {
	return fmt.Sprintf("%s-%s", consultationID, lead)
}

// NewReminder computes the fire time from the consultation date.
func NewReminder(consultationID string, consultationDate time.Time, lead LeadType) (Reminder, error) {
	offset, ok := lead.Offset()
	if !ok {
		return Reminder{}, fmt.Errorf("unknown reminder type %q", lead)
	}
	return Reminder{
		ID:             ReminderID(consultationID, lead),
		ConsultationID: consultationID,
		Type:           lead,
		ScheduledTime:  consultationDate.Add(-offset),
	}, nil
}

// Due reports whether the reminder should fire at now.
func (r Reminder) Due(now time.Time) bool {
	return !r.Delivered && !r.ScheduledTime.After(now)
}
