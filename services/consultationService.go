package services

import (
	"SaudeSync/models"
	"SaudeSync/repositories"
	"SaudeSync/utils"
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"
)

var (
	ErrIllegalConfirmation = errors.New("only consultations awaiting confirmation can be confirmed")
	ErrRecordingNotFound   = errors.New("recording not found")
)

// CreateConsultationInput is the payload accepted when registering a consultation.
type CreateConsultationInput struct {
	Doctor          string                     `json:"doctor"`
	Specialty       string                     `json:"specialty"`
	Date            *time.Time                 `json:"date"`
	Address         string                     `json:"address"`
	Notes           string                     `json:"notes"`
	AppointmentType models.AppointmentType     `json:"appointmentType"`
	Status          *models.ConsultationStatus `json:"status"`
}

type ConsultationService interface {
	List(ctx context.Context) []models.Consultation
	Get(ctx context.Context, id string) (models.Consultation, error)
	Create(ctx context.Context, input CreateConsultationInput) (models.Consultation, error)
	Update(ctx context.Context, id string, patch models.ConsultationPatch) (models.Consultation, error)
	Delete(ctx context.Context, id string) error
	Confirm(ctx context.Context, id string, outcome models.ConsultationStatus) (models.Consultation, error)
	AddReminder(ctx context.Context, id string, lead models.LeadType) (models.Reminder, error)
	RemoveReminder(ctx context.Context, id string, lead models.LeadType) error
	AssociateRecording(ctx context.Context, id, recordingID string) (models.Consultation, error)
	UpcomingWithReminders(ctx context.Context) []models.Consultation
}

type consultationService struct {
	repo       *repositories.ConsultationRepository
	recordings *repositories.RecordingRepository
	loc        *time.Location
	now        func() time.Time
	log        *zap.Logger
}

func NewConsultationService(repo *repositories.ConsultationRepository, recordings *repositories.RecordingRepository, loc *time.Location, log *zap.Logger) ConsultationService {
	if loc == nil {
		loc = time.UTC
	}
	return &consultationService{repo: repo, recordings: recordings, loc: loc, now: time.Now, log: log}
}

func (s *consultationService) List(ctx context.Context) []models.Consultation {
	return s.repo.List()
}

func (s *consultationService) Get(ctx context.Context, id string) (models.Consultation, error) {
	c, ok := s.repo.Get(id)
	if !ok {
		return models.Consultation{}, repositories.ErrConsultationNotFound
	}
	return c, nil
}

func (s *consultationService) Create(ctx context.Context, input CreateConsultationInput) (models.Consultation, error) {
	now := s.now()
	c := models.Consultation{
		Doctor:          input.Doctor,
		Specialty:       input.Specialty,
		Date:            input.Date,
		Address:         input.Address,
		Notes:           input.Notes,
		AppointmentType: input.AppointmentType,
		Status:          s.initialStatus(input.Date, now),
	}
	if c.AppointmentType == "" {
		c.AppointmentType = models.AppointmentPresential
	}
	if input.Status != nil {
		c.Status = *input.Status
	}

	if err := utils.ValidateConsultation(c); err != nil {
		return models.Consultation{}, err
	}

	c = s.repo.AddWithTimestampID(ctx, c, now.UnixMilli())
	s.log.Info("Consultation created",
		zap.String("consultation_id", c.ID),
		zap.String("specialty", c.Specialty),
		zap.String("status", string(c.Status)),
	)
	return c.Clone(), nil
}

// Update merges the patch. Setting a date on an undated consultation schedules it unless the
// patch also sets a status.
func (s *consultationService) Update(ctx context.Context, id string, patch models.ConsultationPatch) (models.Consultation, error) {
	current, ok := s.repo.Get(id)
	if !ok {
		return models.Consultation{}, repositories.ErrConsultationNotFound
	}

	if patch.Date != nil && patch.Status == nil && current.Status == models.StatusAwaitingDate {
		scheduled := models.StatusScheduled
		patch.Status = &scheduled
	}

	merged := current.Clone()
	patch.Apply(&merged)
	if err := utils.ValidateConsultation(merged); err != nil {
		return models.Consultation{}, err
	}

	updated, ok := s.repo.Update(ctx, id, patch)
	if !ok {
		return models.Consultation{}, repositories.ErrConsultationNotFound
	}
	return updated, nil
}

func (s *consultationService) Delete(ctx context.Context, id string) error {
	if !s.repo.Delete(ctx, id) {
		return repositories.ErrConsultationNotFound
	}
	s.log.Info("Consultation deleted", zap.String("consultation_id", id))
	return nil
}

// Confirm records the outcome of a consultation whose date has passed.
func (s *consultationService) Confirm(ctx context.Context, id string, outcome models.ConsultationStatus) (models.Consultation, error) {
	if err := utils.ValidateOutcome(outcome); err != nil {
		return models.Consultation{}, err
	}

	current, ok := s.repo.Get(id)
	if !ok {
		return models.Consultation{}, repositories.ErrConsultationNotFound
	}
	if current.Status != models.StatusPendingConfirmation {
		return models.Consultation{}, fmt.Errorf("%w: status is %s", ErrIllegalConfirmation, current.Status)
	}

	if s.repo.TransitionStatuses(ctx, []string{id}, models.StatusPendingConfirmation, outcome) == 0 {
		return models.Consultation{}, ErrIllegalConfirmation
	}
	updated, _ := s.repo.Get(id)
	return updated, nil
}

func (s *consultationService) AddReminder(ctx context.Context, id string, lead models.LeadType) (models.Reminder, error) {
	reminder, err := s.repo.AddReminder(ctx, id, lead)
	if err != nil {
		return models.Reminder{}, err
	}
	s.log.Info("Reminder added",
		zap.String("reminder_id", reminder.ID),
		zap.Time("scheduled_time", reminder.ScheduledTime),
	)
	return reminder, nil
}

func (s *consultationService) RemoveReminder(ctx context.Context, id string, lead models.LeadType) error {
	if err := utils.ValidateLeadType(lead); err != nil {
		return err
	}
	return s.repo.RemoveReminder(ctx, id, lead)
}

func (s *consultationService) AssociateRecording(ctx context.Context, id, recordingID string) (models.Consultation, error) {
	if _, ok := s.recordings.Get(recordingID); !ok {
		return models.Consultation{}, ErrRecordingNotFound
	}
	if !s.repo.AssociateRecording(ctx, id, recordingID) {
		return models.Consultation{}, repositories.ErrConsultationNotFound
	}
	return s.Get(ctx, id)
}

// UpcomingWithReminders lists future consultations that have at least one reminder, soonest first.
func (s *consultationService) UpcomingWithReminders(ctx context.Context) []models.Consultation {
	now := s.now()
	var out []models.Consultation
	for _, c := range s.repo.List() {
		if c.Date != nil && c.Date.After(now) && len(c.Reminders) > 0 {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(*out[j].Date)
	})
	return out
}

// initialStatus derives the status of a new consultation from its date.
func (s *consultationService) initialStatus(date *time.Time, now time.Time) models.ConsultationStatus {
	if date == nil {
		return models.StatusAwaitingDate
	}
	local := now.In(s.loc)
	startOfDay := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.loc)
	if date.Before(startOfDay) {
		return models.StatusCompleted
	}
	return models.StatusScheduled
}
