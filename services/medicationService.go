package services

import (
	"SaudeSync/models"
	"SaudeSync/repositories"
	"SaudeSync/utils"
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrMedicationNotFound = errors.New("medication not found")

type MedicationService interface {
	List(ctx context.Context) []models.Medication
	Create(ctx context.Context, medication models.Medication) (models.Medication, error)
	Update(ctx context.Context, id string, patch models.MedicationPatch) (models.Medication, error)
	Delete(ctx context.Context, id string) error
}

type medicationService struct {
	repo *repositories.MedicationRepository
	now  func() time.Time
	log  *zap.Logger
}

func NewMedicationService(repo *repositories.MedicationRepository, log *zap.Logger) MedicationService {
	return &medicationService{repo: repo, now: time.Now, log: log}
}

func (s *medicationService) List(ctx context.Context) []models.Medication {
	return s.repo.List()
}

func (s *medicationService) Create(ctx context.Context, medication models.Medication) (models.Medication, error) {
	medication.ID = uuid.NewString()
	medication.CreatedAt = s.now()
	if err := utils.ValidateMedication(medication); err != nil {
		return models.Medication{}, err
	}

	s.repo.Add(ctx, medication)
	s.log.Info("Medication added", zap.String("medication_id", medication.ID), zap.String("name", medication.Name))
	return medication, nil
}

func (s *medicationService) Update(ctx context.Context, id string, patch models.MedicationPatch) (models.Medication, error) {
	current, ok := s.repo.Get(id)
	if !ok {
		return models.Medication{}, ErrMedicationNotFound
	}
	patch.Apply(&current)
	if err := utils.ValidateMedication(current); err != nil {
		return models.Medication{}, err
	}

	updated, ok := s.repo.Update(ctx, id, patch.Apply)
	if !ok {
		return models.Medication{}, ErrMedicationNotFound
	}
	return updated, nil
}

func (s *medicationService) Delete(ctx context.Context, id string) error {
	if !s.repo.Delete(ctx, id) {
		return ErrMedicationNotFound
	}
	return nil
}
