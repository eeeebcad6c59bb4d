package services

import (
	"SaudeSync/models"
	"SaudeSync/repositories"
	"SaudeSync/utils"
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type RecordingService interface {
	List(ctx context.Context) []models.Recording
	Create(ctx context.Context, recording models.Recording) (models.Recording, error)
	Update(ctx context.Context, id string, patch models.RecordingPatch) (models.Recording, error)
	Delete(ctx context.Context, id string) error
}

type recordingService struct {
	repo *repositories.RecordingRepository
	now  func() time.Time
	log  *zap.Logger
}

func NewRecordingService(repo *repositories.RecordingRepository, log *zap.Logger) RecordingService {
	return &recordingService{repo: repo, now: time.Now, log: log}
}

func (s *recordingService) List(ctx context.Context) []models.Recording {
	return s.repo.List()
}

func (s *recordingService) Create(ctx context.Context, recording models.Recording) (models.Recording, error) {
	recording.ID = uuid.NewString()
	if recording.Timestamp.IsZero() {
		recording.Timestamp = s.now()
	}
	if err := utils.ValidateRecording(recording); err != nil {
		return models.Recording{}, err
	}

	s.repo.Add(ctx, recording)
	s.log.Info("Recording saved", zap.String("recording_id", recording.ID))
	return recording, nil
}

func (s *recordingService) Update(ctx context.Context, id string, patch models.RecordingPatch) (models.Recording, error) {
	current, ok := s.repo.Get(id)
	if !ok {
		return models.Recording{}, ErrRecordingNotFound
	}
	patch.Apply(&current)
	if err := utils.ValidateRecording(current); err != nil {
		return models.Recording{}, err
	}

	updated, ok := s.repo.Update(ctx, id, patch.Apply)
	if !ok {
		return models.Recording{}, ErrRecordingNotFound
	}
	return updated, nil
}

// Delete removes the recording. Consultations keep their reference to it.
func (s *recordingService) Delete(ctx context.Context, id string) error {
	if !s.repo.Delete(ctx, id) {
		return ErrRecordingNotFound
	}
	return nil
}
