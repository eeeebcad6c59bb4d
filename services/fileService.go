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

var ErrFileNotFound = errors.New("file not found")

type FileService interface {
	List(ctx context.Context) []models.AttachedFile
	ByConsultation(ctx context.Context, consultationID string, category models.FileCategory) ([]models.AttachedFile, error)
	Create(ctx context.Context, file models.AttachedFile) (models.AttachedFile, error)
	Update(ctx context.Context, id string, patch models.AttachedFilePatch) (models.AttachedFile, error)
	Delete(ctx context.Context, id string) error
}

type fileService struct {
	repo *repositories.FileRepository
	now  func() time.Time
	log  *zap.Logger
}

func NewFileService(repo *repositories.FileRepository, log *zap.Logger) FileService {
	return &fileService{repo: repo, now: time.Now, log: log}
}

func (s *fileService) List(ctx context.Context) []models.AttachedFile {
	return s.repo.List()
}

// ByConsultation lists the consultation's files, narrowed to category when it is set.
func (s *fileService) ByConsultation(ctx context.Context, consultationID string, category models.FileCategory) ([]models.AttachedFile, error) {
	if category == "" {
		return s.repo.ByConsultation(consultationID), nil
	}
	if err := utils.ValidateCategory(category); err != nil {
		return nil, err
	}
	return s.repo.ByCategory(consultationID, category), nil
}

func (s *fileService) Create(ctx context.Context, file models.AttachedFile) (models.AttachedFile, error) {
	file.ID = uuid.NewString()
	if file.UploadDate.IsZero() {
		file.UploadDate = s.now()
	}
	if file.Category == "" {
		file.Category = models.CategoryOther
	}
	if err := utils.ValidateAttachedFile(file); err != nil {
		return models.AttachedFile{}, err
	}

	s.repo.Add(ctx, file)
	s.log.Info("File attached",
		zap.String("file_id", file.ID),
		zap.String("consultation_id", file.ConsultationID),
		zap.String("category", string(file.Category)),
	)
	return file, nil
}

func (s *fileService) Update(ctx context.Context, id string, patch models.AttachedFilePatch) (models.AttachedFile, error) {
	current, ok := s.repo.Get(id)
	if !ok {
		return models.AttachedFile{}, ErrFileNotFound
	}
	patch.Apply(&current)
	if err := utils.ValidateAttachedFile(current); err != nil {
		return models.AttachedFile{}, err
	}

	updated, ok := s.repo.Update(ctx, id, patch.Apply)
	if !ok {
		return models.AttachedFile{}, ErrFileNotFound
	}
	return updated, nil
}

func (s *fileService) Delete(ctx context.Context, id string) error {
	if !s.repo.Delete(ctx, id) {
		return ErrFileNotFound
	}
	return nil
}
