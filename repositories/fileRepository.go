package repositories

import (
	"SaudeSync/models"
	"context"

	"go.uber.org/zap"
)

// FileRepository stores attachment metadata. Deleting a consultation does not touch it.
type FileRepository struct {
	*Collection[models.AttachedFile]
}

func NewFileRepository(ctx context.Context, repo *SnapshotRepository[models.AttachedFile], log *zap.Logger) *FileRepository {
	return &FileRepository{Collection: NewCollection(ctx, repo, log)}
}

func (r *FileRepository) ByConsultation(consultationID string) []models.AttachedFile {
	return r.Filter(func(f models.AttachedFile) bool {
		return f.ConsultationID == consultationID
	})
}

func (r *FileRepository) ByCategory(consultationID string, category models.FileCategory) []models.AttachedFile {
	return r.Filter(func(f models.AttachedFile) bool {
		return f.ConsultationID == consultationID && f.Category == category
	})
}
