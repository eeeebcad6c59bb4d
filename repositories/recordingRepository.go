package repositories

import (
	"SaudeSync/models"
	"context"

	"go.uber.org/zap"
)

type RecordingRepository struct {
	*Collection[models.Recording]
}

func NewRecordingRepository(ctx context.Context, repo *SnapshotRepository[models.Recording], log *zap.Logger) *RecordingRepository {
	return &RecordingRepository{Collection: NewCollection(ctx, repo, log)}
}
