package repositories

import (
	"SaudeSync/models"
	"context"

	"go.uber.org/zap"
)

type MedicationRepository struct {
	*Collection[models.Medication]
}

func NewMedicationRepository(ctx context.Context, repo *SnapshotRepository[models.Medication], log *zap.Logger) *MedicationRepository {
	return &MedicationRepository{Collection: NewCollection(ctx, repo, log)}
}
