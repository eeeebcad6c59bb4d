package services

import (
	"SaudeSync/models"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNotesAutosaver_DebouncesDrafts(t *testing.T) {
	repo := newConsultationRepo(t)
	ctx := context.Background()
	repo.Add(ctx, models.Consultation{ID: "c1", Specialty: "Nutrologia", Status: models.StatusAwaitingDate})
	start := repo.Version()

	saver := NewNotesAutosaver(repo, 50*time.Millisecond, zap.NewNop())
	saver.Schedule("c1", "dor")
	saver.Schedule("c1", "dor de cabeça")
	saver.Schedule("c1", "dor de cabeça há 3 dias")

	assert.Eventually(t, func() bool {
		c, _ := repo.Get("c1")
		return c.PatientNotes == "dor de cabeça há 3 dias"
	}, time.Second, 10*time.Millisecond)

	assert.Equal(t, start+1, repo.Version())
	assert.Equal(t, 0, saver.Pending())
}

func TestNotesAutosaver_FlushSavesImmediately(t *testing.T) {
	repo := newConsultationRepo(t)
	ctx := context.Background()
	repo.Add(ctx, models.Consultation{ID: "c1", Specialty: "Nutrologia", Status: models.StatusAwaitingDate})
	repo.Add(ctx, models.Consultation{ID: "c2", Specialty: "Geriatria", Status: models.StatusAwaitingDate})

	saver := NewNotesAutosaver(repo, time.Hour, zap.NewNop())
	saver.Schedule("c1", "levar exames")
	saver.Schedule("c2", "jejum de 8h")
	saver.Schedule("missing", "ignored")
	require.Equal(t, 3, saver.Pending())

	saver.Flush(ctx)

	c1, _ := repo.Get("c1")
	c2, _ := repo.Get("c2")
	assert.Equal(t, "levar exames", c1.PatientNotes)
	assert.Equal(t, "jejum de 8h", c2.PatientNotes)
	assert.Equal(t, 0, saver.Pending())
}
