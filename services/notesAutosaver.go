package services

import (
	"SaudeSync/models"
	"SaudeSync/repositories"
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

const DefaultAutosaveDelay = time.Second

type notesDraft struct {
	notes string
	timer *time.Timer
}

// NotesAutosaver debounces patient-notes edits per consultation. Only the last draft within the
// delay is saved.
type NotesAutosaver struct {
	repo  *repositories.ConsultationRepository
	delay time.Duration
	log   *zap.Logger

	mu      sync.Mutex
	pending map[string]*notesDraft
}

func NewNotesAutosaver(repo *repositories.ConsultationRepository, delay time.Duration, log *zap.Logger) *NotesAutosaver {
	if delay <= 0 {
		delay = DefaultAutosaveDelay
	}
	return &NotesAutosaver{
		repo:    repo,
		delay:   delay,
		log:     log,
		pending: make(map[string]*notesDraft),
	}
}

// Schedule records a draft and restarts the consultation's timer.
func (a *NotesAutosaver) Schedule(consultationID, notes string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if prev, ok := a.pending[consultationID]; ok {
		prev.timer.Stop()
	}
	draft := &notesDraft{notes: notes}
	draft.timer = time.AfterFunc(a.delay, func() {
		a.fire(consultationID, draft)
	})
	a.pending[consultationID] = draft
}

// Pending reports how many drafts are waiting to be saved.
func (a *NotesAutosaver) Pending() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.pending)
}

// Flush saves every pending draft now.
func (a *NotesAutosaver) Flush(ctx context.Context) {
	a.mu.Lock()
	drafts := a.pending
	a.pending = make(map[string]*notesDraft)
	a.mu.Unlock()

	for id, draft := range drafts {
		draft.timer.Stop()
		a.save(ctx, id, draft.notes)
	}
}

func (a *NotesAutosaver) fire(consultationID string, draft *notesDraft) {
	a.mu.Lock()
	if a.pending[consultationID] != draft {
		// superseded or flushed
		a.mu.Unlock()
		return
	}
	delete(a.pending, consultationID)
	a.mu.Unlock()

	a.save(context.Background(), consultationID, draft.notes)
}

func (a *NotesAutosaver) save(ctx context.Context, consultationID, notes string) {
	if _, ok := a.repo.Update(ctx, consultationID, models.ConsultationPatch{PatientNotes: &notes}); !ok {
		a.log.Warn("Dropping notes for missing consultation", zap.String("consultation_id", consultationID))
		return
	}
	a.log.Debug("Patient notes saved", zap.String("consultation_id", consultationID))
}
