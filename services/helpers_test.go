package services

import (
	"SaudeSync/models"
	"SaudeSync/repositories"
	"SaudeSync/storage"
	"context"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
)

var brt = time.FixedZone("BRT", -3*60*60)

type memKV struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemKV() *memKV { return &memKV{data: make(map[string]string)} }

func (m *memKV) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return "", storage.ErrMiss
	}
	return v, nil
}

func (m *memKV) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memKV) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func newConsultationRepo(t *testing.T) *repositories.ConsultationRepository {
	t.Helper()
	log := zap.NewNop()
	snap := repositories.NewSnapshotRepository[models.Consultation](newMemKV(), repositories.ConsultationsKey, nil, log)
	return repositories.NewConsultationRepository(context.Background(), snap, log)
}

func newRecordingRepo(t *testing.T) *repositories.RecordingRepository {
	t.Helper()
	log := zap.NewNop()
	snap := repositories.NewSnapshotRepository[models.Recording](newMemKV(), repositories.RecordingsKey, nil, log)
	return repositories.NewRecordingRepository(context.Background(), snap, log)
}

// recordingSink keeps every notification it receives.
type recordingSink struct {
	mu   sync.Mutex
	sent []models.Notification
}

func (r *recordingSink) Notify(ctx context.Context, n models.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, n)
}

func (r *recordingSink) all() []models.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Notification(nil), r.sent...)
}

func ptr[T any](v T) *T { return &v }
