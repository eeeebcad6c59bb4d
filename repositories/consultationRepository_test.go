package repositories

import (
	"SaudeSync/cache"
	"SaudeSync/database"
	"SaudeSync/models"
	"SaudeSync/storage"
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestConsultationRepo(t *testing.T, kv storage.KV) *ConsultationRepository {
	t.Helper()
	log := zap.NewNop()
	snap := NewSnapshotRepository[models.Consultation](kv, ConsultationsKey, nil, log)
	return NewConsultationRepository(context.Background(), snap, log)
}

func timePtr(t time.Time) *time.Time { return &t }

func cardiology(id string, date time.Time) models.Consultation {
	return models.Consultation{
		ID:              id,
		Specialty:       "Cardiologia",
		Date:            timePtr(date),
		AppointmentType: models.AppointmentPresential,
		Address:         "Rua X, 1",
		Status:          models.StatusScheduled,
	}
}

func TestConsultationRepository_AddPrependsAndPersists(t *testing.T) {
	kv := newFakeKV()
	repo := newTestConsultationRepo(t, kv)
	ctx := context.Background()
	now := time.Now()

	repo.Add(ctx, cardiology("1", now.Add(48*time.Hour)))
	repo.Add(ctx, cardiology("2", now.Add(72*time.Hour)))

	list := repo.List()
	require.Len(t, list, 2)
	assert.Equal(t, "2", list[0].ID)
	assert.Equal(t, "1", list[1].ID)

	raw, ok := kv.raw(ConsultationsKey)
	require.True(t, ok)
	var stored []models.Consultation
	require.NoError(t, json.Unmarshal([]byte(raw), &stored))
	assert.Len(t, stored, 2)
	assert.Equal(t, uint64(2), repo.Version())
}

func TestConsultationRepository_AddReminderComputesFireTime(t *testing.T) {
	repo := newTestConsultationRepo(t, newFakeKV())
	ctx := context.Background()
	date := time.Now().Add(48 * time.Hour).Truncate(time.Minute)
	repo.Add(ctx, cardiology("c1", date))

	reminder, err := repo.AddReminder(ctx, "c1", models.LeadOneDay)
	require.NoError(t, err)

	assert.Equal(t, "c1-1day", reminder.ID)
	assert.Equal(t, date.Add(-24*time.Hour), reminder.ScheduledTime)
	assert.False(t, reminder.Delivered)

	c, ok := repo.Get("c1")
	require.True(t, ok)
	require.Len(t, c.Reminders, 1)
	assert.Equal(t, reminder, c.Reminders[0])
}

func TestConsultationRepository_AddReminderDuplicateIsRejected(t *testing.T) {
	repo := newTestConsultationRepo(t, newFakeKV())
	ctx := context.Background()
	repo.Add(ctx, cardiology("c1", time.Now().Add(48*time.Hour)))

	_, err := repo.AddReminder(ctx, "c1", models.LeadThreeHours)
	require.NoError(t, err)
	version := repo.Version()

	_, err = repo.AddReminder(ctx, "c1", models.LeadThreeHours)
	assert.ErrorIs(t, err, ErrReminderExists)

	c, _ := repo.Get("c1")
	assert.Len(t, c.Reminders, 1)
	assert.Equal(t, version, repo.Version())
}

func TestConsultationRepository_AddReminderErrors(t *testing.T) {
	repo := newTestConsultationRepo(t, newFakeKV())
	ctx := context.Background()
	repo.Add(ctx, models.Consultation{ID: "undated", Specialty: "Pediatria", Status: models.StatusAwaitingDate})

	_, err := repo.AddReminder(ctx, "missing", models.LeadOneHour)
	assert.ErrorIs(t, err, ErrConsultationNotFound)

	_, err = repo.AddReminder(ctx, "undated", models.LeadOneHour)
	assert.ErrorIs(t, err, ErrConsultationUndated)

	_, err = repo.AddReminder(ctx, "undated", models.LeadType("2weeks"))
	assert.ErrorIs(t, err, ErrInvalidLeadType)
}

func TestConsultationRepository_RemoveReminder(t *testing.T) {
	repo := newTestConsultationRepo(t, newFakeKV())
	ctx := context.Background()
	repo.Add(ctx, cardiology("c1", time.Now().Add(48*time.Hour)))
	_, err := repo.AddReminder(ctx, "c1", models.LeadOneDay)
	require.NoError(t, err)

	// absent type: unchanged, no error
	require.NoError(t, repo.RemoveReminder(ctx, "c1", models.LeadOneHour))
	c, _ := repo.Get("c1")
	assert.Len(t, c.Reminders, 1)

	require.NoError(t, repo.RemoveReminder(ctx, "c1", models.LeadOneDay))
	c, _ = repo.Get("c1")
	assert.Empty(t, c.Reminders)

	// re-adding reuses the deterministic id
	r, err := repo.AddReminder(ctx, "c1", models.LeadOneDay)
	require.NoError(t, err)
	assert.Equal(t, "c1-1day", r.ID)
}

func TestConsultationRepository_UpdateIsShallowMerge(t *testing.T) {
	repo := newTestConsultationRepo(t, newFakeKV())
	ctx := context.Background()
	repo.Add(ctx, cardiology("c1", time.Now().Add(48*time.Hour)))
	_, err := repo.AddReminder(ctx, "c1", models.LeadOneDay)
	require.NoError(t, err)

	doctor := "Dr. Paulo"
	updated, ok := repo.Update(ctx, "c1", models.ConsultationPatch{Doctor: &doctor})
	require.True(t, ok)
	assert.Equal(t, "Dr. Paulo", updated.Doctor)
	assert.Equal(t, "Rua X, 1", updated.Address)
	assert.Len(t, updated.Reminders, 1)

	_, ok = repo.Update(ctx, "missing", models.ConsultationPatch{Doctor: &doctor})
	assert.False(t, ok)
}

func TestConsultationRepository_DateEditKeepsReminderTime(t *testing.T) {
	repo := newTestConsultationRepo(t, newFakeKV())
	ctx := context.Background()
	date := time.Now().Add(48 * time.Hour).Truncate(time.Second)
	repo.Add(ctx, cardiology("c1", date))
	r, err := repo.AddReminder(ctx, "c1", models.LeadOneHour)
	require.NoError(t, err)

	moved := date.Add(24 * time.Hour)
	_, ok := repo.Update(ctx, "c1", models.ConsultationPatch{Date: &moved})
	require.True(t, ok)

	c, _ := repo.Get("c1")
	assert.Equal(t, r.ScheduledTime, c.Reminders[0].ScheduledTime)
}

func TestConsultationRepository_DeleteAndAssociate(t *testing.T) {
	repo := newTestConsultationRepo(t, newFakeKV())
	ctx := context.Background()
	repo.Add(ctx, cardiology("c1", time.Now()))

	assert.True(t, repo.AssociateRecording(ctx, "c1", "rec-1"))
	assert.True(t, repo.AssociateRecording(ctx, "c1", "rec-2"))
	c, _ := repo.Get("c1")
	assert.Equal(t, "rec-2", c.RecordingID)

	assert.False(t, repo.AssociateRecording(ctx, "missing", "rec-1"))
	assert.False(t, repo.Delete(ctx, "missing"))
	assert.True(t, repo.Delete(ctx, "c1"))
	assert.Empty(t, repo.List())
}

func TestConsultationRepository_TransitionStatusesOnlyTouchesFromState(t *testing.T) {
	repo := newTestConsultationRepo(t, newFakeKV())
	ctx := context.Background()
	past := time.Now().Add(-time.Hour)
	repo.Add(ctx, cardiology("a", past))
	done := cardiology("b", past)
	done.Status = models.StatusCompleted
	repo.Add(ctx, done)

	n := repo.TransitionStatuses(ctx, []string{"a", "b"}, models.StatusScheduled, models.StatusPendingConfirmation)
	assert.Equal(t, 1, n)

	a, _ := repo.Get("a")
	b, _ := repo.Get("b")
	assert.Equal(t, models.StatusPendingConfirmation, a.Status)
	assert.Equal(t, models.StatusCompleted, b.Status)
}

func TestConsultationRepository_SubscribeCoalesces(t *testing.T) {
	repo := newTestConsultationRepo(t, newFakeKV())
	ctx := context.Background()
	events, cancel := repo.Subscribe()
	defer cancel()

	repo.Add(ctx, cardiology("1", time.Now()))
	repo.Add(ctx, cardiology("2", time.Now()))
	repo.Add(ctx, cardiology("3", time.Now()))

	select {
	case ev := <-events:
		assert.Equal(t, uint64(3), ev.Version)
	case <-time.After(time.Second):
		t.Fatal("no change event")
	}

	select {
	case ev := <-events:
		t.Fatalf("unexpected extra event %v", ev)
	default:
	}

	cancel()
	_, open := <-events
	assert.False(t, open)
}

func TestConsultationRepository_RoundTrip(t *testing.T) {
	kv := newFakeKV()
	repo := newTestConsultationRepo(t, kv)
	ctx := context.Background()

	loc := time.FixedZone("BRT", -3*60*60)
	date := time.Date(2026, 11, 20, 9, 30, 0, 0, loc)
	c := cardiology("c1", date)
	c.Doctor = "Dra. Ana"
	c.PatientNotes = "dor no peito ao correr"
	repo.Add(ctx, c)
	_, err := repo.AddReminder(ctx, "c1", models.LeadThreeHours)
	require.NoError(t, err)
	repo.Add(ctx, models.Consultation{ID: "c2", Specialty: "Urologia", AppointmentType: models.AppointmentTelemedicine, Status: models.StatusAwaitingDate})

	reloaded := newTestConsultationRepo(t, kv)
	got := reloaded.List()
	want := repo.List()
	require.Len(t, got, len(want))

	for i := range want {
		assert.Equal(t, want[i].ID, got[i].ID)
		assert.Equal(t, want[i].Doctor, got[i].Doctor)
		assert.Equal(t, want[i].Status, got[i].Status)
		assert.Equal(t, want[i].PatientNotes, got[i].PatientNotes)
		if want[i].Date == nil {
			assert.Nil(t, got[i].Date)
			continue
		}
		require.NotNil(t, got[i].Date)
		assert.True(t, want[i].Date.Equal(*got[i].Date))
		require.Len(t, got[i].Reminders, len(want[i].Reminders))
		for j := range want[i].Reminders {
			assert.True(t, want[i].Reminders[j].ScheduledTime.Equal(got[i].Reminders[j].ScheduledTime))
			assert.Equal(t, want[i].Reminders[j].ID, got[i].Reminders[j].ID)
		}
	}
}

func TestConsultationRepository_MalformedSnapshotLoadsEmpty(t *testing.T) {
	kv := newFakeKV()
	require.NoError(t, kv.Set(context.Background(), ConsultationsKey, "{not json", 0))

	repo := newTestConsultationRepo(t, kv)
	assert.Empty(t, repo.List())
}

func TestConsultationRepository_PersistFailureDoesNotBlockMutation(t *testing.T) {
	kv := newFakeKV()
	kv.failSets = true
	repo := newTestConsultationRepo(t, kv)

	repo.Add(context.Background(), cardiology("c1", time.Now()))

	_, ok := repo.Get("c1")
	assert.True(t, ok)
	_, stored := kv.raw(ConsultationsKey)
	assert.False(t, stored)
}

func TestConsultationRepository_RedisSnapshotWithLock(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	prev := database.RedisClient
	database.RedisClient = client
	t.Cleanup(func() { database.RedisClient = prev })

	c, err := cache.NewCache(client)
	require.NoError(t, err)
	log := zap.NewNop()
	snap := NewSnapshotRepository[models.Consultation](storage.NewRedisKV(c), ConsultationsKey, database.NewRedisLocker(log), log)
	repo := NewConsultationRepository(context.Background(), snap, log)

	repo.Add(context.Background(), cardiology("c1", time.Now()))

	raw, err := mr.Get(ConsultationsKey)
	require.NoError(t, err)
	assert.Contains(t, raw, `"specialty":"Cardiologia"`)
	assert.False(t, mr.Exists("lock:"+ConsultationsKey))
}

func TestConsultationRepository_MarkDeliveredFlipsOnce(t *testing.T) {
	repo := newTestConsultationRepo(t, newFakeKV())
	ctx := context.Background()
	repo.Add(ctx, cardiology("c1", time.Now().Add(2*time.Hour)))
	_, err := repo.AddReminder(ctx, "c1", models.LeadThreeHours)
	require.NoError(t, err)
	_, err = repo.AddReminder(ctx, "c1", models.LeadOneDay)
	require.NoError(t, err)

	ids := []string{"c1-3hours", "c1-1day"}
	c, flipped := repo.MarkDelivered(ctx, "c1", ids)
	assert.Len(t, flipped, 2)
	for _, r := range c.Reminders {
		assert.True(t, r.Delivered)
	}

	version := repo.Version()
	_, flipped = repo.MarkDelivered(ctx, "c1", ids)
	assert.Empty(t, flipped)
	assert.Equal(t, version, repo.Version())

	_, flipped = repo.MarkDelivered(ctx, "missing", ids)
	assert.Empty(t, flipped)
}

func TestConsultationRepository_AddWithTimestampIDNeverCollides(t *testing.T) {
	repo := newTestConsultationRepo(t, newFakeKV())
	ctx := context.Background()
	const ms = int64(1792432800000)

	var wg sync.WaitGroup
	ids := make([]string, 8)
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ids[i] = repo.AddWithTimestampID(ctx, cardiology("", time.Now()), ms).ID
		}(i)
	}
	wg.Wait()

	seen := map[string]bool{}
	for _, id := range ids {
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
	assert.True(t, seen["1792432800000"])
	assert.True(t, seen["1792432800007"])
	assert.Len(t, repo.List(), len(ids))
}
