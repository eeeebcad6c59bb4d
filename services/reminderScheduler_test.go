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

func TestReminderScheduler_DeliversOnceWhenDue(t *testing.T) {
	repo := newConsultationRepo(t)
	sink := &recordingSink{}
	scheduler := NewReminderScheduler(repo, sink, time.Minute, brt, zap.NewNop())
	ctx := context.Background()

	now := time.Date(2026, 10, 19, 10, 0, 0, 0, brt)
	date := now.Add(48 * time.Hour)
	repo.Add(ctx, models.Consultation{ID: "c1", Specialty: "Cardiologia", Date: &date, Status: models.StatusScheduled})
	reminder, err := repo.AddReminder(ctx, "c1", models.LeadOneDay)
	require.NoError(t, err)
	require.Equal(t, date.Add(-24*time.Hour), reminder.ScheduledTime)

	assert.Equal(t, 0, scheduler.Tick(ctx, now))
	assert.Empty(t, sink.all())

	assert.Equal(t, 1, scheduler.Tick(ctx, reminder.ScheduledTime.Add(time.Second)))
	sent := sink.all()
	require.Len(t, sent, 1)
	assert.Equal(t, "🔔 Lembrete de Consulta", sent[0].Title)
	assert.Equal(t, "📅 Você tem uma consulta de Cardiologia amanhã às 10:00", sent[0].Description)
	require.NotNil(t, sent[0].Action)
	assert.Equal(t, "Ver consulta", sent[0].Action.Label)
	assert.Equal(t, "/consultas/c1", sent[0].Action.Href)
	assert.Equal(t, 8000, sent[0].DurationMs)

	c, _ := repo.Get("c1")
	assert.True(t, c.Reminders[0].Delivered)

	assert.Equal(t, 0, scheduler.Tick(ctx, reminder.ScheduledTime.Add(time.Hour)))
	assert.Len(t, sink.all(), 1)
}

func TestReminderScheduler_DeliversEveryDueReminderOfAConsultation(t *testing.T) {
	repo := newConsultationRepo(t)
	sink := &recordingSink{}
	scheduler := NewReminderScheduler(repo, sink, time.Minute, brt, zap.NewNop())
	ctx := context.Background()

	date := time.Date(2026, 10, 20, 9, 0, 0, 0, brt)
	repo.Add(ctx, models.Consultation{ID: "c1", Specialty: "Ortopedia", Date: &date, Status: models.StatusScheduled})
	for _, lead := range models.LeadTypes {
		_, err := repo.AddReminder(ctx, "c1", lead)
		require.NoError(t, err)
	}

	// all three are overdue after a long outage
	assert.Equal(t, 3, scheduler.Tick(ctx, date.Add(-30*time.Minute)))

	c, _ := repo.Get("c1")
	for _, r := range c.Reminders {
		assert.True(t, r.Delivered, r.ID)
	}
	assert.Len(t, sink.all(), 3)
}

func TestReminderScheduler_BoundaryIsInclusive(t *testing.T) {
	repo := newConsultationRepo(t)
	sink := &recordingSink{}
	scheduler := NewReminderScheduler(repo, sink, time.Minute, brt, zap.NewNop())
	ctx := context.Background()

	date := time.Date(2026, 10, 20, 9, 0, 0, 0, brt)
	repo.Add(ctx, models.Consultation{ID: "c1", Specialty: "Oftalmologia", Date: &date, Status: models.StatusScheduled})
	r, err := repo.AddReminder(ctx, "c1", models.LeadOneHour)
	require.NoError(t, err)

	assert.Equal(t, 0, scheduler.Tick(ctx, r.ScheduledTime.Add(-time.Millisecond)))
	assert.Equal(t, 1, scheduler.Tick(ctx, r.ScheduledTime))
}

func TestReminderScheduler_RunChecksImmediately(t *testing.T) {
	repo := newConsultationRepo(t)
	sink := &recordingSink{}
	scheduler := NewReminderScheduler(repo, sink, time.Hour, brt, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())

	date := time.Now().Add(30 * time.Minute)
	repo.Add(ctx, models.Consultation{ID: "c1", Specialty: "Hematologia", Date: &date, Status: models.StatusScheduled})
	_, err := repo.AddReminder(ctx, "c1", models.LeadOneHour)
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		scheduler.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return len(sink.all()) == 1 }, time.Second, 10*time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop")
	}
}

func TestReminderMessage(t *testing.T) {
	date := time.Date(2026, 3, 5, 17, 45, 0, 0, time.UTC) // 14:45 in BRT
	c := models.Consultation{ID: "c1", Specialty: "Neurologia", Date: &date}

	tests := []struct {
		lead models.LeadType
		want string
	}{
		{models.LeadOneDay, "📅 Você tem uma consulta de Neurologia amanhã às 14:45"},
		{models.LeadThreeHours, "⏰ Sua consulta de Neurologia será às 14:45, se prepare"},
		{models.LeadOneHour, "🚨 Sua consulta de Neurologia é em 1 hora (14:45)"},
		{models.LeadType("30min"), "Lembrete: Consulta de Neurologia em 05/03 às 14:45"},
	}
	for _, tt := range tests {
		t.Run(string(tt.lead), func(t *testing.T) {
			got := ReminderMessage(c, models.Reminder{Type: tt.lead}, brt)
			assert.Equal(t, tt.want, got)
		})
	}
}
