package services

import (
	"SaudeSync/models"
	"SaudeSync/repositories"
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	ReminderTitle       = "🔔 Lembrete de Consulta"
	ReminderActionLabel = "Ver consulta"
	ReminderDurationMs  = 8000

	DefaultReminderInterval = 30 * time.Second
)

// ReminderScheduler polls the consultation collection for due reminders, marks them delivered
// and notifies the sink.
type ReminderScheduler struct {
	repo     *repositories.ConsultationRepository
	sink     NotificationSink
	interval time.Duration
	loc      *time.Location
	now      func() time.Time
	log      *zap.Logger

	tickMu sync.Mutex
}

func NewReminderScheduler(repo *repositories.ConsultationRepository, sink NotificationSink, interval time.Duration, loc *time.Location, log *zap.Logger) *ReminderScheduler {
	if interval <= 0 {
		interval = DefaultReminderInterval
	}
	if loc == nil {
		loc = time.UTC
	}
	return &ReminderScheduler{
		repo:     repo,
		sink:     sink,
		interval: interval,
		loc:      loc,
		now:      time.Now,
		log:      log,
	}
}

// Run checks once immediately and then on every interval until ctx is done.
func (s *ReminderScheduler) Run(ctx context.Context) {
	s.log.Info("Reminder scheduler started", zap.Duration("interval", s.interval))
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.Tick(ctx, s.now())
	for {
		select {
		case <-ctx.Done():
			s.log.Info("Reminder scheduler stopped")
			return
		case <-ticker.C:
			s.Tick(ctx, s.now())
		}
	}
}

// Tick delivers every reminder due at now and returns how many were delivered.
func (s *ReminderScheduler) Tick(ctx context.Context, now time.Time) int {
	s.tickMu.Lock()
	defer s.tickMu.Unlock()

	delivered := 0
	for _, c := range s.repo.List() {
		var due []string
		for _, r := range c.Reminders {
			if r.Due(now) {
				due = append(due, r.ID)
			}
		}
		if len(due) == 0 {
			continue
		}

		current, flipped := s.repo.MarkDelivered(ctx, c.ID, due)
		for _, r := range flipped {
			s.sink.Notify(ctx, s.buildNotification(current, r, now))
			delivered++
		}
	}

	if delivered > 0 {
		s.log.Info("Reminders delivered", zap.Int("count", delivered))
	}
	return delivered
}

func (s *ReminderScheduler) buildNotification(c models.Consultation, r models.Reminder, now time.Time) models.Notification {
	return models.Notification{
		Title:       ReminderTitle,
		Description: ReminderMessage(c, r, s.loc),
		Action: &models.NotificationAction{
			Label: ReminderActionLabel,
			Href:  fmt.Sprintf("/consultas/%s", c.ID),
		},
		DurationMs: ReminderDurationMs,
		CreatedAt:  now,
	}
}

// ReminderMessage renders the pt-BR reminder text for the consultation's current date.
func ReminderMessage(c models.Consultation, r models.Reminder, loc *time.Location) string {
	date := consultationTime(c, r).In(loc)
	clock := date.Format("15:04")

	switch r.Type {
	case models.LeadOneDay:
		return fmt.Sprintf("📅 Você tem uma consulta de %s amanhã às %s", c.Specialty, clock)
	case models.LeadThreeHours:
		return fmt.Sprintf("⏰ Sua consulta de %s será às %s, se prepare", c.Specialty, clock)
	case models.LeadOneHour:
		return fmt.Sprintf("🚨 Sua consulta de %s é em 1 hora (%s)", c.Specialty, clock)
	default:
		return fmt.Sprintf("Lembrete: Consulta de %s em %s às %s", c.Specialty, date.Format("02/01"), clock)
	}
}

func consultationTime(c models.Consultation, r models.Reminder) time.Time {
	if c.Date != nil {
		return *c.Date
	}
	offset, _ := r.Type.Offset()
	return r.ScheduledTime.Add(offset)
}
