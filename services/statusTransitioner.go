package services

import (
	"SaudeSync/models"
	"SaudeSync/repositories"
	"context"
	"time"

	"go.uber.org/zap"
)

// StatusTransitioner moves scheduled consultations whose date has passed to pending
// confirmation. It never moves a consultation backwards.
type StatusTransitioner struct {
	repo    *repositories.ConsultationRepository
	recheck time.Duration
	now     func() time.Time
	log     *zap.Logger
}

// NewStatusTransitioner creates a transitioner. recheck > 0 also re-evaluates on that
// interval, so consultations expire without waiting for another change.
func NewStatusTransitioner(repo *repositories.ConsultationRepository, recheck time.Duration, log *zap.Logger) *StatusTransitioner {
	return &StatusTransitioner{repo: repo, recheck: recheck, now: time.Now, log: log}
}

// Pass applies the transition for now and returns how many consultations changed.
func (t *StatusTransitioner) Pass(ctx context.Context, now time.Time) int {
	var expired []string
	for _, c := range t.repo.List() {
		if c.Status == models.StatusScheduled && c.Date != nil && c.Date.Before(now) {
			expired = append(expired, c.ID)
		}
	}
	if len(expired) == 0 {
		return 0
	}

	changed := t.repo.TransitionStatuses(ctx, expired, models.StatusScheduled, models.StatusPendingConfirmation)
	if changed > 0 {
		t.log.Info("Consultations awaiting confirmation", zap.Int("count", changed))
	}
	return changed
}

// Run passes once, then again after every collection change until ctx is done.
func (t *StatusTransitioner) Run(ctx context.Context) {
	events, cancel := t.repo.Subscribe()
	defer cancel()

	var tick <-chan time.Time
	if t.recheck > 0 {
		ticker := time.NewTicker(t.recheck)
		defer ticker.Stop()
		tick = ticker.C
	}

	t.Pass(ctx, t.now())
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-events:
			if !ok {
				return
			}
			t.Pass(ctx, t.now())
		case <-tick:
			t.Pass(ctx, t.now())
		}
	}
}
