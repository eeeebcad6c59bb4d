package repositories

import (
	"SaudeSync/cache"
	"SaudeSync/models"
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

const NotificationsKey = "saudesync:notifications"

// NotificationRepository keeps the most recent notifications, newest first.
type NotificationRepository struct {
	cache *cache.Cache
	max   int64
	log   *zap.Logger
}

func NewNotificationRepository(cache *cache.Cache, max int, log *zap.Logger) *NotificationRepository {
	if max <= 0 {
		max = 50
	}
	return &NotificationRepository{cache: cache, max: int64(max), log: log}
}

func (r *NotificationRepository) Push(ctx context.Context, n models.Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}
	return r.cache.PushCapped(ctx, NotificationsKey, payload, r.max)
}

// Recent returns up to limit notifications. Undecodable entries are skipped.
func (r *NotificationRepository) Recent(ctx context.Context, limit int) ([]models.Notification, error) {
	if limit <= 0 || int64(limit) > r.max {
		limit = int(r.max)
	}
	raw, err := r.cache.Range(ctx, NotificationsKey, 0, int64(limit)-1)
	if err != nil {
		return nil, fmt.Errorf("failed to read notifications: %w", err)
	}

	out := make([]models.Notification, 0, len(raw))
	for _, item := range raw {
		var n models.Notification
		if err := json.Unmarshal([]byte(item), &n); err != nil {
			r.log.Warn("Skipping malformed notification", zap.Error(err))
			continue
		}
		out = append(out, n)
	}
	return out, nil
}
