package repositories

import (
	"SaudeSync/cache"
	"SaudeSync/models"
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// SessionRepository keeps mock-auth sessions in Redis with a TTL.
type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository(cache *cache.Cache) *SessionRepository {
	return &SessionRepository{cache: cache}
}

func (r *SessionRepository) Save(ctx context.Context, session models.Session, ttl time.Duration) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := r.cache.Set(ctx, r.getSessionCacheKey(session.User.ID), payload, ttl); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

// Get returns nil when the user has no stored session.
func (r *SessionRepository) Get(ctx context.Context, userID string) (*models.Session, error) {
	raw, ok, err := r.cache.Lookup(ctx, r.getSessionCacheKey(userID))
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	if !ok {
		return nil, nil
	}
	var session models.Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &session, nil
}

func (r *SessionRepository) Delete(ctx context.Context, userID string) error {
	return r.cache.Delete(ctx, r.getSessionCacheKey(userID))
}

func (r *SessionRepository) getSessionCacheKey(userID string) string {
	return fmt.Sprintf("saudesync:auth:session:%s", userID)
}
