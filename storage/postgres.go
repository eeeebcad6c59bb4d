package storage

import (
	"SaudeSync/models"
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostgresKV keeps entries in the kv_entries table.
type PostgresKV struct {
	db  *gorm.DB
	now func() time.Time
}

func NewPostgresKV(db *gorm.DB) *PostgresKV {
	return &PostgresKV{db: db, now: time.Now}
}

func (p *PostgresKV) Get(ctx context.Context, key string) (string, error) {
	var entry models.KVEntry
	err := p.db.WithContext(ctx).Where("key = ?", key).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrMiss
	}
	if err != nil {
		return "", errors.Wrapf(err, "failed to read %s", key)
	}
	if entry.ExpiresAt != nil && p.now().After(*entry.ExpiresAt) {
		return "", ErrMiss
	}
	return entry.Value, nil
}

func (p *PostgresKV) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	now := p.now()
	entry := models.KVEntry{Key: key, Value: value, UpdatedAt: now}
	if ttl > 0 {
		exp := now.Add(ttl)
		entry.ExpiresAt = &exp
	}

	err := p.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "expires_at", "updated_at"}),
	}).Create(&entry).Error
	return errors.Wrapf(err, "failed to write %s", key)
}

func (p *PostgresKV) Delete(ctx context.Context, key string) error {
	err := p.db.WithContext(ctx).Where("key = ?", key).Delete(&models.KVEntry{}).Error
	return errors.Wrapf(err, "failed to delete %s", key)
}
