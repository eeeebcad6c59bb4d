package models

import (
	"time"
)

// KVEntry backs the Postgres key-value store.
type KVEntry struct {
	Key       string     `gorm:"primaryKey;column:key"`
	Value     string     `gorm:"column:value;type:text;not null"`
	ExpiresAt *time.Time `gorm:"column:expires_at;index"`
	UpdatedAt time.Time  `gorm:"column:updated_at"`
}

func (KVEntry) TableName() string {
	return "kv_entries"
}
