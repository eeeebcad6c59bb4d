package repositories

import (
	"SaudeSync/storage"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Storage keys for the persisted collections.
const (
	ConsultationsKey = "saudesync:consultations"
	FilesKey         = "saudesync:files"
	RecordingsKey    = "saudesync:recordings"
	MedicationsKey   = "saudesync:medications"
)

const persistTimeout = 5 * time.Second

// Locker serializes snapshot writers across processes.
type Locker interface {
	WithLock(ctx context.Context, key string, fn func() error) error
}

// SnapshotRepository stores a whole collection as one JSON array under a fixed key.
type SnapshotRepository[T any] struct {
	kv     storage.KV
	key    string
	locker Locker
	log    *zap.Logger
}

// NewSnapshotRepository creates a repository for key. locker may be nil.
func NewSnapshotRepository[T any](kv storage.KV, key string, locker Locker, log *zap.Logger) *SnapshotRepository[T] {
	return &SnapshotRepository[T]{kv: kv, key: key, locker: locker, log: log.With(zap.String("key", key))}
}

// Load reads the collection. Missing or malformed data yields an empty collection.
func (r *SnapshotRepository[T]) Load(ctx context.Context) []T {
	raw, err := r.kv.Get(ctx, r.key)
	if errors.Is(err, storage.ErrMiss) {
		return []T{}
	}
	if err != nil {
		r.log.Warn("Failed to load snapshot", zap.Error(err))
		return []T{}
	}

	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		r.log.Warn("Discarding malformed snapshot", zap.Error(err))
		return []T{}
	}
	if items == nil {
		items = []T{}
	}
	return items
}

// Save writes the whole collection.
func (r *SnapshotRepository[T]) Save(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	write := func() error {
		return r.kv.Set(ctx, r.key, string(payload), 0)
	}
	if r.locker == nil {
		return write()
	}
	return r.locker.WithLock(ctx, r.key, write)
}

// persister writes snapshots in version order; an older snapshot never overwrites a newer one.
type persister[T any] struct {
	mu        sync.Mutex
	persisted uint64
	repo      *SnapshotRepository[T]
	log       *zap.Logger
}

func newPersister[T any](repo *SnapshotRepository[T], log *zap.Logger) *persister[T] {
	return &persister[T]{repo: repo, log: log}
}

// persist saves the snapshot returned by snap. Failures are logged and swallowed.
func (p *persister[T]) persist(ctx context.Context, snap func() ([]T, uint64)) {
	p.mu.Lock()
	defer p.mu.Unlock()

	items, version := snap()
	if version <= p.persisted {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
	defer cancel()

	if err := p.repo.Save(ctx, items); err != nil {
		p.log.Warn("Failed to persist snapshot",
			zap.String("key", p.repo.key),
			zap.Uint64("version", version),
			zap.Error(err),
		)
		return
	}
	p.persisted = version
}
