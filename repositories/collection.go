package repositories

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Record is anything stored in a Collection.
type Record interface {
	GetID() string
}

// Collection is an in-memory, snapshot-persisted list ordered newest first.
type Collection[T Record] struct {
	mu        sync.RWMutex
	items     []T
	version   uint64
	persister *persister[T]
}

// NewCollection loads the stored snapshot and returns the collection.
func NewCollection[T Record](ctx context.Context, repo *SnapshotRepository[T], log *zap.Logger) *Collection[T] {
	return &Collection[T]{
		items:     repo.Load(ctx),
		persister: newPersister(repo, log),
	}
}

// Add prepends item.
func (c *Collection[T]) Add(ctx context.Context, item T) {
	c.mutate(ctx, func() bool {
		c.items = append([]T{item}, c.items...)
		return true
	})
}

// Delete removes the item with id and reports whether it existed.
func (c *Collection[T]) Delete(ctx context.Context, id string) bool {
	found := false
	c.mutate(ctx, func() bool {
		kept := c.items[:0:0]
		for _, item := range c.items {
			if item.GetID() == id {
				found = true
				continue
			}
			kept = append(kept, item)
		}
		c.items = kept
		return found
	})
	return found
}

// Update applies fn to the item with id. It returns the updated item and whether it existed.
func (c *Collection[T]) Update(ctx context.Context, id string, fn func(*T)) (T, bool) {
	var updated T
	found := false
	c.mutate(ctx, func() bool {
		for i := range c.items {
			if c.items[i].GetID() == id {
				fn(&c.items[i])
				updated = c.items[i]
				found = true
				return true
			}
		}
		return false
	})
	return updated, found
}

// Get returns the item with id.
func (c *Collection[T]) Get(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, item := range c.items {
		if item.GetID() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// List returns a copy of every item.
func (c *Collection[T]) List() []T {
	return c.Filter(func(T) bool { return true })
}

// Filter returns the items matching keep, in collection order.
func (c *Collection[T]) Filter(keep func(T) bool) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, 0, len(c.items))
	for _, item := range c.items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

func (c *Collection[T]) mutate(ctx context.Context, fn func() bool) {
	c.mu.Lock()
	changed := fn()
	if changed {
		c.version++
	}
	c.mu.Unlock()

	if changed {
		c.persister.persist(ctx, c.snapshot)
	}
}

func (c *Collection[T]) snapshot() ([]T, uint64) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]T(nil), c.items...), c.version
}
