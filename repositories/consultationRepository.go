package repositories

import (
	"SaudeSync/models"
	"context"
	"errors"
	"strconv"
	"sync"

	"go.uber.org/zap"
)

var (
	ErrConsultationNotFound = errors.New("consultation not found")
	ErrReminderExists       = errors.New("reminder of this type already exists")
	ErrConsultationUndated  = errors.New("consultation has no date")
	ErrInvalidLeadType      = errors.New("invalid reminder type")
)

// ChangeEvent is published after every mutation of the consultation collection.
type ChangeEvent struct {
	Version uint64
}

// ConsultationRepository owns the consultation collection. All mutations go through it;
// each one persists the full snapshot and notifies subscribers.
type ConsultationRepository struct {
	mu      sync.RWMutex
	items   []models.Consultation
	version uint64

	subMu   sync.Mutex
	subs    map[int]chan ChangeEvent
	nextSub int

	persister *persister[models.Consultation]
	log       *zap.Logger
}

// NewConsultationRepository rehydrates the collection from storage.
func NewConsultationRepository(ctx context.Context, repo *SnapshotRepository[models.Consultation], log *zap.Logger) *ConsultationRepository {
	items := repo.Load(ctx)
	log.Info("Consultations loaded", zap.Int("count", len(items)))
	return &ConsultationRepository{
		items:     items,
		subs:      make(map[int]chan ChangeEvent),
		persister: newPersister(repo, log),
		log:       log,
	}
}

// Add inserts the consultation at the front.
func (r *ConsultationRepository) Add(ctx context.Context, c models.Consultation) {
	c = c.Clone()
	r.mutate(ctx, func() bool {
		r.items = append([]models.Consultation{c}, r.items...)
		return true
	})
}

// AddWithTimestampID inserts the consultation at the front under a fresh id. The id is ms
// formatted in base 10, bumped past any id already taken.
func (r *ConsultationRepository) AddWithTimestampID(ctx context.Context, c models.Consultation, ms int64) models.Consultation {
	c = c.Clone()
	r.mutate(ctx, func() bool {
		for {
			c.ID = strconv.FormatInt(ms, 10)
			if r.indexOf(c.ID) < 0 {
				break
			}
			ms++
		}
		r.items = append([]models.Consultation{c}, r.items...)
		return true
	})
	return c.Clone()
}

// Delete removes the consultation. Files and recordings pointing at it are left alone.
func (r *ConsultationRepository) Delete(ctx context.Context, id string) bool {
	found := false
	r.mutate(ctx, func() bool {
		kept := make([]models.Consultation, 0, len(r.items))
		for _, c := range r.items {
			if c.ID == id {
				found = true
				continue
			}
			kept = append(kept, c)
		}
		r.items = kept
		return found
	})
	return found
}

// Update shallow-merges patch into the consultation.
func (r *ConsultationRepository) Update(ctx context.Context, id string, patch models.ConsultationPatch) (models.Consultation, bool) {
	var updated models.Consultation
	found := false
	r.mutate(ctx, func() bool {
		i := r.indexOf(id)
		if i < 0 {
			return false
		}
		patch.Apply(&r.items[i])
		updated = r.items[i].Clone()
		found = true
		return true
	})
	return updated, found
}

// AddReminder appends a reminder computed from the consultation's current date.
func (r *ConsultationRepository) AddReminder(ctx context.Context, id string, lead models.LeadType) (models.Reminder, error) {
	if !lead.Valid() {
		return models.Reminder{}, ErrInvalidLeadType
	}

	var reminder models.Reminder
	var err error
	r.mutate(ctx, func() bool {
		i := r.indexOf(id)
		if i < 0 {
			err = ErrConsultationNotFound
			return false
		}
		c := &r.items[i]
		if c.HasReminder(lead) {
			err = ErrReminderExists
			return false
		}
		if c.Date == nil {
			err = ErrConsultationUndated
			return false
		}
		reminder, err = models.NewReminder(c.ID, *c.Date, lead)
		if err != nil {
			return false
		}
		c.Reminders = append(append([]models.Reminder(nil), c.Reminders...), reminder)
		return true
	})
	return reminder, err
}

// RemoveReminder drops the reminder of the given type. A missing type is not an error.
func (r *ConsultationRepository) RemoveReminder(ctx context.Context, id string, lead models.LeadType) error {
	var err error
	r.mutate(ctx, func() bool {
		i := r.indexOf(id)
		if i < 0 {
			err = ErrConsultationNotFound
			return false
		}
		c := &r.items[i]
		kept := make([]models.Reminder, 0, len(c.Reminders))
		for _, rem := range c.Reminders {
			if rem.Type != lead {
				kept = append(kept, rem)
			}
		}
		if len(kept) == len(c.Reminders) {
			return false
		}
		c.Reminders = kept
		return true
	})
	return err
}

// MarkDelivered flags the listed reminders of one consultation as delivered and returns the
// ones this call flipped. Reminders already delivered are not returned again.
func (r *ConsultationRepository) MarkDelivered(ctx context.Context, id string, reminderIDs []string) (models.Consultation, []models.Reminder) {
	var updated models.Consultation
	var flipped []models.Reminder
	r.mutate(ctx, func() bool {
		i := r.indexOf(id)
		if i < 0 {
			return false
		}
		c := &r.items[i]
		reminders := append([]models.Reminder(nil), c.Reminders...)
		for j := range reminders {
			if reminders[j].Delivered || !containsID(reminderIDs, reminders[j].ID) {
				continue
			}
			reminders[j].Delivered = true
			flipped = append(flipped, reminders[j])
		}
		if len(flipped) == 0 {
			updated = c.Clone()
			return false
		}
		c.Reminders = reminders
		updated = c.Clone()
		return true
	})
	return updated, flipped
}

func containsID(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

// AssociateRecording overwrites the consultation's recording reference.
func (r *ConsultationRepository) AssociateRecording(ctx context.Context, id, recordingID string) bool {
	_, found := r.Update(ctx, id, models.ConsultationPatch{RecordingID: &recordingID})
	return found
}

// TransitionStatuses moves every listed consultation still in from to to, as one mutation.
// It returns how many records changed.
func (r *ConsultationRepository) TransitionStatuses(ctx context.Context, ids []string, from, to models.ConsultationStatus) int {
	if len(ids) == 0 {
		return 0
	}
	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}

	changed := 0
	r.mutate(ctx, func() bool {
		for i := range r.items {
			if _, ok := wanted[r.items[i].ID]; ok && r.items[i].Status == from {
				r.items[i].Status = to
				changed++
			}
		}
		return changed > 0
	})
	return changed
}

// Get returns a copy of the consultation.
func (r *ConsultationRepository) Get(id string) (models.Consultation, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i := r.indexOf(id)
	if i < 0 {
		return models.Consultation{}, false
	}
	return r.items[i].Clone(), true
}

// List returns a copy of the collection, most recently created first.
func (r *ConsultationRepository) List() []models.Consultation {
	items, _ := r.snapshot()
	return items
}

// Version increases by one on every mutation.
func (r *ConsultationRepository) Version() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.version
}

// Subscribe returns a channel that receives an event after each mutation. Events coalesce:
// a slow subscriber only sees the latest pending one. Call cancel to unsubscribe.
func (r *ConsultationRepository) Subscribe() (<-chan ChangeEvent, func()) {
	ch := make(chan ChangeEvent, 1)

	r.subMu.Lock()
	id := r.nextSub
	r.nextSub++
	r.subs[id] = ch
	r.subMu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			r.subMu.Lock()
			delete(r.subs, id)
			r.subMu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

func (r *ConsultationRepository) publish(version uint64) {
	r.subMu.Lock()
	defer r.subMu.Unlock()
	for _, ch := range r.subs {
		select {
		case ch <- ChangeEvent{Version: version}:
		default:
			// drop the stale pending event in favour of the newer one
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- ChangeEvent{Version: version}:
			default:
			}
		}
	}
}

func (r *ConsultationRepository) mutate(ctx context.Context, fn func() bool) {
	r.mu.Lock()
	changed := fn()
	if changed {
		r.version++
	}
	version := r.version
	r.mu.Unlock()

	if !changed {
		return
	}
	r.persister.persist(ctx, r.snapshot)
	r.publish(version)
}

func (r *ConsultationRepository) snapshot() ([]models.Consultation, uint64) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Consultation, len(r.items))
	for i, c := range r.items {
		out[i] = c.Clone()
	}
	return out, r.version
}

// indexOf must be called with mu held.
func (r *ConsultationRepository) indexOf(id string) int {
	for i := range r.items {
		if r.items[i].ID == id {
			return i
		}
	}
	return -1
}
