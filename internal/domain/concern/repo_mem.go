package concern

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// memRepo is the in-memory Repository: a map of id to record value,
// linear-scanned for every query. Updates build a new value and replace
// the entry, so readers never observe a half-written record.
type memRepo struct {
	mu    sync.RWMutex
	items map[string]Concern
}

// NewMemRepo returns an empty in-memory concern repository.
func NewMemRepo() Repository {
	return &memRepo{items: make(map[string]Concern)}
}

func (r *memRepo) GetByID(_ context.Context, id string) (*Concern, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &c, nil
}

func (r *memRepo) List(_ context.Context) ([]*Concern, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(Concern) bool { return true }), nil
}

func (r *memRepo) ListByCategory(_ context.Context, category string) ([]*Concern, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(c Concern) bool { return c.Category == category }), nil
}

func (r *memRepo) ListByPatient(_ context.Context, patientName, patientDob string) ([]*Concern, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(c Concern) bool {
		return c.PatientName == patientName && c.PatientDob == patientDob
	}), nil
}

// collect copies every matching record and sorts most recently touched
// first. Callers must hold at least a read lock.
func (r *memRepo) collect(match func(Concern) bool) []*Concern {
	var out []*Concern
	for _, c := range r.items {
		if match(c) {
			cc := c
			out = append(out, &cc)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out
}

func (r *memRepo) Create(_ context.Context, c *Concern) error {
	c.ID = uuid.New().String()
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	if c.Status == "" {
		c.Status = StatusPending
	}

	r.mu.Lock()
	r.items[c.ID] = *c
	r.mu.Unlock()
	return nil
}

func (r *memRepo) UpdateStatus(_ context.Context, id, status string) (*Concern, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	c.Status = status
	c.UpdatedAt = time.Now().UTC()
	r.items[id] = c

	out := c
	return &out, nil
}
