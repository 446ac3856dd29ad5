package chat

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memRepo struct {
	mu    sync.RWMutex
	items map[string]Message
}

// NewMemRepo returns an empty in-memory chat repository.
func NewMemRepo() Repository {
	return &memRepo{items: make(map[string]Message)}
}

func (r *memRepo) ListByConcern(_ context.Context, concernID string) ([]*Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Message
	for _, m := range r.items {
		if m.ConcernID == concernID {
			mm := m
			out = append(out, &mm)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *memRepo) Create(_ context.Context, m *Message) error {
	m.ID = uuid.New().String()
	m.CreatedAt = time.Now().UTC()

	r.mu.Lock()
	r.items[m.ID] = *m
	r.mu.Unlock()
	return nil
}
