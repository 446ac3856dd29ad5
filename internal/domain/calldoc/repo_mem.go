package calldoc

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memRepo struct {
	mu    sync.RWMutex
	items map[string]CallDoc
}

// NewMemRepo returns an empty in-memory call documentation repository.
func NewMemRepo() Repository {
	return &memRepo{items: make(map[string]CallDoc)}
}

func (r *memRepo) ListByConcern(_ context.Context, concernID string) ([]*CallDoc, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*CallDoc
	for _, d := range r.items {
		if d.ConcernID == concernID {
			dd := d
			out = append(out, &dd)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *memRepo) Create(_ context.Context, d *CallDoc) error {
	d.ID = uuid.New().String()
	d.CreatedAt = time.Now().UTC()

	r.mu.Lock()
	r.items[d.ID] = *d
	r.mu.Unlock()
	return nil
}
