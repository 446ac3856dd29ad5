package image

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memRepo struct {
	mu    sync.RWMutex
	items map[string]Image
}

// NewMemRepo returns an empty in-memory image metadata repository.
func NewMemRepo() Repository {
	return &memRepo{items: make(map[string]Image)}
}

func (r *memRepo) GetByID(_ context.Context, id string) (*Image, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	img, ok := r.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &img, nil
}

func (r *memRepo) GetByPath(_ context.Context, path string) (*Image, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, img := range r.items {
		if img.Path == path {
			ii := img
			return &ii, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memRepo) List(_ context.Context, f Filter) ([]*Image, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Image
	for _, img := range r.items {
		if f.ConcernID != nil && (img.ConcernID == nil || *img.ConcernID != *f.ConcernID) {
			continue
		}
		if f.CallDocID != nil && (img.CallDocID == nil || *img.CallDocID != *f.CallDocID) {
			continue
		}
		ii := img
		out = append(out, &ii)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UploadedAt.After(out[j].UploadedAt)
	})
	return out, nil
}

func (r *memRepo) Create(_ context.Context, img *Image) error {
	img.ID = uuid.New().String()
	img.UploadedAt = time.Now().UTC()

	r.mu.Lock()
	r.items[img.ID] = *img
	r.mu.Unlock()
	return nil
}

func (r *memRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return ErrNotFound
	}
	delete(r.items, id)
	return nil
}
