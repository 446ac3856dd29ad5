package identity

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

type memRepo struct {
	mu    sync.RWMutex
	items map[string]User
}

// NewMemRepo returns an empty in-memory user repository.
func NewMemRepo() Repository {
	return &memRepo{items: make(map[string]User)}
}

func (r *memRepo) GetByID(_ context.Context, id string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (r *memRepo) GetByUsername(_ context.Context, username string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.items {
		if u.Username == username {
			uu := u
			return &uu, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memRepo) Create(_ context.Context, u *User) error {
	u.ID = uuid.New().String()

	r.mu.Lock()
	r.items[u.ID] = *u
	r.mu.Unlock()
	return nil
}
