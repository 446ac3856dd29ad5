package identity

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("user not found")

// Repository stores users. Uniqueness of usernames is enforced by the
// service, not the store.
type Repository interface {
	GetByID(ctx context.Context, id string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	Create(ctx context.Context, u *User) error
}
