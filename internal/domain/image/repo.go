package image

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("image not found")

// Repository stores image metadata only; blob contents live in the
// blob store and are managed by the service.
type Repository interface {
	GetByID(ctx context.Context, id string) (*Image, error)
	GetByPath(ctx context.Context, path string) (*Image, error)
	List(ctx context.Context, f Filter) ([]*Image, error)
	Create(ctx context.Context, img *Image) error
	Delete(ctx context.Context, id string) error
}
