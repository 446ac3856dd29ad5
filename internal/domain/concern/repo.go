package concern

import (
	"context"
	"errors"
)

// ErrNotFound is returned by lookups and status updates for unknown ids.
var ErrNotFound = errors.New("concern not found")

// Repository is the storage contract for concerns. Implementations
// assign the id and both timestamps on Create and default an unset
// status to pending; callers never supply ids. List results are ordered
// by updatedAt descending.
type Repository interface {
	GetByID(ctx context.Context, id string) (*Concern, error)
	List(ctx context.Context) ([]*Concern, error)
	ListByCategory(ctx context.Context, category string) ([]*Concern, error)
	ListByPatient(ctx context.Context, patientName, patientDob string) ([]*Concern, error)
	Create(ctx context.Context, c *Concern) error
	UpdateStatus(ctx context.Context, id, status string) (*Concern, error)
}
