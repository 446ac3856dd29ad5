package calldoc

import "context"

// Repository stores call documentation. ListByConcern returns entries
// newest-first. Create assigns the id and createdAt; the concernId
// reference is accepted as given, never checked against concerns.
type Repository interface {
	ListByConcern(ctx context.Context, concernID string) ([]*CallDoc, error)
	Create(ctx context.Context, d *CallDoc) error
}
