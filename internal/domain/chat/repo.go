package chat

import "context"

// Repository stores chat messages. ListByConcern returns messages in
// conversational order, oldest first.
type Repository interface {
	ListByConcern(ctx context.Context, concernID string) ([]*Message, error)
	Create(ctx context.Context, m *Message) error
}
