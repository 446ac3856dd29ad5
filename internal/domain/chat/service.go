package chat

import (
	"context"
	"fmt"
)

type Service struct {
	messages Repository
}

func NewService(messages Repository) *Service {
	return &Service{messages: messages}
}

func (s *Service) PostMessage(ctx context.Context, m *Message) error {
	if m.ConcernID == "" {
		return fmt.Errorf("concernId is required")
	}
	if m.Sender == "" {
		return fmt.Errorf("sender is required")
	}
	if m.Message == "" {
		return fmt.Errorf("message is required")
	}
	return s.messages.Create(ctx, m)
}

func (s *Service) ListMessages(ctx context.Context, concernID string) ([]*Message, error) {
	return s.messages.ListByConcern(ctx, concernID)
}
