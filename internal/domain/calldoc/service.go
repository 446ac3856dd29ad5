package calldoc

import (
	"context"
	"fmt"
)

type Service struct {
	docs Repository
}

func NewService(docs Repository) *Service {
	return &Service{docs: docs}
}

// CreateCallDoc validates and stores a call documentation entry.
// Resolution and agentMessage stay nil when absent; nil is the explicit
// "no value" marker on the wire and in storage.
func (s *Service) CreateCallDoc(ctx context.Context, d *CallDoc) error {
	if d.ConcernID == "" {
		return fmt.Errorf("concernId is required")
	}
	if d.AgentName == "" {
		return fmt.Errorf("agentName is required")
	}
	if d.CallNotes == "" {
		return fmt.Errorf("callNotes is required")
	}
	return s.docs.Create(ctx, d)
}

func (s *Service) ListCallDocs(ctx context.Context, concernID string) ([]*CallDoc, error) {
	return s.docs.ListByConcern(ctx, concernID)
}
