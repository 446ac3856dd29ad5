package concern

import (
	"context"
	"fmt"
)

type Service struct {
	concerns Repository
}

func NewService(concerns Repository) *Service {
	return &Service{concerns: concerns}
}

// CreateConcern validates the request and stores a new concern. Status
// is optional and defaults to pending; when supplied it must be one of
// the five known values. Category is deliberately not validated against
// KnownCategories.
func (s *Service) CreateConcern(ctx context.Context, c *Concern) error {
	if c.PatientName == "" {
		return fmt.Errorf("patientName is required")
	}
	if c.PatientDob == "" {
		return fmt.Errorf("patientDob is required")
	}
	if c.Category == "" {
		return fmt.Errorf("category is required")
	}
	if c.Title == "" {
		return fmt.Errorf("title is required")
	}
	if c.Status != "" && !ValidStatus(c.Status) {
		return fmt.Errorf("invalid status: %s", c.Status)
	}
	return s.concerns.Create(ctx, c)
}

func (s *Service) GetConcern(ctx context.Context, id string) (*Concern, error) {
	return s.concerns.GetByID(ctx, id)
}

func (s *Service) ListConcerns(ctx context.Context) ([]*Concern, error) {
	return s.concerns.List(ctx)
}

func (s *Service) ListConcernsByCategory(ctx context.Context, category string) ([]*Concern, error) {
	return s.concerns.ListByCategory(ctx, category)
}

func (s *Service) ListConcernsByPatient(ctx context.Context, patientName, patientDob string) ([]*Concern, error) {
	return s.concerns.ListByPatient(ctx, patientName, patientDob)
}

// UpdateConcernStatus replaces the status of an existing concern and
// bumps updatedAt. The status must be valid before the store is touched.
func (s *Service) UpdateConcernStatus(ctx context.Context, id, status string) (*Concern, error) {
	if !ValidStatus(status) {
		return nil, fmt.Errorf("invalid status: %s", status)
	}
	return s.concerns.UpdateStatus(ctx, id, status)
}
