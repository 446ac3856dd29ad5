// Package sandbox generates synthetic dashboard data for demo and
// development environments. Output is reproducible for a given seed so
// UI demos and integration tests see stable content.
package sandbox

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/careline/careline/internal/domain/calldoc"
	"github.com/careline/careline/internal/domain/chat"
	"github.com/careline/careline/internal/domain/concern"
)

// SeedConfig controls the volume and shape of generated data.
type SeedConfig struct {
	ConcernCount       int   `json:"concernCount"`
	CallDocsPerConcern int   `json:"callDocsPerConcern"`
	MessagesPerConcern int   `json:"messagesPerConcern"`
	Seed               int64 `json:"seed"`
}

// DefaultSeedConfig returns a SeedConfig with sensible demo defaults.
func DefaultSeedConfig() SeedConfig {
	return SeedConfig{
		ConcernCount:       24,
		CallDocsPerConcern: 2,
		MessagesPerConcern: 3,
		Seed:               1,
	}
}

// SeedResult summarizes the output of a seed operation.
type SeedResult struct {
	Concerns     int           `json:"concerns"`
	CallDocs     int           `json:"callDocs"`
	ChatMessages int           `json:"chatMessages"`
	Elapsed      time.Duration `json:"elapsedNs"`
}

var patientNames = []string{
	"Maria Alvarez", "James Okafor", "Linh Tran", "Robert Keller",
	"Aisha Mohammed", "Peter Novak", "Grace Ito", "Daniel Fontaine",
	"Olga Petrova", "Samuel Boateng", "Hana Suzuki", "Carlos Mendez",
}

var agentNames = []string{"Dana", "Lee", "Sam", "Priya", "Marcus"}

var concernTitles = []string{
	"CPAP mask replacement request",
	"Insurance prior auth pending",
	"Sleep study results follow-up",
	"Machine pressure alarm",
	"Prescription renewal needed",
	"Billing statement question",
}

var statuses = []string{
	concern.StatusPending, concern.StatusUrgent, concern.StatusOverdue,
	concern.StatusTasked, concern.StatusDone,
}

// Seeder writes synthetic concerns, call documentation, and chat
// messages through the normal service layer so seeded data obeys the
// same validation as real traffic.
type Seeder struct {
	concerns *concern.Service
	calldocs *calldoc.Service
	messages *chat.Service
}

func NewSeeder(concerns *concern.Service, calldocs *calldoc.Service, messages *chat.Service) *Seeder {
	return &Seeder{concerns: concerns, calldocs: calldocs, messages: messages}
}

// Seed generates the configured volume of synthetic data.
func (s *Seeder) Seed(ctx context.Context, cfg SeedConfig) (*SeedResult, error) {
	start := time.Now()
	rng := rand.New(rand.NewSource(cfg.Seed))
	result := &SeedResult{}

	for i := 0; i < cfg.ConcernCount; i++ {
		c := &concern.Concern{
			PatientName: patientNames[rng.Intn(len(patientNames))],
			PatientDob:  fmt.Sprintf("19%02d-%02d-%02d", 40+rng.Intn(60), 1+rng.Intn(12), 1+rng.Intn(28)),
			Category:    concern.KnownCategories[rng.Intn(len(concern.KnownCategories))],
			Title:       concernTitles[rng.Intn(len(concernTitles))],
			Status:      statuses[rng.Intn(len(statuses))],
		}
		if err := s.concerns.CreateConcern(ctx, c); err != nil {
			return nil, fmt.Errorf("seed concern %d: %w", i, err)
		}
		result.Concerns++

		for j := 0; j < cfg.CallDocsPerConcern; j++ {
			d := &calldoc.CallDoc{
				ConcernID: c.ID,
				AgentName: agentNames[rng.Intn(len(agentNames))],
				CallNotes: fmt.Sprintf("Call %d regarding %s.", j+1, c.Title),
			}
			if rng.Intn(2) == 0 {
				resolution := "Resolved during call"
				d.Resolution = &resolution
			}
			if err := s.calldocs.CreateCallDoc(ctx, d); err != nil {
				return nil, fmt.Errorf("seed call doc: %w", err)
			}
			result.CallDocs++
		}

		for j := 0; j < cfg.MessagesPerConcern; j++ {
			m := &chat.Message{
				ConcernID: c.ID,
				Sender:    agentNames[rng.Intn(len(agentNames))],
				Message:   fmt.Sprintf("Update %d on %s.", j+1, c.Title),
			}
			if err := s.messages.PostMessage(ctx, m); err != nil {
				return nil, fmt.Errorf("seed chat message: %w", err)
			}
			result.ChatMessages++
		}
	}

	result.Elapsed = time.Since(start)
	return result, nil
}

// Handler exposes seeding over HTTP for development environments.
type Handler struct {
	seeder *Seeder
}

func NewHandler(seeder *Seeder) *Handler {
	return &Handler{seeder: seeder}
}

// RegisterRoutes mounts the seed endpoint. Callers should only mount
// this in non-production environments.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/sandbox/seed", h.Seed)
}

func (h *Handler) Seed(c echo.Context) error {
	cfg := DefaultSeedConfig()
	if err := c.Bind(&cfg); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid seed config")
	}
	result, err := h.seeder.Seed(c.Request().Context(), cfg)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, result)
}
